package cli

import (
	"fmt"

	"github.com/Freeeeeet/citybooking_bot/internal/app"
	"github.com/Freeeeeet/citybooking_bot/internal/config"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var statusOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply postgres migrations (BACKEND=postgres)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Backend != config.BackendPostgres {
				return fmt.Errorf("migrate requires BACKEND=%s, got %q", config.BackendPostgres, cfg.Backend)
			}

			logger := app.NewLogger(cfg.Environment)
			defer logger.Sync()

			ctx := cmd.Context()
			pool, err := app.OpenPool(ctx, cfg.GetDBDSN())
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
			if err != nil {
				return err
			}
			defer migrator.Close()

			if !statusOnly {
				if err := migrator.Run(ctx); err != nil {
					return err
				}
			}

			version, err := migrator.Version(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migration version: %d\n", version)
			return nil
		},
	}

	cmd.Flags().BoolVar(&statusOnly, "status", false, "only print the current version")
	return cmd
}
