package cli

import (
	"fmt"

	"github.com/Freeeeeet/citybooking_bot/internal/app"
	"github.com/Freeeeeet/citybooking_bot/internal/config"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
	"github.com/spf13/cobra"
)

func newSlotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "Print free slots stored in the configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := app.NewLogger(cfg.Environment)
			defer logger.Sync()

			ctx := cmd.Context()
			backend, closeBackend, err := app.OpenBackend(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeBackend()

			store, err := backend.FetchSlots(ctx)
			if err != nil {
				return fmt.Errorf("fetch slots: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(store.Keys()) == 0 {
				fmt.Fprintln(out, "no free slots")
				return nil
			}

			grouped := slotstore.GroupByDateThenSort(store, cfg.Timezone)
			for _, key := range store.Keys() {
				count := store.Count(key)
				fmt.Fprintf(out, "%s: %d %s\n", key, count, formatting.PluralizeSlots(count))
				for _, date := range slotstore.SortedDates(grouped[key]) {
					fmt.Fprintf(out, "  %s  %d\n", formatting.FormatDateKey(date), len(grouped[key][date]))
				}
			}
			return nil
		},
	}
}
