package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/citybooking_bot/internal/auth"
	"github.com/spf13/cobra"
)

func newHashSecretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-secret <secret>",
		Short: "Print ADMIN_SECRET_HASH for the given admin secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(args[0]) == "" {
				return errors.New("secret must not be empty")
			}
			hash, err := auth.HashSecret(args[0])
			if err != nil {
				return fmt.Errorf("hash secret: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ADMIN_SECRET_HASH='%s'\n", hash)
			return nil
		},
	}
}
