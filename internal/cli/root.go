// Package cli служебные команды bookingctl: хэш секрета, предпросмотр сетки,
// миграции и просмотр слотов в бэкенде.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bookingctl",
		Short:         "Maintenance tool for the city booking bot",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newHashSecretCmd())
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newSlotsCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
