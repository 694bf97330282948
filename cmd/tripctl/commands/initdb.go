package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var InitDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the trip tables, or add missing columns to an existing database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "database ready (%s)\n", cfg.Database.Driver)
		return nil
	},
}
