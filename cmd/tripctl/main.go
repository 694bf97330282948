package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trip-planner-go/cmd/tripctl/commands"
)

var rootCmd = &cobra.Command{
	Use:   "tripctl",
	Short: "tripctl - AI trip planner for solo travelers and groups",
	Long: `tripctl builds a travel prompt from your budget, trip length and airports,
asks the configured model for three destinations, and keeps a local history
of every plan together with its Mood Harmony Score.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(commands.InitDBCmd)
	rootCmd.AddCommand(commands.PlanCmd)
	rootCmd.AddCommand(commands.HistoryCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&commands.ConfigFile, "config", "./configs/config.yaml", "config file")
}
