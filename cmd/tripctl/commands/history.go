package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"trip-planner-go/internal/model"
)

var HistoryCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h"},
	Short:   "Show recent trips, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		svc, err := newService(cmd.Context())
		if err != nil {
			return err
		}
		trips, err := svc.RecentTrips(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(trips) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No trips yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tMODE\tCREATED")
		for _, t := range trips {
			fmt.Fprintf(w, "%d\t%s\t%s\n", t.ID, t.Mode, model.LocalTime(t.CreatedAt))
		}
		return w.Flush()
	},
}

func init() {
	HistoryCmd.Flags().Int("limit", 0, "number of trips to show (0 uses history.default_limit)")
}
