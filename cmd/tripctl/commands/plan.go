package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"trip-planner-go/internal/model"
	"trip-planner-go/internal/service"
)

var PlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Ask the model for three destinations",
}

var planSoloCmd = &cobra.Command{
	Use:   "solo",
	Short: "Plan a trip for one traveler",
	RunE: func(cmd *cobra.Command, args []string) error {
		budget, _ := cmd.Flags().GetFloat64("budget")
		days, _ := cmd.Flags().GetInt("days")
		airport, _ := cmd.Flags().GetString("airport")
		continent, _ := cmd.Flags().GetString("continent")

		svc, err := newService(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.ErrOrStderr(), "Planning your trip...")
		res, err := svc.PlanIndividual(cmd.Context(), service.IndividualRequest{
			Budget:    budget,
			Days:      days,
			Airport:   airport,
			Continent: continent,
		})
		if err != nil {
			return explain(err)
		}
		printPlan(cmd.OutOrStdout(), res)
		return nil
	},
}

var planGroupCmd = &cobra.Command{
	Use:   "group",
	Short: "Plan a trip for 2-10 travelers with different personalities",
	Example: `  tripctl plan group --days 6 \
    --member "Ann,1200,IAD,Europe,Culture" \
    --member "Bo,900,JFK,,Nightlife"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		specs, _ := cmd.Flags().GetStringArray("member")

		members := make([]model.MemberInput, 0, len(specs))
		for _, s := range specs {
			m, err := ParseMember(s)
			if err != nil {
				return err
			}
			members = append(members, m)
		}

		svc, err := newService(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.ErrOrStderr(), "Balancing group personalities & budget...")
		res, err := svc.PlanGroup(cmd.Context(), service.GroupRequest{Days: days, Members: members})
		if err != nil {
			return explain(err)
		}
		printPlan(cmd.OutOrStdout(), res)
		return nil
	},
}

// ParseMember 解析 "name,budget,airport[,continent[,mood]]" 形式的成员描述。
func ParseMember(s string) (model.MemberInput, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 3 || len(parts) > 5 {
		return model.MemberInput{}, fmt.Errorf("%w: member %q: want name,budget,airport[,continent[,mood]]", service.ErrInvalidInput, s)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	budget, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return model.MemberInput{}, fmt.Errorf("%w: member %q: budget %q is not a number", service.ErrInvalidInput, s, parts[1])
	}

	m := model.MemberInput{Name: parts[0], Budget: budget, Airport: parts[2]}
	if len(parts) > 3 {
		m.Continent = parts[3]
	}
	if len(parts) > 4 {
		m.Mood = parts[4]
	}
	return m, nil
}

func init() {
	planSoloCmd.Flags().Float64("budget", 1000, "budget in USD (at least 100)")
	planSoloCmd.Flags().Int("days", 5, "trip duration in days")
	planSoloCmd.Flags().String("airport", "IAD", "nearest airport or city")
	planSoloCmd.Flags().String("continent", "", "preferred continent (optional)")

	planGroupCmd.Flags().Int("days", 6, "trip duration in days")
	planGroupCmd.Flags().StringArray("member", nil, `member as "name,budget,airport[,continent[,mood]]" (repeat 2-10 times)`)
	_ = planGroupCmd.MarkFlagRequired("member")

	PlanCmd.AddCommand(planSoloCmd)
	PlanCmd.AddCommand(planGroupCmd)
}
