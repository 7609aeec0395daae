package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"playconsole/internal/studio"
)

var (
	costUser  string
	costStart string
	costEnd   string
	costMonth string
)

var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "Show the account cost report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSession()
		if err != nil {
			return err
		}
		client := newStudioClient(cfg)
		report, err := client.Cost(cmd.Context(), cfg.AccessToken, studio.CostQuery{
			Username:  costUser,
			StartDate: costStart,
			EndDate:   costEnd,
			YearMonth: costMonth,
		})
		if err != nil {
			return err
		}
		if report.Username != "" {
			fmt.Printf("User: %s\n", report.Username)
		}
		fmt.Print(studio.RenderCost(&report.Cost))
		return nil
	},
}

func init() {
	costCmd.Flags().StringVar(&costUser, "user", "", "filter by username")
	costCmd.Flags().StringVar(&costStart, "start", "", "start date, YYYY-MM-DD")
	costCmd.Flags().StringVar(&costEnd, "end", "", "end date, YYYY-MM-DD")
	costCmd.Flags().StringVar(&costMonth, "month", "", "calendar month, YYYY-MM")
}
