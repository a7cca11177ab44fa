package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show tracked health metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := app.Client.GetHealthRecords(cmd.Context())
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No health data recorded yet.")
			return nil
		}
		fmt.Printf("%-12s %8s %8s %7s %6s %8s\n", "DATE", "WEIGHT", "STEPS", "SLEEP", "HR", "WATER")
		for _, r := range records {
			fmt.Printf("%-12s %7.1fkg %8d %6.1fh %6d %6dml\n",
				r.Date, r.WeightKG, r.Steps, r.SleepHours, r.HeartRate, r.WaterML)
		}
		return nil
	},
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the activity log",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := app.Client.GetActivityLog(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No activity logged yet.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %-12s %s\n", e.Timestamp.Format("2006-01-02 15:04"), e.Type, e.Detail)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(logsCmd)
}
