package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

var (
	scheduleStart  string
	scheduleOutput outputFlags
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <post1> <post2> <post3> <post4> <post5>",
	Short: "Lay out five social posts over five days",
	Long: `Assigns each post to a consecutive day at the configured posting time,
without running any generation.

Example:
  marketforge schedule "Teaser" "Feature" "Story" "Offer" "Launch" --start 2025-06-02`,
	Args: cobra.ExactArgs(domain.PostCount),
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleStart, "start", "", "first day as YYYY-MM-DD (default tomorrow)")
	scheduleOutput.register(scheduleCmd)
	rootCmd.AddCommand(scheduleCmd)
}

// scheduleRow is the serialised form of a schedule item, including its date.
type scheduleRow struct {
	Day     string `json:"day" yaml:"day"`
	Date    string `json:"date" yaml:"date"`
	Time    string `json:"time" yaml:"time"`
	Content string `json:"content" yaml:"content"`
}

func runSchedule(cmd *cobra.Command, args []string) error {
	if scheduleService == nil {
		return errors.New("schedule service not configured")
	}

	start, err := parseStartDate(scheduleStart)
	if err != nil {
		return err
	}
	if start.IsZero() {
		start = scheduleService.DefaultStart()
	}

	items := scheduleService.Build(args, start)

	rows := make([]scheduleRow, len(items))
	for i, item := range items {
		rows[i] = scheduleRow{
			Day:     item.Day,
			Date:    item.Date.Format(time.DateOnly),
			Time:    item.Time,
			Content: item.Content,
		}
	}
	if ok, err := scheduleOutput.write(cmd, rows); ok {
		return err
	}

	printSchedule(cmd, items)
	return nil
}
