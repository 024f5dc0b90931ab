package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

var publishStart string

var publishCmd = &cobra.Command{
	Use:   "publish [kit-id]",
	Short: "Push a saved kit's social calendar to Google Calendar",
	Long: `Creates one calendar event per scheduled post of a saved launch kit.

Requires a one-time 'marketforge calendar auth'. Events are dated from
--start, or from tomorrow when it is omitted.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&publishStart, "start", "", "first day as YYYY-MM-DD (default tomorrow)")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	if publishService == nil {
		return describeError(domain.ErrCalendarNotConfigured)
	}

	start, err := parseStartDate(publishStart)
	if err != nil {
		return err
	}

	ids, err := publishService.Publish(cmd.Context(), args[0], start)
	if len(ids) > 0 {
		cmd.Printf("Created %d calendar event(s):\n", len(ids))
		for _, id := range ids {
			cmd.Printf("  %s\n", id)
		}
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("launch kit %s not found: %w", args[0], err)
		}
		return describeError(err)
	}
	return nil
}
