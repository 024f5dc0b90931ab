package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

// isInteractive reports whether stdin and stdout are both terminals,
// counting Cygwin and MSYS ptys. Tests replace it to force the plain paths.
var isInteractive = func() bool {
	return isTTY(os.Stdin.Fd()) && isTTY(os.Stdout.Fd())
}

func isTTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// defaultWidth is used when stdout is not a terminal.
const defaultWidth = 100

// terminalWidth is replaced in tests.
var terminalWidth = func() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// outputFlags selects a machine-readable output format.
type outputFlags struct {
	json bool
	yaml bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.json, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&o.yaml, "yaml", false, "output as YAML")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

func (o *outputFlags) structured() bool {
	return o.json || o.yaml
}

// write encodes v in the selected format to stdout. It reports false when neither
// format is selected so the caller can print text instead.
func (o *outputFlags) write(cmd *cobra.Command, v any) (bool, error) {
	switch {
	case o.json:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return true, nil
	case o.yaml:
		data, err := yaml.Marshal(v)
		if err != nil {
			return true, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return true, nil
	}
	return false, nil
}

// printKit writes the kit as readable text.
func printKit(cmd *cobra.Command, kit *domain.LaunchKit) {
	printSection(cmd, "Market Analysis", kit.MarketAnalysis)
	printSection(cmd, "Product Copy", kit.ProductCopy)
	printSection(cmd, "Ad Copy", kit.AdCopy)

	cmd.Println("Social Calendar")
	cmd.Println(strings.Repeat("=", len("Social Calendar")))
	printSchedule(cmd, kit.Schedule)
}

func printSection(cmd *cobra.Command, title, body string) {
	cmd.Println(title)
	cmd.Println(strings.Repeat("=", len(title)))
	cmd.Println(body)
	cmd.Println()
}

func printSchedule(cmd *cobra.Command, items []domain.ScheduleItem) {
	for _, item := range items {
		if item.Date.IsZero() {
			cmd.Printf("%s at %s\n", item.Day, item.Time)
		} else {
			cmd.Printf("%s (%s) at %s\n", item.Day, item.Date.Format("Mon 2 Jan"), item.Time)
		}
		cmd.Printf("  %s\n\n", item.Content)
	}
}

// parseStartDate parses YYYY-MM-DD in the local zone. Empty yields zero.
func parseStartDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("start date %q must be YYYY-MM-DD: %w", value, domain.ErrInvalidInput)
	}
	return t, nil
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
