package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driving/tui"
	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

var (
	historyLimit      int
	historyListOutput outputFlags
	historyShowOutput outputFlags
	historyShowPlain  bool
)

// viewKit opens the interactive pager. Tests replace it.
var viewKit = func(record *domain.KitRecord) error {
	return tui.ViewKit(record)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse saved launch kits",
	Long:  `List, show and delete launch kits saved by previous generate runs.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved launch kits, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [kit-id]",
	Short: "Show a saved launch kit",
	Long: `Shows a saved launch kit. On a terminal the kit opens in a scrollable
viewer; use --plain to print it instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:     "delete [kit-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a saved launch kit",
	Args:    cobra.ExactArgs(1),
	RunE:    runHistoryDelete,
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of kits")
	historyListOutput.register(historyListCmd)

	historyShowCmd.Flags().BoolVar(&historyShowPlain, "plain", false, "print instead of opening the viewer")
	historyShowOutput.register(historyShowCmd)

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	kits, err := historyService.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list kits: %w", err)
	}

	if kits == nil {
		kits = []domain.KitSummary{}
	}
	if ok, err := historyListOutput.write(cmd, kits); ok {
		return err
	}

	if len(kits) == 0 {
		cmd.Println("No saved launch kits. Run 'marketforge generate' to create one.")
		return nil
	}

	// ID and CREATED columns plus separators take 56 cells.
	ideaWidth := max(terminalWidth()-56, 20)
	cmd.Printf("%-36s  %-16s  %s\n", "ID", "CREATED", "IDEA")
	for _, k := range kits {
		cmd.Printf("%-36s  %-16s  %s\n", k.ID, k.CreatedAt.Local().Format("2006-01-02 15:04"), truncate(k.Idea, ideaWidth))
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	record, err := historyService.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("launch kit %s not found", args[0])
		}
		return fmt.Errorf("failed to get kit: %w", err)
	}

	if ok, err := historyShowOutput.write(cmd, record); ok {
		return err
	}

	if isInteractive() && !historyShowPlain {
		return viewKit(record)
	}

	cmd.Printf("Idea: %s\n", record.Idea)
	cmd.Printf("Created: %s\n\n", record.CreatedAt.Local().Format("2006-01-02 15:04"))
	printKit(cmd, &record.Kit)
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	if err := historyService.Delete(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("launch kit %s not found", args[0])
		}
		return fmt.Errorf("failed to delete kit: %w", err)
	}

	cmd.Printf("Deleted launch kit %s\n", args[0])
	return nil
}
