package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driving/tui"
	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/logger"
	"github.com/rmayank-24/MarketForgeAI/internal/normalisers"
)

var (
	generateDoc    string
	generateMIME   string
	generateStart  string
	generateNoSave bool
	generatePlain  bool
	generateOutput outputFlags
)

// promptIdea asks for the product idea when none was given.
// Tests replace it.
var promptIdea = func() (string, error) {
	var idea string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Describe your product idea").
				Placeholder("Reusable beeswax food wraps for eco-conscious families").
				Value(&idea).
				Validate(func(s string) error {
					_, err := domain.NormaliseIdea(s)
					return err
				}),
		),
	).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return "", err
	}
	return idea, nil
}

var generateCmd = &cobra.Command{
	Use:   "generate [idea]",
	Short: "Generate a launch kit for a product idea",
	Long: `Runs market research, product copy, ad copy and social calendar
generation in order, then prints the assembled launch kit.

Attach a reference document with --doc to ground the market research.
Supported types are PDF, DOCX, Markdown and plain text; the type is taken
from the file extension unless --mime is given.

Examples:
  marketforge generate "Reusable beeswax food wraps"
  marketforge generate "Solar phone case" --doc brief.pdf --start 2025-06-02
  marketforge generate "AI meal planner" --json --no-save`,
	Args: cobra.ArbitraryArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateDoc, "doc", "d", "", "reference document (pdf, docx, md, txt)")
	generateCmd.Flags().StringVar(&generateMIME, "mime", "", "override the document type")
	generateCmd.Flags().StringVar(&generateStart, "start", "", "first schedule day as YYYY-MM-DD (default tomorrow)")
	generateCmd.Flags().BoolVar(&generateNoSave, "no-save", false, "do not store the kit in history")
	generateCmd.Flags().BoolVar(&generatePlain, "plain", false, "print progress as text instead of the live view")
	generateOutput.register(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	idea := strings.Join(args, " ")
	if strings.TrimSpace(idea) == "" && isInteractive() {
		var err error
		if idea, err = promptIdea(); err != nil {
			return fmt.Errorf("reading idea: %w", err)
		}
	}
	idea, err := domain.NormaliseIdea(idea)
	if err != nil {
		return describeError(err)
	}

	start, err := parseStartDate(generateStart)
	if err != nil {
		return err
	}

	var doc *domain.SourceDocument
	if generateDoc != "" {
		if doc, err = normalisers.LoadFile(generateDoc, generateMIME); err != nil {
			return fmt.Errorf("loading document: %w", err)
		}
	}

	svc, release, err := newLaunchKit(ctx)
	if err != nil {
		return describeError(err)
	}
	defer release()

	produce := func(ctx context.Context, onStage func(domain.StageEvent)) (*domain.LaunchKit, error) {
		return svc.Produce(ctx, idea, doc, domain.ProduceOptions{StartDate: start, OnStage: onStage})
	}

	var kit *domain.LaunchKit
	if isInteractive() && !generatePlain && !generateOutput.structured() {
		kit, err = tui.RunGeneration(ctx, idea, produce)
	} else {
		kit, err = produce(ctx, stageReporter(cmd))
	}
	if err != nil {
		return describeError(err)
	}

	if !generateNoSave {
		saveKit(ctx, cmd, idea, kit)
	}

	if ok, err := generateOutput.write(cmd, kit); ok {
		return err
	}
	cmd.Println()
	printKit(cmd, kit)
	return nil
}

// stageReporter prints progress lines to stderr.
func stageReporter(cmd *cobra.Command) func(domain.StageEvent) {
	w := cmd.ErrOrStderr()
	total := len(domain.Stages)
	return func(ev domain.StageEvent) {
		index := 0
		for i, s := range domain.Stages {
			if s == ev.Stage {
				index = i + 1
			}
		}
		switch ev.Status {
		case domain.StageStarted:
			fmt.Fprintf(w, "[%d/%d] %s...\n", index, total, ev.Stage.Title())
		case domain.StageRetrying:
			fmt.Fprintf(w, "[%d/%d] %s: retrying (attempt %d): %v\n", index, total, ev.Stage.Title(), ev.Attempt, ev.Err)
		case domain.StageFailed:
			fmt.Fprintf(w, "[%d/%d] %s: failed: %v\n", index, total, ev.Stage.Title(), ev.Err)
		case domain.StageSucceeded:
			logger.Debug("%s finished after %d attempt(s)", ev.Stage.Title(), ev.Attempt)
		}
	}
}

// saveKit stores the kit. A storage failure is reported but does not
// discard the generated kit.
func saveKit(ctx context.Context, cmd *cobra.Command, idea string, kit *domain.LaunchKit) {
	if historyService == nil {
		logger.Warn("history not configured, kit not saved")
		return
	}
	record, err := historyService.Save(ctx, idea, kit)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: kit not saved: %v\n", err)
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved as %s\n", record.ID)
}
