package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/normalisers"
)

// defaultListLimit bounds list_launch_kits when no limit is given.
const defaultListLimit = 20

// GenerateInput is the input schema for the generate_launch_kit tool.
type GenerateInput struct {
	Idea         string `json:"idea" jsonschema:"the product idea to build a launch kit for"`
	DocumentPath string `json:"document_path,omitempty" jsonschema:"optional path to a PDF, DOCX, TXT or Markdown reference document"`
	DocumentText string `json:"document_text,omitempty" jsonschema:"optional inline reference text, used when no document_path is given"`
	StartDate    string `json:"start_date,omitempty" jsonschema:"first schedule day as YYYY-MM-DD (default tomorrow)"`
	NoSave       bool   `json:"no_save,omitempty" jsonschema:"skip saving the kit to history"`
}

// LaunchKitOutput is the output schema for a generated or stored kit.
type LaunchKitOutput struct {
	ID             string           `json:"id,omitempty"`
	Idea           string           `json:"idea"`
	MarketAnalysis string           `json:"market_analysis"`
	ProductCopy    string           `json:"product_copy"`
	AdCopy         string           `json:"ad_copy"`
	SocialPosts    []string         `json:"social_posts"`
	Schedule       []ScheduleOutput `json:"schedule"`
}

// ScheduleOutput is one schedule entry.
type ScheduleOutput struct {
	Day     string `json:"day"`
	Time    string `json:"time"`
	Content string `json:"content"`
	Date    string `json:"date,omitempty"`
}

// ScheduleInput is the input schema for the build_schedule tool.
type ScheduleInput struct {
	Posts     []string `json:"posts" jsonschema:"exactly five social posts in order"`
	StartDate string   `json:"start_date,omitempty" jsonschema:"first day as YYYY-MM-DD (default tomorrow)"`
}

// ScheduleListOutput is the output schema for the build_schedule tool.
type ScheduleListOutput struct {
	Schedule []ScheduleOutput `json:"schedule"`
}

// ListInput is the input schema for the list_launch_kits tool.
type ListInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of kits to return (default 20)"`
}

// ListOutput is the output schema for the list_launch_kits tool.
type ListOutput struct {
	Kits  []KitSummaryOutput `json:"kits"`
	Count int                `json:"count"`
}

// KitSummaryOutput is one saved kit in a listing.
type KitSummaryOutput struct {
	ID        string `json:"id"`
	Idea      string `json:"idea"`
	CreatedAt string `json:"created_at"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_launch_kit",
		Description: "Generate market analysis, product copy, ad copy and a five day social calendar for a product idea",
	}, s.handleGenerate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "build_schedule",
		Description: "Assign five social posts to consecutive days at the configured posting time",
	}, s.handleBuildSchedule)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_launch_kits",
		Description: "List saved launch kits, newest first",
	}, s.handleList)
}

// handleGenerate handles the generate_launch_kit tool invocation.
func (s *Server) handleGenerate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, LaunchKitOutput, error) {
	start, err := parseStartDate(input.StartDate)
	if err != nil {
		return nil, LaunchKitOutput{}, err
	}

	doc, err := documentFromInput(input)
	if err != nil {
		return nil, LaunchKitOutput{}, err
	}

	kit, err := s.ports.LaunchKit.Produce(ctx, input.Idea, doc, domain.ProduceOptions{StartDate: start})
	if err != nil {
		return nil, LaunchKitOutput{}, err
	}

	idea := strings.TrimSpace(input.Idea)
	output := toKitOutput("", idea, kit)

	if s.ports.History != nil && !input.NoSave {
		record, err := s.ports.History.Save(ctx, idea, kit)
		if err != nil {
			return nil, LaunchKitOutput{}, fmt.Errorf("saving launch kit: %w", err)
		}
		output.ID = record.ID
	}

	return nil, output, nil
}

// handleBuildSchedule handles the build_schedule tool invocation.
func (s *Server) handleBuildSchedule(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ScheduleInput,
) (*mcp.CallToolResult, ScheduleListOutput, error) {
	if len(input.Posts) != domain.PostCount {
		return nil, ScheduleListOutput{}, fmt.Errorf("build_schedule needs exactly %d posts, got %d: %w",
			domain.PostCount, len(input.Posts), domain.ErrInvalidInput)
	}

	start, err := parseStartDate(input.StartDate)
	if err != nil {
		return nil, ScheduleListOutput{}, err
	}
	if start.IsZero() {
		y, m, d := s.now().Date()
		start = time.Date(y, m, d+1, 0, 0, 0, 0, time.Local)
	}

	items := s.ports.LaunchKit.BuildSchedule(input.Posts, start)
	return nil, ScheduleListOutput{Schedule: toScheduleOutput(items)}, nil
}

// handleList handles the list_launch_kits tool invocation.
func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	if s.ports.History == nil {
		return nil, ListOutput{Kits: []KitSummaryOutput{}}, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	summaries, err := s.ports.History.List(ctx, limit)
	if err != nil {
		return nil, ListOutput{}, err
	}

	output := ListOutput{
		Kits:  make([]KitSummaryOutput, len(summaries)),
		Count: len(summaries),
	}
	for i, sum := range summaries {
		output.Kits[i] = KitSummaryOutput{
			ID:        sum.ID,
			Idea:      sum.Idea,
			CreatedAt: sum.CreatedAt.Format(time.RFC3339),
		}
	}

	return nil, output, nil
}

// documentFromInput builds the optional reference document.
func documentFromInput(input GenerateInput) (*domain.SourceDocument, error) {
	if input.DocumentPath != "" {
		return normalisers.LoadFile(input.DocumentPath, "")
	}
	if strings.TrimSpace(input.DocumentText) != "" {
		return &domain.SourceDocument{
			Name:     "inline.txt",
			MIMEType: domain.MIMETypeText,
			Content:  []byte(input.DocumentText),
		}, nil
	}
	return nil, nil
}

// parseStartDate parses YYYY-MM-DD in local time. Empty yields zero.
func parseStartDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("start_date %q must be YYYY-MM-DD: %w", s, domain.ErrInvalidInput)
	}
	return t, nil
}

func toKitOutput(id, idea string, kit *domain.LaunchKit) LaunchKitOutput {
	return LaunchKitOutput{
		ID:             id,
		Idea:           idea,
		MarketAnalysis: kit.MarketAnalysis,
		ProductCopy:    kit.ProductCopy,
		AdCopy:         kit.AdCopy,
		SocialPosts:    kit.SocialPosts,
		Schedule:       toScheduleOutput(kit.Schedule),
	}
}

func toScheduleOutput(items []domain.ScheduleItem) []ScheduleOutput {
	out := make([]ScheduleOutput, len(items))
	for i, item := range items {
		out[i] = ScheduleOutput{Day: item.Day, Time: item.Time, Content: item.Content}
		if !item.Date.IsZero() {
			out[i].Date = item.Date.Format(time.DateOnly)
		}
	}
	return out
}
