package services

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
)

// stagePromptNames maps each stage to its PromptStore name.
var stagePromptNames = map[domain.Stage]string{
	domain.StageMarketResearch: driven.PromptMarketResearch,
	domain.StageProductCopy:    driven.PromptProductCopy,
	domain.StageAdCopy:         driven.PromptAdCopy,
	domain.StageSocialCalendar: driven.PromptSocialCalendar,
}

const marketResearchPrompt = `You are a senior market research analyst preparing a launch brief.

Product idea: {{.Idea}}
{{- if .Context}}

Reference material supplied by the founder:
{{.Context}}
{{- end}}
{{- if .WebResults}}

Recent public web results:
{{.WebResults}}
{{- end}}

Write a concise market analysis covering the target audience, main competitors,
current market trends, pricing expectations and the strongest differentiators.
Use short paragraphs or bullet points. Do not invent statistics; cite web
results by site name when you rely on them.`

const productCopyPrompt = `You are an e-commerce copywriter.

Product idea: {{.Idea}}
{{- if .Context}}

Reference material supplied by the founder:
{{.Context}}
{{- end}}

Market analysis:
{{.MarketAnalysis}}

Write a persuasive product description of two or three short paragraphs that
speaks to the audience and differentiators identified above.`

const adCopyPrompt = `You are a performance marketer writing paid social ads.

Product idea: {{.Idea}}

Market analysis:
{{.MarketAnalysis}}

Product copy:
{{.ProductCopy}}

Write one ad: a headline on its own line followed by at most two sentences.
Keep it under 60 words.`

const socialCalendarPrompt = `You are a social media manager planning a launch week.

Product idea: {{.Idea}}

Market analysis:
{{.MarketAnalysis}}

Product copy:
{{.ProductCopy}}

Ad copy:
{{.AdCopy}}

Write exactly 5 social media posts, one per day, each under 280 characters.
Respond with only a JSON object of the form {"posts": ["...", "...", "...", "...", "..."]}.`

// DefaultPrompts returns the built-in stage prompt templates keyed by
// PromptStore name.
func DefaultPrompts() map[string]string {
	return map[string]string{
		driven.PromptMarketResearch: marketResearchPrompt,
		driven.PromptProductCopy:    productCopyPrompt,
		driven.PromptAdCopy:         adCopyPrompt,
		driven.PromptSocialCalendar: socialCalendarPrompt,
	}
}

// References is the research material given to the pipeline.
type References struct {
	// Document is the context retrieved from the uploaded document.
	Document string

	// Web is the formatted web research.
	Web string
}

// promptData is the template input for every stage. Fields for stages that
// have not run yet are empty.
type promptData struct {
	Idea           string
	Context        string
	WebResults     string
	MarketAnalysis string
	ProductCopy    string
	AdCopy         string
}

func newPromptData(stage domain.Stage, idea string, refs References, prior domain.StageOutputs) promptData {
	data := promptData{
		Idea:           idea,
		MarketAnalysis: prior.MarketAnalysis,
		ProductCopy:    prior.ProductCopy,
		AdCopy:         prior.AdCopy,
	}
	if stage.UsesContext() {
		data.Context = refs.Document
	}
	if stage.UsesWebResults() {
		data.WebResults = refs.Web
	}
	return data
}

type priorSection struct {
	title string
	text  string
}

// priorSections lists the outputs of stages before stage, in order.
func priorSections(stage domain.Stage, prior domain.StageOutputs) []priorSection {
	var sections []priorSection
	if stage > domain.StageMarketResearch {
		sections = append(sections, priorSection{"Market analysis", prior.MarketAnalysis})
	}
	if stage > domain.StageProductCopy {
		sections = append(sections, priorSection{"Product copy", prior.ProductCopy})
	}
	if stage > domain.StageAdCopy {
		sections = append(sections, priorSection{"Ad copy", prior.AdCopy})
	}
	return sections
}

// renderPrompt loads and executes the template for stage. Prior stage
// outputs missing from a customised template are appended verbatim so every
// stage still sees the full output of every earlier stage.
func renderPrompt(store driven.PromptStore, stage domain.Stage, idea string, refs References, prior domain.StageOutputs) (string, error) {
	name := stagePromptNames[stage]
	text := DefaultPrompts()[name]
	if store != nil {
		loaded, err := store.Load(name)
		if err != nil {
			return "", fmt.Errorf("load prompt %s: %w", name, err)
		}
		if strings.TrimSpace(loaded) != "" {
			text = loaded
		}
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse prompt %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newPromptData(stage, idea, refs, prior)); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}

	prompt := buf.String()
	for _, s := range priorSections(stage, prior) {
		if !strings.Contains(prompt, s.text) {
			prompt += "\n\n" + s.title + ":\n" + s.text
		}
	}
	return prompt, nil
}
