package driven

// PromptStore provides access to stage prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found on disk, implementations return the built-in default.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names, one per pipeline stage.
// Templates use text/template syntax over the fields Idea, Context,
// MarketAnalysis, ProductCopy and AdCopy.
const (
	// PromptMarketResearch produces the market analysis report.
	PromptMarketResearch = "market_research"

	// PromptProductCopy produces the product description copy.
	PromptProductCopy = "product_copy"

	// PromptAdCopy produces short ad copy.
	PromptAdCopy = "ad_copy"

	// PromptSocialCalendar produces the five social posts.
	PromptSocialCalendar = "social_calendar"
)
