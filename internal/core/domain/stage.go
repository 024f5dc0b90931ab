package domain

// Stage identifies one ordered step of the generation pipeline.
type Stage int

// Stages in execution order. StageDone is the terminal state.
const (
	StageMarketResearch Stage = iota
	StageProductCopy
	StageAdCopy
	StageSocialCalendar
	StageDone
)

// Stages lists the generation stages in the order they run.
var Stages = []Stage{
	StageMarketResearch,
	StageProductCopy,
	StageAdCopy,
	StageSocialCalendar,
}

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageMarketResearch:
		return "market_research"
	case StageProductCopy:
		return "product_copy"
	case StageAdCopy:
		return "ad_copy"
	case StageSocialCalendar:
		return "social_calendar"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Title returns a human-readable stage label.
func (s Stage) Title() string {
	switch s {
	case StageMarketResearch:
		return "Market research"
	case StageProductCopy:
		return "Product copy"
	case StageAdCopy:
		return "Ad copy"
	case StageSocialCalendar:
		return "Social calendar"
	case StageDone:
		return "Done"
	default:
		return unknownDescription
	}
}

// Next returns the stage that follows s. StageDone is absorbing.
func (s Stage) Next() Stage {
	if s >= StageDone || s < StageMarketResearch {
		return StageDone
	}
	return s + 1
}

// UsesContext reports whether the stage prompt includes retrieved document
// context. Later stages are conditioned on prior stage text only.
func (s Stage) UsesContext() bool {
	return s == StageMarketResearch || s == StageProductCopy
}

// UsesWebResults reports whether the stage prompt includes web research.
func (s Stage) UsesWebResults() bool {
	return s == StageMarketResearch
}

// PostCount is the fixed number of social posts in every launch kit.
const PostCount = 5

// StageOutputs accumulates stage results for one pipeline run. It is passed
// by value; each stage sees the outputs of every stage before it.
type StageOutputs struct {
	MarketAnalysis string
	ProductCopy    string
	AdCopy         string
	SocialPosts    []string
}

// With returns a copy of o with the text output for stage set.
func (o StageOutputs) With(stage Stage, text string) StageOutputs {
	switch stage {
	case StageMarketResearch:
		o.MarketAnalysis = text
	case StageProductCopy:
		o.ProductCopy = text
	case StageAdCopy:
		o.AdCopy = text
	}
	return o
}

// WithPosts returns a copy of o holding its own copy of posts.
func (o StageOutputs) WithPosts(posts []string) StageOutputs {
	o.SocialPosts = append([]string(nil), posts...)
	return o
}

// StageStatus describes a pipeline progress transition.
type StageStatus string

// Progress statuses reported to observers.
const (
	StageStarted   StageStatus = "started"
	StageRetrying  StageStatus = "retrying"
	StageSucceeded StageStatus = "succeeded"
	StageFailed    StageStatus = "failed"
)

// StageEvent is emitted as the pipeline moves through stages.
type StageEvent struct {
	Stage   Stage
	Status  StageStatus
	Attempt int
	Err     error
}
