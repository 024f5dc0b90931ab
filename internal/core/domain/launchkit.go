package domain

import "time"

// ScheduleItem assigns one social post to a day and posting time.
type ScheduleItem struct {
	// Day is the label "Day N", 1-based.
	Day string `json:"day" yaml:"day"`

	// Time is the posting time of day as HH:MM.
	Time string `json:"time" yaml:"time"`

	// Content is the social post text.
	Content string `json:"content" yaml:"content"`

	// Date is the calendar date the item falls on. It is not part of the
	// serialised kit shape.
	Date time.Time `json:"-" yaml:"-"`
}

// LaunchKit is the complete generated output for one product idea.
// Its JSON form is the contract consumed by persistence and presentation.
type LaunchKit struct {
	MarketAnalysis string         `json:"market_analysis" yaml:"market_analysis"`
	ProductCopy    string         `json:"product_copy" yaml:"product_copy"`
	AdCopy         string         `json:"ad_copy" yaml:"ad_copy"`
	SocialPosts    []string       `json:"social_posts" yaml:"social_posts"`
	Schedule       []ScheduleItem `json:"schedule" yaml:"schedule"`
}

// KitRecord is a persisted launch kit.
type KitRecord struct {
	ID        string    `json:"id" yaml:"id"`
	Idea      string    `json:"idea" yaml:"idea"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Kit       LaunchKit `json:"kit" yaml:"kit"`
}

// KitSummary is the listing view of a persisted launch kit.
type KitSummary struct {
	ID        string    `json:"id" yaml:"id"`
	Idea      string    `json:"idea" yaml:"idea"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Summary returns the listing view of the record.
func (r *KitRecord) Summary() KitSummary {
	return KitSummary{ID: r.ID, Idea: r.Idea, CreatedAt: r.CreatedAt}
}

// ProduceOptions tunes a single launch kit run.
type ProduceOptions struct {
	// StartDate is the first schedule day. Zero means the next calendar day.
	StartDate time.Time

	// OnStage receives progress events. May be nil.
	OnStage func(StageEvent)
}
