package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGroq is Groq's OpenAI-compatible cloud API.
	AIProviderGroq AIProvider = "groq"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic, AIProviderGroq:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic || p == AIProviderGroq
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderGroq:
		return "Groq (cloud)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or a compatible gateway).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic/Groq).
	APIKey string

	// RequestsPerMinute caps generation calls. Zero disables limiting.
	RequestsPerMinute int
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// PipelineSettings controls the stage pipeline.
type PipelineSettings struct {
	// MaxRetries is the number of additional attempts per stage.
	MaxRetries int

	// RetryBackoff is the pause before each retry.
	RetryBackoff time.Duration

	// Temperature is passed to every generation call.
	Temperature float64

	// MaxTokens holds the per-stage generation budget.
	MaxTokens map[Stage]int

	// MinChars holds the per-stage minimum output length for text stages.
	MinChars map[Stage]int
}

// RetrievalSettings controls chunking and document retrieval.
type RetrievalSettings struct {
	// ChunkSize is the target passage length in runes.
	ChunkSize int

	// ChunkOverlap is the overlap between consecutive passages in runes.
	ChunkOverlap int

	// TopK is the number of passages retrieved per query.
	TopK int

	// MaxContextChars caps the retrieved context length in runes.
	MaxContextChars int

	// EmbedBatchSize is the number of passages per embedding call.
	EmbedBatchSize int

	// EmbedConcurrency bounds parallel embedding calls.
	EmbedConcurrency int
}

// ScheduleSettings controls schedule derivation.
type ScheduleSettings struct {
	// PostingTime is the fixed HH:MM posting time for every day.
	PostingTime string
}

// CalendarSettings holds Google Calendar push configuration.
type CalendarSettings struct {
	ClientID     string
	ClientSecret string
	RefreshToken string

	// CalendarID is the target calendar, "primary" by default.
	CalendarID string

	// TimeZone is the IANA zone events are created in.
	TimeZone string

	// EventDuration is the length of each created event.
	EventDuration time.Duration
}

// IsConfigured returns true if calendar push can authenticate.
func (c CalendarSettings) IsConfigured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// WebSearchProvider identifies a web search backend.
type WebSearchProvider string

// WebSearchProviderTavily is the Tavily search API.
const WebSearchProviderTavily WebSearchProvider = "tavily"

// WebSearchSettings configures web search for market research.
type WebSearchSettings struct {
	// Provider is the search backend. Empty disables web search.
	Provider WebSearchProvider

	APIKey string

	// BaseURL overrides the provider endpoint.
	BaseURL string

	// MaxResults is the number of results fetched per query.
	MaxResults int
}

// IsConfigured returns true if web search can run.
func (w WebSearchSettings) IsConfigured() bool {
	return w.Provider == WebSearchProviderTavily && w.APIKey != ""
}

// AppSettings holds all application settings.
type AppSettings struct {
	LLM       LLMSettings
	Embedding EmbeddingSettings
	Pipeline  PipelineSettings
	Retrieval RetrievalSettings
	WebSearch WebSearchSettings
	Schedule  ScheduleSettings
	Calendar  CalendarSettings
}

// Default values used when settings are absent.
const (
	DefaultMaxRetries       = 2
	DefaultRetryBackoff     = 500 * time.Millisecond
	DefaultTemperature      = 0.7
	DefaultChunkSize        = 1000
	DefaultChunkOverlap     = 150
	DefaultTopK             = 4
	DefaultMaxContextChars  = 4000
	DefaultEmbedBatchSize   = 16
	DefaultEmbedConcurrency = 4
	DefaultWebResults       = 4
	DefaultPostingTime      = "10:00"
	DefaultCalendarID       = "primary"
	DefaultTimeZone         = "UTC"
	DefaultEventDuration    = time.Hour
)

// DefaultStageMaxTokens returns the generation budget per stage.
func DefaultStageMaxTokens() map[Stage]int {
	return map[Stage]int{
		StageMarketResearch: 1200,
		StageProductCopy:    700,
		StageAdCopy:         300,
		StageSocialCalendar: 800,
	}
}

// DefaultStageMinChars returns the minimum output length per text stage.
func DefaultStageMinChars() map[Stage]int {
	return map[Stage]int{
		StageMarketResearch: 80,
		StageProductCopy:    40,
		StageAdCopy:         20,
	}
}

// DefaultPipelineSettings returns the default pipeline configuration.
func DefaultPipelineSettings() PipelineSettings {
	return PipelineSettings{
		MaxRetries:   DefaultMaxRetries,
		RetryBackoff: DefaultRetryBackoff,
		Temperature:  DefaultTemperature,
		MaxTokens:    DefaultStageMaxTokens(),
		MinChars:     DefaultStageMinChars(),
	}
}

// DefaultRetrievalSettings returns the default retrieval configuration.
func DefaultRetrievalSettings() RetrievalSettings {
	return RetrievalSettings{
		ChunkSize:        DefaultChunkSize,
		ChunkOverlap:     DefaultChunkOverlap,
		TopK:             DefaultTopK,
		MaxContextChars:  DefaultMaxContextChars,
		EmbedBatchSize:   DefaultEmbedBatchSize,
		EmbedConcurrency: DefaultEmbedConcurrency,
	}
}

// DefaultAppSettings returns settings with sensible defaults.
// AI providers are left unconfigured; users set them in config.toml.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Pipeline:  DefaultPipelineSettings(),
		Retrieval: DefaultRetrievalSettings(),
		WebSearch: WebSearchSettings{MaxResults: DefaultWebResults},
		Schedule:  ScheduleSettings{PostingTime: DefaultPostingTime},
		Calendar: CalendarSettings{
			CalendarID:    DefaultCalendarID,
			TimeZone:      DefaultTimeZone,
			EventDuration: DefaultEventDuration,
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support generation.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderGroq,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
		AIProviderGroq:      "llama-3.3-70b-versatile",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
