package services

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider       = "llm.provider"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
	keyLLMRPM            = "llm.requests_per_minute"
	keyEmbedProvider     = "embedding.provider"
	keyEmbedModel        = "embedding.model"
	keyEmbedBaseURL      = "embedding.base_url"
	keyEmbedAPIKey       = "embedding.api_key"
	keyMaxRetries        = "pipeline.max_retries"
	keyRetryBackoffMS    = "pipeline.retry_backoff_ms"
	keyTemperature       = "pipeline.temperature"
	keyChunkSize         = "retrieval.chunk_size"
	keyChunkOverlap      = "retrieval.chunk_overlap"
	keyTopK              = "retrieval.top_k"
	keyMaxContextChars   = "retrieval.max_context_chars"
	keyEmbedBatchSize    = "retrieval.embed_batch_size"
	keyEmbedConcurrency  = "retrieval.embed_concurrency"
	keySearchProvider    = "websearch.provider"
	keySearchAPIKey      = "websearch.api_key"
	keySearchBaseURL     = "websearch.base_url"
	keySearchMaxResults  = "websearch.max_results"
	keyPostingTime       = "schedule.posting_time"
	keyCalClientID       = "calendar.client_id"
	keyCalClientSecret   = "calendar.client_secret"
	keyCalRefreshToken   = "calendar.refresh_token"
	keyCalID             = "calendar.calendar_id"
	keyCalTimeZone       = "calendar.time_zone"
	keyCalEventMinutes   = "calendar.event_minutes"
	keyStageTokensPrefix = "pipeline.max_tokens."
)

// Environment variables that override stored API keys.
const (
	EnvLLMAPIKey  = "MARKETFORGE_LLM_API_KEY"
	EnvGroqAPIKey = "GROQ_API_KEY"

	// EnvTavilyAPIKey enables Tavily web research when no search provider
	// is configured.
	EnvTavilyAPIKey = "TAVILY_API_KEY"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider:          s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:             s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:           s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:            s.configStore.GetString(keyLLMAPIKey),
			RequestsPerMinute: s.configStore.GetInt(keyLLMRPM),
		},
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:    s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL),
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
		},
		Pipeline: domain.PipelineSettings{
			MaxRetries:   s.getInt(keyMaxRetries, defaults.Pipeline.MaxRetries),
			RetryBackoff: s.getDurationMS(keyRetryBackoffMS, defaults.Pipeline.RetryBackoff),
			Temperature:  s.getFloat(keyTemperature, defaults.Pipeline.Temperature),
			MaxTokens:    s.getStageTokens(defaults.Pipeline.MaxTokens),
			MinChars:     defaults.Pipeline.MinChars,
		},
		Retrieval: domain.RetrievalSettings{
			ChunkSize:        s.getInt(keyChunkSize, defaults.Retrieval.ChunkSize),
			ChunkOverlap:     s.getInt(keyChunkOverlap, defaults.Retrieval.ChunkOverlap),
			TopK:             s.getInt(keyTopK, defaults.Retrieval.TopK),
			MaxContextChars:  s.getInt(keyMaxContextChars, defaults.Retrieval.MaxContextChars),
			EmbedBatchSize:   s.getInt(keyEmbedBatchSize, defaults.Retrieval.EmbedBatchSize),
			EmbedConcurrency: s.getInt(keyEmbedConcurrency, defaults.Retrieval.EmbedConcurrency),
		},
		WebSearch: domain.WebSearchSettings{
			Provider:   domain.WebSearchProvider(s.configStore.GetString(keySearchProvider)),
			APIKey:     s.configStore.GetString(keySearchAPIKey),
			BaseURL:    s.configStore.GetString(keySearchBaseURL),
			MaxResults: s.getInt(keySearchMaxResults, defaults.WebSearch.MaxResults),
		},
		Schedule: domain.ScheduleSettings{
			PostingTime: s.getString(keyPostingTime, defaults.Schedule.PostingTime),
		},
		Calendar: domain.CalendarSettings{
			ClientID:      s.configStore.GetString(keyCalClientID),
			ClientSecret:  s.configStore.GetString(keyCalClientSecret),
			RefreshToken:  s.configStore.GetString(keyCalRefreshToken),
			CalendarID:    s.getString(keyCalID, defaults.Calendar.CalendarID),
			TimeZone:      s.getString(keyCalTimeZone, defaults.Calendar.TimeZone),
			EventDuration: s.getDurationMinutes(keyCalEventMinutes, defaults.Calendar.EventDuration),
		},
	}

	s.applyEnv(settings)
	return settings, nil
}

// applyEnv fills API keys from the environment when set.
func (s *SettingsService) applyEnv(settings *domain.AppSettings) {
	s.applySearchEnv(&settings.WebSearch)

	if key := s.getenv(EnvLLMAPIKey); key != "" {
		settings.LLM.APIKey = key
		return
	}
	if settings.LLM.Provider == domain.AIProviderGroq && settings.LLM.APIKey == "" {
		settings.LLM.APIKey = s.getenv(EnvGroqAPIKey)
	}
}

// searchFromEnv reports whether search's key was taken from the
// environment rather than the config file.
func (s *SettingsService) searchFromEnv(search domain.WebSearchSettings) bool {
	key := s.getenv(EnvTavilyAPIKey)
	return key != "" && search.APIKey == key && s.configStore.GetString(keySearchAPIKey) == ""
}

func (s *SettingsService) applySearchEnv(search *domain.WebSearchSettings) {
	key := s.getenv(EnvTavilyAPIKey)
	if key == "" || search.APIKey != "" {
		return
	}
	switch search.Provider {
	case "":
		search.Provider = domain.WebSearchProviderTavily
		search.APIKey = key
	case domain.WebSearchProviderTavily:
		search.APIKey = key
	}
}

type configValue struct {
	key   string
	value any
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []configValue{
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyLLMRPM, settings.LLM.RequestsPerMinute},
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyMaxRetries, settings.Pipeline.MaxRetries},
		{keyRetryBackoffMS, int(settings.Pipeline.RetryBackoff / time.Millisecond)},
		{keyTemperature, settings.Pipeline.Temperature},
		{keyChunkSize, settings.Retrieval.ChunkSize},
		{keyChunkOverlap, settings.Retrieval.ChunkOverlap},
		{keyTopK, settings.Retrieval.TopK},
		{keyMaxContextChars, settings.Retrieval.MaxContextChars},
		{keyEmbedBatchSize, settings.Retrieval.EmbedBatchSize},
		{keyEmbedConcurrency, settings.Retrieval.EmbedConcurrency},
		{keySearchBaseURL, settings.WebSearch.BaseURL},
		{keySearchMaxResults, settings.WebSearch.MaxResults},
		{keyPostingTime, settings.Schedule.PostingTime},
		{keyCalClientID, settings.Calendar.ClientID},
		{keyCalID, settings.Calendar.CalendarID},
		{keyCalTimeZone, settings.Calendar.TimeZone},
		{keyCalEventMinutes, int(settings.Calendar.EventDuration / time.Minute)},
	}
	for stage, tokens := range settings.Pipeline.MaxTokens {
		values = append(values, configValue{keyStageTokensPrefix + stage.String(), tokens})
	}

	// Secrets are only written when present so env-only keys never land on disk.
	secrets := map[string]string{
		keyLLMAPIKey:       settings.LLM.APIKey,
		keyEmbedAPIKey:     settings.Embedding.APIKey,
		keyCalClientSecret: settings.Calendar.ClientSecret,
		keyCalRefreshToken: settings.Calendar.RefreshToken,
	}

	if !s.searchFromEnv(settings.WebSearch) {
		secrets[keySearchAPIKey] = settings.WebSearch.APIKey
		values = append(values, configValue{keySearchProvider, string(settings.WebSearch.Provider)})
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	for key, value := range secrets {
		if value == "" {
			continue
		}
		if err := s.configStore.Set(key, value); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}

	return s.configStore.Save()
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider
	settings.LLM.Model = modelOrDefault(model, domain.DefaultLLMModels()[provider])
	settings.LLM.BaseURL = baseURLFor(provider, settings.LLM.BaseURL)
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", provider)
	}

	supported := false
	for _, p := range domain.AllEmbeddingProviders() {
		if p == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("provider %s does not support embeddings", provider)
	}

	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider
	settings.Embedding.Model = modelOrDefault(model, domain.DefaultEmbeddingModels()[provider])
	settings.Embedding.BaseURL = baseURLFor(provider, settings.Embedding.BaseURL)
	settings.Embedding.APIKey = apiKey

	return s.Save(settings)
}

// SetCalendarToken stores the calendar refresh token.
func (s *SettingsService) SetCalendarToken(refreshToken string) error {
	if refreshToken == "" {
		return fmt.Errorf("refresh token is empty: %w", domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(keyCalRefreshToken, refreshToken); err != nil {
		return fmt.Errorf("save %s: %w", keyCalRefreshToken, err)
	}
	return s.configStore.Save()
}

// Validate checks that generation is configured and values are sane.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var errs []error
	if !settings.LLM.IsConfigured() {
		errs = append(errs, fmt.Errorf("LLM provider is not configured (set llm.provider and llm.api_key, or %s)", EnvLLMAPIKey))
	}
	if settings.Pipeline.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("pipeline.max_retries must be >= 0"))
	}
	if settings.Retrieval.ChunkOverlap >= settings.Retrieval.ChunkSize {
		errs = append(errs, fmt.Errorf("retrieval.chunk_overlap must be smaller than retrieval.chunk_size"))
	}
	if p := settings.WebSearch.Provider; p != "" && p != domain.WebSearchProviderTavily {
		errs = append(errs, fmt.Errorf("websearch.provider %q is not supported (use tavily)", p))
	}
	if _, err := NewScheduler(settings.Schedule.PostingTime); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

func modelOrDefault(model, fallback string) string {
	if model != "" {
		return model
	}
	return fallback
}

// baseURLFor keeps a local provider's URL and clears it for cloud providers.
func baseURLFor(provider domain.AIProvider, current string) string {
	if !provider.IsLocal() {
		return ""
	}
	if current == "" {
		return "http://localhost:11434"
	}
	return current
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if v, ok := s.configStore.GetFloat(key); ok {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getDurationMS(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Millisecond
}

func (s *SettingsService) getDurationMinutes(key string, defaultVal time.Duration) time.Duration {
	if m := s.configStore.GetInt(key); m > 0 {
		return time.Duration(m) * time.Minute
	}
	return defaultVal
}

func (s *SettingsService) getStageTokens(defaults map[domain.Stage]int) map[domain.Stage]int {
	tokens := make(map[domain.Stage]int, len(defaults))
	for stage, def := range defaults {
		if v := s.configStore.GetInt(keyStageTokensPrefix + stage.String()); v > 0 {
			tokens[stage] = v
			continue
		}
		tokens[stage] = def
	}
	return tokens
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
