package driven

// ConfigStore holds settings as a flat map keyed by dot-separated paths
// such as "llm.provider" or "pipeline.max_tokens.ad_copy". Values keep the
// type the backing format decoded; the typed getters coerce and return the
// zero value on a missing key or a type mismatch.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int

	// GetFloat reports false when the key is missing or not numeric.
	GetFloat(key string) (float64, bool)

	// Set changes the in-memory value only. Save persists it.
	Set(key string, value any) error
	Save() error

	// Load discards unsaved changes and rereads the backing store.
	Load() error

	// Path identifies the backing store for display.
	Path() string
}
