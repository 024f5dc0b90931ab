package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

var (
	providerFlag string
	modelFlag    string
	apiKeyFlag   string
	skipValidate bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure AI providers and other options.

Settings live in ~/.marketforge/config.toml. API keys may also be given via
MARKETFORGE_LLM_API_KEY or GROQ_API_KEY. Setting TAVILY_API_KEY enables web
research for the market analysis.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long: `Configure the LLM provider used for every generation stage.

Without flags on a terminal, an interactive form is shown.`,
	RunE: runSettingsLLM,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure embedding provider",
	Long: `Configure the embedding provider used to retrieve passages from an
attached document. Without it, documents are ignored.`,
	RunE: runSettingsEmbedding,
}

func init() {
	for _, c := range []*cobra.Command{settingsLLMCmd, settingsEmbeddingCmd} {
		c.Flags().StringVar(&providerFlag, "provider", "", "provider name")
		c.Flags().StringVar(&modelFlag, "model", "", "model name (default per provider)")
		c.Flags().StringVar(&apiKeyFlag, "api-key", "", "API key for cloud providers")
		c.Flags().BoolVar(&skipValidate, "skip-validate", false, "do not ping the provider")
	}

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	printAPIKey(cmd, settings.LLM.Provider, settings.LLM.APIKey)
	if settings.LLM.RequestsPerMinute > 0 {
		cmd.Printf("  Rate limit: %d/min\n", settings.LLM.RequestsPerMinute)
	}
	cmd.Printf("  Status: %s\n", configuredLabel(settings.LLM.IsConfigured()))
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	if settings.Embedding.Provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", settings.Embedding.BaseURL)
	}
	printAPIKey(cmd, settings.Embedding.Provider, settings.Embedding.APIKey)
	cmd.Printf("  Status: %s\n", configuredLabel(settings.Embedding.IsConfigured()))
	cmd.Println()

	cmd.Println("[Pipeline]")
	cmd.Printf("  Retries per stage: %d\n", settings.Pipeline.MaxRetries)
	cmd.Printf("  Temperature: %.2f\n", settings.Pipeline.Temperature)
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Chunk size: %d (overlap %d)\n", settings.Retrieval.ChunkSize, settings.Retrieval.ChunkOverlap)
	cmd.Printf("  Top K: %d\n", settings.Retrieval.TopK)
	cmd.Println()

	cmd.Println("[Web Search]")
	if settings.WebSearch.Provider != "" {
		cmd.Printf("  Provider: %s\n", settings.WebSearch.Provider)
		cmd.Printf("  Results per query: %d\n", settings.WebSearch.MaxResults)
		if settings.WebSearch.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.WebSearch.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	cmd.Printf("  Status: %s\n", configuredLabel(settings.WebSearch.IsConfigured()))
	cmd.Println()

	cmd.Println("[Schedule]")
	cmd.Printf("  Posting time: %s\n", settings.Schedule.PostingTime)
	cmd.Println()

	cmd.Println("[Calendar]")
	cmd.Printf("  Calendar: %s\n", settings.Calendar.CalendarID)
	cmd.Printf("  Time zone: %s\n", settings.Calendar.TimeZone)
	cmd.Printf("  Status: %s\n", configuredLabel(settings.Calendar.IsConfigured()))
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'marketforge settings llm' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	choice, err := collectProvider("LLM", domain.AllLLMProviders(), domain.DefaultLLMModels())
	if err != nil {
		return err
	}
	if err := settingsService.SetLLMProvider(choice.provider, choice.model, choice.apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	if !skipValidate {
		cmd.Print("Validating configuration... ")
		if err := settingsService.ValidateLLMConfig(); err != nil {
			cmd.Printf("FAILED: %v\n", err)
			return fmt.Errorf("LLM configuration validation failed: %w", err)
		}
		cmd.Println("OK")
	}

	cmd.Printf("LLM provider configured: %s (%s)\n", choice.provider.Description(), choice.model)
	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	choice, err := collectProvider("embedding", domain.AllEmbeddingProviders(), domain.DefaultEmbeddingModels())
	if err != nil {
		return err
	}
	if err := settingsService.SetEmbeddingProvider(choice.provider, choice.model, choice.apiKey); err != nil {
		return fmt.Errorf("failed to configure embedding provider: %w", err)
	}

	if !skipValidate {
		cmd.Print("Validating configuration... ")
		if err := settingsService.ValidateEmbeddingConfig(); err != nil {
			cmd.Printf("FAILED: %v\n", err)
			return fmt.Errorf("embedding configuration validation failed: %w", err)
		}
		cmd.Println("OK")
	}

	cmd.Printf("Embedding provider configured: %s (%s)\n", choice.provider.Description(), choice.model)
	return nil
}

type providerChoice struct {
	provider domain.AIProvider
	model    string
	apiKey   string
}

// collectProvider resolves the provider from flags, falling back to an
// interactive form on a terminal.
func collectProvider(kind string, providers []domain.AIProvider, models map[domain.AIProvider]string) (providerChoice, error) {
	choice := providerChoice{
		provider: domain.AIProvider(providerFlag),
		model:    modelFlag,
		apiKey:   apiKeyFlag,
	}

	if choice.provider == "" {
		if !isInteractive() {
			return choice, fmt.Errorf("--provider is required: %w", domain.ErrInvalidInput)
		}
		if err := providerForm(kind, providers, &choice).Run(); err != nil {
			return choice, err
		}
	}

	if !slices.Contains(providers, choice.provider) {
		return choice, fmt.Errorf("unsupported %s provider %q: %w", kind, choice.provider, domain.ErrInvalidInput)
	}
	if choice.model == "" {
		choice.model = models[choice.provider]
	}
	if choice.provider.RequiresAPIKey() && choice.apiKey == "" {
		return choice, fmt.Errorf("API key is required for %s: %w", choice.provider.Description(), domain.ErrInvalidInput)
	}
	return choice, nil
}

func providerForm(kind string, providers []domain.AIProvider, choice *providerChoice) *huh.Form {
	options := make([]huh.Option[domain.AIProvider], len(providers))
	for i, p := range providers {
		options[i] = huh.NewOption(p.Description(), p)
	}
	choice.provider = providers[0]

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[domain.AIProvider]().
				Title("Select "+kind+" provider").
				Options(options...).
				Value(&choice.provider),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Model").
				Placeholder("blank for the provider default").
				Value(&choice.model),
			huh.NewInput().
				Title("API key").
				EchoMode(huh.EchoModePassword).
				Value(&choice.apiKey),
		),
	).WithShowHelp(false)
}

func printAPIKey(cmd *cobra.Command, provider domain.AIProvider, key string) {
	if !provider.RequiresAPIKey() {
		return
	}
	if key != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(key))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
}

func configuredLabel(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
