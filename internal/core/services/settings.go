package services

import (
	"fmt"
	"os"

	"github.com/custodia-labs/ragqa/internal/core/domain"
	"github.com/custodia-labs/ragqa/internal/core/ports/driven"
	"github.com/custodia-labs/ragqa/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyServerAddr      = "server.addr"
	keyServerRPS       = "server.requests_per_second"
	keyServerBurst     = "server.burst"
	keyServerMaxUpload = "server.max_upload_bytes"
	keyChunkSize       = "chunker.size"
	keyChunkOverlap    = "chunker.overlap"
	keyTopK            = "retrieval.top_k"
	keyContextChars    = "answer.context_chars"
	keyMaxTokens       = "answer.max_tokens"
	keyEmbedProvider   = "embedding.provider"
	keyEmbedModel      = "embedding.model"
	keyEmbedBaseURL    = "embedding.base_url"
	keyEmbedAPIKey     = "embedding.api_key"
	keyEmbedDims       = "embedding.dimensions"
	keyLLMProvider     = "llm.provider"
	keyLLMModel        = "llm.model"
	keyLLMBaseURL      = "llm.base_url"
	keyLLMAPIKey       = "llm.api_key"
	keyPromptsDir      = "prompts.dir"
)

// Environment variables consulted when no API key is configured.
//
//nolint:gosec // G101: These are variable names, not credentials.
const (
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
)

// defaultOllamaURL is filled in when switching to a local model server.
const defaultOllamaURL = "http://localhost:11434"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings with defaults filled in.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Server: domain.ServerSettings{
			Addr:              s.getString(keyServerAddr, defaults.Server.Addr),
			RequestsPerSecond: s.getFloat(keyServerRPS, defaults.Server.RequestsPerSecond),
			Burst:             s.getInt(keyServerBurst, defaults.Server.Burst),
			MaxUploadBytes:    int64(s.getInt(keyServerMaxUpload, int(defaults.Server.MaxUploadBytes))),
		},
		Chunker: domain.ChunkOptions{
			Size:    s.getInt(keyChunkSize, defaults.Chunker.Size),
			Overlap: s.getInt(keyChunkOverlap, defaults.Chunker.Overlap),
		},
		Retrieval: domain.RetrievalSettings{
			TopK: s.getInt(keyTopK, defaults.Retrieval.TopK),
		},
		Answer: domain.AnswerSettings{
			ContextChars: s.getInt(keyContextChars, defaults.Answer.ContextChars),
			MaxTokens:    s.getInt(keyMaxTokens, defaults.Answer.MaxTokens),
		},
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL), // empty means the provider default
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
		},
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL),
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		PromptsDir: s.configStore.GetString(keyPromptsDir),
	}

	// Model defaults follow the provider, not the global default
	settings.Embedding.Model = s.getString(keyEmbedModel, domain.DefaultEmbeddingModels()[settings.Embedding.Provider])
	settings.LLM.Model = s.getString(keyLLMModel, domain.DefaultLLMModels()[settings.LLM.Provider])
	settings.Embedding.Dimensions = s.getInt(keyEmbedDims, domain.EmbeddingDimensions()[settings.Embedding.Model])

	if settings.Embedding.APIKey == "" {
		settings.Embedding.APIKey = s.envAPIKey(settings.Embedding.Provider)
	}
	if settings.LLM.APIKey == "" {
		settings.LLM.APIKey = s.envAPIKey(settings.LLM.Provider)
	}

	return settings, nil
}

// Save persists application settings. API keys that came from the
// environment are not written to the config file.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyServerAddr, settings.Server.Addr},
		{keyServerRPS, settings.Server.RequestsPerSecond},
		{keyServerBurst, settings.Server.Burst},
		{keyServerMaxUpload, settings.Server.MaxUploadBytes},
		{keyChunkSize, settings.Chunker.Size},
		{keyChunkOverlap, settings.Chunker.Overlap},
		{keyTopK, settings.Retrieval.TopK},
		{keyContextChars, settings.Answer.ContextChars},
		{keyMaxTokens, settings.Answer.MaxTokens},
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyEmbedDims, settings.Embedding.Dimensions},
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
	}
	if settings.PromptsDir != "" {
		values = append(values, struct {
			key   string
			value any
		}{keyPromptsDir, settings.PromptsDir})
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if key := settings.Embedding.APIKey; key != "" && key != s.envAPIKey(settings.Embedding.Provider) {
		if err := s.configStore.Set(keyEmbedAPIKey, key); err != nil {
			return fmt.Errorf("save %s: %w", keyEmbedAPIKey, err)
		}
	}
	if key := settings.LLM.APIKey; key != "" && key != s.envAPIKey(settings.LLM.Provider) {
		if err := s.configStore.Set(keyLLMAPIKey, key); err != nil {
			return fmt.Errorf("save %s: %w", keyLLMAPIKey, err)
		}
	}

	return nil
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid embedding provider: %s", domain.ErrInvalidInput, provider)
	}

	valid := false
	for _, p := range domain.AllEmbeddingProviders() {
		if p == provider {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: provider %s does not support embeddings", domain.ErrInvalidInput, provider)
	}

	if apiKey == "" {
		apiKey = s.envAPIKey(provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider
	settings.Embedding.Model = model
	if model == "" {
		settings.Embedding.Model = domain.DefaultEmbeddingModels()[provider]
	}
	settings.Embedding.BaseURL = baseURLFor(provider, settings.Embedding.BaseURL)
	settings.Embedding.APIKey = apiKey

	// Dimensions follow the model; unknown models are probed at upload time
	settings.Embedding.Dimensions = domain.EmbeddingDimensions()[settings.Embedding.Model]

	return s.Save(settings)
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrInvalidInput, provider)
	}

	if apiKey == "" {
		apiKey = s.envAPIKey(provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider
	settings.LLM.Model = model
	if model == "" {
		settings.LLM.Model = domain.DefaultLLMModels()[provider]
	}
	settings.LLM.BaseURL = baseURLFor(provider, settings.LLM.BaseURL)
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks that the current settings can be used.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if err := settings.Chunker.Validate(); err != nil {
		return err
	}

	switch {
	case settings.Retrieval.TopK < 1:
		return fmt.Errorf("%w: %s must be at least 1", domain.ErrInvalidInput, keyTopK)
	case settings.Answer.ContextChars < 1:
		return fmt.Errorf("%w: %s must be positive", domain.ErrInvalidInput, keyContextChars)
	case settings.Answer.MaxTokens < 1:
		return fmt.Errorf("%w: %s must be positive", domain.ErrInvalidInput, keyMaxTokens)
	case settings.Server.MaxUploadBytes < 1:
		return fmt.Errorf("%w: %s must be positive", domain.ErrInvalidInput, keyServerMaxUpload)
	case settings.Server.RequestsPerSecond < 0:
		return fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, keyServerRPS)
	case settings.Server.RequestsPerSecond > 0 && settings.Server.Burst < 1:
		return fmt.Errorf("%w: %s must be at least 1 when rate limiting", domain.ErrInvalidInput, keyServerBurst)
	}

	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("%w: embedding provider %q is not configured", domain.ErrInvalidInput, settings.Embedding.Provider)
	}
	if !settings.LLM.IsConfigured() {
		return fmt.Errorf("%w: LLM provider %q is not configured", domain.ErrInvalidInput, settings.LLM.Provider)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// baseURLFor keeps a configured URL for self-hosted providers and clears it
// for cloud providers.
func baseURLFor(provider domain.AIProvider, current string) string {
	switch {
	case provider == domain.AIProviderOllama && current == "":
		return defaultOllamaURL
	case provider == domain.AIProviderOllama:
		return current
	default:
		return ""
	}
}

func (s *SettingsService) envAPIKey(provider domain.AIProvider) string {
	switch provider {
	case domain.AIProviderOpenAI:
		return s.getenv(EnvOpenAIAPIKey)
	case domain.AIProviderAnthropic:
		return s.getenv(EnvAnthropicAPIKey)
	default:
		return ""
	}
}

// Helper methods for reading config with defaults.
// A key that is present wins, even when its value is zero.

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
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
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
