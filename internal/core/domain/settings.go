package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderLocal runs in-process without any external service.
	AIProviderLocal AIProvider = "local"

	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderLocal, AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs on this machine.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderLocal || p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderLocal:
		return "Built-in (offline)"
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
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

	// BaseURL is the API endpoint (for Ollama and OpenAI-compatible servers).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// Dimensions overrides the vector size where the provider supports it.
	Dimensions int
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() || e.Provider == AIProviderAnthropic {
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

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string
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

// ServerSettings holds HTTP server configuration.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// RequestsPerSecond limits request throughput. Zero disables limiting.
	RequestsPerSecond float64

	// Burst is the token bucket size used with RequestsPerSecond.
	Burst int

	// MaxUploadBytes caps the multipart upload body.
	MaxUploadBytes int64
}

// RetrievalSettings holds retrieval defaults.
type RetrievalSettings struct {
	// TopK is the number of chunks retrieved when a request does not say.
	TopK int
}

// AnswerSettings holds answer generation limits.
type AnswerSettings struct {
	// ContextChars caps the context block passed to the generator.
	ContextChars int

	// MaxTokens caps generated tokens.
	MaxTokens int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Server    ServerSettings
	Chunker   ChunkOptions
	Retrieval RetrievalSettings
	Answer    AnswerSettings
	Embedding EmbeddingSettings
	LLM       LLMSettings

	// PromptsDir overrides where prompt templates are read from.
	PromptsDir string
}

// Answer defaults.
const (
	DefaultContextChars = 4000
	DefaultMaxTokens    = 200
)

// DefaultAppSettings returns settings that work offline out of the box.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Server: ServerSettings{
			Addr:           ":8000",
			Burst:          10,
			MaxUploadBytes: 10 << 20,
		},
		Chunker:   DefaultChunkOptions(),
		Retrieval: RetrievalSettings{TopK: DefaultTopK},
		Answer: AnswerSettings{
			ContextChars: DefaultContextChars,
			MaxTokens:    DefaultMaxTokens,
		},
		Embedding: EmbeddingSettings{
			Provider:   AIProviderLocal,
			Model:      DefaultEmbeddingModels()[AIProviderLocal],
			Dimensions: EmbeddingDimensions()[DefaultEmbeddingModels()[AIProviderLocal]],
		},
		LLM: LLMSettings{
			Provider: AIProviderLocal,
			Model:    DefaultLLMModels()[AIProviderLocal],
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderLocal,
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderLocal,
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderLocal:  "hashing-bow",
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderLocal:     "extractive",
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-haiku-latest",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Built-in
		"hashing-bow": 384,
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
