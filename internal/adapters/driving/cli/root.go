// Package cli provides the cobra command tree for ragqa.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ragqa/internal/adapters/driven/ai"
	"github.com/custodia-labs/ragqa/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ragqa/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ragqa/internal/adapters/driven/vector/flat"
	"github.com/custodia-labs/ragqa/internal/core/domain"
	"github.com/custodia-labs/ragqa/internal/core/ports/driven"
	"github.com/custodia-labs/ragqa/internal/core/ports/driving"
	"github.com/custodia-labs/ragqa/internal/core/services"
	"github.com/custodia-labs/ragqa/internal/logger"
	"github.com/custodia-labs/ragqa/internal/normalisers/plaintext"
	"github.com/custodia-labs/ragqa/internal/postprocessors/chunker"
)

// skipServices marks commands that run without loading settings.
const skipServices = "skip-services"

var version = "dev"

var (
	cfgPath string
	verbose bool
)

// Services shared by commands. Tests assign them before executing rootCmd;
// initServices only fills what is still nil.
var (
	settingsService driving.SettingsService
	qaService       driving.QAService
	qaInitErr       error
	promptStore     *file.PromptStore
	appSettings     *domain.AppSettings
)

var rootCmd = &cobra.Command{
	Use:   "ragqa",
	Short: "Ask questions about a text document",
	Long: `ragqa answers questions about an uploaded .txt document.

The document is split into overlapping chunks, embedded and kept in an
in-memory vector index. Answers are generated only from the retrieved
chunks; when they do not support an answer the reply is:

  I don't know based on the provided document.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if _, ok := cmd.Annotations[skipServices]; ok {
			return nil
		}
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "",
		"config file (default ~/.ragqa/config.toml, "+memory.Path+" for none)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func initServices() error {
	if settingsService == nil {
		store, err := openConfigStore(cfgPath)
		if err != nil {
			return fmt.Errorf("open config: %w", err)
		}
		settingsService = services.NewSettingsService(store)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	appSettings = settings

	if qaService == nil && qaInitErr == nil {
		qaService, qaInitErr = buildQAService(settings)
	}
	return nil
}

func openConfigStore(path string) (driven.ConfigStore, error) {
	if path == memory.Path {
		return memory.NewConfigStore(), nil
	}
	return file.NewConfigStore(path)
}

// buildQAService wires the pipeline from settings. Embedding and LLM
// providers are created on first use so commands that never reach them
// work without network access.
func buildQAService(settings *domain.AppSettings) (driving.QAService, error) {
	if err := settingsService.Validate(); err != nil {
		return nil, err
	}

	c, err := chunker.New(
		chunker.WithChunkSize(settings.Chunker.Size),
		chunker.WithOverlap(settings.Chunker.Overlap),
	)
	if err != nil {
		return nil, err
	}

	prompts, err := file.NewPromptStore(settings.PromptsDir)
	if err != nil {
		return nil, fmt.Errorf("prompt store: %w", err)
	}
	promptStore = prompts

	answerer := services.NewAnswerer(
		ai.LazyLLMFromSettings(settings.LLM),
		services.WithPromptStore(prompts),
		services.WithContextChars(settings.Answer.ContextChars),
		services.WithMaxTokens(settings.Answer.MaxTokens),
	)

	return services.NewQAService(
		plaintext.New(),
		c,
		ai.LazyEmbeddingFromSettings(settings.Embedding),
		flat.Factory,
		answerer,
		services.WithChunkDefaults(settings.Chunker),
	), nil
}

// requireQA returns the QA service or the reason it could not be built.
func requireQA() (driving.QAService, error) {
	if qaInitErr != nil {
		return nil, fmt.Errorf("%w\nRun 'ragqa settings' to review the configuration", qaInitErr)
	}
	if qaService == nil {
		return nil, errors.New("QA service not configured")
	}
	return qaService, nil
}

// chunkDefaults returns the configured chunking defaults.
func chunkDefaults() domain.ChunkOptions {
	if appSettings == nil {
		return domain.DefaultChunkOptions()
	}
	return appSettings.Chunker
}

// defaultTopK returns the configured retrieval depth.
func defaultTopK() int {
	if appSettings == nil || appSettings.Retrieval.TopK < 1 {
		return domain.DefaultTopK
	}
	return appSettings.Retrieval.TopK
}
