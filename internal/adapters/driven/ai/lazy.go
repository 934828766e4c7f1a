package ai

import (
	"context"
	"sync"

	"github.com/custodia-labs/ragqa/internal/core/domain"
	"github.com/custodia-labs/ragqa/internal/core/ports/driven"
)

var (
	_ driven.EmbeddingService = (*LazyEmbedding)(nil)
	_ driven.LLMService       = (*LazyLLM)(nil)
)

// LazyEmbedding constructs its embedding service on first use and shares it
// afterwards. A failed construction is remembered and returned on every call.
type LazyEmbedding struct {
	once   sync.Once
	create func() (driven.EmbeddingService, error)
	svc    driven.EmbeddingService
	err    error
}

// NewLazyEmbedding wraps create. Use CreateAndValidateEmbeddingService for a
// settings-driven create function.
func NewLazyEmbedding(create func() (driven.EmbeddingService, error)) *LazyEmbedding {
	return &LazyEmbedding{create: create}
}

// LazyEmbeddingFromSettings defers CreateAndValidateEmbeddingService until first use.
func LazyEmbeddingFromSettings(settings domain.EmbeddingSettings) *LazyEmbedding {
	return NewLazyEmbedding(func() (driven.EmbeddingService, error) {
		return CreateAndValidateEmbeddingService(&settings)
	})
}

func (l *LazyEmbedding) get() (driven.EmbeddingService, error) {
	l.once.Do(func() {
		l.svc, l.err = l.create()
	})
	return l.svc, l.err
}

// Embed initialises the service if needed and embeds text.
func (l *LazyEmbedding) Embed(ctx context.Context, text string) ([]float32, error) {
	svc, err := l.get()
	if err != nil {
		return nil, err
	}
	return svc.Embed(ctx, text)
}

// EmbedBatch initialises the service if needed and embeds texts.
func (l *LazyEmbedding) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	svc, err := l.get()
	if err != nil {
		return nil, err
	}
	return svc.EmbedBatch(ctx, texts)
}

// Dimensions returns 0 if the service could not be created.
func (l *LazyEmbedding) Dimensions() int {
	svc, err := l.get()
	if err != nil {
		return 0
	}
	return svc.Dimensions()
}

// ModelName returns an empty string if the service could not be created.
func (l *LazyEmbedding) ModelName() string {
	svc, err := l.get()
	if err != nil {
		return ""
	}
	return svc.ModelName()
}

// Ping forces initialisation and pings the service.
func (l *LazyEmbedding) Ping(ctx context.Context) error {
	svc, err := l.get()
	if err != nil {
		return err
	}
	return svc.Ping(ctx)
}

// Close closes the service if it was created.
func (l *LazyEmbedding) Close() error {
	if l.svc == nil {
		return nil
	}
	return l.svc.Close()
}

// LazyLLM constructs its LLM service on first use and shares it afterwards.
type LazyLLM struct {
	once   sync.Once
	create func() (driven.LLMService, error)
	svc    driven.LLMService
	err    error
}

// NewLazyLLM wraps create.
func NewLazyLLM(create func() (driven.LLMService, error)) *LazyLLM {
	return &LazyLLM{create: create}
}

// LazyLLMFromSettings defers CreateAndValidateLLMService until first use.
func LazyLLMFromSettings(settings domain.LLMSettings) *LazyLLM {
	return NewLazyLLM(func() (driven.LLMService, error) {
		return CreateAndValidateLLMService(&settings)
	})
}

func (l *LazyLLM) get() (driven.LLMService, error) {
	l.once.Do(func() {
		l.svc, l.err = l.create()
	})
	return l.svc, l.err
}

// Generate initialises the service if needed and generates text.
func (l *LazyLLM) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	svc, err := l.get()
	if err != nil {
		return "", err
	}
	return svc.Generate(ctx, prompt, opts)
}

// ModelName returns an empty string if the service could not be created.
func (l *LazyLLM) ModelName() string {
	svc, err := l.get()
	if err != nil {
		return ""
	}
	return svc.ModelName()
}

// Ping forces initialisation and pings the service.
func (l *LazyLLM) Ping(ctx context.Context) error {
	svc, err := l.get()
	if err != nil {
		return err
	}
	return svc.Ping(ctx)
}

// Close closes the service if it was created.
func (l *LazyLLM) Close() error {
	if l.svc == nil {
		return nil
	}
	return l.svc.Close()
}
