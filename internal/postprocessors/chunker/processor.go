// Package chunker splits document text into paragraph-packed chunks with overlap.
package chunker

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/ragqa/internal/core/domain"
	"github.com/custodia-labs/ragqa/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.Chunker = (*Processor)(nil)

const paragraphSep = "\n\n"

var (
	horizontalSpace = regexp.MustCompile(`[ \t]+`)
	blankLines      = regexp.MustCompile(`\n{3,}`)
)

// Processor packs whole paragraphs into chunks of at most a target size and
// prefixes each chunk after the first with the tail of the one before it.
type Processor struct {
	defaults domain.ChunkOptions
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the default chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		p.defaults.Size = size
	}
}

// WithOverlap sets the default overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		p.defaults.Overlap = overlap
	}
}

// New creates a chunker whose defaults are domain.DefaultChunkOptions
// adjusted by opts. Invalid defaults are rejected.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{defaults: domain.DefaultChunkOptions()}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.defaults.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Defaults returns the options the processor was built with.
func (p *Processor) Defaults() domain.ChunkOptions {
	return p.defaults
}

// Chunk cleans text, packs paragraphs and stitches overlap.
// Text with no content after cleaning yields no chunks and no error.
func (p *Processor) Chunk(ctx context.Context, text string, opts domain.ChunkOptions) ([]domain.Chunk, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	packed, err := pack(ctx, paragraphs(CleanText(text)), opts.Size)
	if err != nil {
		return nil, err
	}

	chunks := make([]domain.Chunk, 0, len(packed))
	for i, body := range packed {
		if i > 0 {
			body = strings.TrimSpace(tail(packed[i-1], opts.Overlap) + "\n" + body)
		}
		chunks = append(chunks, domain.Chunk{
			ID:       domain.ChunkID(i),
			Text:     body,
			Position: i,
		})
	}
	return chunks, nil
}

// CleanText normalises line endings, collapses runs of spaces and tabs,
// squeezes three or more newlines into a paragraph break and trims the result.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = horizontalSpace.ReplaceAllString(text, " ")
	text = blankLines.ReplaceAllString(text, paragraphSep)
	return strings.TrimSpace(text)
}

func paragraphs(text string) []string {
	var out []string
	for _, para := range strings.Split(text, paragraphSep) {
		if para = strings.TrimSpace(para); para != "" {
			out = append(out, para)
		}
	}
	return out
}

// pack greedily joins paragraphs while the result stays within size.
// The separator is counted even for an empty accumulator, and a paragraph
// longer than size becomes its own chunk.
func pack(ctx context.Context, paras []string, size int) ([]string, error) {
	var (
		out     []string
		current string
	)
	for _, para := range paras {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if utf8.RuneCountInString(current)+utf8.RuneCountInString(para)+len(paragraphSep) <= size {
			current = strings.TrimSpace(current + paragraphSep + para)
			continue
		}
		if current != "" {
			out = append(out, current)
		}
		current = para
	}
	if current != "" {
		out = append(out, current)
	}
	return out, nil
}

// tail returns the last n characters of s, or s itself when it is shorter.
func tail(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[len(r)-n:])
}
