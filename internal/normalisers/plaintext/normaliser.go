// Package plaintext decodes uploaded .txt files.
package plaintext

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/ragqa/internal/core/domain"
	"github.com/custodia-labs/ragqa/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{domain.SupportedExtension}
}

// Normalise decodes content as UTF-8. A leading byte order mark and invalid
// byte sequences are dropped, and the result is trimmed.
func (n *Normaliser) Normalise(ctx context.Context, filename string, content []byte) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !domain.IsSupportedFile(filename) {
		return nil, fmt.Errorf("%w: %q is not a %s file", domain.ErrUnsupportedType, filename, domain.SupportedExtension)
	}

	text := string(bytes.TrimPrefix(content, utf8BOM))
	text = strings.TrimSpace(strings.ToValidUTF8(text, ""))
	if text == "" {
		return nil, domain.ErrEmptyDocument
	}

	return &domain.Document{
		Name:    filepath.Base(filename),
		Content: text,
	}, nil
}
