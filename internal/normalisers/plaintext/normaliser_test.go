package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragqa/internal/core/domain"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".txt"}, New().SupportedExtensions())
}

func TestNormalise_Success(t *testing.T) {
	doc, err := New().Normalise(context.Background(), "notes/france.txt", []byte("  Paris is the capital of France.\n"))

	require.NoError(t, err)
	assert.Empty(t, doc.ID)
	assert.Equal(t, "france.txt", doc.Name)
	assert.Equal(t, "Paris is the capital of France.", doc.Content)
}

func TestNormalise_UppercaseExtension(t *testing.T) {
	doc, err := New().Normalise(context.Background(), "README.TXT", []byte("hello"))

	require.NoError(t, err)
	assert.Equal(t, "hello", doc.Content)
}

func TestNormalise_StripsBOM(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...)

	doc, err := New().Normalise(context.Background(), "a.txt", content)

	require.NoError(t, err)
	assert.Equal(t, "hello", doc.Content)
}

func TestNormalise_DropsInvalidUTF8(t *testing.T) {
	doc, err := New().Normalise(context.Background(), "a.txt", []byte{'a', 0xff, 'b'})

	require.NoError(t, err)
	assert.Equal(t, "ab", doc.Content)
}

func TestNormalise_Errors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  []byte
		wantErr  error
	}{
		{"pdf", "a.pdf", []byte("text"), domain.ErrUnsupportedType},
		{"no extension", "README", []byte("text"), domain.ErrUnsupportedType},
		{"empty", "a.txt", nil, domain.ErrEmptyDocument},
		{"whitespace", "a.txt", []byte(" \n\t\r\n "), domain.ErrEmptyDocument},
		{"only invalid bytes", "a.txt", []byte{0xff, 0xfe, ' '}, domain.ErrEmptyDocument},
		{"only BOM", "a.txt", []byte{0xEF, 0xBB, 0xBF}, domain.ErrEmptyDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Normalise(context.Background(), tt.filename, tt.content)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNormalise_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Normalise(ctx, "a.txt", []byte("text"))
	assert.ErrorIs(t, err, context.Canceled)
}
