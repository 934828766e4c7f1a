package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragqa/internal/core/domain"
)

func TestChunkCmd_Text(t *testing.T) {
	buf := setupTestServices(t, &stubQA{})
	path := writeTextFile(t, "doc.txt", "First paragraph.\n\nSecond paragraph.")

	require.NoError(t, execute(t, "chunk", "--file", path))

	out := buf.String()
	assert.Contains(t, out, "1 chunks (size=800, overlap=150)")
	assert.Contains(t, out, "--- chunk_0")
	assert.Contains(t, out, "First paragraph.\n\nSecond paragraph.")
}

func TestChunkCmd_JSONWithFlags(t *testing.T) {
	buf := setupTestServices(t, &stubQA{})
	text := strings.Repeat("a", 20) + "\n\n" + strings.Repeat("b", 20)
	path := writeTextFile(t, "doc.txt", text)

	require.NoError(t, execute(t, "chunk", "--file", path, "--size", "25", "--overlap", "0", "--json"))

	var chunks []chunkJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &chunks))
	require.Len(t, chunks, 2)
	assert.Equal(t, "chunk_1", chunks[1].ID)
	assert.Equal(t, 1, chunks[1].Position)
	assert.Equal(t, strings.Repeat("b", 20), chunks[1].Text)
	assert.Equal(t, 20, chunks[1].Length)
}

func TestChunkCmd_OverlapOnlyFlag(t *testing.T) {
	buf := setupTestServices(t, &stubQA{})
	path := writeTextFile(t, "doc.txt", "text")

	require.NoError(t, execute(t, "chunk", "--file", path, "--overlap", "0"))

	assert.Contains(t, buf.String(), "size=800, overlap=0")
}

func TestChunkCmd_Errors(t *testing.T) {
	t.Run("unsupported type", func(t *testing.T) {
		setupTestServices(t, &stubQA{})
		path := writeTextFile(t, "doc.md", "text")
		assert.ErrorIs(t, execute(t, "chunk", "--file", path), domain.ErrUnsupportedType)
	})

	t.Run("overlap larger than size", func(t *testing.T) {
		setupTestServices(t, &stubQA{})
		path := writeTextFile(t, "doc.txt", "text")
		err := execute(t, "chunk", "--file", path, "--size", "10", "--overlap", "20")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing file flag", func(t *testing.T) {
		setupTestServices(t, &stubQA{})
		assert.Error(t, execute(t, "chunk"))
	})
}
