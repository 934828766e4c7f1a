package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragqa/internal/core/domain"
)

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleStatusResource(t *testing.T) {
	ctx := context.Background()

	t.Run("no document loaded", func(t *testing.T) {
		server, err := NewServer(&Ports{QA: &mockQAService{}})
		require.NoError(t, err)

		result, err := server.handleStatusResource(ctx, makeReadResourceRequest(statusURI))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, statusURI, result.Contents[0].URI)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.JSONEq(t, `{"document_loaded":false,"num_chunks":0,"embedding_dim":0}`, result.Contents[0].Text)
	})

	t.Run("document loaded", func(t *testing.T) {
		qa := &mockQAService{status: domain.Status{
			DocumentLoaded: true,
			DocumentID:     "doc-1",
			DocumentName:   "notes.txt",
			NumChunks:      2,
			EmbeddingDim:   384,
		}}
		server, err := NewServer(&Ports{QA: qa})
		require.NoError(t, err)

		result, err := server.handleStatusResource(ctx, makeReadResourceRequest(statusURI))

		require.NoError(t, err)
		var got StatusOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &got))
		assert.True(t, got.DocumentLoaded)
		assert.Equal(t, "notes.txt", got.DocumentName)
		assert.Equal(t, 2, got.NumChunks)
	})
}
