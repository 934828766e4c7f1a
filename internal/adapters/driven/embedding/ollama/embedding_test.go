package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewEmbeddingService_Defaults(t *testing.T) {
	s := NewEmbeddingService(Config{})
	assert.Equal(t, DefaultBaseURL, s.baseURL)
	assert.Equal(t, DefaultModel, s.ModelName())
	assert.Equal(t, DefaultDimensions, s.Dimensions())
	assert.Equal(t, DefaultParallelism, s.parallelism)
}

func TestEmbed(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "all-minilm", req.Model)
		assert.Equal(t, "hello", req.Prompt)

		_ = json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{3, 4}})
	})

	s := NewEmbeddingService(Config{BaseURL: srv.URL, Model: "all-minilm"})
	vec, err := s.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0.6, 0.8}, vec, 1e-6)
}

func TestEmbed_ErrorStatus(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	})

	s := NewEmbeddingService(Config{BaseURL: srv.URL})
	_, err := s.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "model not found")
}

func TestEmbed_EmptyEmbedding(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"embedding":[]}`))
	})

	s := NewEmbeddingService(Config{BaseURL: srv.URL})
	_, err := s.Embed(context.Background(), "hello")
	assert.Error(t, err)
}

func TestEmbedBatch_PreservesOrder(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var req embedRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		// encode the prompt length so each row is distinguishable
		_ = json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{float64(len(req.Prompt)), 0}})
	})

	s := NewEmbeddingService(Config{BaseURL: srv.URL, Parallelism: 2})
	texts := []string{"a", "bb", "ccc", "dddd", "eeeee"}

	vecs, err := s.EmbedBatch(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, vecs, len(texts))
	assert.Equal(t, int32(len(texts)), calls.Load())
	for _, v := range vecs {
		assert.InDeltaSlice(t, []float32{1, 0}, v, 1e-6)
	}
}

func TestEmbedBatch_FailsOnAnyError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req embedRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if strings.Contains(req.Prompt, "bad") {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{1}})
	})

	s := NewEmbeddingService(Config{BaseURL: srv.URL})
	_, err := s.EmbedBatch(context.Background(), []string{"ok", "bad", "ok"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embed text 1")
}

func TestEmbedBatch_Empty(t *testing.T) {
	s := NewEmbeddingService(Config{BaseURL: "http://127.0.0.1:0"})
	vecs, err := s.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vecs)
}

func TestPing(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	assert.NoError(t, NewEmbeddingService(Config{BaseURL: srv.URL}).Ping(context.Background()))

	down := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	err := NewEmbeddingService(Config{BaseURL: down.URL}).Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
