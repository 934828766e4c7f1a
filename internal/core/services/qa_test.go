package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragqa/internal/core/domain"
	"github.com/custodia-labs/ragqa/internal/core/ports/driven"
	"github.com/custodia-labs/ragqa/internal/core/ports/driving"
	"github.com/custodia-labs/ragqa/internal/normalisers/plaintext"
)

type qaFixture struct {
	chunker  *mockChunker
	embedder *mockEmbeddingService
	index    *mockVectorIndex
	llm      *mockLLMService
	svc      *QAService
}

func newQAFixture(opts ...QAOption) *qaFixture {
	f := &qaFixture{
		chunker:  &mockChunker{chunks: chunksOf("alpha", "beta")},
		embedder: &mockEmbeddingService{dim: 3},
		index:    &mockVectorIndex{},
		llm:      &mockLLMService{response: "generated"},
	}
	f.svc = NewQAService(plaintext.New(), f.chunker, f.embedder, indexFactory(f.index), NewAnswerer(f.llm), opts...)
	return f
}

func upload(name, content string) driving.UploadRequest {
	return driving.UploadRequest{Filename: name, Content: []byte(content)}
}

func TestQAService_Upload_Success(t *testing.T) {
	f := newQAFixture(WithIDGenerator(func() string { return "doc-1" }))

	res, err := f.svc.Upload(context.Background(), upload("notes.TXT", "alpha\n\nbeta"))

	require.NoError(t, err)
	assert.Equal(t, &domain.UploadResult{DocumentID: "doc-1", NumChunks: 2, EmbeddingDim: 3}, res)
	assert.Equal(t, 2, f.index.added)
	assert.Equal(t, domain.DefaultChunkOptions(), f.chunker.lastOpts)
	assert.Equal(t, domain.Status{
		DocumentLoaded: true,
		DocumentID:     "doc-1",
		DocumentName:   "notes.TXT",
		NumChunks:      2,
		EmbeddingDim:   3,
	}, f.svc.Status())
}

func TestQAService_Upload_DefaultIDIsUUID(t *testing.T) {
	f := newQAFixture()

	res, err := f.svc.Upload(context.Background(), upload("a.txt", "text"))

	require.NoError(t, err)
	_, err = uuid.Parse(res.DocumentID)
	assert.NoError(t, err)
}

func TestQAService_Upload_ChunkOptions(t *testing.T) {
	f := newQAFixture(WithChunkDefaults(domain.ChunkOptions{Size: 300, Overlap: 30}))

	_, err := f.svc.Upload(context.Background(), upload("a.txt", "text"))
	require.NoError(t, err)
	assert.Equal(t, domain.ChunkOptions{Size: 300, Overlap: 30}, f.chunker.lastOpts)

	req := upload("a.txt", "text")
	req.Options = &domain.ChunkOptions{Size: 50, Overlap: 0}
	_, err = f.svc.Upload(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.ChunkOptions{Size: 50, Overlap: 0}, f.chunker.lastOpts)
}

func TestQAService_Upload_Errors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name    string
		setup   func(f *qaFixture)
		req     driving.UploadRequest
		wantErr error
	}{
		{
			name:    "unsupported type",
			req:     upload("a.pdf", "text"),
			wantErr: domain.ErrUnsupportedType,
		},
		{
			name:    "no extension",
			req:     upload("README", "text"),
			wantErr: domain.ErrUnsupportedType,
		},
		{
			name:    "empty file",
			req:     upload("a.txt", ""),
			wantErr: domain.ErrEmptyDocument,
		},
		{
			name:    "whitespace only",
			req:     upload("a.txt", " \n\t\r\n "),
			wantErr: domain.ErrEmptyDocument,
		},
		{
			name:    "invalid utf-8 only",
			req:     driving.UploadRequest{Filename: "a.txt", Content: []byte{0xff, 0xfe, ' '}},
			wantErr: domain.ErrEmptyDocument,
		},
		{
			name: "invalid chunk options",
			req: driving.UploadRequest{
				Filename: "a.txt",
				Content:  []byte("text"),
				Options:  &domain.ChunkOptions{Size: 10, Overlap: 20},
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "no chunks",
			setup:   func(f *qaFixture) { f.chunker.chunks = nil },
			req:     upload("a.txt", "text"),
			wantErr: domain.ErrNoChunks,
		},
		{
			name:    "chunker error",
			setup:   func(f *qaFixture) { f.chunker.err = boom },
			req:     upload("a.txt", "text"),
			wantErr: boom,
		},
		{
			name:    "embedder error",
			setup:   func(f *qaFixture) { f.embedder.batchErr = boom },
			req:     upload("a.txt", "text"),
			wantErr: boom,
		},
		{
			name:    "row count mismatch",
			setup:   func(f *qaFixture) { f.embedder.batchRows = 1 },
			req:     upload("a.txt", "text"),
			wantErr: domain.ErrDimensionMismatch,
		},
		{
			name:    "index add error",
			setup:   func(f *qaFixture) { f.index.addErr = domain.ErrDimensionMismatch },
			req:     upload("a.txt", "text"),
			wantErr: domain.ErrDimensionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newQAFixture()
			if tt.setup != nil {
				tt.setup(f)
			}

			res, err := f.svc.Upload(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, res)
			assert.False(t, f.svc.Status().DocumentLoaded)
		})
	}
}

func TestQAService_Upload_EmptyVectors(t *testing.T) {
	f := newQAFixture()
	f.embedder.vectors = map[string][]float32{"alpha": {}, "beta": {}}

	_, err := f.svc.Upload(context.Background(), upload("a.txt", "text"))

	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestQAService_Upload_FailureKeepsPreviousDocument(t *testing.T) {
	f := newQAFixture(WithIDGenerator(func() string { return "first" }))
	_, err := f.svc.Upload(context.Background(), upload("a.txt", "text"))
	require.NoError(t, err)

	f.embedder.batchErr = errors.New("down")
	_, err = f.svc.Upload(context.Background(), upload("b.txt", "other"))
	require.Error(t, err)

	status := f.svc.Status()
	assert.True(t, status.DocumentLoaded)
	assert.Equal(t, "first", status.DocumentID)
	assert.Equal(t, "a.txt", status.DocumentName)
}

func TestQAService_Upload_ClosesIndexOnAddFailure(t *testing.T) {
	f := newQAFixture()
	f.index.addErr = errors.New("full")

	_, err := f.svc.Upload(context.Background(), upload("a.txt", "text"))

	require.Error(t, err)
	assert.True(t, f.index.closed)
}

func TestQAService_Ask_BeforeUpload(t *testing.T) {
	f := newQAFixture()

	_, err := f.svc.Ask(context.Background(), "What?", 4)

	assert.ErrorIs(t, err, domain.ErrNoDocument)
}

func TestQAService_Ask_InvalidInput(t *testing.T) {
	f := newQAFixture()
	_, err := f.svc.Upload(context.Background(), upload("a.txt", "text"))
	require.NoError(t, err)

	for _, tc := range []struct {
		question string
		topK     int
	}{
		{"", 4},
		{"   \n", 4},
		{"What?", 0},
		{"What?", -3},
	} {
		_, err := f.svc.Ask(context.Background(), tc.question, tc.topK)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "question=%q topK=%d", tc.question, tc.topK)
	}
}

func TestQAService_Ask_GeneratesFromHits(t *testing.T) {
	f := newQAFixture()
	_, err := f.svc.Upload(context.Background(), upload("a.txt", "text"))
	require.NoError(t, err)
	f.index.hits = []domain.VectorHit{
		{ID: 1, Score: 0.9, Text: "beta"},
		{ID: 0, Score: 0.5, Text: "  "},
		{ID: 2, Score: 0.1, Text: "alpha"},
	}

	ans, err := f.svc.Ask(context.Background(), "What?", 3)

	require.NoError(t, err)
	assert.Equal(t, "generated", ans.Answer)
	assert.Equal(t, []string{"beta", "alpha"}, ans.TopChunks)
	assert.Contains(t, f.llm.prompt, "Context:\nbeta\nalpha\n\nQuestion: What?")
}

func TestQAService_Ask_RespectsTopK(t *testing.T) {
	f := newQAFixture()
	_, err := f.svc.Upload(context.Background(), upload("a.txt", "text"))
	require.NoError(t, err)
	f.index.hits = []domain.VectorHit{{Text: "one"}, {Text: "two"}, {Text: "three"}}

	ans, err := f.svc.Ask(context.Background(), "What?", 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, ans.TopChunks)
}

func TestQAService_Ask_NoUsableHits(t *testing.T) {
	f := newQAFixture()
	_, err := f.svc.Upload(context.Background(), upload("a.txt", "text"))
	require.NoError(t, err)
	f.index.hits = []domain.VectorHit{{Text: ""}, {Text: " \n"}}

	ans, err := f.svc.Ask(context.Background(), "What?", 4)

	require.NoError(t, err)
	assert.True(t, ans.IsFallback())
	assert.NotNil(t, ans.TopChunks)
	assert.Empty(t, ans.TopChunks)
	assert.Zero(t, f.llm.calls)
}

func TestQAService_Ask_CollaboratorErrors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name  string
		setup func(f *qaFixture)
	}{
		{"embed error", func(f *qaFixture) { f.embedder.embedErr = boom }},
		{"search error", func(f *qaFixture) { f.index.searchErr = boom }},
		{"generate error", func(f *qaFixture) { f.llm.err = boom }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newQAFixture()
			_, err := f.svc.Upload(context.Background(), upload("a.txt", "text"))
			require.NoError(t, err)
			f.index.hits = []domain.VectorHit{{Text: "alpha"}}
			tt.setup(f)

			ans, err := f.svc.Ask(context.Background(), "What?", 2)

			assert.ErrorIs(t, err, boom)
			assert.Nil(t, ans)
		})
	}
}

func TestQAService_Status_Empty(t *testing.T) {
	assert.Equal(t, domain.Status{}, newQAFixture().svc.Status())
}

// Each upload publishes a complete snapshot, so readers never see a status
// mixing two documents.
func TestQAService_ConcurrentUploadAndAsk(t *testing.T) {
	embedder := &mockEmbeddingService{dim: 2}
	factory := func(dim int) (driven.VectorIndex, error) {
		return &mockVectorIndex{dim: dim, hits: []domain.VectorHit{{Text: "alpha"}}}, nil
	}
	svc := NewQAService(plaintext.New(), &mockChunker{chunks: chunksOf("alpha")}, embedder, factory, NewAnswerer(&mockLLMService{response: "ok"}))
	_, err := svc.Upload(context.Background(), upload("a.txt", "text"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.Upload(context.Background(), upload("b.txt", "text"))
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			ans, err := svc.Ask(context.Background(), "q", 1)
			assert.NoError(t, err)
			assert.Equal(t, "ok", ans.Answer)
			st := svc.Status()
			assert.True(t, st.DocumentLoaded)
			assert.Equal(t, 1, st.NumChunks)
		}()
	}
	wg.Wait()
}
