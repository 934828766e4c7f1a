package ask

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragqa/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ragqa/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ragqa/internal/core/domain"
	"github.com/custodia-labs/ragqa/internal/core/ports/driving"
)

type fakeQA struct {
	uploadErr error
	askErr    error
	answer    *domain.Answer
	uploaded  []driving.UploadRequest
	asked     []string
}

func (f *fakeQA) Upload(_ context.Context, req driving.UploadRequest) (*domain.UploadResult, error) {
	f.uploaded = append(f.uploaded, req)
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return &domain.UploadResult{DocumentID: "doc-1", NumChunks: 3, EmbeddingDim: 384}, nil
}

func (f *fakeQA) Ask(_ context.Context, question string, _ int) (*domain.Answer, error) {
	f.asked = append(f.asked, question)
	if f.askErr != nil {
		return nil, f.askErr
	}
	if f.answer != nil {
		return f.answer, nil
	}
	return &domain.Answer{Answer: domain.FallbackAnswer, TopChunks: []string{}}, nil
}

func (f *fakeQA) Status() domain.Status { return domain.Status{} }

func newReadyView(qa driving.QAService) *View {
	v := NewView(nil, nil, qa, 0)
	v.SetDimensions(80, 24)
	return v
}

func submit(t *testing.T, v *View, line string) tea.Msg {
	t.Helper()
	v.Input().SetValue(line)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	return cmd()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestNewView_Defaults(t *testing.T) {
	v := NewView(nil, nil, &fakeQA{}, 0)

	assert.Equal(t, domain.DefaultTopK, v.topK)
	assert.True(t, v.InputFocused())
	assert.False(t, v.Ready())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_EmptySubmitDoesNothing(t *testing.T) {
	qa := &fakeQA{}
	v := newReadyView(qa)

	v.Input().SetValue("   ")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, qa.asked)
}

func TestView_Ask(t *testing.T) {
	qa := &fakeQA{answer: &domain.Answer{
		Answer:    "Paris is the capital of France.",
		TopChunks: []string{"Paris is the capital of France.", "The Loire valley."},
	}}
	v := newReadyView(qa)

	msg := submit(t, v, "What is the capital of France?")
	assert.Equal(t, status.StateAsking, v.Status().State())
	assert.Empty(t, v.Input().Value())

	v.Update(msg)

	assert.Equal(t, []string{"What is the capital of France?"}, qa.asked)
	assert.Equal(t, status.StateReady, v.Status().State())
	assert.Equal(t, 2, v.Chunks().Count())
	assert.Contains(t, v.View(), "Paris is the capital of France.")
	assert.NoError(t, v.Err())
}

func TestView_AskError(t *testing.T) {
	v := newReadyView(&fakeQA{askErr: domain.ErrNoDocument})

	v.Update(submit(t, v, "anything?"))

	assert.ErrorIs(t, v.Err(), domain.ErrNoDocument)
	assert.Equal(t, status.StateError, v.Status().State())
	assert.Contains(t, v.View(), "no document uploaded")
}

func TestView_Upload(t *testing.T) {
	qa := &fakeQA{}
	v := newReadyView(qa)
	path := writeFile(t, "notes.txt", "Some text.")

	msg := submit(t, v, "/upload "+path)
	assert.Equal(t, status.StateUploading, v.Status().State())

	completed, ok := msg.(messages.UploadCompleted)
	require.True(t, ok)
	require.NoError(t, completed.Err)
	v.Update(completed)

	require.Len(t, qa.uploaded, 1)
	assert.Equal(t, "notes.txt", qa.uploaded[0].Filename)
	assert.Equal(t, []byte("Some text."), qa.uploaded[0].Content)
	assert.Nil(t, qa.uploaded[0].Options)
	assert.Equal(t, "notes.txt", v.Status().Document())
	assert.Contains(t, v.View(), "Indexed notes.txt: 3 chunks")
}

func TestView_UploadMissingFile(t *testing.T) {
	qa := &fakeQA{}
	v := newReadyView(qa)

	v.Update(submit(t, v, "/upload "+filepath.Join(t.TempDir(), "missing.txt")))

	assert.Error(t, v.Err())
	assert.Empty(t, qa.uploaded)
}

func TestView_UploadRejected(t *testing.T) {
	v := newReadyView(&fakeQA{uploadErr: domain.ErrUnsupportedType})

	v.Update(submit(t, v, "/upload "+writeFile(t, "report.pdf", "x")))

	assert.ErrorIs(t, v.Err(), domain.ErrUnsupportedType)
	assert.Empty(t, v.Status().Document())
}

func TestView_BareUploadCommand(t *testing.T) {
	v := newReadyView(&fakeQA{})

	v.Input().SetValue("/upload")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.ErrorIs(t, v.Err(), ErrNoUploadPath)
}

func TestView_NilService(t *testing.T) {
	v := newReadyView(nil)

	msg := submit(t, v, "question")

	completed, ok := msg.(messages.AskCompleted)
	require.True(t, ok)
	assert.ErrorIs(t, completed.Err, ErrNoQAService)
}

func TestView_FocusAndChunkNavigation(t *testing.T) {
	v := newReadyView(&fakeQA{answer: &domain.Answer{Answer: "a", TopChunks: []string{"one", "two", "three"}}})
	v.Update(submit(t, v, "q"))

	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, v.InputFocused())

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, v.Chunks().Selected())

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, v.Chunks().Selected())

	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, v.InputFocused())
}

func TestView_EscClearsInput(t *testing.T) {
	v := newReadyView(&fakeQA{})
	v.Input().SetValue("draft")

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Empty(t, v.Input().Value())
}

func TestView_ErrorOccurred(t *testing.T) {
	v := newReadyView(&fakeQA{})

	v.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.Equal(t, status.StateError, v.Status().State())
	assert.Equal(t, "boom", v.Status().Message())
}
