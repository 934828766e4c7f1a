package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragqa/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ragqa/internal/core/domain"
	"github.com/custodia-labs/ragqa/internal/core/ports/driving"
	"github.com/custodia-labs/ragqa/internal/core/services"
)

// stubQA implements driving.QAService for command tests.
type stubQA struct {
	mu        sync.Mutex
	uploads   []driving.UploadRequest
	questions []string
	topKs     []int

	uploadErr error
	askErr    error
	answer    *domain.Answer
}

func (s *stubQA) Upload(_ context.Context, req driving.UploadRequest) (*domain.UploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, req)
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	return &domain.UploadResult{DocumentID: "doc-1", NumChunks: 1, EmbeddingDim: 384}, nil
}

func (s *stubQA) Ask(_ context.Context, question string, topK int) (*domain.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = append(s.questions, question)
	s.topKs = append(s.topKs, topK)
	if s.askErr != nil {
		return nil, s.askErr
	}
	if s.answer != nil {
		return s.answer, nil
	}
	return &domain.Answer{Answer: domain.FallbackAnswer}, nil
}

func (s *stubQA) Status() domain.Status {
	return domain.Status{}
}

// setupTestServices installs in-memory settings and qa, captures output and
// restores package state when the test ends. A nil qa is built from settings.
func setupTestServices(t *testing.T, qa driving.QAService, values ...map[string]any) *bytes.Buffer {
	t.Helper()

	seed := map[string]any{"prompts.dir": t.TempDir()}
	values = append([]map[string]any{seed}, values...)

	settingsService = services.NewSettingsService(memory.NewConfigStore(values...))
	qaService = qa
	qaInitErr = nil
	promptStore = nil
	appSettings = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	t.Cleanup(func() {
		settingsService = nil
		qaService = nil
		qaInitErr = nil
		promptStore = nil
		appSettings = nil
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(rootCmd)
	})
	return buf
}

// resetFlags restores every flag in the tree so commands can run again.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func writeTextFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
