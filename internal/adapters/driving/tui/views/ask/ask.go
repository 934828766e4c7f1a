// Package ask provides the question and answer view for the TUI.
package ask

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ragqa/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/ragqa/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/ragqa/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ragqa/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ragqa/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ragqa/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ragqa/internal/core/domain"
	"github.com/custodia-labs/ragqa/internal/core/ports/driving"
)

// View is the ask screen: input on top, the latest answer in a scrollable
// pane, the retrieved chunks below and a status bar at the bottom.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QuestionInput
	answer    viewport.Model
	chunks    *list.ChunkList
	statusbar *status.Bar

	qa   driving.QAService
	topK int
	ctx  context.Context

	question   string
	result     *domain.Answer
	notice     string
	err        error
	focusInput bool
	width      int
	height     int
	ready      bool
}

// NewView creates a new ask view.
func NewView(s *styles.Styles, km *keymap.KeyMap, qa driving.QAService, topK int) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if topK <= 0 {
		topK = domain.DefaultTopK
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQuestionInput(s),
		answer:     viewport.New(80, 6),
		chunks:     list.NewChunkList(s),
		statusbar:  status.NewBar(s, km),
		qa:         qa,
		topK:       topK,
		ctx:        context.Background(),
		focusInput: true,
		width:      80,
		height:     24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the ask view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.UploadCompleted:
		v.handleUploadCompleted(msg)
		return v, nil

	case messages.AskCompleted:
		v.handleAskCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Focus):
		v.toggleFocus()
		return v, nil
	case keymap.Matches(key, v.keymap.ScrollUp), keymap.Matches(key, v.keymap.ScrollDown):
		var cmd tea.Cmd
		v.answer, cmd = v.answer.Update(msg)
		return v, cmd
	}

	if !v.focusInput {
		switch {
		case keymap.Matches(key, v.keymap.Up):
			v.chunks.MoveUp()
		case keymap.Matches(key, v.keymap.Down):
			v.chunks.MoveDown()
		}
		return v, nil
	}

	switch {
	case keymap.Matches(key, v.keymap.Clear):
		v.input.Reset()
		return v, nil
	case keymap.Matches(key, v.keymap.Submit):
		return v, v.submit()
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) toggleFocus() {
	v.focusInput = !v.focusInput
	if v.focusInput {
		v.input.Focus()
	} else {
		v.input.Blur()
	}
	v.statusbar.SetBrowsing(!v.focusInput)
}

// submit turns the current input into an upload or ask command.
func (v *View) submit() tea.Cmd {
	line := strings.TrimSpace(v.input.Value())
	if line == "" {
		return nil
	}

	if path, ok := input.ParseUpload(line); ok {
		if path == "" {
			v.setError(ErrNoUploadPath)
			return nil
		}
		v.input.Reset()
		v.statusbar.SetState(status.StateUploading)
		return Upload(v.ctx, v.qa, path)
	}

	v.input.Reset()
	v.statusbar.SetState(status.StateAsking)
	return v.ask(line)
}

// Upload reads path from disk and uploads it as the current document.
func Upload(ctx context.Context, qa driving.QAService, path string) tea.Cmd {
	return func() tea.Msg {
		if qa == nil {
			return messages.UploadCompleted{Path: path, Err: ErrNoQAService}
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return messages.UploadCompleted{Path: path, Err: fmt.Errorf("read %s: %w", path, err)}
		}
		res, err := qa.Upload(ctx, driving.UploadRequest{
			Filename: filepath.Base(path),
			Content:  content,
		})
		return messages.UploadCompleted{Path: path, Result: res, Err: err}
	}
}

func (v *View) ask(question string) tea.Cmd {
	return func() tea.Msg {
		if v.qa == nil {
			return messages.AskCompleted{Question: question, Err: ErrNoQAService}
		}
		ans, err := v.qa.Ask(v.ctx, question, v.topK)
		return messages.AskCompleted{Question: question, Answer: ans, Err: err}
	}
}

func (v *View) handleUploadCompleted(msg messages.UploadCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}
	v.err = nil
	v.question = ""
	v.result = nil
	v.chunks.SetChunks(nil)
	v.notice = fmt.Sprintf("Indexed %s: %d chunks, %d dimensions.",
		filepath.Base(msg.Path), msg.Result.NumChunks, msg.Result.EmbeddingDim)
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetDocument(filepath.Base(msg.Path), msg.Result.NumChunks)
	v.refreshAnswer()
}

func (v *View) handleAskCompleted(msg messages.AskCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}
	v.err = nil
	v.notice = ""
	v.question = msg.Question
	v.result = msg.Answer
	v.chunks.SetChunks(msg.Answer.TopChunks)
	v.statusbar.SetState(status.StateReady)
	v.refreshAnswer()
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// refreshAnswer re-renders the answer pane content for the current width.
func (v *View) refreshAnswer() {
	width := v.width - 4
	if width < 20 {
		width = 20
	}

	var content string
	switch {
	case v.result != nil:
		frame := v.styles.Answer
		if v.result.IsFallback() {
			frame = v.styles.Fallback
		}
		content = lipgloss.JoinVertical(lipgloss.Left,
			v.styles.Question.Render("Q: "+v.question),
			frame.Width(width).Render(v.result.Answer),
		)
	case v.notice != "":
		content = v.styles.Success.Render(v.notice)
	default:
		content = v.styles.Muted.Render("Upload a .txt file with /upload <path>, then ask a question.")
	}
	v.answer.SetContent(content)
	v.answer.GotoTop()
}

// View renders the ask view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("ragqa"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.answer.View(), "", v.chunks.View(), "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions and lays out the panes.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)

	// Header, input, spacing and status take roughly ten lines; the rest is
	// split between the answer pane and the chunk list.
	body := height - 10
	if body < 6 {
		body = 6
	}
	v.answer.Width = width
	v.answer.Height = body / 2
	v.chunks.SetDimensions(width, body-body/2)
	v.refreshAnswer()
}

// Answer returns the last answer, or nil.
func (v *View) Answer() *domain.Answer {
	return v.result
}

// Chunks returns the retrieved chunks of the last answer.
func (v *View) Chunks() *list.ChunkList {
	return v.chunks
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.statusbar
}

// Input returns the question input.
func (v *View) Input() *input.QuestionInput {
	return v.input
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}
