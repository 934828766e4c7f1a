// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ragqa/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ragqa/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady     State = "ready"
	StateUploading State = "uploading"
	StateAsking    State = "asking"
	StateError     State = "error"
)

// Bar displays the loaded document, request state and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	document string
	chunks   int
	browsing bool
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (b *Bar) Init() tea.Cmd {
	return nil
}

// Update is a no-op; the bar is driven through its setters.
func (b *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	return b, nil
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - b.styles.StatusBar.GetHorizontalFrameSize() -
		lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (b *Bar) renderLeft() string {
	switch b.state {
	case StateUploading:
		return b.styles.Muted.Render("Indexing...")
	case StateAsking:
		return b.styles.Muted.Render("Thinking...")
	case StateError:
		if b.message != "" {
			return b.styles.Error.Render(fmt.Sprintf("Error: %s", b.message))
		}
		return b.styles.Error.Render("Error")
	case StateReady:
	}
	if b.document == "" {
		return b.styles.Muted.Render("No document: /upload <path>")
	}
	return b.styles.Normal.Render(fmt.Sprintf("%s (%d chunks)", b.document, b.chunks))
}

func (b *Bar) renderRight() string {
	bindings := b.keymap.InputHelp()
	if b.browsing {
		bindings = b.keymap.ChunksHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetMessage sets the error message shown in StateError.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetDocument records the loaded document and its chunk count.
func (b *Bar) SetDocument(name string, chunks int) {
	b.document = name
	b.chunks = chunks
}

// Document returns the loaded document name.
func (b *Bar) Document() string {
	return b.document
}

// SetBrowsing switches the hints between input and chunk navigation.
func (b *Bar) SetBrowsing(browsing bool) {
	b.browsing = browsing
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the current width.
func (b *Bar) Width() int {
	return b.width
}
