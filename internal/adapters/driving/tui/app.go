package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ragqa/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ragqa/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ragqa/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ragqa/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ragqa/internal/adapters/driving/tui/views/ask"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports   *Ports
	ctx     context.Context
	keymap  *keymap.KeyMap
	askView *ask.View

	// initialFile is uploaded when the program starts.
	initialFile string
	topK        int

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// Option configures the App.
type Option func(*App)

// WithInitialFile uploads path as soon as the program starts.
func WithInitialFile(path string) Option {
	return func(a *App) {
		a.initialFile = path
	}
}

// WithTopK sets how many chunks each question retrieves.
func WithTopK(k int) Option {
	return func(a *App) {
		a.topK = k
	}
}

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports, opts ...Option) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	a := &App{
		ports:  ports,
		ctx:    context.Background(),
		keymap: keymap.DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.askView = ask.NewView(styles.DefaultStyles(), a.keymap, ports.QA, a.topK)
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.askView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("ragqa"),
		a.askView.Init(),
	}
	if a.initialFile != "" {
		a.askView.Status().SetState(status.StateUploading)
		cmds = append(cmds, ask.Upload(a.ctx, a.ports.QA, a.initialFile))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.askView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}

	case messages.Quit:
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.askView, cmd = a.askView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.askView.View()
}

// Run starts the TUI application in the alternate screen.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// AskView returns the ask view.
func (a *App) AskView() *ask.View {
	return a.askView
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.askView.SetDimensions(width, height)
}
