package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ragqa/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for ragqa.

Type a question and press Enter to ask it. Load a document with
"/upload <path>" or start with one using --file.

Controls:
  Enter      - Ask / run command
  Tab        - Switch between input and retrieved chunks
  ↑/k, ↓/j   - Move through retrieved chunks
  PgUp/PgDn  - Scroll the answer
  Esc        - Clear input
  Ctrl+C     - Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringP("file", "f", "", "text file to upload on start")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	qa, err := requireQA()
	if err != nil {
		return err
	}

	path, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("getting file flag: %w", err)
	}

	app, err := tui.NewApp(&tui.Ports{QA: qa},
		tui.WithInitialFile(path),
		tui.WithTopK(defaultTopK()),
	)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
