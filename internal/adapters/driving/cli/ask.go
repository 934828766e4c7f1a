package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ragqa/internal/adapters/driving/api"
	"github.com/custodia-labs/ragqa/internal/core/ports/driving"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer one question about a file",
	Long: `Index a .txt file in memory and answer a single question about it.

The question is taken from the arguments, or read from stdin when no
arguments are given and stdin is not a terminal.

Examples:
  ragqa ask --file notes.txt "What is the capital of France?"
  echo "Who wrote it?" | ragqa ask --file notes.txt --json`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringP("file", "f", "", "text file to index (required)")
	askCmd.Flags().IntP("top-k", "k", 0, "number of chunks to retrieve (default from retrieval.top_k)")
	askCmd.Flags().Bool("json", false, "print the answer as JSON")
	_ = askCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	qa, err := requireQA()
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("file") //nolint:errcheck // flag is registered
	topK, _ := cmd.Flags().GetInt("top-k")   //nolint:errcheck // flag is registered
	asJSON, _ := cmd.Flags().GetBool("json") //nolint:errcheck // flag is registered
	if !cmd.Flags().Changed("top-k") {
		topK = defaultTopK()
	}

	question, err := readQuestion(cmd, args)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	ctx := cmd.Context()
	if _, err := qa.Upload(ctx, driving.UploadRequest{
		Filename: filepath.Base(path),
		Content:  content,
	}); err != nil {
		return fmt.Errorf("upload %s: %w", path, err)
	}

	answer, err := qa.Ask(ctx, question, topK)
	if err != nil {
		return err
	}

	if asJSON {
		resp := api.AskResponse{Answer: answer.Answer, TopChunks: answer.TopChunks}
		if resp.TopChunks == nil {
			resp.TopChunks = []string{}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	cmd.Println(answer.Answer)
	if len(answer.TopChunks) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, chunk := range answer.TopChunks {
			cmd.Printf("  [%d] %s\n", i+1, oneLine(chunk, 100))
		}
	}
	return nil
}

// readQuestion joins args, or reads stdin when it is piped.
func readQuestion(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", errors.New("no question given: pass it as an argument or pipe it on stdin")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read question: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// oneLine flattens whitespace and cuts s to n characters.
func oneLine(s string, n int) string {
	flat := strings.Join(strings.Fields(s), " ")
	r := []rune(flat)
	if len(r) <= n {
		return flat
	}
	return string(r[:n-3]) + "..."
}
