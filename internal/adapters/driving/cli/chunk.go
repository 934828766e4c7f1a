package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ragqa/internal/core/domain"
	"github.com/custodia-labs/ragqa/internal/postprocessors/chunker"
)

var chunkCmd = &cobra.Command{
	Use:   "chunk",
	Short: "Show how a file is chunked",
	Long: `Clean and chunk a text file and print the chunks.

Useful for tuning chunker.size and chunker.overlap before uploading.

Examples:
  ragqa chunk --file notes.txt
  ragqa chunk --file notes.txt --size 400 --overlap 50 --json`,
	RunE: runChunk,
}

// chunkJSON is the --json form of a chunk.
type chunkJSON struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
	Length   int    `json:"length"`
	Text     string `json:"text"`
}

func init() {
	chunkCmd.Flags().StringP("file", "f", "", "text file to chunk (required)")
	chunkCmd.Flags().Int("size", 0, "chunk size in characters (default from chunker.size)")
	chunkCmd.Flags().Int("overlap", 0, "chunk overlap in characters (default from chunker.overlap)")
	chunkCmd.Flags().Bool("json", false, "print chunks as JSON")
	_ = chunkCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(chunkCmd)
}

func runChunk(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file") //nolint:errcheck // flag is registered
	asJSON, _ := cmd.Flags().GetBool("json") //nolint:errcheck // flag is registered

	opts := chunkDefaults()
	if cmd.Flags().Changed("size") {
		opts.Size, _ = cmd.Flags().GetInt("size") //nolint:errcheck // flag is registered
	}
	if cmd.Flags().Changed("overlap") {
		opts.Overlap, _ = cmd.Flags().GetInt("overlap") //nolint:errcheck // flag is registered
	}

	if !domain.IsSupportedFile(path) {
		return fmt.Errorf("%w: %q is not a %s file", domain.ErrUnsupportedType, path, domain.SupportedExtension)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	p, err := chunker.New(chunker.WithChunkSize(opts.Size), chunker.WithOverlap(opts.Overlap))
	if err != nil {
		return err
	}
	chunks, err := p.Chunk(cmd.Context(), strings.ToValidUTF8(string(content), ""), opts)
	if err != nil {
		return err
	}

	if asJSON {
		out := make([]chunkJSON, 0, len(chunks))
		for _, c := range chunks {
			out = append(out, chunkJSON{
				ID:       c.ID,
				Position: c.Position,
				Length:   len([]rune(c.Text)),
				Text:     c.Text,
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	cmd.Printf("%d chunks (size=%d, overlap=%d)\n", len(chunks), opts.Size, opts.Overlap)
	for _, c := range chunks {
		cmd.Printf("\n--- %s (%d chars) ---\n%s\n", c.ID, len([]rune(c.Text)), c.Text)
	}
	return nil
}
