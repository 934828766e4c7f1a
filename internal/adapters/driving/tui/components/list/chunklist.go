// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ragqa/internal/adapters/driving/tui/styles"
)

// ChunkList displays retrieved chunks in rank order with one expanded.
type ChunkList struct {
	chunks   []string
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewChunkList creates an empty chunk list.
func NewChunkList(s *styles.Styles) *ChunkList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ChunkList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// View renders the list. The selected chunk is wrapped in full, the others
// are cut to one line.
func (c *ChunkList) View() string {
	if len(c.chunks) == 0 {
		return c.styles.Muted.Render("No retrieved chunks")
	}

	lines := make([]string, 0, len(c.chunks)+2)
	lines = append(lines, c.styles.Subtitle.Render(fmt.Sprintf("Retrieved chunks (%d)", len(c.chunks))), "")

	for i, chunk := range c.chunks {
		if i == c.selected {
			head := c.styles.Selected.Render(fmt.Sprintf("> [%d]", i+1))
			body := lipgloss.NewStyle().Width(c.width - 4).PaddingLeft(4).Render(chunk)
			lines = append(lines, head, c.styles.Normal.Render(body))
			continue
		}
		lines = append(lines, c.styles.Muted.Render(fmt.Sprintf("  [%d] %s", i+1, preview(chunk, c.width-8))))
	}
	return strings.Join(lines, "\n")
}

// preview flattens chunk onto one line and cuts it to n characters.
func preview(chunk string, n int) string {
	if n < 10 {
		n = 10
	}
	flat := strings.Join(strings.Fields(chunk), " ")
	r := []rune(flat)
	if len(r) <= n {
		return flat
	}
	return string(r[:n-3]) + "..."
}

// SetChunks replaces the list contents and selects the first chunk.
func (c *ChunkList) SetChunks(chunks []string) {
	c.chunks = chunks
	c.selected = 0
}

// Chunks returns the current chunks.
func (c *ChunkList) Chunks() []string {
	return c.chunks
}

// Selected returns the index of the selected chunk.
func (c *ChunkList) Selected() int {
	return c.selected
}

// MoveUp moves selection up.
func (c *ChunkList) MoveUp() {
	if c.selected > 0 {
		c.selected--
	}
}

// MoveDown moves selection down.
func (c *ChunkList) MoveDown() {
	if c.selected < len(c.chunks)-1 {
		c.selected++
	}
}

// SetDimensions sets the component dimensions.
func (c *ChunkList) SetDimensions(width, height int) {
	c.width = width
	c.height = height
}

// Count returns the number of chunks.
func (c *ChunkList) Count() int {
	return len(c.chunks)
}
