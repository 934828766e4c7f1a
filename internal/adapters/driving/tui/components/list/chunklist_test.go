package list

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkList_Empty(t *testing.T) {
	c := NewChunkList(nil)

	assert.Equal(t, 0, c.Count())
	assert.Contains(t, c.View(), "No retrieved chunks")

	c.MoveDown()
	c.MoveUp()
	assert.Equal(t, 0, c.Selected())
}

func TestChunkList_Navigation(t *testing.T) {
	c := NewChunkList(nil)
	c.SetChunks([]string{"first", "second", "third"})

	c.MoveUp()
	assert.Equal(t, 0, c.Selected())

	c.MoveDown()
	c.MoveDown()
	c.MoveDown()
	assert.Equal(t, 2, c.Selected())

	c.SetChunks([]string{"only"})
	assert.Equal(t, 0, c.Selected())
	assert.Equal(t, []string{"only"}, c.Chunks())
}

func TestChunkList_View(t *testing.T) {
	c := NewChunkList(nil)
	c.SetDimensions(60, 10)
	c.SetChunks([]string{"selected chunk", "other\nchunk"})

	out := c.View()
	assert.Contains(t, out, "Retrieved chunks (2)")
	assert.Contains(t, out, "> [1]")
	assert.Contains(t, out, "[2] other chunk")
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "a b c", preview("a\n b\t\tc", 20))

	long := strings.Repeat("x", 30)
	got := preview(long, 12)
	assert.Equal(t, strings.Repeat("x", 9)+"...", got)

	assert.Len(t, []rune(preview(long, 2)), 10)
}
