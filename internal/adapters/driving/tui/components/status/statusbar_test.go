package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBar_Defaults(t *testing.T) {
	b := NewBar(nil, nil)

	assert.Equal(t, StateReady, b.State())
	assert.Equal(t, 80, b.Width())
	assert.Contains(t, b.View(), "No document: /upload <path>")
	assert.Contains(t, b.View(), "enter: ask")
}

func TestBar_Document(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetWidth(120)
	b.SetDocument("notes.txt", 12)

	assert.Equal(t, "notes.txt", b.Document())
	assert.Contains(t, b.View(), "notes.txt (12 chunks)")
}

func TestBar_States(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetWidth(120)

	b.SetState(StateUploading)
	assert.Contains(t, b.View(), "Indexing...")

	b.SetState(StateAsking)
	assert.Contains(t, b.View(), "Thinking...")

	b.SetState(StateError)
	b.SetMessage("no document uploaded")
	assert.Equal(t, "no document uploaded", b.Message())
	assert.Contains(t, b.View(), "Error: no document uploaded")
}

func TestBar_BrowsingHints(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetWidth(120)
	b.SetBrowsing(true)

	assert.Contains(t, b.View(), "down")
	assert.NotContains(t, b.View(), "enter: ask")
}
