package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Chunker defaults.
const (
	DefaultChunkSize    = 800
	DefaultChunkOverlap = 150
)

// Document is the single uploaded text.
type Document struct {
	// ID is assigned on upload and is diagnostic only.
	ID string

	// Name is the original file name.
	Name string

	// Content is the decoded text before chunking.
	Content string
}

// SupportedExtension is the only file extension accepted for upload.
const SupportedExtension = ".txt"

// IsSupportedFile reports whether name has the supported extension, case-insensitively.
func IsSupportedFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), SupportedExtension)
}

// Chunk is a contiguous piece of the document, possibly prefixed by the tail
// of the previous chunk.
type Chunk struct {
	// ID is "chunk_<i>". Not stable across re-chunking.
	ID string

	// Text is the chunk content including any overlap prefix.
	Text string

	// Position is the 0-based ordinal of the chunk.
	Position int
}

// ChunkID returns the identifier of the chunk at position i.
func ChunkID(i int) string {
	return fmt.Sprintf("chunk_%d", i)
}

// ChunkOptions controls chunk sizing. Sizes count characters (runes).
type ChunkOptions struct {
	// Size is the target maximum chunk length before overlap is added.
	Size int

	// Overlap is how many trailing characters of the previous chunk prefix the next one.
	Overlap int
}

// DefaultChunkOptions returns the chunker defaults.
func DefaultChunkOptions() ChunkOptions {
	return ChunkOptions{Size: DefaultChunkSize, Overlap: DefaultChunkOverlap}
}

// Validate rejects non-positive sizes, negative overlaps and overlaps larger than the size.
func (o ChunkOptions) Validate() error {
	switch {
	case o.Size <= 0:
		return fmt.Errorf("%w: chunk_size must be positive, got %d", ErrInvalidInput, o.Size)
	case o.Overlap < 0:
		return fmt.Errorf("%w: chunk_overlap must not be negative, got %d", ErrInvalidInput, o.Overlap)
	case o.Overlap > o.Size:
		return fmt.Errorf("%w: chunk_overlap (%d) exceeds chunk_size (%d)", ErrInvalidInput, o.Overlap, o.Size)
	}
	return nil
}

// UploadResult describes a successfully indexed document.
type UploadResult struct {
	DocumentID   string
	NumChunks    int
	EmbeddingDim int
}

// Status describes the service state.
type Status struct {
	// DocumentLoaded is false until the first successful upload.
	DocumentLoaded bool
	DocumentID     string
	DocumentName   string
	NumChunks      int
	EmbeddingDim   int
}
