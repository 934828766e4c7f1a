// Package domain defines the core entities for ragqa.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: the single uploaded text
//   - Chunk: a retrievable unit of the document
//   - VectorHit: one nearest-neighbour search result
//   - Answer: a grounded answer with the chunks it was drawn from
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
