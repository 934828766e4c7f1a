// Package flat provides an exact in-memory inner-product vector index.
// It implements the driven.VectorIndex interface.
//
// Vectors live in one contiguous row-major arena and texts in a slice indexed
// by entry id, so ids are dense and assigned in insertion order. Search is a
// full scan with a bounded min-heap for top-k selection.
package flat
