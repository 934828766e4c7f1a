// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - Normaliser: decodes an uploaded file into a document
//   - Chunker: splits document text into overlapping chunks
//   - EmbeddingService: turns text into fixed-width vectors
//   - VectorIndex: in-memory similarity index over chunk vectors
//   - LLMService: turns a prompt into text
//   - PromptStore: prompt templates
//   - ConfigStore: application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
