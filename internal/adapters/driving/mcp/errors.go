// Package mcp provides an MCP (Model Context Protocol) server adapter for ragqa.
// It lets AI assistants upload a document and ask grounded questions about it.
package mcp

import "errors"

// ErrMissingQAService is returned when the QA service is not provided.
var ErrMissingQAService = errors.New("mcp: QA service is required")
