package tui

import "errors"

// ErrMissingQAService is returned when the QA service is not provided.
var ErrMissingQAService = errors.New("tui: QA service is required")
