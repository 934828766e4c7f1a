package ask

import "errors"

// ErrNoQAService is returned when asking without a QA service.
var ErrNoQAService = errors.New("QA service not available")

// ErrNoUploadPath is returned for a bare /upload command.
var ErrNoUploadPath = errors.New("usage: /upload <path to .txt file>")
