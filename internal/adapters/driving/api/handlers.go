package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/custodia-labs/ragqa/internal/core/domain"
	"github.com/custodia-labs/ragqa/internal/core/ports/driving"
	"github.com/custodia-labs/ragqa/internal/logger"
)

// Response messages.
const (
	msgRunning          = "Upload a .txt file to /upload, then POST questions to /ask."
	msgUploaded         = "Document uploaded and indexed."
	msgUnsupportedType  = "Only .txt files are supported."
	msgEmptyDocument    = "Uploaded file is empty."
	msgNoChunks         = "No content found after ingestion."
	msgNoDocument       = "No document uploaded yet. Use /upload first."
	msgMissingFile      = "Missing multipart field \"file\"."
	msgMissingQuestion  = "Field \"question\" is required."
	msgUploadTooLarge   = "Uploaded file is too large."
	msgRateLimited      = "Too many requests."
	multipartMemoryCap  = 1 << 20
	uploadFormFieldName = "file"
)

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Status:         "ok",
		Message:        msgRunning,
		DocumentLoaded: s.qa.Status().DocumentLoaded,
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	opts := s.chunkDefaults
	for _, q := range []struct {
		name string
		dst  *int
	}{{"chunk_size", &opts.Size}, {"chunk_overlap", &opts.Overlap}} {
		v, ok := intQuery(r, q.name, *q.dst)
		if !ok {
			writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Query parameter %q must be an integer.", q.name))
			return
		}
		*q.dst = v
	}

	if err := r.ParseMultipartForm(multipartMemoryCap); err != nil {
		if tooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, msgUploadTooLarge)
			return
		}
		writeError(w, http.StatusUnprocessableEntity, "Invalid multipart body: "+err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	file, header, err := r.FormFile(uploadFormFieldName)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, msgMissingFile)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Read upload: "+err.Error())
		return
	}

	res, err := s.qa.Upload(r.Context(), driving.UploadRequest{
		Filename: header.Filename,
		Content:  content,
		Options:  &opts,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		Message:      msgUploaded,
		NumChunks:    res.NumChunks,
		EmbeddingDim: res.EmbeddingDim,
		DocumentID:   res.DocumentID,
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid JSON body: "+err.Error())
		return
	}
	if req.Question == nil {
		writeError(w, http.StatusUnprocessableEntity, msgMissingQuestion)
		return
	}
	topK := s.topK
	if req.TopK != nil {
		topK = *req.TopK
	}

	ans, err := s.qa.Ask(r.Context(), *req.Question, topK)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	chunks := ans.TopChunks
	if chunks == nil {
		chunks = []string{}
	}
	writeJSON(w, http.StatusOK, AskResponse{Answer: ans.Answer, TopChunks: chunks})
}

// intQuery parses an optional integer query parameter, returning def when absent.
func intQuery(r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// statusFor maps service errors to HTTP status codes and client-facing details.
// ErrDimensionMismatch is checked first: it wraps ErrInvalidInput but
// signals bad collaborator output, not bad client input.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrDimensionMismatch):
		return http.StatusInternalServerError, err.Error()
	case errors.Is(err, domain.ErrUnsupportedType):
		return http.StatusBadRequest, msgUnsupportedType
	case errors.Is(err, domain.ErrEmptyDocument):
		return http.StatusBadRequest, msgEmptyDocument
	case errors.Is(err, domain.ErrNoChunks):
		return http.StatusBadRequest, msgNoChunks
	case errors.Is(err, domain.ErrNoDocument):
		return http.StatusBadRequest, msgNoDocument
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	status, detail := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed: %v", err)
	}
	writeError(w, status, detail)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("encode response: %v", err)
	}
}
