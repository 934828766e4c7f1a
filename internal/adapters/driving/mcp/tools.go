package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ragqa/internal/core/domain"
	"github.com/custodia-labs/ragqa/internal/core/ports/driving"
)

// UploadInput is the input schema for the upload_document tool.
type UploadInput struct {
	Filename     string `json:"filename" jsonschema:"file name; only .txt files are accepted"`
	Content      string `json:"content" jsonschema:"full text of the document"`
	ChunkSize    *int   `json:"chunk_size,omitempty" jsonschema:"target chunk length in characters (default 800)"`
	ChunkOverlap *int   `json:"chunk_overlap,omitempty" jsonschema:"characters carried over from the previous chunk (default 150)"`
}

// UploadOutput is the output schema for the upload_document tool.
type UploadOutput struct {
	Message      string `json:"message"`
	NumChunks    int    `json:"num_chunks"`
	EmbeddingDim int    `json:"embedding_dim"`
	DocumentID   string `json:"document_id"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the uploaded document"`
	TopK     *int   `json:"top_k,omitempty" jsonschema:"number of chunks to retrieve (default 4)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer    string   `json:"answer"`
	TopChunks []string `json:"top_chunks"`
}

// StatusInput is the empty input of the status tool.
type StatusInput struct{}

// StatusOutput describes the currently loaded document.
type StatusOutput struct {
	DocumentLoaded bool   `json:"document_loaded"`
	DocumentID     string `json:"document_id,omitempty"`
	DocumentName   string `json:"document_name,omitempty"`
	NumChunks      int    `json:"num_chunks"`
	EmbeddingDim   int    `json:"embedding_dim"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "upload_document",
		Description: "Upload a .txt document, replacing the current one",
	}, s.handleUpload)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using only the uploaded document",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "status",
		Description: "Report whether a document is loaded",
	}, s.handleStatus)
}

func (s *Server) handleUpload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadInput,
) (*mcp.CallToolResult, UploadOutput, error) {
	opts := s.chunkDefaults
	if input.ChunkSize != nil {
		opts.Size = *input.ChunkSize
	}
	if input.ChunkOverlap != nil {
		opts.Overlap = *input.ChunkOverlap
	}

	res, err := s.ports.QA.Upload(ctx, driving.UploadRequest{
		Filename: input.Filename,
		Content:  []byte(input.Content),
		Options:  &opts,
	})
	if err != nil {
		return nil, UploadOutput{}, err
	}

	return nil, UploadOutput{
		Message:      "Document uploaded and indexed.",
		NumChunks:    res.NumChunks,
		EmbeddingDim: res.EmbeddingDim,
		DocumentID:   res.DocumentID,
	}, nil
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	topK := s.topK
	if input.TopK != nil {
		topK = *input.TopK
	}

	ans, err := s.ports.QA.Ask(ctx, input.Question, topK)
	if err != nil {
		return nil, AskOutput{}, err
	}

	chunks := ans.TopChunks
	if chunks == nil {
		chunks = []string{}
	}
	return nil, AskOutput{Answer: ans.Answer, TopChunks: chunks}, nil
}

func (s *Server) handleStatus(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	return nil, statusOutput(s.ports.QA.Status()), nil
}

func statusOutput(st domain.Status) StatusOutput {
	return StatusOutput{
		DocumentLoaded: st.DocumentLoaded,
		DocumentID:     st.DocumentID,
		DocumentName:   st.DocumentName,
		NumChunks:      st.NumChunks,
		EmbeddingDim:   st.EmbeddingDim,
	}
}
