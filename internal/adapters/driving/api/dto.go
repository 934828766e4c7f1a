package api

// RootResponse is the body of GET /.
type RootResponse struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	DocumentLoaded bool   `json:"document_loaded"`
}

// UploadResponse is the body of a successful POST /upload.
type UploadResponse struct {
	Message      string `json:"message"`
	NumChunks    int    `json:"num_chunks"`
	EmbeddingDim int    `json:"embedding_dim"`
	DocumentID   string `json:"document_id"`
}

// AskRequest is the body of POST /ask. Pointers distinguish absent fields.
type AskRequest struct {
	Question *string `json:"question"`
	TopK     *int    `json:"top_k"`
}

// AskResponse is the body of a successful POST /ask.
type AskResponse struct {
	Answer    string   `json:"answer"`
	TopChunks []string `json:"top_chunks"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
