package dto

type AddUrlRequest struct {
	Url string `json:"url" validate:"required,url"`
}

type AddUrlResponse struct {
	ChunksAdded int    `json:"chunks_added"`
	SessionId   string `json:"session_id"`
}

type UploadResponse struct {
	ChunksAdded int    `json:"chunks_added"`
	Filename    string `json:"filename"`
	SessionId   string `json:"session_id"`
}

type DocumentSummary struct {
	Name       string `json:"name"`
	ChunkCount int    `json:"chunk_count"`
	Type       string `json:"type"` // faq | url | file
}
