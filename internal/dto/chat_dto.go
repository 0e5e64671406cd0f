package dto

type QueryRequest struct {
	Question   string `json:"question" validate:"required"`
	ApiKey     string `json:"credentials"`
	MaxResults int    `json:"max_results" validate:"omitempty,min=1,max=20"`
}

type QueryResponse struct {
	Answer     string   `json:"answer"`
	Sources    []string `json:"sources"`
	Confidence float32  `json:"confidence"`
	SessionId  string   `json:"session_id"`
}
