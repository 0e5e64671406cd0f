package dto

type ListSessionsResponse struct {
	SessionIds []string `json:"session_ids"`
}

type ClearSessionResponse struct {
	SessionId string `json:"session_id"`
	Cleared   bool   `json:"cleared"`
}
