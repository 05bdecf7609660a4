package dto

type MessageRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

type MessageResponse struct {
	Reply string `json:"reply"`
}

type TranscriptionResponse struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}
