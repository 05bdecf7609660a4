package handlers

import (
	"context"
	"log/slog"

	"github.com/mfcoelho/finbot-backend/internal/response"
)

type ConversationService interface {
	HandleMessage(ctx context.Context, userID, text string) (string, error)
}

type TranscriberService interface {
	Transcribe(ctx context.Context, data []byte, mimeType string) (string, error)
}

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	ConversationSvc ConversationService
	TranscriberSvc  TranscriberService
}
