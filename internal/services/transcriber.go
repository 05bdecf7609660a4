package services

import (
	"context"

	"github.com/mfcoelho/finbot-backend/internal/errs"
	"github.com/mfcoelho/finbot-backend/pkg/logger"
)

type transcriptionClient interface {
	Transcribe(ctx context.Context, data []byte, mimeType string) (string, error)
}

type transcriberService struct {
	genai transcriptionClient
}

// NewTranscriberService builds the speech-to-text service. The client may
// be nil when no model is configured; transcription then fails with a
// configuration error instead of crashing.
func NewTranscriberService(genai transcriptionClient) *transcriberService {
	return &transcriberService{genai: genai}
}

func (s *transcriberService) Transcribe(ctx context.Context, data []byte, mimeType string) (string, error) {
	if s.genai == nil {
		return "", errs.NewExternalServiceError("genai", "transcription model not configured", false)
	}
	if mimeType == "" {
		mimeType = "audio/ogg"
	}

	text, err := s.genai.Transcribe(ctx, data, mimeType)
	if err != nil {
		logger.FromContext(ctx).Error("transcription failed", "error", err)
		return "", errs.NewExternalServiceError("genai", err.Error(), true)
	}

	return text, nil
}
