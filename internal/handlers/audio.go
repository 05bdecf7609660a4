package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfcoelho/finbot-backend/internal/dto"
	"github.com/mfcoelho/finbot-backend/internal/errs"
	"github.com/mfcoelho/finbot-backend/internal/response"
	"github.com/mfcoelho/finbot-backend/pkg/logger"
)

// maxAudioBytes caps voice note uploads; WhatsApp voice notes are far
// smaller than this.
const maxAudioBytes = 16 << 20

const transcriptionFailedMessage = "Could not transcribe audio"

type audioHandlers struct {
	ResponseHandler response.ResponseHandler
	TranscriberSvc  TranscriberService
}

func NewAudioHandlers(deps *Deps) *audioHandlers {
	return &audioHandlers{
		ResponseHandler: deps.ResponseHandler,
		TranscriberSvc:  deps.TranscriberSvc,
	}
}

func (h *audioHandlers) AudioRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Transcribe)
	return r
}

func (h *audioHandlers) Transcribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid multipart body"))
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("audio file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("could not read audio payload"))
		return
	}

	text, err := h.TranscriberSvc.Transcribe(r.Context(), data, header.Header.Get("Content-Type"))
	if err != nil {
		// Transcription failures are conversational, never fatal.
		logger.FromContext(r.Context()).Error("transcription failed", "error", err)
		h.ResponseHandler.WriteSuccess(w, http.StatusOK, dto.TranscriptionResponse{Error: transcriptionFailedMessage})
		return
	}

	h.ResponseHandler.WriteSuccess(w, http.StatusOK, dto.TranscriptionResponse{Text: text})
}
