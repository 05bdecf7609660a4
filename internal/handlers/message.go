package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfcoelho/finbot-backend/internal/dto"
	"github.com/mfcoelho/finbot-backend/internal/errs"
	"github.com/mfcoelho/finbot-backend/internal/response"
	"github.com/mfcoelho/finbot-backend/pkg/logger"
)

const internalErrorReply = "❌ Internal error. Please try again."

type messageHandlers struct {
	ResponseHandler response.ResponseHandler
	ConversationSvc ConversationService
}

func NewMessageHandlers(deps *Deps) *messageHandlers {
	return &messageHandlers{
		ResponseHandler: deps.ResponseHandler,
		ConversationSvc: deps.ConversationSvc,
	}
}

func (h *messageHandlers) MessageRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Receive)
	return r
}

func (h *messageHandlers) Receive(w http.ResponseWriter, r *http.Request) {
	var body dto.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	if body.UserID == "" {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("user_id is required"))
		return
	}
	if body.Text == "" {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("text is required"))
		return
	}

	log, ctx := logger.With(r.Context(), "user_id", body.UserID)

	reply, err := h.handleMessage(ctx, body.UserID, body.Text)
	if err != nil {
		// Anything escaping the pipeline degrades to a conversational
		// error; the process never fails a message turn.
		log.Error("message pipeline failed", "error", err)
		h.ResponseHandler.WriteSuccess(w, http.StatusOK, dto.MessageResponse{Reply: internalErrorReply})
		return
	}

	h.ResponseHandler.WriteSuccess(w, http.StatusOK, dto.MessageResponse{Reply: reply})
}

// handleMessage converts a pipeline panic into an error so the caller's
// degrade path still answers with a reply instead of a bare 500.
func (h *messageHandlers) handleMessage(ctx context.Context, userID, text string) (reply string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("message pipeline panic: %v", rec)
		}
	}()
	return h.ConversationSvc.HandleMessage(ctx, userID, text)
}
