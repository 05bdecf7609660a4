package handlers

import (
	"net/http"

	"github.com/mfcoelho/finbot-backend/internal/dto"
	"github.com/mfcoelho/finbot-backend/internal/response"
)

type healthHandlers struct {
	ResponseHandler response.ResponseHandler
}

func NewHealthHandlers(deps *Deps) *healthHandlers {
	return &healthHandlers{ResponseHandler: deps.ResponseHandler}
}

func (h *healthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Message: "WhatsApp transaction intake bot",
		Version: "2.0",
	})
}
