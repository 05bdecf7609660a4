package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mfcoelho/finbot-backend/internal/handlers"
	"github.com/mfcoelho/finbot-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	hh := handlers.NewHealthHandlers(deps)
	mh := handlers.NewMessageHandlers(deps)
	ah := handlers.NewAudioHandlers(deps)

	r.Get("/", hh.Health)
	r.Mount("/message", mh.MessageRoutes())
	r.Mount("/audio", ah.AudioRoutes())
	return r
}
