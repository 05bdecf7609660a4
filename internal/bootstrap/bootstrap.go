package bootstrap

import (
	"context"
	"log/slog"

	genaiclient "github.com/mfcoelho/finbot-backend/internal/client/genai"
	"github.com/mfcoelho/finbot-backend/internal/config"
	"github.com/mfcoelho/finbot-backend/pkg/logger"
)

type Bootstrap struct {
	Log   *slog.Logger
	GenAI *genaiclient.Adapter
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewStdoutHandler)

	// The model is optional: without it classification degrades to the
	// keyword fallback and audio transcription reports an error.
	if cfg.ProjectID != "" {
		adapter, err := genaiclient.NewAdapter(applicationCtx, bs.Log, cfg.ProjectID, cfg.Region, cfg.GenAIModel)
		if err != nil {
			return bs, err
		}
		bs.GenAI = adapter
	} else {
		bs.Log.Warn("no GCP project configured; semantic classification and transcription disabled")
	}

	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.GenAI != nil {
		bs.GenAI.Close()
	}
}
