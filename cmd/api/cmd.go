package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/mfcoelho/finbot-backend/internal/bootstrap"
	ledgerclient "github.com/mfcoelho/finbot-backend/internal/client/ledger"
	"github.com/mfcoelho/finbot-backend/internal/config"
	"github.com/mfcoelho/finbot-backend/internal/handlers"
	"github.com/mfcoelho/finbot-backend/internal/response"
	"github.com/mfcoelho/finbot-backend/internal/router"
	"github.com/mfcoelho/finbot-backend/internal/services"
	"github.com/mfcoelho/finbot-backend/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg, err := config.New()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// clients
	ledger := ledgerclient.NewAdapter(cfg.LedgerURL, cfg.LedgerAttempts, cfg.LedgerRetryDelay)

	// stores
	pstore := store.NewPendingStore()

	// services
	ledsvc := services.NewLedgerService(ledger)
	clsvc := services.NewClassifierService(nil)
	trsvc := services.NewTranscriberService(nil)
	if bs.GenAI != nil {
		clsvc = services.NewClassifierService(bs.GenAI)
		trsvc = services.NewTranscriberService(bs.GenAI)
	}
	convsvc := services.NewConversationService(clsvc, ledsvc, pstore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.ConversationSvc = convsvc
	deps.TranscriberSvc = trsvc

	// router
	r := router.NewRouter(deps)
	bs.Log.Info("listening", "addr", cfg.Addr)
	err = http.ListenAndServe(cfg.Addr, r)
	exitOnError("server start failed", err, bs.Log)
}
