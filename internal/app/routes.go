package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sheetcal/sheetcal/internal/config"
)

// RegisterRoutes registers the health probe and, in webhook mode, the
// Telegram webhook endpoint.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")

	if cfg.Telegram.Mode == config.ModeWebhook {
		r.Handle(cfg.Telegram.WebhookPath, deps.Receiver).Methods("POST")
	}
}
