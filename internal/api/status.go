package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/proofbox/webhook-relay/internal/config"
	"github.com/proofbox/webhook-relay/internal/format"
)

const (
	msgConfigureCredentials = "⚠️ Configure TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID"
	msgConfigureHint        = "\n\nSet them in the environment or in a .env file and restart the server."
	msgTestSent             = "Test notification sent! Check Telegram ✅"
	msgTestFailed           = "Failed to send notification ❌"
)

// StatusHandler serves the human-facing status and test endpoints.
type StatusHandler struct {
	cfg      *config.Config
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewStatusHandler(cfg *config.Config, n Notifier, logger *slog.Logger) *StatusHandler {
	return &StatusHandler{cfg: cfg, notifier: n, logger: logger, now: time.Now}
}

// Index reports whether the server is ready to relay events.
func (h *StatusHandler) Index(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.Configured() {
		respondText(w, http.StatusInternalServerError, msgConfigureCredentials+msgConfigureHint)
		return
	}
	respondText(w, http.StatusOK, h.cfg.AppName+" Webhook Server is running! 🚀")
}

// Test sends a synthetic notification to the configured chat.
func (h *StatusHandler) Test(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.Configured() {
		respondText(w, http.StatusInternalServerError, msgConfigureCredentials)
		return
	}

	res := h.notifier.Send(r.Context(), format.TestNotification(h.cfg.AppName, h.now()))
	if !res.OK() {
		h.logger.Warn("test notification failed", "notification", string(res.State))
		respondText(w, http.StatusBadGateway, msgTestFailed)
		return
	}

	h.logger.Info("test notification sent")
	respondText(w, http.StatusOK, msgTestSent)
}
