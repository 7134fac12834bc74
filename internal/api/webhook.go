package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/proofbox/webhook-relay/internal/config"
	"github.com/proofbox/webhook-relay/internal/domain"
	"github.com/proofbox/webhook-relay/internal/format"
	"github.com/proofbox/webhook-relay/internal/metrics"
	"github.com/proofbox/webhook-relay/internal/notify"
)

// Notifier delivers a rendered message to the chat channel.
type Notifier interface {
	Send(ctx context.Context, text string) notify.Result
}

type WebhookHandler struct {
	cfg      *config.Config
	notifier Notifier
	logger   *slog.Logger
}

func NewWebhookHandler(cfg *config.Config, n Notifier, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{cfg: cfg, notifier: n, logger: logger}
}

// webhookOutcome is what a successfully parsed webhook produced.
type webhookOutcome struct {
	eventID string
	event   domain.Event
	result  notify.Result
}

// Handle processes one RevenueCat webhook. Once the payload parses the caller
// always gets 200, whether or not the notification was delivered.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	out, herr := h.process(w, r)
	if herr != nil {
		h.logFailure(r, herr)
		respondError(w, herr.Code, herr.Message)
		return
	}

	h.logOutcome(out)
	respondJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (h *WebhookHandler) process(w http.ResponseWriter, r *http.Request) (out webhookOutcome, herr *goerrors.Error) {
	defer func() {
		if p := recover(); p != nil {
			herr = unexpectedFault(fmt.Errorf("panic: %v", p))
		}
	}()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return out, payloadTooLarge(err)
		}
		return out, unexpectedFault(err)
	}

	evt, err := domain.ParseEvent(body)
	switch {
	case errors.Is(err, domain.ErrInvalidJSON):
		return out, malformedPayload(err, msgInvalidJSON, TextCodeInvalidJSON)
	case errors.Is(err, domain.ErrMissingEvent):
		return out, malformedPayload(err, msgMissingEvent, TextCodeMissingEvent)
	case err != nil:
		return out, unexpectedFault(err)
	}

	out.event = evt
	out.eventID = evt.ID
	if out.eventID == "" {
		out.eventID = uuid.NewString()
	}

	// The provider may hang up before Telegram answers; the send still runs
	// to completion, bounded by the notifier timeout.
	ctx := context.WithoutCancel(r.Context())
	out.result = h.notifier.Send(ctx, format.Message(evt, h.cfg.AppName))
	return out, nil
}

func (h *WebhookHandler) logOutcome(out webhookOutcome) {
	attrs := []any{
		"event_id", out.eventID,
		"api_version", out.event.APIVersion,
		"event_type", out.event.Type,
		"store", out.event.Store,
		"environment", out.event.Environment,
		"notification", string(out.result.State),
	}

	if out.result.OK() {
		metrics.WebhookEvents.WithLabelValues(typeLabel(out.event.Type), metrics.OutcomeDelivered).Inc()
		h.logger.Info("webhook processed", attrs...)
		return
	}

	metrics.WebhookEvents.WithLabelValues(typeLabel(out.event.Type), metrics.OutcomeUndelivered).Inc()
	if out.result.Err != nil {
		attrs = append(attrs, "error", out.result.Err.Error(), "error_code", out.result.Err.TextCode)
	}
	h.logger.Warn("webhook processed, notification not delivered", attrs...)
}

func (h *WebhookHandler) logFailure(r *http.Request, herr *goerrors.Error) {
	outcome := metrics.OutcomeRejected
	if herr.Category == goerrors.CategoryInternal {
		outcome = metrics.OutcomeFaulted
	}
	metrics.WebhookEvents.WithLabelValues(typeLabelUnknown, outcome).Inc()

	h.logger.Error("webhook failed",
		"error", herr.Error(),
		"error_code", herr.TextCode,
		"status_code", herr.Code,
		"remote_addr", r.RemoteAddr,
	)
}

const (
	typeLabelOther   = "OTHER"
	typeLabelUnknown = "UNKNOWN"
)

// typeLabel keeps metric cardinality bounded to the known event types.
func typeLabel(eventType string) string {
	if format.Known(eventType) {
		return eventType
	}
	return typeLabelOther
}
