package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/proofbox/webhook-relay/internal/config"
	"github.com/proofbox/webhook-relay/internal/metrics"
)

// State is the terminal state of one Send call.
type State string

const (
	StateDisabled  State = "disabled"
	StateDelivered State = "delivered"
	StateFailed    State = "failed"
)

// Error text codes carried by failed results.
const (
	TextCodeDisabled       = "NOTIFIER_DISABLED"
	TextCodeDeliveryFailed = "DELIVERY_FAILED"
)

// parseModeHTML tells the Bot API to render the <b>/<code> subset.
const parseModeHTML = "HTML"

// maxErrorBody bounds how much of an upstream error body is logged.
const maxErrorBody = 1024

// Result describes the outcome of a Send call.
type Result struct {
	State      State
	StatusCode int
	Duration   time.Duration
	Err        *goerrors.Error
}

// OK reports whether the message reached Telegram.
func (r Result) OK() bool {
	return r.State == StateDelivered
}

// TelegramNotifier posts messages to a single chat through the Bot API
// sendMessage method.
type TelegramNotifier struct {
	cfg        *config.Config
	httpClient *http.Client
	logger     *slog.Logger
}

// NewTelegramNotifier creates a notifier whose HTTP client is bounded by
// cfg.TelegramTimeout.
func NewTelegramNotifier(cfg *config.Config, logger *slog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.TelegramTimeout,
		},
		logger: logger,
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Send delivers text to the configured chat. It never returns an error or
// panics; every failure is logged and reported through the Result.
func (n *TelegramNotifier) Send(ctx context.Context, text string) Result {
	if !n.cfg.Configured() {
		metrics.Notifications.WithLabelValues(string(StateDisabled)).Inc()
		return Result{
			State: StateDisabled,
			Err: goerrors.New("telegram credentials are not configured", goerrors.CategoryOperation).
				WithCode(http.StatusServiceUnavailable).
				WithTextCode(TextCodeDisabled),
		}
	}

	start := time.Now()
	res := n.send(ctx, text)
	res.Duration = time.Since(start)
	metrics.Notifications.WithLabelValues(string(res.State)).Inc()

	if res.OK() {
		n.logger.Info("telegram message sent",
			"chat_id", n.cfg.TelegramChatID,
			"response_time_ms", res.Duration.Milliseconds(),
		)
	}
	return res
}

func (n *TelegramNotifier) send(ctx context.Context, text string) Result {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    n.cfg.TelegramChatID,
		Text:      text,
		ParseMode: parseModeHTML,
	})
	if err != nil {
		return n.failed(0, err, "failed to encode sendMessage request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint(), bytes.NewReader(body))
	if err != nil {
		return n.failed(0, err, "failed to create sendMessage request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return n.failed(0, redactToken(err, n.cfg.TelegramBotToken), "telegram request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return n.failed(resp.StatusCode, fmt.Errorf("telegram returned HTTP %d", resp.StatusCode), "telegram rejected message",
			"response_body", string(respBody),
		)
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	return Result{State: StateDelivered, StatusCode: resp.StatusCode}
}

// failed logs one error line for the attempt; extra holds additional
// key/value pairs such as the upstream response body.
func (n *TelegramNotifier) failed(statusCode int, cause error, message string, extra ...any) Result {
	rich := goerrors.Wrap(cause, goerrors.CategoryExternal, message).
		WithCode(http.StatusBadGateway).
		WithTextCode(TextCodeDeliveryFailed)

	attrs := append([]any{"error", cause, "status_code", statusCode}, extra...)
	n.logger.Error("telegram send failed", attrs...)
	return Result{State: StateFailed, StatusCode: statusCode, Err: rich}
}

func (n *TelegramNotifier) endpoint() string {
	base := strings.TrimRight(n.cfg.TelegramAPIURL, "/")
	return base + "/bot" + n.cfg.TelegramBotToken + "/sendMessage"
}

// redactToken strips the bot token from transport errors, which embed the
// request URL.
func redactToken(err error, token string) error {
	if token == "" || !strings.Contains(err.Error(), token) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), token, "<redacted>"))
}
