package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Placeholder rendered for any event field that is absent, null or empty.
const NotAvailable = "N/A"

// Event types RevenueCat sends that have a dedicated presentation.
const (
	EventInitialPurchase     = "INITIAL_PURCHASE"
	EventRenewal             = "RENEWAL"
	EventCancellation        = "CANCELLATION"
	EventBillingIssue        = "BILLING_ISSUE"
	EventNonRenewingPurchase = "NON_RENEWING_PURCHASE"
	EventProductChange       = "PRODUCT_CHANGE"
	EventTest                = "TEST"
)

var (
	// ErrInvalidJSON is returned when the body is not syntactically valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrMissingEvent is returned when the body is valid JSON but carries no
	// event object.
	ErrMissingEvent = errors.New("missing event object")
)

// WebhookPayload is the top-level body RevenueCat posts to the webhook.
type WebhookPayload struct {
	APIVersion json.RawMessage `json:"api_version,omitempty"`
	Event      json.RawMessage `json:"event"`
}

// Event is the subset of a RevenueCat event the relay renders. Every field is
// already defaulted, so none of them is ever empty, except ID and APIVersion
// which are only used for log correlation.
type Event struct {
	APIVersion  string `json:"api_version,omitempty"`
	ID          string `json:"id"`
	Type        string `json:"type"`
	ProductID   string `json:"product_id"`
	Store       string `json:"store"`
	CountryCode string `json:"country_code"`
	Environment string `json:"environment"`
	AppUserID   string `json:"app_user_id"`
}

// ParseEvent decodes a webhook body and extracts its event. It returns
// ErrInvalidJSON for syntax errors and ErrMissingEvent when the body is not
// an object or lacks an event object. ID and APIVersion are left empty when
// the payload has none.
func ParseEvent(body []byte) (Event, error) {
	if !json.Valid(body) {
		return Event{}, ErrInvalidJSON
	}

	var payload WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		// Valid JSON that is not an object (array, string, number).
		return Event{}, ErrMissingEvent
	}

	var fields map[string]json.RawMessage
	if len(payload.Event) == 0 || json.Unmarshal(payload.Event, &fields) != nil || fields == nil {
		return Event{}, ErrMissingEvent
	}

	evt := Event{
		APIVersion:  scalar(payload.APIVersion),
		ID:          field(fields, "id"),
		Type:        withDefault(field(fields, "type")),
		ProductID:   withDefault(field(fields, "product_id")),
		Store:       withDefault(field(fields, "store")),
		CountryCode: withDefault(field(fields, "country_code")),
		Environment: withDefault(field(fields, "environment")),
		AppUserID:   withDefault(field(fields, "app_user_id")),
	}
	return evt, nil
}

// field returns the string form of a JSON scalar. Strings are unquoted,
// other scalars keep their JSON text, null and absent yield "".
func field(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	return scalar(raw)
}

func scalar(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func withDefault(v string) string {
	if strings.TrimSpace(v) == "" {
		return NotAvailable
	}
	return v
}
