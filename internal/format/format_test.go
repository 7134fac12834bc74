package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/proofbox/webhook-relay/internal/domain"
)

func TestEmoji(t *testing.T) {
	tests := []struct {
		eventType string
		want      string
	}{
		{"INITIAL_PURCHASE", "🎉"},
		{"RENEWAL", "🔄"},
		{"CANCELLATION", "❌"},
		{"BILLING_ISSUE", "⚠️"},
		{"NON_RENEWING_PURCHASE", "💵"},
		{"PRODUCT_CHANGE", "🔀"},
		{"TEST", "🧪"},
		{"EXPIRATION", "💰"},
		{"renewal", "💰"},
		{"N/A", "💰"},
		{"", "💰"},
	}

	for _, tt := range tests {
		t.Run(tt.eventType, func(t *testing.T) {
			assert.Equal(t, tt.want, Emoji(tt.eventType))
		})
	}
}

func TestKnown(t *testing.T) {
	assert.True(t, Known(domain.EventBillingIssue))
	assert.False(t, Known("SUBSCRIPTION_PAUSED"))
	assert.False(t, Known(domain.NotAvailable))
}

func TestMessage(t *testing.T) {
	evt := domain.Event{
		Type:        "INITIAL_PURCHASE",
		ProductID:   "pro_monthly",
		Store:       "APP_STORE",
		CountryCode: "US",
		Environment: "PRODUCTION",
		AppUserID:   "user_1234567890",
	}

	want := "🎉 <b>INITIAL_PURCHASE</b> in ProofBox!\n" +
		"\n" +
		"🏪 Store: APP_STORE\n" +
		"🌍 Country: US\n" +
		"🔧 Environment: PRODUCTION\n" +
		"📦 Product: pro_monthly\n" +
		"👤 User ID: <code>user_123456...</code>\n"

	assert.Equal(t, want, Message(evt, "ProofBox"))
}

func TestMessage_Placeholders(t *testing.T) {
	evt := domain.Event{
		Type:        domain.NotAvailable,
		ProductID:   domain.NotAvailable,
		Store:       domain.NotAvailable,
		CountryCode: domain.NotAvailable,
		Environment: domain.NotAvailable,
		AppUserID:   domain.NotAvailable,
	}

	msg := Message(evt, "ProofBox")

	assert.True(t, strings.HasPrefix(msg, "💰 <b>N/A</b> in ProofBox!"))
	assert.Contains(t, msg, "🏪 Store: N/A\n")
	assert.Contains(t, msg, "<code>N/A...</code>")
}

func TestMessage_EscapesHTML(t *testing.T) {
	evt := domain.Event{
		Type:        "<script>",
		ProductID:   "a&b",
		Store:       "APP_STORE",
		CountryCode: "US",
		Environment: "SANDBOX",
		AppUserID:   "<u>",
	}

	msg := Message(evt, "ProofBox")

	assert.Contains(t, msg, "<b>&lt;script&gt;</b>")
	assert.Contains(t, msg, "📦 Product: a&amp;b\n")
	assert.Contains(t, msg, "<code>&lt;u&gt;...</code>")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "short", in: "N/A", want: "N/A"},
		{name: "exact", in: "abcdefghijk", want: "abcdefghijk"},
		{name: "long", in: "user_1234567890", want: "user_123456"},
		{name: "multibyte", in: "пользователь_1", want: "пользовател"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.in, userIDPrefixLen))
		})
	}
}

func TestTestNotification(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

	msg := TestNotification("ProofBox", now)

	assert.Equal(t, "🧪 <b>Test notification</b>\n\nServer: ProofBox Webhook\nTime: 2026-03-01 12:30:00 +0000", msg)
}
