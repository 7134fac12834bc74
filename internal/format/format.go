// Package format renders billing events as Telegram HTML messages.
package format

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/proofbox/webhook-relay/internal/domain"
)

// DefaultEmoji is used for event types without a dedicated entry.
const DefaultEmoji = "💰"

// userIDPrefixLen is how many characters of app_user_id are shown.
const userIDPrefixLen = 11

var emojis = map[string]string{
	domain.EventInitialPurchase:     "🎉",
	domain.EventRenewal:             "🔄",
	domain.EventCancellation:        "❌",
	domain.EventBillingIssue:        "⚠️",
	domain.EventNonRenewingPurchase: "💵",
	domain.EventProductChange:       "🔀",
	domain.EventTest:                "🧪",
}

// Emoji returns the presentation emoji for an event type.
func Emoji(eventType string) string {
	if e, ok := emojis[eventType]; ok {
		return e
	}
	return DefaultEmoji
}

// Known reports whether eventType has a dedicated emoji.
func Known(eventType string) bool {
	_, ok := emojis[eventType]
	return ok
}

// Message builds the notification text for evt. appName is the product name
// shown in the headline.
func Message(evt domain.Event, appName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>%s</b> in %s!\n\n", Emoji(evt.Type), html.EscapeString(evt.Type), html.EscapeString(appName))
	fmt.Fprintf(&b, "🏪 Store: %s\n", html.EscapeString(evt.Store))
	fmt.Fprintf(&b, "🌍 Country: %s\n", html.EscapeString(evt.CountryCode))
	fmt.Fprintf(&b, "🔧 Environment: %s\n", html.EscapeString(evt.Environment))
	fmt.Fprintf(&b, "📦 Product: %s\n", html.EscapeString(evt.ProductID))
	fmt.Fprintf(&b, "👤 User ID: <code>%s...</code>\n", html.EscapeString(truncate(evt.AppUserID, userIDPrefixLen)))
	return b.String()
}

// TestNotification is the synthetic notification sent by GET /test.
func TestNotification(appName string, now time.Time) string {
	return fmt.Sprintf("🧪 <b>Test notification</b>\n\nServer: %s Webhook\nTime: %s",
		html.EscapeString(appName), now.Format("2006-01-02 15:04:05 -0700"))
}

// truncate keeps the first n characters of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
