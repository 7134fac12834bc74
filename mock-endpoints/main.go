// Command mock-endpoints is a stand-in for the Telegram Bot API. Point
// TELEGRAM_API_URL at it to exercise the relay without a real bot.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

var requestCount atomic.Int64

type sendMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

func main() {
	port := "9090"
	if p := os.Getenv("PORT"); p != "" {
		port = p
	}

	// The token segment of the path selects the behavior:
	//   /botok/sendMessage     -> 200 {"ok":true}
	//   /botslow/sendMessage   -> 200 after 12s (past the relay timeout)
	//   /botfail/sendMessage   -> 400 chat not found
	//   /botdown/sendMessage   -> 500
	// Any other token behaves like "ok".
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		token, method, ok := parsePath(r.URL.Path)
		if !ok || method != "sendMessage" || r.Method != http.MethodPost {
			writeJSON(w, http.StatusNotFound, map[string]any{"ok": false, "error_code": 404, "description": "Not Found"})
			return
		}

		var msg sendMessage
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error_code": 400, "description": "Bad Request: invalid JSON"})
			return
		}

		count := requestCount.Add(1)
		switch token {
		case "slow":
			time.Sleep(12 * time.Second)
			logRequest(count, token, msg, http.StatusOK)
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "result": map[string]any{"message_id": count}})
		case "fail":
			logRequest(count, token, msg, http.StatusBadRequest)
			writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error_code": 400, "description": "Bad Request: chat not found"})
		case "down":
			logRequest(count, token, msg, http.StatusInternalServerError)
			writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error_code": 500, "description": "Internal Server Error"})
		default:
			logRequest(count, token, msg, http.StatusOK)
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "result": map[string]any{"message_id": count}})
		}
	})

	// Stats endpoint — shows request count
	http.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int64{"total_requests": requestCount.Load()})
	})

	log.Printf("Mock Bot API starting on :%s", port)
	log.Printf("  POST /botok/sendMessage    -> 200 OK")
	log.Printf("  POST /botslow/sendMessage  -> 200 OK (12s delay)")
	log.Printf("  POST /botfail/sendMessage  -> 400 chat not found")
	log.Printf("  POST /botdown/sendMessage  -> 500 Error")
	log.Printf("  GET  /stats                -> request count")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// parsePath splits /bot<token>/<method>.
func parsePath(path string) (token, method string, ok bool) {
	rest, found := strings.CutPrefix(path, "/bot")
	if !found {
		return "", "", false
	}
	token, method, found = strings.Cut(rest, "/")
	if !found || token == "" {
		return "", "", false
	}
	return token, method, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func logRequest(count int64, token string, msg sendMessage, status int) {
	fmt.Printf("[#%d] token=%s chat=%s parse_mode=%s -> %d\n%s\n\n",
		count, token, msg.ChatID, msg.ParseMode, status, msg.Text)
}
