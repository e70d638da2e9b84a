package bot

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
)

const maxUpdateBody = 1 << 20

// RegisterWebhook mounts the Telegram webhook endpoint on m. POST
// receives updates, GET answers with a small status document so the
// deployment can be checked from a browser.
func (r *Router) RegisterWebhook(m *mux.Router, path string, dbConfigured bool) {
	m.HandleFunc(path, r.handleWebhook).Methods(http.MethodPost)
	m.HandleFunc(path, statusHandler(dbConfigured)).Methods(http.MethodGet)
}

// handleWebhook always acknowledges with 200 {"ok":true}: a non-2xx
// answer makes Telegram redeliver the same update, and a broken update
// stays broken on redelivery.
func (r *Router) handleWebhook(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	var update tgbotapi.Update
	if err := json.NewDecoder(io.LimitReader(req.Body, maxUpdateBody)).Decode(&update); err != nil {
		r.log.Warn().Err(err).Msg("malformed webhook payload")
	} else {
		r.HandleUpdate(req.Context(), update)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func statusHandler(dbConfigured bool) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":    "webhook working",
			"bot_token": true,
			"database":  dbConfigured,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
