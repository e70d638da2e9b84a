package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"borsabot/internal/model"
	"borsabot/internal/repository"
	"borsabot/internal/service"
	"borsabot/internal/telegram"
)

// ChatAPI is the Telegram surface the admin endpoints use.
// *telegram.Client satisfies it.
type ChatAPI interface {
	GetChat(chat string) (tgbotapi.Chat, error)
	CreateInviteLink(chatID int64, name string) (telegram.InviteLink, error)
	ApproveJoinRequest(chatID, userID int64) error
	DeclineJoinRequest(chatID, userID int64) error
}

// Broadcaster fans an announcement out to all users.
// *service.BroadcastService satisfies it.
type Broadcaster interface {
	Broadcast(ctx context.Context, text string) (service.BroadcastReport, error)
}

// Deps bundles what the admin handlers close over.
type Deps struct {
	Users       *repository.UserRepository
	Settings    *repository.SettingRepository
	Joins       *repository.JoinRequestRepository
	Chats       ChatAPI
	Broadcaster Broadcaster
	Log         zerolog.Logger
}

// settingKeys is the whitelist the settings endpoints operate on.
var settingKeys = []string{
	model.SettingMainChannelLink,
	model.SettingMainChannelID,
	model.SettingInviteLink,
}

// RegisterHandlers mounts the admin API on r.
func RegisterHandlers(r *mux.Router, d Deps) {
	r.HandleFunc("/api/admin/settings", getSettingsHandler(d)).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/settings", updateSettingsHandler(d)).Methods(http.MethodPost)
	r.HandleFunc("/api/admin/users", listUsersHandler(d)).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/announcement", announcementHandler(d)).Methods(http.MethodPost)
	r.HandleFunc("/api/admin/create-invite", createInviteHandler(d)).Methods(http.MethodPost)
	r.HandleFunc("/api/admin/join-requests", listJoinRequestsHandler(d)).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/join-requests/process", processJoinRequestHandler(d)).Methods(http.MethodPost)
	r.HandleFunc("/api/get-chat-info", chatInfoHandler(d)).Methods(http.MethodPost)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func getSettingsHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := d.Settings.All(r.Context())
		if err != nil {
			d.Log.Error().Err(err).Msg("read settings")
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		settings := map[string]string{}
		for _, key := range settingKeys {
			if value := all[key]; value != "" {
				settings[key] = value
			}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":   "success",
			"settings": settings,
		})
	}
}

func updateSettingsHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		updates := map[string]bool{}
		for _, key := range settingKeys {
			value, present := body[key]
			if !present {
				continue
			}
			err := d.Settings.Set(r.Context(), key, value)
			if err != nil {
				d.Log.Error().Err(err).Str("key", key).Msg("write setting")
			}
			updates[key] = err == nil
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "success",
			"updates": updates,
		})
	}
}

func listUsersHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := d.Users.ListAll(r.Context())
		if err != nil {
			d.Log.Error().Err(err).Msg("list users")
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
	}
}

func announcementHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if strings.TrimSpace(body.Message) == "" {
			writeError(w, http.StatusBadRequest, "Message is required")
			return
		}

		report, err := d.Broadcaster.Broadcast(r.Context(), body.Message)
		if err != nil {
			d.Log.Error().Err(err).Msg("broadcast announcement")
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func createInviteHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ChatID int64 `json:"chatId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if body.ChatID == 0 {
			writeError(w, http.StatusBadRequest, "Chat ID required")
			return
		}

		// The bot must be an admin of the channel for this to work, so
		// probe the chat first to return a useful error.
		if _, err := d.Chats.GetChat(fmt.Sprintf("%d", body.ChatID)); err != nil {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("Kanal bulunamadı: %v. Bot'un kanala admin olarak eklendiğinden emin olun.", err))
			return
		}

		name := "Bot Kullanıcıları " + uuid.NewString()[:8]
		link, err := d.Chats.CreateInviteLink(body.ChatID, name)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Davet linki oluşturulamadı: %v", err))
			return
		}

		if err := d.Settings.Set(r.Context(), model.SettingInviteLink, link.InviteLink); err != nil {
			d.Log.Error().Err(err).Msg("persist invite link")
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"invite_link": link.InviteLink,
			"expire_date": link.ExpireDate,
		})
	}
}

func listJoinRequestsHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqs, err := d.Joins.ListPending(r.Context())
		if err != nil {
			d.Log.Error().Err(err).Msg("list pending join requests")
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"join_requests": reqs})
	}
}

func processJoinRequestHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserID int64  `json:"user_id"`
			ChatID int64  `json:"chat_id"`
			Action string `json:"action"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if body.UserID == 0 || body.ChatID == 0 {
			writeError(w, http.StatusBadRequest, "user_id and chat_id required")
			return
		}

		var status string
		var err error
		switch body.Action {
		case "approve":
			status = model.JoinStatusApproved
			err = d.Chats.ApproveJoinRequest(body.ChatID, body.UserID)
		case "decline":
			status = model.JoinStatusDeclined
			err = d.Chats.DeclineJoinRequest(body.ChatID, body.UserID)
		default:
			writeError(w, http.StatusBadRequest, "action must be approve or decline")
			return
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Telegram isteği başarısız: %v", err))
			return
		}

		if err := d.Joins.UpdateStatus(r.Context(), body.UserID, body.ChatID, status, nil); err != nil {
			d.Log.Error().Err(err).Msg("update join request status")
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": status})
	}
}

func chatInfoHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ChatUsername string `json:"chatUsername"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if body.ChatUsername == "" {
			writeError(w, http.StatusBadRequest, "Chat username required")
			return
		}

		username := body.ChatUsername
		if !strings.HasPrefix(username, "@") {
			username = "@" + username
		}
		chat, err := d.Chats.GetChat(username)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id":       chat.ID,
			"title":    chat.Title,
			"username": chat.UserName,
			"type":     chat.Type,
		})
	}
}
