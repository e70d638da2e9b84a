package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"borsabot/internal/model"
	"borsabot/internal/repository"
	"borsabot/internal/service"
	"borsabot/internal/telegram"
)

type fakeChatAPI struct {
	chats        map[string]tgbotapi.Chat
	inviteLink   string
	approved     [][2]int64
	declined     [][2]int64
	requestedGet []string
}

func (f *fakeChatAPI) GetChat(chat string) (tgbotapi.Chat, error) {
	f.requestedGet = append(f.requestedGet, chat)
	c, ok := f.chats[chat]
	if !ok {
		return tgbotapi.Chat{}, fmt.Errorf("Bad Request: chat not found")
	}
	return c, nil
}

func (f *fakeChatAPI) CreateInviteLink(chatID int64, name string) (telegram.InviteLink, error) {
	if f.inviteLink == "" {
		return telegram.InviteLink{}, fmt.Errorf("Bad Request: not enough rights")
	}
	return telegram.InviteLink{InviteLink: f.inviteLink, ExpireDate: 0}, nil
}

func (f *fakeChatAPI) ApproveJoinRequest(chatID, userID int64) error {
	f.approved = append(f.approved, [2]int64{chatID, userID})
	return nil
}

func (f *fakeChatAPI) DeclineJoinRequest(chatID, userID int64) error {
	f.declined = append(f.declined, [2]int64{chatID, userID})
	return nil
}

type fakeBroadcaster struct {
	lastText string
	report   service.BroadcastReport
}

func (f *fakeBroadcaster) Broadcast(_ context.Context, text string) (service.BroadcastReport, error) {
	f.lastText = text
	return f.report, nil
}

var adminDBSeq int

type adminFixture struct {
	server   *httptest.Server
	chats    *fakeChatAPI
	cast     *fakeBroadcaster
	users    *repository.UserRepository
	settings *repository.SettingRepository
	joins    *repository.JoinRequestRepository
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	adminDBSeq++
	db, err := repository.NewDB(fmt.Sprintf("file:admintest%d?mode=memory&cache=shared", adminDBSeq))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	fx := &adminFixture{
		chats:    &fakeChatAPI{chats: map[string]tgbotapi.Chat{}},
		cast:     &fakeBroadcaster{},
		users:    repository.NewUserRepository(db),
		settings: repository.NewSettingRepository(db),
		joins:    repository.NewJoinRequestRepository(db),
	}

	m := mux.NewRouter()
	RegisterHandlers(m, Deps{
		Users:       fx.users,
		Settings:    fx.settings,
		Joins:       fx.joins,
		Chats:       fx.chats,
		Broadcaster: fx.cast,
		Log:         zerolog.Nop(),
	})
	fx.server = httptest.NewServer(m)
	t.Cleanup(fx.server.Close)
	return fx
}

func (fx *adminFixture) postJSON(t *testing.T, path string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := http.Post(fx.server.URL+path, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestSettingsRoundTrip(t *testing.T) {
	fx := newAdminFixture(t)

	resp := fx.postJSON(t, "/api/admin/settings", map[string]string{
		"main_channel_id":   "-1001234567890",
		"main_channel_link": "https://t.me/kanal",
		"yabanci_anahtar":   "yok sayılmalı",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("post settings status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	updates, _ := body["updates"].(map[string]interface{})
	if updates["main_channel_id"] != true || updates["main_channel_link"] != true {
		t.Errorf("updates = %v", updates)
	}
	if _, leaked := updates["yabanci_anahtar"]; leaked {
		t.Errorf("unknown key accepted: %v", updates)
	}

	getResp, err := http.Get(fx.server.URL + "/api/admin/settings")
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	got := decodeBody(t, getResp)
	settings, _ := got["settings"].(map[string]interface{})
	if settings["main_channel_id"] != "-1001234567890" {
		t.Errorf("settings = %v", settings)
	}
	if _, present := settings["invite_link"]; present {
		t.Errorf("unset key should be omitted: %v", settings)
	}
}

func TestListUsers(t *testing.T) {
	fx := newAdminFixture(t)
	ctx := context.Background()
	if _, err := fx.users.UpsertFromTelegram(ctx, 1, "Ali", "", "ali"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := fx.users.UpsertFromTelegram(ctx, 2, "Ayşe", "", "ayse"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp, err := http.Get(fx.server.URL + "/api/admin/users")
	if err != nil {
		t.Fatalf("get users: %v", err)
	}
	body := decodeBody(t, resp)
	users, _ := body["users"].([]interface{})
	if len(users) != 2 {
		t.Errorf("got %d users, want 2", len(users))
	}
}

func TestAnnouncementValidatesAndReports(t *testing.T) {
	fx := newAdminFixture(t)
	fx.cast.report = service.BroadcastReport{Sent: 3, Failed: 1, Total: 4}

	resp := fx.postJSON(t, "/api/admin/announcement", map[string]string{"message": "   "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("blank message status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	resp = fx.postJSON(t, "/api/admin/announcement", map[string]string{"message": "Piyasa kapanışı erken."})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("announcement status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["sent"] != float64(3) || body["failed"] != float64(1) || body["total"] != float64(4) {
		t.Errorf("report body = %v", body)
	}
	if fx.cast.lastText != "Piyasa kapanışı erken." {
		t.Errorf("broadcast text = %q", fx.cast.lastText)
	}
}

func TestCreateInvitePersistsLink(t *testing.T) {
	fx := newAdminFixture(t)
	fx.chats.chats["-1001234567890"] = tgbotapi.Chat{ID: -1001234567890, Title: "Özel Kanal", Type: "channel"}
	fx.chats.inviteLink = "https://t.me/+davet123"

	resp := fx.postJSON(t, "/api/admin/create-invite", map[string]int64{"chatId": -1001234567890})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create invite status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["invite_link"] != "https://t.me/+davet123" {
		t.Errorf("body = %v", body)
	}

	stored, err := fx.settings.Get(context.Background(), model.SettingInviteLink)
	if err != nil {
		t.Fatalf("read stored link: %v", err)
	}
	if stored != "https://t.me/+davet123" {
		t.Errorf("invite link not persisted: %q", stored)
	}
}

func TestCreateInviteUnknownChat(t *testing.T) {
	fx := newAdminFixture(t)

	resp := fx.postJSON(t, "/api/admin/create-invite", map[string]int64{"chatId": -42})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] == nil {
		t.Errorf("expected error body, got %v", body)
	}
}

func TestChatInfoNormalizesUsername(t *testing.T) {
	fx := newAdminFixture(t)
	fx.chats.chats["@borsakanal"] = tgbotapi.Chat{ID: -100555, Title: "Borsa Kanal", UserName: "borsakanal", Type: "channel"}

	resp := fx.postJSON(t, "/api/get-chat-info", map[string]string{"chatUsername": "borsakanal"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["id"] != float64(-100555) || body["username"] != "borsakanal" {
		t.Errorf("body = %v", body)
	}
	if len(fx.chats.requestedGet) != 1 || fx.chats.requestedGet[0] != "@borsakanal" {
		t.Errorf("lookup used %v, want @borsakanal", fx.chats.requestedGet)
	}
}

func TestProcessJoinRequest(t *testing.T) {
	fx := newAdminFixture(t)
	ctx := context.Background()
	if _, err := fx.joins.Upsert(ctx, model.JoinRequest{UserID: 42, ChatID: -100123}); err != nil {
		t.Fatalf("seed join request: %v", err)
	}

	resp := fx.postJSON(t, "/api/admin/join-requests/process", map[string]interface{}{
		"user_id": 42, "chat_id": -100123, "action": "approve",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	if len(fx.chats.approved) != 1 || fx.chats.approved[0] != [2]int64{-100123, 42} {
		t.Errorf("telegram approve calls = %v", fx.chats.approved)
	}
	stored, err := fx.joins.Find(ctx, 42, -100123)
	if err != nil || stored == nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Status != model.JoinStatusApproved {
		t.Errorf("status = %q, want approved", stored.Status)
	}

	pending, err := fx.joins.ListPending(ctx)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending after approve: %+v", pending)
	}

	resp = fx.postJSON(t, "/api/admin/join-requests/process", map[string]interface{}{
		"user_id": 42, "chat_id": -100123, "action": "yok",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid action status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}
