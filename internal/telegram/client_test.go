package telegram

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// fakeBotAPI records every Bot API call and answers with canned
// results, so the client can be exercised without Telegram.
type fakeBotAPI struct {
	methods []string
	forms   []url.Values
}

func (f *fakeBotAPI) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		method := path.Base(r.URL.Path)
		f.methods = append(f.methods, method)
		f.forms = append(f.forms, r.Form)

		w.Header().Set("Content-Type", "application/json")
		switch method {
		case "getMe":
			fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Borsa","username":"borsabot_test"}}`)
		case "getChatMember":
			fmt.Fprint(w, `{"ok":true,"result":{"status":"member","user":{"id":42,"first_name":"Ali"}}}`)
		case "createChatInviteLink":
			fmt.Fprint(w, `{"ok":true,"result":{"invite_link":"https://t.me/+fake","expire_date":1700000000}}`)
		case "getChat":
			fmt.Fprint(w, `{"ok":true,"result":{"id":-1001234567890,"title":"Borsa Özel","type":"channel"}}`)
		default:
			fmt.Fprint(w, `{"ok":true,"result":{"message_id":7,"chat":{"id":1}}}`)
		}
	}
}

func (f *fakeBotAPI) lastForm(t *testing.T, method string) url.Values {
	t.Helper()
	for i := len(f.methods) - 1; i >= 0; i-- {
		if f.methods[i] == method {
			return f.forms[i]
		}
	}
	t.Fatalf("method %s never called, got %v", method, f.methods)
	return nil
}

func newTestClient(t *testing.T) (*Client, *fakeBotAPI) {
	t.Helper()
	fake := &fakeBotAPI{}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	api, err := tgbotapi.NewBotAPIWithAPIEndpoint("test-token", srv.URL+"/bot%s/%s")
	if err != nil {
		t.Fatalf("create bot api: %v", err)
	}
	return &Client{api: api, log: zerolog.Nop()}, fake
}

func TestSendPhotoCarriesCaption(t *testing.T) {
	c, fake := newTestClient(t)

	sent, err := c.SendPhoto(1, "https://files.test/chart.png", "<b>THYAO</b> grafik")
	if err != nil {
		t.Fatalf("send photo: %v", err)
	}
	if sent.MessageID != 7 {
		t.Errorf("message id = %d", sent.MessageID)
	}
	form := fake.lastForm(t, "sendPhoto")
	if form.Get("photo") != "https://files.test/chart.png" {
		t.Errorf("photo = %q", form.Get("photo"))
	}
	if form.Get("caption") != "<b>THYAO</b> grafik" {
		t.Errorf("caption = %q", form.Get("caption"))
	}
	if form.Get("parse_mode") != tgbotapi.ModeHTML {
		t.Errorf("parse_mode = %q", form.Get("parse_mode"))
	}
}

func TestSendDocumentDeliversFileByURL(t *testing.T) {
	c, fake := newTestClient(t)

	if _, err := c.SendDocument(1, "https://files.test/rapor.pdf", "Aylık rapor"); err != nil {
		t.Fatalf("send document: %v", err)
	}
	form := fake.lastForm(t, "sendDocument")
	if form.Get("document") != "https://files.test/rapor.pdf" {
		t.Errorf("document = %q", form.Get("document"))
	}
}

func TestGetChatMemberReportsStatus(t *testing.T) {
	c, _ := newTestClient(t)

	member, err := c.GetChatMember(-1001234567890, 42)
	if err != nil {
		t.Fatalf("get chat member: %v", err)
	}
	if member.Status != "member" {
		t.Errorf("status = %q", member.Status)
	}
	if member.User == nil || member.User.ID != 42 {
		t.Errorf("user = %+v", member.User)
	}
}

func TestCreateInviteLinkForcesJoinRequestMode(t *testing.T) {
	c, fake := newTestClient(t)

	link, err := c.CreateInviteLink(-1001234567890, "Bot Kullanıcıları abc")
	if err != nil {
		t.Fatalf("create invite link: %v", err)
	}
	if link.InviteLink != "https://t.me/+fake" {
		t.Errorf("invite link = %q", link.InviteLink)
	}
	form := fake.lastForm(t, "createChatInviteLink")
	if form.Get("creates_join_request") != "true" {
		t.Errorf("creates_join_request = %q", form.Get("creates_join_request"))
	}
	if form.Get("name") != "Bot Kullanıcıları abc" {
		t.Errorf("name = %q", form.Get("name"))
	}
}
