package telegram

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

const requestTimeout = 10 * time.Second

// InviteLink is the subset of createChatInviteLink's result the bot
// and the admin surface care about.
type InviteLink struct {
	InviteLink string `json:"invite_link"`
	ExpireDate int64  `json:"expire_date,omitempty"`
}

// Client is a thin wrapper over the Telegram Bot API. Platform-level
// failures (ok=false) and transport failures both come back as errors
// so callers have a single failure channel.
type Client struct {
	api *tgbotapi.BotAPI
	log zerolog.Logger
}

func New(token string, log zerolog.Logger) (*Client, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: requestTimeout})
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	log.Info().Str("account", api.Self.UserName).Msg("bot authorized")
	return &Client{api: api, log: log}, nil
}

// Username returns the bot's own @username.
func (c *Client) Username() string {
	return c.api.Self.UserName
}

// SendMessage sends an HTML-formatted text message.
func (c *Client) SendMessage(chatID int64, text string) (tgbotapi.Message, error) {
	return c.SendMessageWithMarkup(chatID, text, nil)
}

// SendMessageWithMarkup sends an HTML-formatted text message with an
// optional reply markup.
func (c *Client) SendMessageWithMarkup(chatID int64, text string, markup interface{}) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	sent, err := c.api.Send(msg)
	if err != nil {
		return tgbotapi.Message{}, fmt.Errorf("send message to %d: %w", chatID, err)
	}
	return sent, nil
}

// SendPhoto sends a photo by URL or file id with an HTML caption.
func (c *Client) SendPhoto(chatID int64, fileURL, caption string) (tgbotapi.Message, error) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(fileURL))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeHTML
	sent, err := c.api.Send(photo)
	if err != nil {
		return tgbotapi.Message{}, fmt.Errorf("send photo to %d: %w", chatID, err)
	}
	return sent, nil
}

// SendDocument sends a document by URL or file id with an HTML caption.
func (c *Client) SendDocument(chatID int64, fileURL, caption string) (tgbotapi.Message, error) {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileURL(fileURL))
	doc.Caption = caption
	doc.ParseMode = tgbotapi.ModeHTML
	sent, err := c.api.Send(doc)
	if err != nil {
		return tgbotapi.Message{}, fmt.Errorf("send document to %d: %w", chatID, err)
	}
	return sent, nil
}

func (c *Client) EditMessageText(chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := c.api.Send(edit); err != nil {
		return fmt.Errorf("edit message %d in %d: %w", messageID, chatID, err)
	}
	return nil
}

func (c *Client) DeleteMessage(chatID int64, messageID int) error {
	if _, err := c.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("delete message %d in %d: %w", messageID, chatID, err)
	}
	return nil
}

// AnswerCallback acknowledges a callback query so the client stops
// showing a spinner.
func (c *Client) AnswerCallback(callbackID, text string) error {
	if _, err := c.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		return fmt.Errorf("answer callback %s: %w", callbackID, err)
	}
	return nil
}

// GetChat resolves a chat by numeric id or @username.
func (c *Client) GetChat(chat string) (tgbotapi.Chat, error) {
	cfg := tgbotapi.ChatInfoConfig{}
	if id, err := strconv.ParseInt(chat, 10, 64); err == nil {
		cfg.ChatID = id
	} else {
		cfg.SuperGroupUsername = chat
	}
	info, err := c.api.GetChat(cfg)
	if err != nil {
		return tgbotapi.Chat{}, fmt.Errorf("get chat %s: %w", chat, err)
	}
	return info, nil
}

// GetChatMember reports a user's membership status in a chat.
func (c *Client) GetChatMember(chatID, userID int64) (tgbotapi.ChatMember, error) {
	member, err := c.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{ChatID: chatID, UserID: userID},
	})
	if err != nil {
		return tgbotapi.ChatMember{}, fmt.Errorf("get chat member %d in %d: %w", userID, chatID, err)
	}
	return member, nil
}

// ApproveJoinRequest accepts a pending join request for the channel.
func (c *Client) ApproveJoinRequest(chatID, userID int64) error {
	params := tgbotapi.Params{}
	params.AddNonZero64("chat_id", chatID)
	params.AddNonZero64("user_id", userID)
	if _, err := c.api.MakeRequest("approveChatJoinRequest", params); err != nil {
		return fmt.Errorf("approve join request %d in %d: %w", userID, chatID, err)
	}
	return nil
}

// DeclineJoinRequest rejects a pending join request for the channel.
func (c *Client) DeclineJoinRequest(chatID, userID int64) error {
	params := tgbotapi.Params{}
	params.AddNonZero64("chat_id", chatID)
	params.AddNonZero64("user_id", userID)
	if _, err := c.api.MakeRequest("declineChatJoinRequest", params); err != nil {
		return fmt.Errorf("decline join request %d in %d: %w", userID, chatID, err)
	}
	return nil
}

// CreateInviteLink creates a named invite link, always in join-request
// mode: the stored JoinRequest rows are the authorization signal.
func (c *Client) CreateInviteLink(chatID int64, name string) (InviteLink, error) {
	params := tgbotapi.Params{}
	params.AddNonZero64("chat_id", chatID)
	params.AddNonEmpty("name", name)
	params.AddBool("creates_join_request", true)
	resp, err := c.api.MakeRequest("createChatInviteLink", params)
	if err != nil {
		return InviteLink{}, fmt.Errorf("create invite link for %d: %w", chatID, err)
	}
	var link InviteLink
	if err := json.Unmarshal(resp.Result, &link); err != nil {
		return InviteLink{}, fmt.Errorf("decode invite link: %w", err)
	}
	return link, nil
}

// SetWebhook registers url for push updates, including join requests.
func (c *Client) SetWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("build webhook config: %w", err)
	}
	wh.AllowedUpdates = []string{"message", "callback_query", "chat_join_request", "chat_member"}
	if _, err := c.api.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	c.log.Info().Str("url", url).Msg("webhook registered")
	return nil
}

func (c *Client) WebhookInfo() (tgbotapi.WebhookInfo, error) {
	info, err := c.api.GetWebhookInfo()
	if err != nil {
		return tgbotapi.WebhookInfo{}, fmt.Errorf("get webhook info: %w", err)
	}
	return info, nil
}
