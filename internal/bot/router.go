package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"borsabot/internal/model"
	"borsabot/internal/repository"
	"borsabot/internal/stock"
)

// Messenger is the outbound Telegram surface the router needs.
// *telegram.Client satisfies it.
type Messenger interface {
	SendMessage(chatID int64, text string) (tgbotapi.Message, error)
	SendMessageWithMarkup(chatID int64, text string, markup interface{}) (tgbotapi.Message, error)
	EditMessageText(chatID int64, messageID int, text string) error
	DeleteMessage(chatID int64, messageID int) error
	AnswerCallback(callbackID, text string) error
}

// StockData serves market data for the analysis handlers.
// *stock.Provider satisfies it.
type StockData interface {
	Price(ctx context.Context, symbol string) stock.Price
	Depth(ctx context.Context, symbol string) stock.Depth
	CompanyInfo(ctx context.Context, symbol string) stock.CompanyInfo
	News(ctx context.Context, symbol string) []stock.NewsItem
	Technical(ctx context.Context, symbol string) stock.Technical
	Summary(ctx context.Context) stock.MarketSummary
}

// Router dispatches incoming Telegram updates to command, callback and
// join-request handlers, gating everything except /start behind channel
// membership.
type Router struct {
	msg       Messenger
	stocks    StockData
	users     *repository.UserRepository
	settings  *repository.SettingRepository
	joins     *repository.JoinRequestRepository
	favorites *repository.FavoriteRepository
	log       zerolog.Logger

	// welcomeOnJoin makes the bot message users right after their join
	// request is recorded instead of waiting for their next /start.
	welcomeOnJoin bool
}

func NewRouter(
	msg Messenger,
	stocks StockData,
	users *repository.UserRepository,
	settings *repository.SettingRepository,
	joins *repository.JoinRequestRepository,
	favorites *repository.FavoriteRepository,
	welcomeOnJoin bool,
	log zerolog.Logger,
) *Router {
	return &Router{
		msg:           msg,
		stocks:        stocks,
		users:         users,
		settings:      settings,
		joins:         joins,
		favorites:     favorites,
		welcomeOnJoin: welcomeOnJoin,
		log:           log.With().Str("component", "router").Logger(),
	}
}

// HandleUpdate routes a single update. It never returns an error: the
// webhook must acknowledge Telegram regardless of what happened inside,
// so failures are logged and swallowed here.
func (r *Router) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.ChatJoinRequest != nil:
		r.handleJoinRequest(ctx, update.ChatJoinRequest)
	case update.CallbackQuery != nil:
		r.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		r.handleMessage(ctx, update.Message)
	}
}

func (r *Router) handleJoinRequest(ctx context.Context, req *tgbotapi.ChatJoinRequest) {
	if _, err := r.users.UpsertFromTelegram(ctx, req.From.ID, req.From.FirstName, req.From.LastName, req.From.UserName); err != nil {
		r.log.Error().Err(err).Int64("user_id", req.From.ID).Msg("upsert user on join request")
		return
	}
	record := model.JoinRequest{
		UserID:    req.From.ID,
		ChatID:    req.Chat.ID,
		Username:  req.From.UserName,
		FirstName: req.From.FirstName,
		LastName:  req.From.LastName,
		Bio:       req.Bio,
	}
	if _, err := r.joins.Upsert(ctx, record); err != nil {
		r.log.Error().Err(err).Int64("user_id", req.From.ID).Msg("record join request")
		return
	}
	if err := r.users.UpdateMembership(ctx, req.From.ID, true); err != nil {
		r.log.Error().Err(err).Int64("user_id", req.From.ID).Msg("promote membership")
	}
	r.log.Info().Int64("user_id", req.From.ID).Int64("chat_id", req.Chat.ID).Msg("join request recorded")

	if r.welcomeOnJoin {
		if _, err := r.msg.SendMessage(req.From.ID, msgJoinReceived); err != nil {
			r.log.Debug().Err(err).Int64("user_id", req.From.ID).Msg("welcome message not delivered")
		}
	}
}

func (r *Router) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if strings.HasPrefix(text, "/start") {
		r.handleStart(ctx, msg.From, chatID)
		return
	}

	ok, err := r.ensureMember(ctx, userID)
	if err != nil {
		r.log.Error().Err(err).Int64("user_id", userID).Msg("membership check")
	}
	if !ok {
		r.sendGatePrompt(ctx, chatID)
		return
	}

	r.dispatchCommand(ctx, userID, chatID, text)
}

// handleStart registers the user and either opens the main menu or, when
// no join request is on file for the configured channel, shows the
// invite prompt.
func (r *Router) handleStart(ctx context.Context, from *tgbotapi.User, chatID int64) {
	// A failed upsert must not leave /start silent; the membership
	// check below falls back to the invite prompt.
	if _, err := r.users.UpsertFromTelegram(ctx, from.ID, from.FirstName, from.LastName, from.UserName); err != nil {
		r.log.Error().Err(err).Int64("user_id", from.ID).Msg("upsert user on start")
	}

	ok, err := r.ensureMember(ctx, from.ID)
	if err != nil {
		r.log.Error().Err(err).Int64("user_id", from.ID).Msg("membership check on start")
	}
	if !ok {
		r.sendGatePrompt(ctx, chatID)
		return
	}
	r.sendMainMenu(chatID)
}

// ensureMember reports whether the user may use the bot. A user counts
// as a member when flagged so already, or when a join request for the
// configured channel is on file; in the latter case the flag is
// promoted and stays set from then on.
func (r *Router) ensureMember(ctx context.Context, userID int64) (bool, error) {
	user, err := r.users.FindByTelegramID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user != nil && user.IsMember {
		return true, nil
	}

	channelID, err := r.mainChannelID(ctx)
	if err != nil || channelID == 0 {
		return false, err
	}
	join, err := r.joins.Find(ctx, userID, channelID)
	if err != nil {
		return false, err
	}
	if join == nil {
		return false, nil
	}
	if err := r.users.UpdateMembership(ctx, userID, true); err != nil {
		return true, err
	}
	return true, nil
}

func (r *Router) mainChannelID(ctx context.Context) (int64, error) {
	raw, err := r.settings.Get(ctx, model.SettingMainChannelID)
	if err != nil || raw == "" {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		r.log.Warn().Str("value", raw).Msg("main channel id setting is not numeric")
		return 0, nil
	}
	return id, nil
}

func (r *Router) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Telegram keeps the button spinner until the query is answered, so
	// acknowledge exactly once up front no matter how handling goes.
	if err := r.msg.AnswerCallback(cb.ID, ""); err != nil {
		r.log.Debug().Err(err).Str("callback_id", cb.ID).Msg("answer callback")
	}
	if cb.Message == nil || cb.From == nil {
		return
	}
	decoded, ok := decodeCallback(cb.Data)
	if !ok {
		r.log.Warn().Str("data", cb.Data).Msg("unrecognized callback data")
		return
	}
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	if decoded.Verb == VerbCheckMembership {
		r.checkMembershipCallback(ctx, userID, chatID)
		return
	}

	switch decoded.Verb {
	case VerbDepth:
		r.depthAnalysis(ctx, chatID, decoded.Symbol)
	case VerbTheoretical:
		r.theoreticalAnalysis(ctx, chatID, decoded.Symbol)
	case VerbFundamental:
		r.fundamentalAnalysis(ctx, chatID, decoded.Symbol)
	case VerbTechnical:
		r.technicalAnalysis(ctx, chatID, decoded.Symbol)
	case VerbNews:
		r.newsFeed(ctx, chatID, decoded.Symbol)
	case VerbAddFavorite:
		r.addFavorite(ctx, userID, chatID, decoded.Symbol)
	case VerbRefresh:
		r.quoteCard(ctx, chatID, decoded.Symbol)
	}
}

// checkMembershipCallback re-runs the gate for the "Üyeliğimi Kontrol Et"
// button and reports the outcome in chat.
func (r *Router) checkMembershipCallback(ctx context.Context, userID, chatID int64) {
	ok, err := r.ensureMember(ctx, userID)
	if err != nil {
		r.log.Error().Err(err).Int64("user_id", userID).Msg("membership check from callback")
	}
	if !ok {
		r.gatePromptWith(ctx, chatID, msgStillPending)
		return
	}
	r.send(chatID, msgApproved)
	r.sendMainMenu(chatID)
}
