package bot

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"borsabot/internal/model"
)

// symbolPattern matches a bare BIST ticker sent as a plain message.
var symbolPattern = regexp.MustCompile(`^[A-Z0-9]{2,6}$`)

type commandFunc func(ctx context.Context, r *Router, userID, chatID int64, symbol string)

type commandSpec struct {
	needsSymbol bool
	usage       string
	run         commandFunc
}

// commandTable maps the slash-command name (lowercase, bot mention
// stripped) to its handler.
var commandTable = map[string]commandSpec{
	"derinlik": {needsSymbol: true, usage: "/derinlik THYAO", run: func(ctx context.Context, r *Router, _, chatID int64, s string) {
		r.depthAnalysis(ctx, chatID, s)
	}},
	"teorik": {needsSymbol: true, usage: "/teorik THYAO", run: func(ctx context.Context, r *Router, _, chatID int64, s string) {
		r.theoreticalAnalysis(ctx, chatID, s)
	}},
	"temel": {needsSymbol: true, usage: "/temel THYAO", run: func(ctx context.Context, r *Router, _, chatID int64, s string) {
		r.fundamentalAnalysis(ctx, chatID, s)
	}},
	"teknik": {needsSymbol: true, usage: "/teknik THYAO", run: func(ctx context.Context, r *Router, _, chatID int64, s string) {
		r.technicalAnalysis(ctx, chatID, s)
	}},
	"haber": {needsSymbol: true, usage: "/haber THYAO", run: func(ctx context.Context, r *Router, _, chatID int64, s string) {
		r.newsFeed(ctx, chatID, s)
	}},
	"favori": {run: func(ctx context.Context, r *Router, userID, chatID int64, _ string) {
		r.listFavorites(ctx, userID, chatID)
	}},
	"favoriekle": {needsSymbol: true, usage: "/favoriekle THYAO", run: func(ctx context.Context, r *Router, userID, chatID int64, s string) {
		r.addFavorite(ctx, userID, chatID, s)
	}},
	"favoricikar": {needsSymbol: true, usage: "/favoricikar THYAO", run: func(ctx context.Context, r *Router, userID, chatID int64, s string) {
		r.removeFavorite(ctx, userID, chatID, s)
	}},
	"favorisifirla": {run: func(ctx context.Context, r *Router, userID, chatID int64, _ string) {
		r.clearFavorites(ctx, userID, chatID)
	}},
	"ozet": {run: func(ctx context.Context, r *Router, _, chatID int64, _ string) {
		r.marketSummary(ctx, chatID)
	}},
}

// dispatchCommand handles everything past the membership gate: slash
// commands via the table, bare tickers, and the help fallback.
func (r *Router) dispatchCommand(ctx context.Context, userID, chatID int64, text string) {
	if strings.HasPrefix(text, "/") {
		fields := strings.Fields(text)
		name := strings.TrimPrefix(fields[0], "/")
		name, _, _ = strings.Cut(name, "@")
		name = strings.ToLower(name)

		spec, ok := commandTable[name]
		if !ok {
			r.send(chatID, msgHelp)
			return
		}
		symbol := ""
		if len(fields) > 1 {
			symbol = strings.ToUpper(fields[1])
		}
		if spec.needsSymbol && symbol == "" {
			r.send(chatID, fmt.Sprintf("💡 <b>Kullanım:</b> <code>%s</code>", spec.usage))
			return
		}
		spec.run(ctx, r, userID, chatID, symbol)
		return
	}

	if symbolPattern.MatchString(text) {
		r.quoteCard(ctx, chatID, text)
		return
	}
	r.send(chatID, msgHelp)
}

func (r *Router) send(chatID int64, text string) {
	if _, err := r.msg.SendMessage(chatID, text); err != nil {
		r.log.Error().Err(err).Int64("chat_id", chatID).Msg("send message")
	}
}

func (r *Router) sendMainMenu(chatID int64) {
	r.send(chatID, msgMainMenu)
}

// sendGatePrompt shows the invite prompt for users without a recorded
// join request.
func (r *Router) sendGatePrompt(ctx context.Context, chatID int64) {
	r.gatePromptWith(ctx, chatID, msgGateIntro)
}

func (r *Router) gatePromptWith(ctx context.Context, chatID int64, base string) {
	link, err := r.settings.Get(ctx, model.SettingInviteLink)
	if err != nil {
		r.log.Error().Err(err).Msg("read invite link setting")
	}
	text := base
	if link == "" {
		text += msgNoInviteLink
	}
	if _, err := r.msg.SendMessageWithMarkup(chatID, text, gateKeyboard(link)); err != nil {
		r.log.Error().Err(err).Int64("chat_id", chatID).Msg("send gate prompt")
	}
}
