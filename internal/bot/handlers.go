package bot

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"borsabot/internal/stock"
)

// quoteCard sends the compact price card with the analysis button grid.
// Used for bare tickers and the yenile callback.
func (r *Router) quoteCard(ctx context.Context, chatID int64, symbol string) {
	price := r.stocks.Price(ctx, symbol)
	if _, err := r.msg.SendMessageWithMarkup(chatID, formatQuoteCard(symbol, price), quoteKeyboard(symbol)); err != nil {
		r.log.Error().Err(err).Str("symbol", symbol).Msg("send quote card")
		r.send(chatID, fmt.Sprintf("❌ %s için veri alınırken bir hata oluştu.", symbol))
	}
}

// withLoading wraps the analysis flow: transient progress message,
// fetch, delete the progress message, send the result. The delete can
// fail without consequence, the result just lands below the notice.
func (r *Router) withLoading(chatID int64, notice string, build func() (string, tgbotapi.InlineKeyboardMarkup)) {
	loading, lerr := r.msg.SendMessage(chatID, notice)
	if lerr != nil {
		r.log.Debug().Err(lerr).Int64("chat_id", chatID).Msg("send loading notice")
	}

	text, markup := build()

	if lerr == nil {
		if err := r.msg.DeleteMessage(chatID, loading.MessageID); err != nil {
			r.log.Debug().Err(err).Msg("delete loading notice")
		}
	}
	if _, err := r.msg.SendMessageWithMarkup(chatID, text, markup); err != nil {
		r.log.Error().Err(err).Int64("chat_id", chatID).Msg("send analysis")
		if lerr == nil {
			_ = r.msg.EditMessageText(chatID, loading.MessageID, "❌ Bir hata oluştu. Lütfen tekrar deneyin.")
		}
	}
}

func (r *Router) depthAnalysis(ctx context.Context, chatID int64, symbol string) {
	r.withLoading(chatID, fmt.Sprintf("📊 %s derinlik analizi hazırlanıyor...", symbol), func() (string, tgbotapi.InlineKeyboardMarkup) {
		depth := r.stocks.Depth(ctx, symbol)
		price := r.stocks.Price(ctx, symbol)
		return formatDepthTable(symbol, price, depth), refreshKeyboard(VerbDepth, symbol, "🔄 Derinlik Yenile")
	})
}

func (r *Router) theoreticalAnalysis(ctx context.Context, chatID int64, symbol string) {
	r.withLoading(chatID, fmt.Sprintf("📈 %s teorik analiz hazırlanıyor...", symbol), func() (string, tgbotapi.InlineKeyboardMarkup) {
		price := r.stocks.Price(ctx, symbol)
		theoretical := price.Price * (1 + rand.Float64()*0.02 - 0.01)
		return formatTheoretical(symbol, price, theoretical), refreshKeyboard(VerbTheoretical, symbol, "🔄 Teorik Yenile")
	})
}

func (r *Router) fundamentalAnalysis(ctx context.Context, chatID int64, symbol string) {
	r.withLoading(chatID, fmt.Sprintf("📋 %s temel analiz hazırlanıyor...", symbol), func() (string, tgbotapi.InlineKeyboardMarkup) {
		info := r.stocks.CompanyInfo(ctx, symbol)
		price := r.stocks.Price(ctx, symbol)
		return formatFundamental(symbol, info, price), refreshKeyboard(VerbFundamental, symbol, "🔄 Temel Yenile")
	})
}

func (r *Router) technicalAnalysis(ctx context.Context, chatID int64, symbol string) {
	r.withLoading(chatID, fmt.Sprintf("🔧 %s teknik analiz hazırlanıyor...", symbol), func() (string, tgbotapi.InlineKeyboardMarkup) {
		tech := r.stocks.Technical(ctx, symbol)
		return formatTechnical(symbol, tech), refreshKeyboard(VerbTechnical, symbol, "🔄 Teknik Yenile")
	})
}

func (r *Router) newsFeed(ctx context.Context, chatID int64, symbol string) {
	r.withLoading(chatID, fmt.Sprintf("📰 %s haberleri getiriliyor...", symbol), func() (string, tgbotapi.InlineKeyboardMarkup) {
		items := r.stocks.News(ctx, symbol)
		return formatNews(symbol, items), refreshKeyboard(VerbNews, symbol, "🔄 Haberleri Yenile")
	})
}

func (r *Router) marketSummary(ctx context.Context, chatID int64) {
	summary := r.stocks.Summary(ctx)
	r.send(chatID, formatSummary(summary))
}

type favoriteQuote struct {
	Symbol string
	Price  stock.Price
}

func (r *Router) listFavorites(ctx context.Context, userID, chatID int64) {
	favs, err := r.favorites.ListByUser(ctx, userID)
	if err != nil {
		r.log.Error().Err(err).Int64("user_id", userID).Msg("list favorites")
		r.send(chatID, "❌ Bir hata oluştu. Lütfen tekrar deneyin.")
		return
	}
	if len(favs) == 0 {
		r.send(chatID, msgFavoritesEmpty)
		return
	}
	entries := make([]favoriteQuote, 0, len(favs))
	for _, f := range favs {
		entries = append(entries, favoriteQuote{Symbol: f.StockCode, Price: r.stocks.Price(ctx, f.StockCode)})
	}
	r.send(chatID, formatFavorites(entries))
}

func (r *Router) addFavorite(ctx context.Context, userID, chatID int64, symbol string) {
	symbol = strings.ToUpper(symbol)
	if err := r.favorites.Add(ctx, userID, symbol); err != nil {
		r.log.Error().Err(err).Int64("user_id", userID).Str("symbol", symbol).Msg("add favorite")
		r.send(chatID, "❌ Bir hata oluştu. Lütfen tekrar deneyin.")
		return
	}
	r.send(chatID, fmt.Sprintf("⭐ <b>%s</b> favorilere eklendi.", symbol))
}

func (r *Router) removeFavorite(ctx context.Context, userID, chatID int64, symbol string) {
	symbol = strings.ToUpper(symbol)
	if err := r.favorites.Remove(ctx, userID, symbol); err != nil {
		r.log.Error().Err(err).Int64("user_id", userID).Str("symbol", symbol).Msg("remove favorite")
		r.send(chatID, "❌ Bir hata oluştu. Lütfen tekrar deneyin.")
		return
	}
	r.send(chatID, fmt.Sprintf("🗑 <b>%s</b> favorilerden çıkarıldı.", symbol))
}

func (r *Router) clearFavorites(ctx context.Context, userID, chatID int64) {
	if err := r.favorites.Clear(ctx, userID); err != nil {
		r.log.Error().Err(err).Int64("user_id", userID).Msg("clear favorites")
		r.send(chatID, "❌ Bir hata oluştu. Lütfen tekrar deneyin.")
		return
	}
	r.send(chatID, "🧹 Favori listeniz temizlendi.")
}
