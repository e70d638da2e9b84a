package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// quoteKeyboard is the button grid under a stock card, laid out two per
// row for phone screens.
func quoteKeyboard(symbol string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Derinlik", encodeCallback(VerbDepth, symbol)),
			tgbotapi.NewInlineKeyboardButtonData("📈 Teorik", encodeCallback(VerbTheoretical, symbol)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Temel", encodeCallback(VerbFundamental, symbol)),
			tgbotapi.NewInlineKeyboardButtonData("🔧 Teknik", encodeCallback(VerbTechnical, symbol)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📰 Haber", encodeCallback(VerbNews, symbol)),
			tgbotapi.NewInlineKeyboardButtonData("⭐ Favorilere Ekle", encodeCallback(VerbAddFavorite, symbol)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Yenile Fiyat", encodeCallback(VerbRefresh, symbol)),
		),
	)
}

func refreshKeyboard(verb, symbol, label string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, encodeCallback(verb, symbol)),
		),
	)
}

// gateKeyboard builds the invite prompt buttons. The join-request URL
// row is present only when an invite link has been configured.
func gateKeyboard(inviteLink string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if inviteLink != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(btnSendJoinRequest, inviteLink),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(btnCheckMembership, VerbCheckMembership),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
