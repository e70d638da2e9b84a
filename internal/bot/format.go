package bot

import (
	"fmt"
	"strings"
	"time"

	"borsabot/internal/stock"
)

var istanbul = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		return time.FixedZone("TRT", 3*60*60)
	}
	return loc
}()

func stamp() string {
	return time.Now().In(istanbul).Format("02.01.2006 15:04:05")
}

// formatCompact renders volumes the way traders read them: 1.2M, 850K.
func formatCompact(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.0fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// formatGrouped renders 1234567 as 1.234.567 (Turkish digit grouping).
func formatGrouped(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func signed(v float64) string {
	if v > 0 {
		return fmt.Sprintf("+%.2f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func formatQuoteCard(symbol string, p stock.Price) string {
	return fmt.Sprintf("📊 <b>%s</b>\n\n💰 <b>Mevcut:</b> %.2f TL (%s%%)",
		strings.ToUpper(symbol), p.Price, signed(p.ChangePercent))
}

func formatDepthTable(symbol string, p stock.Price, d stock.Depth) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>%s - PİYASA DERİNLİĞİ</b>\n\n", strings.ToUpper(symbol))
	fmt.Fprintf(&b, "💰 <b>Fiyat:</b> %.2f TL\n", p.Price)
	fmt.Fprintf(&b, "📈 <b>Değişim:</b> %s TL (%s%%)\n", signed(p.Change), signed(p.ChangePercent))
	fmt.Fprintf(&b, "📊 <b>Hacim:</b> %s\n\n", formatGrouped(p.Volume))

	b.WriteString("<code>╔═════╦════════╦════════╦════════╦════════╦═════╗\n")
	b.WriteString("║ EMİR║  ADET  ║  ALIŞ  ║  SATIŞ ║  ADET  ║EMİR ║\n")
	b.WriteString("╠═════╬════════╬════════╬════════╬════════╬═════╣")

	rows := len(d.Bids)
	if len(d.Asks) > rows {
		rows = len(d.Asks)
	}
	if rows > 15 {
		rows = 15
	}
	for i := 0; i < rows; i++ {
		bidOrder, bidQty, bidPrice := "    ", "       ", "       "
		askOrder, askQty, askPrice := "    ", "       ", "       "
		if i < len(d.Bids) {
			bidOrder = fmt.Sprintf("%4d", i+1)
			bidQty = fmt.Sprintf("%7s", formatCompact(d.Bids[i].Quantity))
			bidPrice = fmt.Sprintf("%7.2f", d.Bids[i].Price)
		}
		if i < len(d.Asks) {
			askOrder = fmt.Sprintf("%4d", i+1)
			askQty = fmt.Sprintf("%7s", formatCompact(d.Asks[i].Quantity))
			askPrice = fmt.Sprintf("%7.2f", d.Asks[i].Price)
		}
		fmt.Fprintf(&b, "\n║%s ║%s║%s║%s║%s║%s ║", bidOrder, bidQty, bidPrice, askPrice, askQty, askOrder)
	}
	b.WriteString("\n╚═════╩════════╩════════╩════════╩════════╩═════╝</code>\n\n")

	fmt.Fprintf(&b, "🟢 <b>Alış:</b> %d kademe\n", len(d.Bids))
	fmt.Fprintf(&b, "🔴 <b>Satış:</b> %d kademe\n\n", len(d.Asks))

	var bestBid, bestAsk float64
	if len(d.Bids) > 0 {
		bestBid = d.Bids[0].Price
	}
	if len(d.Asks) > 0 {
		bestAsk = d.Asks[0].Price
	}
	b.WriteString("📊 <b>En İyi Fiyatlar:</b>\n")
	fmt.Fprintf(&b, "• En Yüksek Alış: %.2f TL\n", bestBid)
	fmt.Fprintf(&b, "• En Düşük Satış: %.2f TL\n", bestAsk)
	fmt.Fprintf(&b, "• Spread: %.2f TL\n\n", bestAsk-bestBid)
	fmt.Fprintf(&b, "⏰ %s", stamp())
	return b.String()
}

func formatTheoretical(symbol string, p stock.Price, theoretical float64) string {
	diff := theoretical - p.Price
	diffPercent := diff / p.Price * 100

	signal := "🟡 <b>Nötr Sinyal</b>"
	switch {
	case diffPercent > 1:
		signal = "🟢 <b>Pozitif Sinyal</b>"
	case diffPercent < -1:
		signal = "🔴 <b>Negatif Sinyal</b>"
	}

	return fmt.Sprintf(`📈 <b>%s - TEORİK ANALİZ</b>

💰 <b>Mevcut Fiyat:</b> %.2f TL
🎯 <b>Teorik Fiyat:</b> %.2f TL
📊 <b>Fark:</b> %s TL (%s%%)

📈 <b>Günlük Veriler:</b>
• 🔓 Açılış: %.2f TL
• ⬆️ En Yüksek: %.2f TL
• ⬇️ En Düşük: %.2f TL
• 📊 Hacim: %s

%s

⏰ %s`,
		strings.ToUpper(symbol), p.Price, theoretical, signed(diff), signed(diffPercent),
		p.Open, p.High, p.Low, formatGrouped(p.Volume), signal, stamp())
}

func formatFundamental(symbol string, info stock.CompanyInfo, p stock.Price) string {
	valuation := "🟡 <b>Normal Değerleme</b>"
	switch {
	case info.PERatio > 0 && info.PERatio < 15:
		valuation = "🟢 <b>Değerli Görünüyor</b>"
	case info.PERatio > 25:
		valuation = "🔴 <b>Pahalı Görünüyor</b>"
	}

	return fmt.Sprintf(`📋 <b>%s - TEMEL ANALİZ</b>

🏭 <b>Şirket:</b> %s
🏗️ <b>Sektör:</b> %s
💰 <b>Mevcut Fiyat:</b> %.2f TL

📊 <b>Finansal Oranlar:</b>
• 📈 F/K Oranı: %.2f
• 📉 PD/DD Oranı: %.2f
• 💵 Temettü Verimi: %%%.2f

💹 <b>Piyasa Verileri:</b>
• 🏦 Piyasa Değeri: %.0fM TL
• 📊 Günlük Hacim: %s

%s

⏰ %s`,
		strings.ToUpper(symbol), info.Name, info.Sector, p.Price,
		info.PERatio, info.PBRatio, info.DividendYield,
		info.MarketCap/1_000_000, formatGrouped(p.Volume), valuation, stamp())
}

func formatTechnical(symbol string, t stock.Technical) string {
	trendIcon := "🔴"
	if t.Trend == "Yükseliş" {
		trendIcon = "🟢"
	}
	rsiNote := "🟡 Nötr"
	switch {
	case t.RSI < 30:
		rsiNote = "🟢 Aşırı Satım"
	case t.RSI > 70:
		rsiNote = "🔴 Aşırı Alım"
	}
	recIcon := "🟡"
	switch t.Recommendation {
	case "Güçlü Al", "Al":
		recIcon = "🟢"
	case "Güçlü Sat", "Sat":
		recIcon = "🔴"
	}

	return fmt.Sprintf(`🔧 <b>%s - TEKNİK ANALİZ</b>

💰 <b>Mevcut Fiyat:</b> %.2f TL

📊 <b>Hareketli Ortalamalar:</b>
• SMA 20: %.2f TL
• SMA 50: %.2f TL
• Trend: %s

📈 <b>Teknik Göstergeler:</b>
• RSI: %d %s
• Destek: %.2f TL
• Direnç: %.2f TL

🎯 <b>Öneri:</b> %s %s

⏰ %s`,
		strings.ToUpper(symbol), t.CurrentPrice, t.SMA20, t.SMA50, trendIcon+" "+t.Trend,
		t.RSI, rsiNote, t.Support, t.Resistance, recIcon, t.Recommendation, stamp())
}

func formatNews(symbol string, items []stock.NewsItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📰 <b>%s - ŞİRKET HABERLERİ</b>\n", strings.ToUpper(symbol))
	for i, item := range items {
		fmt.Fprintf(&b, "\n%d. <a href=\"%s\">%s</a>", i+1, item.URL, item.Title)
		if item.Source != "" {
			fmt.Fprintf(&b, "\n   <i>%s</i>", item.Source)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n⏰ %s", stamp())
	return b.String()
}

func formatSummary(s stock.MarketSummary) string {
	return fmt.Sprintf(`🏛 <b>PİYASA ÖZETİ</b>

📊 <b>%s:</b> %s (%s%%)
📈 <b>Hacim:</b> %s TL

⏰ %s`,
		s.Index, formatGrouped(int64(s.Value)), signed(s.ChangePercent),
		formatCompact(s.Volume), stamp())
}

func formatFavorites(entries []favoriteQuote) string {
	var b strings.Builder
	b.WriteString("⭐ <b>FAVORİLERİNİZ</b>\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "\n• <b>%s</b>: %.2f TL (%s%%)", e.Symbol, e.Price.Price, signed(e.Price.ChangePercent))
	}
	fmt.Fprintf(&b, "\n\n⏰ %s", stamp())
	return b.String()
}
