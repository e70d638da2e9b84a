package stock

import "time"

// Price is a day snapshot for a single symbol.
type Price struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	Close         float64 `json:"close"`
}

// Level is one order-book price level.
type Level struct {
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

// Depth is the order book for a symbol: bids descending, asks ascending.
type Depth struct {
	Symbol    string    `json:"symbol"`
	Bids      []Level   `json:"bids"`
	Asks      []Level   `json:"asks"`
	Timestamp time.Time `json:"timestamp"`
}

// CompanyInfo carries the fundamentals shown by the temel analysis.
type CompanyInfo struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Sector        string  `json:"sector"`
	MarketCap     float64 `json:"marketCap"`
	PERatio       float64 `json:"peRatio"`
	PBRatio       float64 `json:"pbRatio"`
	DividendYield float64 `json:"dividendYield"`
	EPS           float64 `json:"eps"`
	BookValue     float64 `json:"bookValue"`
}

// NewsItem is a single company news entry.
type NewsItem struct {
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
	Source  string    `json:"source"`
	URL     string    `json:"url,omitempty"`
}

// Technical bundles the indicators shown by the teknik analysis.
type Technical struct {
	Symbol         string  `json:"symbol"`
	CurrentPrice   float64 `json:"currentPrice"`
	SMA20          float64 `json:"sma20"`
	SMA50          float64 `json:"sma50"`
	RSI            int     `json:"rsi"`
	Support        float64 `json:"support"`
	Resistance     float64 `json:"resistance"`
	Trend          string  `json:"trend"`
	Recommendation string  `json:"recommendation"`
}

// MarketSummary is the BIST 100 index snapshot.
type MarketSummary struct {
	Index         string  `json:"index"`
	Value         float64 `json:"value"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
}
