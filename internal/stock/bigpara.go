package stock

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "Mozilla/5.0 (compatible; BorsaBot/1.0)"

type bigParaStock struct {
	Data struct {
		LastPrice             flexNumber `json:"lastPrice"`
		PriceChange           flexNumber `json:"priceChange"`
		PriceChangePercentage flexNumber `json:"priceChangePercentage"`
		Volume                flexNumber `json:"volume"`
		DayHigh               flexNumber `json:"dayHigh"`
		DayLow                flexNumber `json:"dayLow"`
		Open                  flexNumber `json:"open"`
	} `json:"data"`
}

type bigParaInfo struct {
	Data struct {
		Title         string     `json:"title"`
		Sector        string     `json:"sector"`
		MarketCap     flexNumber `json:"marketCap"`
		PE            flexNumber `json:"pe"`
		PB            flexNumber `json:"pb"`
		DividendYield flexNumber `json:"dividendYield"`
		EPS           flexNumber `json:"eps"`
		BookValue     flexNumber `json:"bookValue"`
	} `json:"data"`
}

func (p *Provider) bigParaGet(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bigpara status %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 4<<20))
}

func (p *Provider) bigParaPrice(ctx context.Context, symbol string) (Price, error) {
	body, err := p.bigParaGet(ctx, p.bigBase+"/borsa/hisse/"+symbol)
	if err != nil {
		return Price{}, err
	}
	var payload bigParaStock
	if err := json.Unmarshal(body, &payload); err != nil {
		return Price{}, fmt.Errorf("bigpara price decode: %w", err)
	}
	price := float64(payload.Data.LastPrice)
	if price == 0 {
		return Price{}, fmt.Errorf("bigpara has no price for %s", symbol)
	}
	return Price{
		Symbol:        symbol,
		Price:         price,
		Change:        float64(payload.Data.PriceChange),
		ChangePercent: float64(payload.Data.PriceChangePercentage),
		Volume:        int64(payload.Data.Volume),
		High:          float64(payload.Data.DayHigh),
		Low:           float64(payload.Data.DayLow),
		Open:          float64(payload.Data.Open),
		Close:         price,
	}, nil
}

func (p *Provider) bigParaCompanyInfo(ctx context.Context, symbol string) (CompanyInfo, error) {
	body, err := p.bigParaGet(ctx, p.bigBase+"/borsa/hisse/"+symbol+"/info")
	if err != nil {
		return CompanyInfo{}, err
	}
	var payload bigParaInfo
	if err := json.Unmarshal(body, &payload); err != nil {
		return CompanyInfo{}, fmt.Errorf("bigpara info decode: %w", err)
	}
	if payload.Data.Title == "" {
		return CompanyInfo{}, fmt.Errorf("bigpara has no info for %s", symbol)
	}
	sector := payload.Data.Sector
	if sector == "" {
		sector = "Bilinmiyor"
	}
	return CompanyInfo{
		Symbol:        symbol,
		Name:          payload.Data.Title,
		Sector:        sector,
		MarketCap:     float64(payload.Data.MarketCap),
		PERatio:       float64(payload.Data.PE),
		PBRatio:       float64(payload.Data.PB),
		DividendYield: float64(payload.Data.DividendYield),
		EPS:           float64(payload.Data.EPS),
		BookValue:     float64(payload.Data.BookValue),
	}, nil
}

func (p *Provider) bigParaSummary(ctx context.Context) (MarketSummary, error) {
	body, err := p.bigParaGet(ctx, p.bigBase+"/borsa/endeks/XU100")
	if err != nil {
		return MarketSummary{}, err
	}
	var payload bigParaStock
	if err := json.Unmarshal(body, &payload); err != nil {
		return MarketSummary{}, fmt.Errorf("bigpara index decode: %w", err)
	}
	value := float64(payload.Data.LastPrice)
	if value == 0 {
		return MarketSummary{}, fmt.Errorf("bigpara has no XU100 value")
	}
	return MarketSummary{
		Index:         "BIST 100",
		Value:         value,
		Change:        float64(payload.Data.PriceChange),
		ChangePercent: float64(payload.Data.PriceChangePercentage),
		Volume:        int64(payload.Data.Volume),
	}, nil
}

// bigParaNews scrapes the symbol's public news page.
func (p *Provider) bigParaNews(ctx context.Context, symbol string) ([]NewsItem, error) {
	url := p.bigWeb + "/borsa/hisse-haberleri/" + strings.ToLower(symbol) + "/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bigpara news status %d for %s", resp.StatusCode, symbol)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("bigpara news parse: %w", err)
	}

	var items []NewsItem
	doc.Find("ul.newsList li a, div.news-list a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Find("h3, span.title").First().Text())
		if title == "" {
			title = strings.TrimSpace(sel.Text())
		}
		if title == "" {
			return true
		}
		href, _ := sel.Attr("href")
		if href != "" && !strings.HasPrefix(href, "http") {
			href = p.bigWeb + href
		}
		items = append(items, NewsItem{
			Title:  title,
			Date:   time.Now(),
			Source: "BigPara",
			URL:    href,
		})
		return len(items) < 5
	})
	return items, nil
}
