package stock

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// CollectAPI wraps every payload in {success, result}.
type collectEnvelope struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
}

type collectStock struct {
	Code      string     `json:"code"`
	LastPrice flexNumber `json:"lastprice"`
	Rate      flexNumber `json:"rate"`
	Volume    flexNumber `json:"volume"`
	Maximum   flexNumber `json:"maximum"`
	Minimum   flexNumber `json:"minimum"`
	Opening   flexNumber `json:"opening"`
}

type collectNewsItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishDate string `json:"publishDate"`
	Source      string `json:"source"`
	URL         string `json:"url"`
}

type collectIndex struct {
	Name             string     `json:"name"`
	Price            flexNumber `json:"price"`
	Change           flexNumber `json:"change"`
	ChangePercentage flexNumber `json:"changePercentage"`
	Volume           flexNumber `json:"volume"`
}

func (p *Provider) collectGet(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.collectBase+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "apikey "+p.collectKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("collectapi %s status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}
	var env collectEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("collectapi %s decode: %w", path, err)
	}
	if !env.Success {
		return nil, fmt.Errorf("collectapi %s reported failure", path)
	}
	return env.Result, nil
}

func (p *Provider) collectPrice(ctx context.Context, symbol string) (Price, error) {
	result, err := p.collectGet(ctx, "/hisseSenedi")
	if err != nil {
		return Price{}, err
	}
	var stocks []collectStock
	if err := json.Unmarshal(result, &stocks); err != nil {
		return Price{}, fmt.Errorf("collectapi stocks decode: %w", err)
	}
	for _, s := range stocks {
		if !strings.EqualFold(s.Code, symbol) {
			continue
		}
		price := float64(s.LastPrice)
		return Price{
			Symbol:        symbol,
			Price:         price,
			Change:        float64(s.Rate),
			ChangePercent: float64(s.Rate),
			Volume:        int64(s.Volume),
			High:          float64(s.Maximum),
			Low:           float64(s.Minimum),
			Open:          float64(s.Opening),
			Close:         price,
		}, nil
	}
	return Price{}, fmt.Errorf("symbol %s not in collectapi feed", symbol)
}

func (p *Provider) collectNews(ctx context.Context) ([]NewsItem, error) {
	result, err := p.collectGet(ctx, "/haber")
	if err != nil {
		return nil, err
	}
	var raw []collectNewsItem
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, fmt.Errorf("collectapi news decode: %w", err)
	}
	items := make([]NewsItem, 0, len(raw))
	for _, n := range raw {
		date, err := time.Parse(time.RFC3339, n.PublishDate)
		if err != nil {
			date = time.Now()
		}
		source := n.Source
		if source == "" {
			source = "Ekonomi Haberleri"
		}
		items = append(items, NewsItem{
			Title:   n.Title,
			Content: n.Description,
			Date:    date,
			Source:  source,
			URL:     n.URL,
		})
	}
	return items, nil
}

func (p *Provider) collectSummary(ctx context.Context) (MarketSummary, error) {
	result, err := p.collectGet(ctx, "/borsaEndeksi")
	if err != nil {
		return MarketSummary{}, err
	}
	var indexes []collectIndex
	if err := json.Unmarshal(result, &indexes); err != nil {
		return MarketSummary{}, fmt.Errorf("collectapi indexes decode: %w", err)
	}
	for _, idx := range indexes {
		if idx.Name != "BIST 100" && idx.Name != "XU100" {
			continue
		}
		return MarketSummary{
			Index:         "BIST 100",
			Value:         float64(idx.Price),
			Change:        float64(idx.Change),
			ChangePercent: float64(idx.ChangePercentage),
			Volume:        int64(idx.Volume),
		}, nil
	}
	return MarketSummary{}, fmt.Errorf("BIST 100 not in collectapi feed")
}
