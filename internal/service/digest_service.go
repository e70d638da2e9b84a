package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"borsabot/internal/repository"
	"borsabot/internal/stock"
)

// PriceSource serves current quotes for the digest.
// *stock.Provider satisfies it.
type PriceSource interface {
	Price(ctx context.Context, symbol string) stock.Price
}

// DigestService sends each user a morning summary of their favorites.
type DigestService struct {
	users     *repository.UserRepository
	favorites *repository.FavoriteRepository
	prices    PriceSource
	sender    Sender
	log       zerolog.Logger
	throttle  time.Duration
}

func NewDigestService(
	users *repository.UserRepository,
	favorites *repository.FavoriteRepository,
	prices PriceSource,
	sender Sender,
	log zerolog.Logger,
) *DigestService {
	return &DigestService{
		users:     users,
		favorites: favorites,
		prices:    prices,
		sender:    sender,
		log:       log.With().Str("component", "digest").Logger(),
		throttle:  50 * time.Millisecond,
	}
}

// SendDaily delivers the favorites digest to every user who keeps a
// non-empty favorites list. Users without favorites are skipped.
func (s *DigestService) SendDaily(ctx context.Context) error {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list digest recipients: %w", err)
	}

	var sent, failed int
	for _, user := range users {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		favs, err := s.favorites.ListByUser(ctx, user.TelegramID)
		if err != nil {
			s.log.Warn().Err(err).Int64("user_id", user.TelegramID).Msg("load favorites for digest")
			continue
		}
		if len(favs) == 0 {
			continue
		}

		var b strings.Builder
		b.WriteString("🌅 <b>Günlük Favori Özeti</b>\n")
		for _, f := range favs {
			p := s.prices.Price(ctx, f.StockCode)
			sign := ""
			if p.ChangePercent > 0 {
				sign = "+"
			}
			fmt.Fprintf(&b, "\n• <b>%s</b>: %.2f TL (%s%.2f%%)", f.StockCode, p.Price, sign, p.ChangePercent)
		}

		if _, err := s.sender.SendMessage(user.TelegramID, b.String()); err != nil {
			failed++
			s.log.Warn().Err(err).Int64("user_id", user.TelegramID).Msg("digest delivery failed")
		} else {
			sent++
		}
		time.Sleep(s.throttle)
	}

	s.log.Info().Int("sent", sent).Int("failed", failed).Msg("daily digest finished")
	return nil
}
