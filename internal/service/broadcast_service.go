package service

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"borsabot/internal/repository"
)

// Sender is the outbound message surface the services need.
// *telegram.Client satisfies it.
type Sender interface {
	SendMessage(chatID int64, text string) (tgbotapi.Message, error)
}

// BroadcastReport is the delivery accounting for one announcement.
type BroadcastReport struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
	Total  int `json:"total"`
}

// BroadcastService fans an announcement out to every registered user.
type BroadcastService struct {
	users  *repository.UserRepository
	sender Sender
	log    zerolog.Logger

	// throttle spaces sends so Telegram's per-bot rate limit is not hit.
	throttle time.Duration
}

func NewBroadcastService(users *repository.UserRepository, sender Sender, log zerolog.Logger) *BroadcastService {
	return &BroadcastService{
		users:    users,
		sender:   sender,
		log:      log.With().Str("component", "broadcast").Logger(),
		throttle: 50 * time.Millisecond,
	}
}

// Broadcast sends text to every user, counting per-recipient outcomes.
// A failed delivery (blocked bot, deleted account) does not stop the
// run.
func (s *BroadcastService) Broadcast(ctx context.Context, text string) (BroadcastReport, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return BroadcastReport{}, fmt.Errorf("list recipients: %w", err)
	}

	report := BroadcastReport{Total: len(users)}
	message := "📢 <b>DUYURU</b>\n\n" + text

	for _, user := range users {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		if _, err := s.sender.SendMessage(user.TelegramID, message); err != nil {
			report.Failed++
			s.log.Warn().Err(err).Int64("user_id", user.TelegramID).Msg("broadcast delivery failed")
		} else {
			report.Sent++
		}
		time.Sleep(s.throttle)
	}

	s.log.Info().Int("sent", report.Sent).Int("failed", report.Failed).Int("total", report.Total).Msg("broadcast finished")
	return report, nil
}
