package telegram

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/sony/gobreaker/v2"

	"github.com/edgard/telebot/internal/config"
)

// ErrCircuitOpen is returned while the breaker rejects calls.
var ErrCircuitOpen = errors.New("telegram circuit breaker is open")

// GuardedSender wraps a Sender with a circuit breaker. While the platform
// keeps failing, calls fail fast instead of waiting on the transport.
// It never retries.
type GuardedSender struct {
	next    Sender
	breaker *gobreaker.CircuitBreaker[any]
}

var _ Sender = (*GuardedSender)(nil)

// NewGuardedSender wraps next. If the breaker is disabled in cfg, next is
// returned unchanged.
func NewGuardedSender(next Sender, cfg config.BreakerConfig, logger *slog.Logger) Sender {
	if !cfg.Enabled {
		return next
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_breaker")

	return &GuardedSender{
		next: next,
		breaker: gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
			Name:        "telegram-sender",
			MaxRequests: cfg.MaxRequests,
			Interval:    cfg.Interval,
			Timeout:     cfg.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				if counts.Requests < cfg.MinRequests {
					return false
				}
				ratio := float64(counts.TotalFailures) / float64(counts.Requests)
				return ratio >= cfg.FailureRatio
			},
			IsSuccessful: isBreakerSuccess,
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			},
		}),
	}
}

// isBreakerSuccess counts only platform-side failures against the breaker.
// A rejected request (bad chat id, bot blocked by user) or a cancelled
// context says nothing about the platform's health.
func isBreakerSuccess(err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, context.Canceled),
		errors.Is(err, bot.ErrorBadRequest),
		errors.Is(err, bot.ErrorForbidden),
		errors.Is(err, bot.ErrorNotFound):
		return true
	default:
		return false
	}
}

func execute[T any](g *GuardedSender, fn func() (T, error)) (T, error) {
	res, err := g.breaker.Execute(func() (any, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		var zero T
		return zero, errors.Join(ErrCircuitOpen, err)
	}
	out, _ := res.(T)
	return out, err
}

// SendMessage implements Sender.
func (g *GuardedSender) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	return execute(g, func() (*models.Message, error) {
		return g.next.SendMessage(ctx, params)
	})
}

// AnswerCallbackQuery implements Sender.
func (g *GuardedSender) AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error) {
	return execute(g, func() (bool, error) {
		return g.next.AnswerCallbackQuery(ctx, params)
	})
}

// GetChat implements Sender.
func (g *GuardedSender) GetChat(ctx context.Context, params *bot.GetChatParams) (*models.ChatFullInfo, error) {
	return execute(g, func() (*models.ChatFullInfo, error) {
		return g.next.GetChat(ctx, params)
	})
}

// State reports the breaker state, for logs and tests.
func (g *GuardedSender) State() gobreaker.State {
	return g.breaker.State()
}
