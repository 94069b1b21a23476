package telegram

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"

	"github.com/edgard/telebot/internal/config"
	"github.com/edgard/telebot/internal/logger"
)

// ErrEmptyToken is returned when no bot token is configured.
var ErrEmptyToken = errors.New("telegram bot token cannot be empty")

// allowedUpdates limits polling to what the dispatcher reacts to.
// Join and leave events arrive as messages.
var allowedUpdates = bot.AllowedUpdates{
	"message",
	"callback_query",
}

// AllowedUpdates returns the update types the bot subscribes to, for
// SetWebhook.
func AllowedUpdates() []string {
	return append([]string(nil), allowedUpdates...)
}

// NewTelegramBot creates a new Telegram bot instance using the go-telegram/bot library.
func NewTelegramBot(token string, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created successfully", "token", config.RedactToken(token))
	return b, nil
}

// Options builds the client options: the default handler receives every
// update, wrapped by the logging middleware; polling errors are logged.
func Options(cfg config.TelegramConfig, log *slog.Logger, handler bot.HandlerFunc) []bot.Option {
	errLog := log.With("component", "telegram_transport")

	opts := []bot.Option{
		bot.WithDefaultHandler(handler),
		bot.WithMiddlewares(logger.Middleware(log)),
		bot.WithErrorsHandler(func(err error) {
			errLog.Error("Telegram transport error", "error", err)
		}),
		bot.WithAllowedUpdates(allowedUpdates),
		bot.WithWorkers(cfg.Workers),
		bot.WithCheckInitTimeout(cfg.Timeout),
	}
	if cfg.ServerURL != "" {
		opts = append(opts, bot.WithServerURL(cfg.ServerURL))
	}
	return opts
}
