package testutil

import (
	"github.com/go-telegram/bot/models"

	"github.com/edgard/telebot/internal/config"
)

// Identity of the bot used throughout the tests.
const (
	Token       = "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"
	BotID       = int64(1)
	BotUsername = "test_bot"
)

// Config returns a valid default configuration for the test bot, as it looks
// after GetMe has run.
func Config() *config.Config {
	cfg := config.Default()
	cfg.Telegram.Token = Token
	cfg.Telegram.BotInfo = &models.User{ID: BotID, IsBot: true, Username: BotUsername}
	return cfg
}
