// Package tasks implements the bot's scheduled background checks.
package tasks

import (
	"log/slog"

	"github.com/edgard/telebot/internal/config"
	"github.com/edgard/telebot/internal/telegram"
)

// TaskDeps contains the dependencies shared by scheduled tasks.
type TaskDeps struct {
	Logger   *slog.Logger
	Platform telegram.Platform
	Config   *config.Config
}
