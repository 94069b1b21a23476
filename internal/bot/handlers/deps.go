package handlers

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/edgard/telebot/internal/config"
	"github.com/edgard/telebot/internal/telegram"
)

// HandlerDeps provides dependencies for the update handlers.
type HandlerDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Sender telegram.Sender

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
	// Rand returns a uniform integer in [0, n). Defaults to math/rand/v2.
	Rand func(n int) int
}

func (d HandlerDeps) withDefaults() HandlerDeps {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.Rand == nil {
		d.Rand = rand.IntN
	}
	return d
}
