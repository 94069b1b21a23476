// Package bot wires the update transport, the HTTP surface and the scheduler
// together and manages their lifecycle.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"golang.org/x/sync/errgroup"

	"github.com/edgard/telebot/internal/config"
	"github.com/edgard/telebot/internal/telegram"
)

// ErrTeardown is returned by Run when the active delivery mode could not be
// torn down cleanly.
var ErrTeardown = errors.New("transport teardown failed")

// Runner is a component that runs until its context is cancelled. The push
// mode HTTP server is one.
type Runner interface {
	Run(ctx context.Context) error
}

// Bot owns the lifecycle of the bot's components.
type Bot struct {
	logger    *slog.Logger
	cfg       *config.Config
	platform  telegram.Platform
	server    Runner
	scheduler *Scheduler
}

// NewBot creates the orchestrator. server is only used in push mode and
// scheduler may be nil.
func NewBot(
	logger *slog.Logger,
	cfg *config.Config,
	platform telegram.Platform,
	server Runner,
	scheduler *Scheduler,
) *Bot {
	return &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		cfg:       cfg,
		platform:  platform,
		server:    server,
		scheduler: scheduler,
	}
}

// Run starts the selected delivery mode and the scheduler and blocks until
// ctx is cancelled or a component fails. On the way out it tears the
// delivery mode down; a failed teardown is reported as ErrTeardown.
func (b *Bot) Run(ctx context.Context) error {
	mode := b.cfg.Mode()
	if b.cfg.Transport.UseWebhook && mode == config.ModePoll {
		b.logger.Warn("Webhook requested but no webhook URL configured, using polling")
	}
	if mode == config.ModePush && b.server == nil {
		return fmt.Errorf("push mode requires an HTTP server")
	}
	b.logger.Info("Starting bot orchestrator", "mode", string(mode))

	g, gCtx := errgroup.WithContext(ctx)

	switch mode {
	case config.ModePush:
		b.registerWebhook(gCtx)
		g.Go(func() error {
			b.logger.Info("Listening for pushed updates", "path", "/bot<redacted>")
			if err := b.server.Run(gCtx); err != nil {
				return fmt.Errorf("webhook server: %w", err)
			}
			return nil
		})
	default:
		g.Go(func() error {
			b.logger.Info("Polling for updates")
			b.platform.Start(gCtx)
			b.logger.Info("Polling stopped")

			if gCtx.Err() == nil {
				return fmt.Errorf("telegram polling stopped unexpectedly")
			}
			return nil
		})
	}

	if b.scheduler != nil {
		g.Go(func() error {
			if err := b.scheduler.Start(gCtx); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}

			<-gCtx.Done()
			if err := b.scheduler.Stop(); err != nil {
				b.logger.Error("Error stopping scheduler", "error", err)
			}
			return nil
		})
	}

	runErr := g.Wait()
	if runErr != nil && errors.Is(runErr, context.Canceled) {
		runErr = nil
	}
	if runErr != nil {
		b.logger.Error("Bot orchestrator stopped due to error", "error", runErr)
	}

	if err := b.teardown(ctx, mode); err != nil {
		return errors.Join(runErr, err)
	}
	if runErr != nil {
		return runErr
	}

	b.logger.Info("Bot orchestrator stopped gracefully")
	return nil
}

// registerWebhook points the platform at our endpoint. A failure is logged
// and the server keeps running, so a later manual registration still works.
func (b *Bot) registerWebhook(ctx context.Context) {
	params := &tgbot.SetWebhookParams{
		URL:                b.cfg.WebhookURL(),
		SecretToken:        b.cfg.Transport.WebhookSecret,
		DropPendingUpdates: b.cfg.Transport.DropPendingUpdates,
		AllowedUpdates:     telegram.AllowedUpdates(),
	}
	if _, err := b.platform.SetWebhook(ctx, params); err != nil {
		b.logger.Error("Failed to register webhook", "error", err, "base_url", b.cfg.Transport.WebhookURL)
		return
	}
	b.logger.Info("Webhook registered", "base_url", b.cfg.Transport.WebhookURL)
}

// teardown cancels the push subscription. Polling needs no teardown: the
// loop has already stopped with its context.
func (b *Bot) teardown(ctx context.Context, mode config.Mode) error {
	if mode != config.ModePush {
		return nil
	}

	tctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.cfg.Transport.TeardownTimeout)
	defer cancel()

	if _, err := b.platform.DeleteWebhook(tctx, &tgbot.DeleteWebhookParams{}); err != nil {
		b.logger.Error("Failed to delete webhook", "error", err)
		return fmt.Errorf("%w: delete webhook: %w", ErrTeardown, err)
	}
	b.logger.Info("Webhook deleted")
	return nil
}
