package main

import (
	"context"
	"errors"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/telebot/internal/bot"
	"github.com/edgard/telebot/internal/bot/handlers"
	"github.com/edgard/telebot/internal/bot/tasks"
	"github.com/edgard/telebot/internal/config"
	"github.com/edgard/telebot/internal/logger"
	"github.com/edgard/telebot/internal/server"
	"github.com/edgard/telebot/internal/telegram"
)

// run initializes and starts all components, waits for shutdown and returns
// an exit code: 0 after a clean teardown, 1 on any failure.
func run(ctx context.Context, opts options) int {
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		slog.Error("Failed to load environment file", "path", opts.envFile, "error", err)
		return 1
	}

	cfg, err := config.Load(opts.configPath, opts.flags)
	if err != nil {
		slog.Error("Failed to load configuration", "path", opts.configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	// The dispatcher needs the client to send and the client needs the
	// dispatcher as its default handler, so the handler is bound late.
	var dispatcher *handlers.Dispatcher
	handle := func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		dispatcher.Handle(ctx, b, update)
	}

	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, telegram.Options(cfg.Telegram, log, handle)...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	cfg.Telegram.BotInfo, err = tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", cfg.Telegram.BotInfo.ID, "bot_username", cfg.Telegram.BotInfo.Username)

	dispatcher = handlers.NewDispatcher(handlers.HandlerDeps{
		Logger: log,
		Config: cfg,
		Sender: telegram.NewGuardedSender(tg, cfg.Telegram.Breaker, log),
	})

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tasks.TaskDeps{
		Logger:   log,
		Platform: tg,
		Config:   cfg,
	}))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	var srv bot.Runner
	if cfg.Mode() == config.ModePush {
		srv = server.New(cfg, dispatcher, log)
	}

	app := bot.NewBot(log, cfg, tg, srv, sched)

	log.Info("Starting bot...")
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Bot stopped due to error", "error", err)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}
