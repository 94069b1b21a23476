// Package handlers routes inbound Telegram updates to the bot's command,
// free-text, callback and membership handlers and sends their replies.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/telebot/internal/domain/model"
)

// ErrHandlerPanic is returned by Dispatch when a handler panicked.
var ErrHandlerPanic = errors.New("handler panicked")

// Dispatcher selects at most one handler per update and sends its replies.
// It keeps no state between updates and is safe for concurrent use.
type Dispatcher struct {
	deps      HandlerDeps
	commands  []Command
	keywords  []KeywordRule
	callbacks []CallbackRoute
}

// NewDispatcher builds the route tables from deps.
func NewDispatcher(deps HandlerDeps) *Dispatcher {
	deps = deps.withDefaults()
	return &Dispatcher{
		deps:      deps,
		commands:  Commands(deps),
		keywords:  KeywordRules(deps),
		callbacks: CallbackRoutes(deps),
	}
}

// Handle adapts Dispatch to the client library's handler signature for the
// polling path. Errors have already been logged by Dispatch.
func (d *Dispatcher) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	_ = d.Dispatch(ctx, update)
}

// Dispatch handles one update. Send failures are logged and swallowed; the
// only error returned is ErrHandlerPanic.
func (d *Dispatcher) Dispatch(ctx context.Context, update *models.Update) (err error) {
	u := model.FromTelegram(update)

	defer func() {
		if r := recover(); r != nil {
			d.deps.Logger.ErrorContext(ctx, "Recovered from handler panic",
				"update_id", u.ID, "kind", u.Kind.String(), "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()

	if u.Kind != model.KindIgnored && u.Kind != model.KindCallback && !u.HasChat() {
		d.deps.Logger.WarnContext(ctx, "Update has no chat, ignoring", "update_id", u.ID, "kind", u.Kind.String())
		return nil
	}

	switch u.Kind {
	case model.KindCommand:
		d.handleCommand(ctx, u)
	case model.KindText:
		d.handleText(ctx, u)
	case model.KindCallback:
		d.handleCallback(ctx, u)
	case model.KindMembership:
		d.handleMembership(ctx, u)
	default:
		d.deps.Logger.DebugContext(ctx, "Ignoring update", "update_id", u.ID)
	}
	return nil
}

func (d *Dispatcher) request(u model.Update) Request {
	return Request{
		Chat:   u.Chat,
		Sender: u.Sender,
		Text:   u.Text,
		Now:    d.deps.Clock(),
	}
}

func (d *Dispatcher) handleCommand(ctx context.Context, u model.Update) {
	botUsername := d.deps.Config.BotUsername()
	for _, cmd := range d.commands {
		arg, ok := cmd.Match(u.Text, botUsername)
		if !ok {
			continue
		}

		log := d.deps.Logger.With("handler", cmd.Name)
		log.InfoContext(ctx, "Handling command", "command", cmd.Name, "chat_id", u.Chat.ID, "user_id", u.Sender.ID)

		req := d.request(u)
		req.Arg = arg
		if cmd.NeedsChatDetails {
			req.Chat = d.chatDetails(ctx, log, req.Chat)
		}
		d.send(ctx, log, cmd.Reply(ctx, req))
		return
	}

	// Unknown commands get the default reply, never a keyword answer.
	log := d.deps.Logger.With("handler", "default")
	log.DebugContext(ctx, "No command matched", "chat_id", u.Chat.ID)
	d.sendWithFallback(ctx, log, model.Reply{
		ChatID: u.Chat.ID,
		Text:   defaultReply(d.deps.Config.Messages.DefaultFmt, u.Text),
	})
}

func (d *Dispatcher) handleText(ctx context.Context, u model.Update) {
	req := d.request(u)
	route, text := freeTextReply(d.keywords, d.deps.Config.Messages.DefaultFmt, req)

	log := d.deps.Logger.With("handler", "text")
	log.InfoContext(ctx, "Message received",
		"route", route, "chat_id", u.Chat.ID, "user_id", u.Sender.ID, "first_name", u.Sender.DisplayName(defaultUserName))

	d.sendWithFallback(ctx, log, model.Reply{ChatID: u.Chat.ID, Text: text})
}

// chatDetails adds the fields only present on full chat info. On failure the
// chat is returned as it came with the update.
func (d *Dispatcher) chatDetails(ctx context.Context, log *slog.Logger, chat model.Chat) model.Chat {
	full, err := d.deps.Sender.GetChat(ctx, &bot.GetChatParams{ChatID: chat.ID})
	if err != nil {
		log.WarnContext(ctx, "Failed to fetch chat details", "error", err, "chat_id", chat.ID)
		return chat
	}
	if full != nil {
		chat.Description = full.Description
	}
	return chat
}

// send delivers one reply. Failures are logged and not retried.
func (d *Dispatcher) send(ctx context.Context, log *slog.Logger, r model.Reply) bool {
	if _, err := d.deps.Sender.SendMessage(ctx, r.Params()); err != nil {
		log.ErrorContext(ctx, "Failed to send message", "error", err, "chat_id", r.ChatID)
		return false
	}
	log.DebugContext(ctx, "Message sent", "chat_id", r.ChatID)
	return true
}

// sendWithFallback delivers a free-text reply and, if that fails, makes one
// attempt to tell the chat something went wrong.
func (d *Dispatcher) sendWithFallback(ctx context.Context, log *slog.Logger, r model.Reply) {
	if d.send(ctx, log, r) {
		return
	}
	notice := model.Reply{ChatID: r.ChatID, Text: d.deps.Config.Messages.ErrorNotice}
	if _, err := d.deps.Sender.SendMessage(ctx, notice.Params()); err != nil {
		log.ErrorContext(ctx, "Failed to send error notice", "error", err, "chat_id", r.ChatID)
	}
}
