package handlers

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-telegram/bot"

	"github.com/edgard/telebot/internal/domain/model"
)

// handleCallback acknowledges the button press and answers it. The
// acknowledgement runs next to the reply so a slow or failing ack never
// holds the reply back. Both finish before it returns.
func (d *Dispatcher) handleCallback(ctx context.Context, u model.Update) {
	log := d.deps.Logger.With("handler", "callback")
	log.InfoContext(ctx, "Callback query received", "data", u.CallbackData, "user_id", u.Sender.ID)

	var wg sync.WaitGroup
	wg.Go(func() {
		if _, err := d.deps.Sender.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: u.CallbackID,
		}); err != nil {
			log.ErrorContext(ctx, "Failed to answer callback query", "error", err, "callback_id", u.CallbackID)
		}
	})

	if u.HasChat() {
		req := d.request(u)
		req.Text = u.CallbackData
		d.send(ctx, log, model.Reply{ChatID: u.Chat.ID, Text: d.callbackText(req)})
	} else {
		log.WarnContext(ctx, "Callback query has no originating chat", "callback_id", u.CallbackID)
	}

	wg.Wait()
}

func (d *Dispatcher) callbackText(req Request) string {
	for _, route := range d.callbacks {
		if route.Data == req.Text {
			return route.Reply(req)
		}
	}
	return fmt.Sprintf(d.deps.Config.Messages.CallbackFallbackFmt, req.Text)
}
