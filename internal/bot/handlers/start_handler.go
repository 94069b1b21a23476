package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/telebot/internal/domain/model"
)

// Callback payloads carried by the /start keyboard.
const (
	CallbackDataHelp = "help"
	CallbackDataInfo = "info"
)

// defaultUserName stands in for a sender without a first name.
const defaultUserName = "User"

func newStartHandler(deps HandlerDeps) func(context.Context, Request) model.Reply {
	return startHandler{deps}.Reply
}

// startHandler builds the /start welcome.
type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Reply(ctx context.Context, req Request) model.Reply {
	name := req.Sender.DisplayName(defaultUserName)
	h.deps.Logger.With("handler", "start").InfoContext(ctx, "User started the bot",
		"user_id", req.Sender.ID, "first_name", name, "chat_id", req.Chat.ID)

	return model.Reply{
		ChatID: req.Chat.ID,
		Text:   fmt.Sprintf(h.deps.Config.Messages.WelcomeFmt, name),
		Markup: &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{{
				{Text: "📖 Help", CallbackData: CallbackDataHelp},
				{Text: "📊 Info", CallbackData: CallbackDataInfo},
			}},
		},
	}
}
