package model

import (
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Reply is a single outbound text addressed to a chat.
type Reply struct {
	ChatID int64
	Text   string
	Markup models.ReplyMarkup
}

// Params converts the reply into send parameters for the platform client.
func (r Reply) Params() *bot.SendMessageParams {
	return &bot.SendMessageParams{ChatID: r.ChatID, Text: r.Text, ReplyMarkup: r.Markup}
}
