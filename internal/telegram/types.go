// Package telegram wires the go-telegram/bot client: construction, the
// narrow interfaces the rest of the bot depends on, and a circuit breaker
// around outbound calls.
package telegram

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Sender is the outbound side used while handling an update.
// *bot.Bot satisfies it.
type Sender interface {
	// SendMessage sends a text message to a chat.
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)

	// AnswerCallbackQuery acknowledges a button press so the client stops
	// showing its progress indicator.
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)

	// GetChat fetches full chat information, including the description.
	GetChat(ctx context.Context, params *bot.GetChatParams) (*models.ChatFullInfo, error)
}

// Platform is the lifecycle side used by the transport selector and the
// scheduled tasks. *bot.Bot satisfies it.
type Platform interface {
	// Start long-polls for updates until ctx is cancelled.
	Start(ctx context.Context)

	GetMe(ctx context.Context) (*models.User, error)
	SetWebhook(ctx context.Context, params *bot.SetWebhookParams) (bool, error)
	DeleteWebhook(ctx context.Context, params *bot.DeleteWebhookParams) (bool, error)
	GetWebhookInfo(ctx context.Context) (*models.WebhookInfo, error)
}

var (
	_ Sender   = (*bot.Bot)(nil)
	_ Platform = (*bot.Bot)(nil)
)
