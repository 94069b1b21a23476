package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/edgard/telebot/internal/domain/model"
)

const notAvailable = "N/A"

func newChatInfoHandler(HandlerDeps) func(context.Context, Request) model.Reply {
	return chatInfoHandler{}.Reply
}

// chatInfoHandler reports what the bot knows about the chat and the sender.
type chatInfoHandler struct{}

func (chatInfoHandler) Reply(_ context.Context, req Request) model.Reply {
	chat, from := req.Chat, req.Sender

	var b strings.Builder
	b.WriteString("📊 Chat Information\n\n")
	fmt.Fprintf(&b, "Chat ID: %d\n", chat.ID)
	fmt.Fprintf(&b, "Chat Type: %s\n", chat.Type)
	if chat.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", chat.Title)
	}
	if chat.Username != "" {
		fmt.Fprintf(&b, "Username: @%s\n", chat.Username)
	}
	if chat.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", chat.Description)
	}

	b.WriteString("\nUser Information:\n")
	fmt.Fprintf(&b, "- User ID: %d\n", from.ID)
	fmt.Fprintf(&b, "- First Name: %s\n", from.DisplayName(notAvailable))
	fmt.Fprintf(&b, "- Last Name: %s\n", from.LastNameOr(notAvailable))
	fmt.Fprintf(&b, "- Username: %s", from.HandleOr(notAvailable))

	return model.Reply{ChatID: chat.ID, Text: b.String()}
}
