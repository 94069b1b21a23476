// Package model contains the transient values the bot works with while it
// handles one update. Nothing here outlives a single update.
package model

import (
	"strings"

	"github.com/go-telegram/bot/models"
)

// Kind is the variant of an inbound update.
type Kind int

const (
	// KindIgnored covers updates the bot does not react to.
	KindIgnored Kind = iota
	// KindCommand is text starting with the command marker.
	KindCommand
	// KindText is any other text message.
	KindText
	// KindCallback is an inline keyboard button press.
	KindCallback
	// KindMembership is a join or leave event.
	KindMembership
)

// CommandMarker starts every command.
const CommandMarker = "/"

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindText:
		return "text"
	case KindCallback:
		return "callback"
	case KindMembership:
		return "membership"
	default:
		return "ignored"
	}
}

// Chat is the conversation an update belongs to.
type Chat struct {
	ID          int64
	Type        string
	Title       string
	Username    string
	Description string
}

// ChatFrom builds a Chat from a platform chat.
func ChatFrom(c models.Chat) Chat {
	return Chat{
		ID:       c.ID,
		Type:     string(c.Type),
		Title:    strings.TrimSpace(c.Title),
		Username: strings.TrimPrefix(strings.TrimSpace(c.Username), "@"),
	}
}

// Update is one inbound event.
type Update struct {
	ID     int64
	Kind   Kind
	Chat   Chat
	Sender Identity

	// Text is the full message text for KindCommand and KindText.
	Text string

	// CallbackID and CallbackData are set for KindCallback.
	CallbackID   string
	CallbackData string

	// Joined and Left are set for KindMembership.
	Joined []Identity
	Left   *Identity
}

// HasChat reports whether replies can be addressed to the update's chat.
func (u Update) HasChat() bool {
	return u.Chat.ID != 0
}

// FromTelegram classifies a platform update. A nil update is ignored.
func FromTelegram(u *models.Update) Update {
	if u == nil {
		return Update{Kind: KindIgnored}
	}

	out := Update{ID: u.ID}

	switch {
	case u.Message != nil:
		msg := u.Message
		out.Chat = ChatFrom(msg.Chat)
		out.Sender = IdentityFrom(msg.From)

		switch {
		case len(msg.NewChatMembers) > 0 || msg.LeftChatMember != nil:
			out.Kind = KindMembership
			for i := range msg.NewChatMembers {
				out.Joined = append(out.Joined, IdentityFrom(&msg.NewChatMembers[i]))
			}
			if msg.LeftChatMember != nil {
				left := IdentityFrom(msg.LeftChatMember)
				out.Left = &left
			}
		case strings.HasPrefix(msg.Text, CommandMarker):
			out.Kind = KindCommand
			out.Text = msg.Text
		case msg.Text != "":
			out.Kind = KindText
			out.Text = msg.Text
		default:
			out.Kind = KindIgnored
		}

	case u.CallbackQuery != nil:
		cq := u.CallbackQuery
		out.Kind = KindCallback
		out.Sender = IdentityFrom(&cq.From)
		out.CallbackID = cq.ID
		out.CallbackData = cq.Data
		switch {
		case cq.Message.Message != nil:
			out.Chat = ChatFrom(cq.Message.Message.Chat)
		case cq.Message.InaccessibleMessage != nil:
			out.Chat = ChatFrom(cq.Message.InaccessibleMessage.Chat)
		}

	default:
		out.Kind = KindIgnored
	}

	return out
}
