package model_test

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/telebot/internal/domain/model"
)

func TestFromTelegram(t *testing.T) {
	t.Parallel()

	chat := models.Chat{ID: 10, Type: models.ChatTypeGroup, Title: " Friends "}
	alice := models.User{ID: 1, FirstName: "Alice", Username: "@alice"}

	tests := []struct {
		name   string
		update *models.Update
		want   model.Kind
	}{
		{name: "nil", update: nil, want: model.KindIgnored},
		{name: "empty", update: &models.Update{ID: 1}, want: model.KindIgnored},
		{
			name:   "command",
			update: &models.Update{Message: &models.Message{Chat: chat, From: &alice, Text: "/ping"}},
			want:   model.KindCommand,
		},
		{
			name:   "text",
			update: &models.Update{Message: &models.Message{Chat: chat, From: &alice, Text: "hello"}},
			want:   model.KindText,
		},
		{
			name:   "message without text",
			update: &models.Update{Message: &models.Message{Chat: chat, From: &alice}},
			want:   model.KindIgnored,
		},
		{
			name: "join",
			update: &models.Update{Message: &models.Message{
				Chat: chat, From: &alice, NewChatMembers: []models.User{alice},
			}},
			want: model.KindMembership,
		},
		{
			name: "leave",
			update: &models.Update{Message: &models.Message{
				Chat: chat, From: &alice, LeftChatMember: &alice,
			}},
			want: model.KindMembership,
		},
		{
			name: "callback",
			update: &models.Update{CallbackQuery: &models.CallbackQuery{
				ID: "q", From: alice, Data: "info",
				Message: models.MaybeInaccessibleMessage{
					Type:    models.MaybeInaccessibleMessageTypeMessage,
					Message: &models.Message{Chat: chat},
				},
			}},
			want: model.KindCallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, model.FromTelegram(tt.update).Kind)
		})
	}
}

func TestFromTelegram_NormalisesFields(t *testing.T) {
	t.Parallel()

	u := model.FromTelegram(&models.Update{
		ID: 99,
		Message: &models.Message{
			Chat: models.Chat{ID: -100, Type: models.ChatTypeSupergroup, Title: " Club ", Username: "@club"},
			From: &models.User{ID: 5, FirstName: "  Bob ", Username: "@bobby", IsBot: false},
			NewChatMembers: []models.User{
				{ID: 6, FirstName: "Carol"},
				{ID: 7, IsBot: true, Username: "helper_bot"},
			},
		},
	})

	assert.Equal(t, int64(99), u.ID)
	assert.Equal(t, model.Chat{ID: -100, Type: "supergroup", Title: "Club", Username: "club"}, u.Chat)
	assert.Equal(t, "Bob", u.Sender.FirstName)
	assert.Equal(t, "bobby", u.Sender.Username)
	require.Len(t, u.Joined, 2)
	assert.Equal(t, int64(7), u.Joined[1].ID)
	assert.True(t, u.Joined[1].IsBot)
	assert.Nil(t, u.Left)
}

func TestFromTelegram_CallbackWithInaccessibleMessage(t *testing.T) {
	t.Parallel()

	u := model.FromTelegram(&models.Update{CallbackQuery: &models.CallbackQuery{
		ID:   "q1",
		From: models.User{ID: 3},
		Data: "help",
		Message: models.MaybeInaccessibleMessage{
			Type:                models.MaybeInaccessibleMessageTypeInaccessibleMessage,
			InaccessibleMessage: &models.InaccessibleMessage{Chat: models.Chat{ID: 42}},
		},
	}})

	assert.Equal(t, model.KindCallback, u.Kind)
	assert.Equal(t, "q1", u.CallbackID)
	assert.Equal(t, "help", u.CallbackData)
	assert.Equal(t, int64(42), u.Chat.ID)
	assert.True(t, u.HasChat())
}

func TestIdentityDefaults(t *testing.T) {
	t.Parallel()

	empty := model.IdentityFrom(nil)
	assert.Equal(t, "User", empty.DisplayName("User"))
	assert.Equal(t, "N/A", empty.LastNameOr("N/A"))
	assert.Equal(t, "N/A", empty.HandleOr("N/A"))

	full := model.IdentityFrom(&models.User{ID: 1, FirstName: "Ann", LastName: "Lee", Username: "ann"})
	assert.Equal(t, "Ann", full.DisplayName("User"))
	assert.Equal(t, "Lee", full.LastNameOr("N/A"))
	assert.Equal(t, "@ann", full.HandleOr("N/A"))
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "command", model.KindCommand.String())
	assert.Equal(t, "membership", model.KindMembership.String())
	assert.Equal(t, "ignored", model.Kind(42).String())
}
