package handlers

import (
	"context"
	"fmt"

	"github.com/edgard/telebot/internal/domain/model"
)

const (
	defaultJoinedName = "New Member"
	defaultLeftName   = "Member"
)

// membershipReplies builds the replies for a join or leave event.
//
// When the batch of new members contains the bot itself the group welcome
// is sent once; every other member gets a personal welcome. Departing bot
// accounts get no farewell.
func membershipReplies(msgs membershipTexts, botID int64, u model.Update) []model.Reply {
	var out []model.Reply

	greeted := false
	for _, m := range u.Joined {
		if botID != 0 && m.ID == botID {
			if !greeted {
				out = append(out, model.Reply{ChatID: u.Chat.ID, Text: msgs.groupWelcome})
				greeted = true
			}
			continue
		}
		out = append(out, model.Reply{
			ChatID: u.Chat.ID,
			Text:   fmt.Sprintf(msgs.memberWelcomeFmt, m.DisplayName(defaultJoinedName)),
		})
	}

	if u.Left != nil && !u.Left.IsBot {
		out = append(out, model.Reply{
			ChatID: u.Chat.ID,
			Text:   fmt.Sprintf(msgs.memberFarewellFmt, u.Left.DisplayName(defaultLeftName)),
		})
	}

	return out
}

type membershipTexts struct {
	groupWelcome      string
	memberWelcomeFmt  string
	memberFarewellFmt string
}

func (d *Dispatcher) handleMembership(ctx context.Context, u model.Update) {
	log := d.deps.Logger.With("handler", "membership")

	msgs := membershipTexts{
		groupWelcome:      d.deps.Config.Messages.GroupWelcome,
		memberWelcomeFmt:  d.deps.Config.Messages.MemberWelcomeFmt,
		memberFarewellFmt: d.deps.Config.Messages.MemberFarewellFmt,
	}
	replies := membershipReplies(msgs, d.deps.Config.BotID(), u)
	log.DebugContext(ctx, "Handling membership change",
		"chat_id", u.Chat.ID, "joined", len(u.Joined), "left", u.Left != nil, "replies", len(replies))

	for _, r := range replies {
		d.send(ctx, log, r)
	}
}
