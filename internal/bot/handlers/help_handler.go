package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/edgard/telebot/internal/domain/model"
)

func newHelpHandler(deps HandlerDeps) func(context.Context, Request) model.Reply {
	return func(_ context.Context, req Request) model.Reply {
		return model.Reply{ChatID: req.Chat.ID, Text: deps.Config.Messages.Help}
	}
}

func newPingHandler(deps HandlerDeps) func(context.Context, Request) model.Reply {
	return func(_ context.Context, req Request) model.Reply {
		return model.Reply{ChatID: req.Chat.ID, Text: deps.Config.Messages.Pong}
	}
}

// newEchoHandler repeats the argument back. Without one it answers with the
// usage text instead of an empty echo.
func newEchoHandler(deps HandlerDeps) func(context.Context, Request) model.Reply {
	msgs := deps.Config.Messages
	return func(_ context.Context, req Request) model.Reply {
		arg := strings.TrimSpace(req.Arg)
		if arg == "" {
			return model.Reply{ChatID: req.Chat.ID, Text: msgs.EchoUsage}
		}
		return model.Reply{ChatID: req.Chat.ID, Text: fmt.Sprintf(msgs.EchoFmt, arg)}
	}
}

func newTimeHandler(deps HandlerDeps) func(context.Context, Request) model.Reply {
	layout := deps.Config.Clock.Layout
	loc := deps.Config.Location()
	return func(_ context.Context, req Request) model.Reply {
		now := req.Now.In(loc).Format(layout)
		return model.Reply{ChatID: req.Chat.ID, Text: fmt.Sprintf(deps.Config.Messages.TimeFmt, now)}
	}
}
