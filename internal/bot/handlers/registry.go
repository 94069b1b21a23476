package handlers

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/edgard/telebot/internal/domain/model"
)

// Request is what a handler gets to build its reply from.
type Request struct {
	Chat   model.Chat
	Sender model.Identity
	// Arg is the trimmed command argument, empty when absent.
	Arg string
	// Text is the full message text.
	Text string
	Now  time.Time
}

// Command routes one command name to a reply builder.
type Command struct {
	Name    string
	Pattern *regexp.Regexp
	Reply   func(ctx context.Context, req Request) model.Reply
	// NeedsChatDetails makes the dispatcher fetch full chat info first.
	NeedsChatDetails bool
}

// KeywordRule routes free text containing any of Keywords to a reply builder.
type KeywordRule struct {
	Name     string
	Keywords []string
	Reply    func(req Request) string
}

// CallbackRoute routes a button payload to a reply builder.
type CallbackRoute struct {
	Data  string
	Reply func(req Request) string
}

// commandPattern matches "/name", "/name@bot" and "/name@bot args".
// Group 1 is the addressed bot username, group 2 the argument.
func commandPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)^/` + regexp.QuoteMeta(name) + `(?:@(\w+))?(?:\s+(.*))?$`)
}

// Match reports whether text invokes this command for the bot named
// botUsername and returns the trimmed argument. A command addressed to a
// different bot does not match.
func (c Command) Match(text, botUsername string) (string, bool) {
	m := c.Pattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if m[1] != "" && botUsername != "" && !strings.EqualFold(m[1], botUsername) {
		return "", false
	}
	return strings.TrimSpace(m[2]), true
}

// Match reports whether lowerText contains one of the rule's keywords.
func (r KeywordRule) Match(lowerText string) bool {
	for _, k := range r.Keywords {
		if strings.Contains(lowerText, k) {
			return true
		}
	}
	return false
}

// Commands returns the command table in evaluation order.
func Commands(deps HandlerDeps) []Command {
	deps = deps.withDefaults()
	return []Command{
		{Name: "start", Pattern: commandPattern("start"), Reply: newStartHandler(deps)},
		{Name: "help", Pattern: commandPattern("help"), Reply: newHelpHandler(deps)},
		{Name: "ping", Pattern: commandPattern("ping"), Reply: newPingHandler(deps)},
		{Name: "echo", Pattern: commandPattern("echo"), Reply: newEchoHandler(deps)},
		{Name: "time", Pattern: commandPattern("time"), Reply: newTimeHandler(deps)},
		{Name: "chatinfo", Pattern: commandPattern("chatinfo"), Reply: newChatInfoHandler(deps), NeedsChatDetails: true},
	}
}

// KeywordRules returns the free-text rules in evaluation order.
func KeywordRules(deps HandlerDeps) []KeywordRule {
	deps = deps.withDefaults()
	msgs := deps.Config.Messages
	return []KeywordRule{
		{Name: "greeting", Keywords: []string{"hello", "hi", "hey"}, Reply: formatName(msgs.GreetingFmt)},
		{Name: "wellbeing", Keywords: []string{"how are you", "how do you do"}, Reply: fixed(msgs.Wellbeing)},
		{Name: "farewell", Keywords: []string{"bye", "goodbye", "see you"}, Reply: formatName(msgs.FarewellFmt)},
		{Name: "thanks", Keywords: []string{"thank", "thanks"}, Reply: fixed(msgs.Thanks)},
		{Name: "help", Keywords: []string{"help"}, Reply: fixed(msgs.HelpHint)},
		{Name: "joke", Keywords: []string{"joke", "funny"}, Reply: newJokeHandler(deps)},
	}
}

// CallbackRoutes returns the button payload routes.
func CallbackRoutes(deps HandlerDeps) []CallbackRoute {
	deps = deps.withDefaults()
	msgs := deps.Config.Messages
	return []CallbackRoute{
		{Data: CallbackDataHelp, Reply: fixed(msgs.CallbackHelp)},
		{Data: CallbackDataInfo, Reply: fixed(msgs.CallbackInfo)},
	}
}

func fixed(text string) func(Request) string {
	return func(Request) string { return text }
}
