package handlers

import (
	"fmt"
	"strings"
)

// formatName fills a template with the sender's first name.
func formatName(tmpl string) func(Request) string {
	return func(req Request) string {
		return fmt.Sprintf(tmpl, req.Sender.DisplayName(defaultUserName))
	}
}

// newJokeHandler picks one of the configured jokes uniformly at random.
func newJokeHandler(deps HandlerDeps) func(Request) string {
	jokes := deps.Config.Messages.Jokes
	pick := deps.Rand
	return func(Request) string {
		return jokes[pick(len(jokes))]
	}
}

// freeTextReply walks the keyword rules in order. The first rule whose
// keywords occur in text answers; otherwise the text is echoed back inside
// the default template. It returns the name of the route taken.
func freeTextReply(rules []KeywordRule, defaultFmt string, req Request) (string, string) {
	lower := strings.ToLower(req.Text)
	for _, rule := range rules {
		if rule.Match(lower) {
			return rule.Name, rule.Reply(req)
		}
	}
	return "default", defaultReply(defaultFmt, req.Text)
}

func defaultReply(defaultFmt, text string) string {
	return fmt.Sprintf(defaultFmt, text)
}
