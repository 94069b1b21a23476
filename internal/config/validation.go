package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate checks struct tags and the rules that span several fields.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if strings.ContainsAny(c.Telegram.Token, " /?#") {
		return fmt.Errorf("telegram.token contains characters that cannot appear in a URL path")
	}

	if c.Transport.UseWebhook && c.Transport.WebhookURL == "" {
		// Kept as a warning: the bot falls back to polling.
		slog.Warn("transport.use_webhook is set without transport.webhook_url, falling back to polling")
	}

	for _, tmpl := range []struct {
		name, value string
	}{
		{"messages.welcome_fmt", c.Messages.WelcomeFmt},
		{"messages.echo_fmt", c.Messages.EchoFmt},
		{"messages.time_fmt", c.Messages.TimeFmt},
		{"messages.greeting_fmt", c.Messages.GreetingFmt},
		{"messages.farewell_fmt", c.Messages.FarewellFmt},
		{"messages.default_fmt", c.Messages.DefaultFmt},
		{"messages.callback_fallback_fmt", c.Messages.CallbackFallbackFmt},
		{"messages.member_welcome_fmt", c.Messages.MemberWelcomeFmt},
		{"messages.member_farewell_fmt", c.Messages.MemberFarewellFmt},
	} {
		if strings.Count(tmpl.value, "%s") != 1 {
			return fmt.Errorf("%s must contain exactly one %%s verb", tmpl.name)
		}
	}

	return nil
}
