// Package config provides configuration loading, validation, and management
// for the bot. It reads a YAML file and the environment through viper,
// applies defaults, and validates the result with validator.
package config

import (
	"strings"
	"time"
	_ "time/tzdata" // zone names must resolve in minimal containers
)

// Mode reports the delivery mode selected by the transport settings.
// Push mode needs both the flag and a base URL; anything else polls.
func (c *Config) Mode() Mode {
	if c.Transport.UseWebhook && c.Transport.WebhookURL != "" {
		return ModePush
	}
	return ModePoll
}

// WebhookPath is the HTTP path the platform pushes updates to.
func (c *Config) WebhookPath() string {
	return "/bot" + c.Telegram.Token
}

// WebhookURL is the full URL registered with the platform in push mode.
func (c *Config) WebhookURL() string {
	return strings.TrimRight(c.Transport.WebhookURL, "/") + c.WebhookPath()
}

// Location returns the time zone used by the time command.
// An empty setting means the host's local zone.
func (c *Config) Location() *time.Location {
	if c.Clock.Location == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Clock.Location)
	if err != nil {
		// Validation already rejected unknown zones.
		return time.Local
	}
	return loc
}

// BotID returns the bot's own user id, or 0 before GetMe has run.
func (c *Config) BotID() int64 {
	if c.Telegram.BotInfo == nil {
		return 0
	}
	return c.Telegram.BotInfo.ID
}

// BotUsername returns the bot's own username, or "" before GetMe has run.
func (c *Config) BotUsername() string {
	if c.Telegram.BotInfo == nil {
		return ""
	}
	return c.Telegram.BotInfo.Username
}

// RedactToken masks a bot token for logs and public responses.
func RedactToken(token string) string {
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "***"
}
