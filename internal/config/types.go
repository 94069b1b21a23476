package config

import (
	"time"

	"github.com/go-telegram/bot/models"
)

// Mode is the update delivery mode selected at startup.
type Mode string

const (
	// ModePoll makes the client long-poll the platform for updates.
	ModePoll Mode = "poll"
	// ModePush makes the platform deliver updates to our HTTP endpoint.
	ModePush Mode = "webhook"
)

// Config holds the complete application configuration.
type Config struct {
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Transport TransportConfig `mapstructure:"transport"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Clock     ClockConfig     `mapstructure:"clock"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// TelegramConfig configures the platform client.
type TelegramConfig struct {
	Token     string        `mapstructure:"token"      validate:"required"`
	ServerURL string        `mapstructure:"server_url" validate:"omitempty,url"`
	Workers   int           `mapstructure:"workers"    validate:"min=1,max=256"`
	Timeout   time.Duration `mapstructure:"timeout"    validate:"min=1s,max=5m"`
	Breaker   BreakerConfig `mapstructure:"breaker"`

	// BotInfo is filled at runtime from GetMe and is never read from config.
	BotInfo *models.User `mapstructure:"-" validate:"-"`
}

// BreakerConfig configures the circuit breaker guarding outbound sends.
type BreakerConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	MaxRequests  uint32        `mapstructure:"max_requests"  validate:"min=1"`
	Interval     time.Duration `mapstructure:"interval"      validate:"min=0"`
	Timeout      time.Duration `mapstructure:"timeout"       validate:"min=1s"`
	MinRequests  uint32        `mapstructure:"min_requests"  validate:"min=1"`
	FailureRatio float64       `mapstructure:"failure_ratio" validate:"gt=0,lte=1"`
}

// TransportConfig selects and configures the delivery mode.
type TransportConfig struct {
	UseWebhook         bool          `mapstructure:"use_webhook"`
	WebhookURL         string        `mapstructure:"webhook_url"          validate:"omitempty,url"`
	WebhookSecret      string        `mapstructure:"webhook_secret"       validate:"omitempty,max=256"`
	DropPendingUpdates bool          `mapstructure:"drop_pending_updates"`
	TeardownTimeout    time.Duration `mapstructure:"teardown_timeout"     validate:"min=1s,max=2m"`
}

// HTTPConfig configures the listener opened in push mode.
type HTTPConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"                validate:"min=1,max=65535"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" validate:"min=1s"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"    validate:"min=1s"`
	MaxBodyBytes      int64         `mapstructure:"max_body_bytes"      validate:"min=1024"`
	RateLimit         float64       `mapstructure:"rate_limit"          validate:"min=0"`
	RateBurst         int           `mapstructure:"rate_burst"          validate:"min=1"`
}

// LoggerConfig configures the process-wide logger.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// ClockConfig controls how the time command renders the current time.
type ClockConfig struct {
	Layout   string `mapstructure:"layout"   validate:"required"`
	Location string `mapstructure:"location" validate:"omitempty,timezone"`
}

// SchedulerConfig holds the configuration for scheduled tasks.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig configures a single scheduled task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// MessagesConfig holds every user-facing text. Fields ending in Fmt are
// fmt templates.
type MessagesConfig struct {
	WelcomeFmt string `mapstructure:"welcome_fmt" validate:"required"`
	Help       string `mapstructure:"help"        validate:"required"`
	Pong       string `mapstructure:"pong"        validate:"required"`
	EchoFmt    string `mapstructure:"echo_fmt"    validate:"required"`
	EchoUsage  string `mapstructure:"echo_usage"  validate:"required"`
	TimeFmt    string `mapstructure:"time_fmt"    validate:"required"`

	GreetingFmt string   `mapstructure:"greeting_fmt" validate:"required"`
	Wellbeing   string   `mapstructure:"wellbeing"    validate:"required"`
	FarewellFmt string   `mapstructure:"farewell_fmt" validate:"required"`
	Thanks      string   `mapstructure:"thanks"       validate:"required"`
	HelpHint    string   `mapstructure:"help_hint"    validate:"required"`
	Jokes       []string `mapstructure:"jokes"        validate:"min=1,dive,required"`
	DefaultFmt  string   `mapstructure:"default_fmt"  validate:"required"`
	ErrorNotice string   `mapstructure:"error_notice" validate:"required"`

	CallbackHelp        string `mapstructure:"callback_help"         validate:"required"`
	CallbackInfo        string `mapstructure:"callback_info"         validate:"required"`
	CallbackFallbackFmt string `mapstructure:"callback_fallback_fmt" validate:"required"`

	GroupWelcome      string `mapstructure:"group_welcome"       validate:"required"`
	MemberWelcomeFmt  string `mapstructure:"member_welcome_fmt"  validate:"required"`
	MemberFarewellFmt string `mapstructure:"member_farewell_fmt" validate:"required"`
}
