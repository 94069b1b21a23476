package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// ErrConfiguration marks every failure to load or validate configuration.
var ErrConfiguration = errors.New("configuration error")

// legacyEnv maps config keys to the environment variable names the bot has
// always accepted. They take precedence over the prefixed names.
var legacyEnv = map[string][]string{
	"telegram.token":        {"BOT_TOKEN", "TELEGRAM_BOT_TOKEN"},
	"transport.use_webhook": {"USE_WEBHOOK"},
	"transport.webhook_url": {"WEBHOOK_URL"},
	"http.port":             {"PORT"},
	"logger.level":          {"LOG_LEVEL"},
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"log-level": "logger.level",
}

// Load loads and validates configuration from, in increasing precedence:
//  1. default values
//  2. the YAML file at path (a missing file is not an error)
//  3. environment variables (legacy names and TELEBOT_* names)
//  4. command line flags that were explicitly set
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(DefaultEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range legacyEnv {
		prefixed := DefaultEnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		args := append([]string{key}, names...)
		args = append(args, prefixed)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("%w: failed to bind env for %s: %v", ErrConfiguration, key, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("%w: failed to bind flag %s: %v", ErrConfiguration, name, err)
			}
		}
	}

	if err := readFile(v, path); err != nil {
		return nil, fmt.Errorf("%w: failed to load config file: %v", ErrConfiguration, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}

// LoadDotEnv exports the variables of a .env file into the process
// environment without overriding variables that are already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := gotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	slog.Debug("Loaded environment file", "path", path)
	return nil
}

func readFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Config file not found, using defaults and environment", "path", path)
			return nil
		}
		return err
	}
	slog.Debug("Config file loaded", "path", v.ConfigFileUsed())
	return nil
}

// setDefaults sets default values for every configuration key. Keys without a
// default are invisible to AutomaticEnv during Unmarshal, so every key is listed.
func setDefaults(v *viper.Viper) {
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.server_url", "")
	v.SetDefault("telegram.workers", DefaultTelegramWorkers)
	v.SetDefault("telegram.timeout", DefaultTelegramTimeout)
	v.SetDefault("telegram.breaker.enabled", DefaultBreakerEnabled)
	v.SetDefault("telegram.breaker.max_requests", DefaultBreakerMaxRequests)
	v.SetDefault("telegram.breaker.interval", DefaultBreakerInterval)
	v.SetDefault("telegram.breaker.timeout", DefaultBreakerTimeout)
	v.SetDefault("telegram.breaker.min_requests", DefaultBreakerMinRequests)
	v.SetDefault("telegram.breaker.failure_ratio", DefaultBreakerFailureRatio)

	v.SetDefault("transport.use_webhook", false)
	v.SetDefault("transport.webhook_url", "")
	v.SetDefault("transport.webhook_secret", "")
	v.SetDefault("transport.drop_pending_updates", false)
	v.SetDefault("transport.teardown_timeout", DefaultTeardownTimeout)

	v.SetDefault("http.host", DefaultHTTPHost)
	v.SetDefault("http.port", DefaultHTTPPort)
	v.SetDefault("http.read_header_timeout", DefaultHTTPReadHeaderTimeout)
	v.SetDefault("http.shutdown_timeout", DefaultHTTPShutdownTimeout)
	v.SetDefault("http.max_body_bytes", DefaultHTTPMaxBodyBytes)
	v.SetDefault("http.rate_limit", DefaultHTTPRateLimit)
	v.SetDefault("http.rate_burst", DefaultHTTPRateBurst)

	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", DefaultLogJSON)

	v.SetDefault("clock.layout", DefaultClockLayout)
	v.SetDefault("clock.location", "")

	tasks := make(map[string]any, len(DefaultTasks))
	for name, task := range DefaultTasks {
		tasks[name] = map[string]any{"enabled": task.Enabled, "schedule": task.Schedule}
	}
	v.SetDefault("scheduler.tasks", tasks)

	m := DefaultMessages
	v.SetDefault("messages.welcome_fmt", m.WelcomeFmt)
	v.SetDefault("messages.help", m.Help)
	v.SetDefault("messages.pong", m.Pong)
	v.SetDefault("messages.echo_fmt", m.EchoFmt)
	v.SetDefault("messages.echo_usage", m.EchoUsage)
	v.SetDefault("messages.time_fmt", m.TimeFmt)
	v.SetDefault("messages.greeting_fmt", m.GreetingFmt)
	v.SetDefault("messages.wellbeing", m.Wellbeing)
	v.SetDefault("messages.farewell_fmt", m.FarewellFmt)
	v.SetDefault("messages.thanks", m.Thanks)
	v.SetDefault("messages.help_hint", m.HelpHint)
	v.SetDefault("messages.jokes", m.Jokes)
	v.SetDefault("messages.default_fmt", m.DefaultFmt)
	v.SetDefault("messages.error_notice", m.ErrorNotice)
	v.SetDefault("messages.callback_help", m.CallbackHelp)
	v.SetDefault("messages.callback_info", m.CallbackInfo)
	v.SetDefault("messages.callback_fallback_fmt", m.CallbackFallbackFmt)
	v.SetDefault("messages.group_welcome", m.GroupWelcome)
	v.SetDefault("messages.member_welcome_fmt", m.MemberWelcomeFmt)
	v.SetDefault("messages.member_farewell_fmt", m.MemberFarewellFmt)
}
