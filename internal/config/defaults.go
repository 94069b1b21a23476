package config

import "time"

// Default values for configuration
const (
	DefaultConfigPath = "./config.yaml"
	DefaultEnvPrefix  = "TELEBOT"

	// Log defaults
	DefaultLogLevel = "info"
	DefaultLogJSON  = false

	// Telegram defaults
	DefaultTelegramWorkers = 4
	DefaultTelegramTimeout = 30 * time.Second

	// Circuit breaker defaults
	DefaultBreakerEnabled      = true
	DefaultBreakerMaxRequests  = 3
	DefaultBreakerInterval     = time.Minute
	DefaultBreakerTimeout      = 30 * time.Second
	DefaultBreakerMinRequests  = 5
	DefaultBreakerFailureRatio = 0.6

	// Transport defaults
	DefaultTeardownTimeout = 10 * time.Second

	// HTTP defaults
	DefaultHTTPHost              = "0.0.0.0"
	DefaultHTTPPort              = 8000
	DefaultHTTPReadHeaderTimeout = 10 * time.Second
	DefaultHTTPShutdownTimeout   = 10 * time.Second
	DefaultHTTPMaxBodyBytes      = 1 << 20
	DefaultHTTPRateLimit         = 50.0
	DefaultHTTPRateBurst         = 100

	// Clock defaults
	DefaultClockLayout = "Mon, 02 Jan 2006 15:04:05 MST"
)

// DefaultTasks are the scheduled tasks known to the bot.
var DefaultTasks = map[string]TaskConfig{
	"api_health":     {Enabled: true, Schedule: "0 */5 * * * *"},
	"webhook_status": {Enabled: true, Schedule: "30 */5 * * * *"},
}

// DefaultMessages are the texts the bot replies with unless overridden.
var DefaultMessages = MessagesConfig{
	WelcomeFmt: `🤖 Welcome %s!

I'm a simple Telegram bot. Here are the commands you can use:

/start - Show this welcome message
/help - Get help information
/ping - Check if the bot is responsive
/echo <text> - Echo back your message
/time - Get current server time
/chatinfo - Get information about this chat

Feel free to send me any message and I'll respond!`,
	Help: `📖 Bot Help

Available Commands:
• /start - Show welcome message
• /help - Show this help message
• /ping - Test bot responsiveness
• /echo <text> - Echo your message back
• /time - Show current server time
• /chatinfo - Show chat information

You can also send me any text message and I'll respond to it!

If you encounter any issues, please check that the bot has the necessary permissions in this chat.`,
	Pong:      "🏓 Pong! Bot is online and responding.",
	EchoFmt:   "🔄 Echo: %s",
	EchoUsage: "❌ Please provide text to echo. Usage: /echo <your text>",
	TimeFmt:   "🕐 Current server time: %s",

	GreetingFmt: "👋 Hello %s! How can I help you today?",
	Wellbeing:   "🤖 I'm doing great! Thanks for asking. How are you?",
	FarewellFmt: "👋 Goodbye %s! Have a great day!",
	Thanks:      "😊 You're welcome! Happy to help!",
	HelpHint:    "🆘 I can help you! Try using /help to see all available commands.",
	Jokes: []string{
		"Why don't scientists trust atoms? Because they make up everything! 😄",
		"Why did the robot go to therapy? It had too many bugs! 🤖",
		"What do you call a bear with no teeth? A gummy bear! 🐻",
		"Why don't programmers like nature? It has too many bugs! 🐛",
	},
	DefaultFmt: "📝 I received your message: \"%s\"\n\nTry sending me:\n• \"hello\" for a greeting\n• \"help\" for assistance\n• \"joke\" for a laugh\n• Or use /help for all commands",
	ErrorNotice: "❌ Sorry, I encountered an error while processing your message.",

	CallbackHelp:        "📖 You pressed the help button! Use /help for detailed information.",
	CallbackInfo:        "📊 Bot Information:\n• Version: 1.0.0\n• Status: Online\n• Commands: Available",
	CallbackFallbackFmt: "🔘 You pressed: %s",

	GroupWelcome: `🤖 Hello everyone!

I'm a Telegram bot that can help with various tasks. Type /help to see what I can do!

Thanks for adding me to the group!`,
	MemberWelcomeFmt:  "👋 Welcome %s to the group!",
	MemberFarewellFmt: "👋 Goodbye %s!",
}

// Default returns a Config holding every default value. The token is empty,
// so the result does not validate until one is set.
func Default() *Config {
	tasks := make(map[string]TaskConfig, len(DefaultTasks))
	for name, task := range DefaultTasks {
		tasks[name] = task
	}
	msgs := DefaultMessages
	msgs.Jokes = append([]string(nil), DefaultMessages.Jokes...)

	return &Config{
		Telegram: TelegramConfig{
			Workers: DefaultTelegramWorkers,
			Timeout: DefaultTelegramTimeout,
			Breaker: BreakerConfig{
				Enabled:      DefaultBreakerEnabled,
				MaxRequests:  DefaultBreakerMaxRequests,
				Interval:     DefaultBreakerInterval,
				Timeout:      DefaultBreakerTimeout,
				MinRequests:  DefaultBreakerMinRequests,
				FailureRatio: DefaultBreakerFailureRatio,
			},
		},
		Transport: TransportConfig{TeardownTimeout: DefaultTeardownTimeout},
		HTTP: HTTPConfig{
			Host:              DefaultHTTPHost,
			Port:              DefaultHTTPPort,
			ReadHeaderTimeout: DefaultHTTPReadHeaderTimeout,
			ShutdownTimeout:   DefaultHTTPShutdownTimeout,
			MaxBodyBytes:      DefaultHTTPMaxBodyBytes,
			RateLimit:         DefaultHTTPRateLimit,
			RateBurst:         DefaultHTTPRateBurst,
		},
		Logger:    LoggerConfig{Level: DefaultLogLevel, JSON: DefaultLogJSON},
		Clock:     ClockConfig{Layout: DefaultClockLayout},
		Scheduler: SchedulerConfig{Tasks: tasks},
		Messages:  msgs,
	}
}
