// Package main contains the entrypoint for the Telegram bot application.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := execute(ctx, os.Args[1:])
	stop()
	os.Exit(exitCode)
}

// execute parses the command line and runs the bot, returning the process
// exit code.
func execute(ctx context.Context, args []string) int {
	exitCode := 0
	cmd := newRootCommand(func(ctx context.Context, opts options) error {
		exitCode = run(ctx, opts)
		return nil
	})
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return exitCode
}

// options are the values taken from the command line.
type options struct {
	configPath string
	envFile    string
	flags      *pflag.FlagSet
}

func newRootCommand(runFn func(context.Context, options) error) *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Telegram chat bot",
		Long: `Runs a Telegram bot that answers commands, free text and button presses.
Updates are received by long polling, or by webhook when USE_WEBHOOK and
WEBHOOK_URL are set.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.flags = cmd.Flags()
			return runFn(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "./config.yaml", "path to the YAML configuration file")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "path to a .env file loaded before reading the environment")
	cmd.Flags().String("log-level", "", "log level: debug, info, warn or error")

	return cmd
}
