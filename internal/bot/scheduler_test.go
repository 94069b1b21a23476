package bot_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/telebot/internal/bot"
	"github.com/edgard/telebot/internal/bot/tasks"
	"github.com/edgard/telebot/internal/config"
	"github.com/edgard/telebot/internal/logger"
)

func noop(context.Context) error { return nil }

func TestScheduler_SchedulesEnabledTasks(t *testing.T) {
	t.Parallel()

	cfg := &config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		"api_health":     {Enabled: true, Schedule: "0 */5 * * * *"},
		"webhook_status": {Enabled: true, Schedule: "30 */5 * * * *"},
		"disabled":       {Enabled: false, Schedule: "0 * * * * *"},
		"no_schedule":    {Enabled: true},
		"bad_schedule":   {Enabled: true, Schedule: "every now and then"},
		"unregistered":   {Enabled: true, Schedule: "0 * * * * *"},
	}}
	taskMap := map[string]tasks.ScheduledTaskFunc{
		"api_health":     noop,
		"webhook_status": noop,
		"disabled":       noop,
		"no_schedule":    noop,
		"bad_schedule":   noop,
	}

	s, err := bot.NewScheduler(logger.Discard(), cfg, taskMap)
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Stop() })

	assert.Equal(t, []string{"api_health", "webhook_status"}, s.Jobs())
}

func TestScheduler_StartTwice(t *testing.T) {
	t.Parallel()

	s, err := bot.NewScheduler(nil, &config.SchedulerConfig{}, nil)
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	assert.ErrorIs(t, s.Start(context.Background()), bot.ErrSchedulerRunning)

	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop(), "stopping a stopped scheduler is a no-op")
}
