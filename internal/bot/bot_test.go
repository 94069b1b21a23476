package bot_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/telebot/internal/bot"
	"github.com/edgard/telebot/internal/bot/tasks"
	"github.com/edgard/telebot/internal/config"
	"github.com/edgard/telebot/internal/logger"
	"github.com/edgard/telebot/internal/testutil"
)

type fakeServer struct {
	started atomic.Bool
	err     error
}

func (s *fakeServer) Run(ctx context.Context) error {
	s.started.Store(true)
	if s.err != nil {
		return s.err
	}
	<-ctx.Done()
	return nil
}

func pushConfig() *config.Config {
	cfg := testutil.Config()
	cfg.Transport.UseWebhook = true
	cfg.Transport.WebhookURL = "https://example.com/hooks/"
	cfg.Transport.WebhookSecret = "s3cret"
	return cfg
}

// runUntil runs b, waits for ready, cancels and returns Run's result.
func runUntil(t *testing.T, b *bot.Bot, ready func() bool) error {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	require.Eventually(t, ready, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
		return nil
	}
}

func TestRun_PollMode(t *testing.T) {
	t.Parallel()

	platform := &testutil.FakePlatform{}
	srv := &fakeServer{}
	b := bot.NewBot(logger.Discard(), testutil.Config(), platform, srv, nil)

	require.NoError(t, runUntil(t, b, platform.Started))
	assert.False(t, srv.started.Load(), "no listener in poll mode")
	assert.Empty(t, platform.SetCalls())
	assert.Zero(t, platform.DeleteCalls())
}

func TestRun_WebhookWithoutURLPolls(t *testing.T) {
	t.Parallel()

	cfg := testutil.Config()
	cfg.Transport.UseWebhook = true
	platform := &testutil.FakePlatform{}
	b := bot.NewBot(logger.Discard(), cfg, platform, &fakeServer{}, nil)

	require.NoError(t, runUntil(t, b, platform.Started))
	assert.Empty(t, platform.SetCalls())
}

func TestRun_PushMode(t *testing.T) {
	t.Parallel()

	platform := &testutil.FakePlatform{}
	srv := &fakeServer{}
	b := bot.NewBot(logger.Discard(), pushConfig(), platform, srv, nil)

	require.NoError(t, runUntil(t, b, srv.started.Load))
	assert.False(t, platform.Started(), "no polling in push mode")

	calls := platform.SetCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "https://example.com/hooks/bot"+testutil.Token, calls[0].URL)
	assert.Equal(t, "s3cret", calls[0].SecretToken)
	assert.Equal(t, []string{"message", "callback_query"}, calls[0].AllowedUpdates)
	assert.Equal(t, 1, platform.DeleteCalls(), "push subscription removed on shutdown")
}

func TestRun_PushModeSurvivesSetWebhookFailure(t *testing.T) {
	t.Parallel()

	platform := &testutil.FakePlatform{SetErr: errors.New("bad webhook: HTTPS url must be provided")}
	srv := &fakeServer{}
	b := bot.NewBot(logger.Discard(), pushConfig(), platform, srv, nil)

	require.NoError(t, runUntil(t, b, srv.started.Load))
	assert.Len(t, platform.SetCalls(), 1)
}

func TestRun_TeardownFailure(t *testing.T) {
	t.Parallel()

	platform := &testutil.FakePlatform{DeleteErr: errors.New("network unreachable")}
	srv := &fakeServer{}
	b := bot.NewBot(logger.Discard(), pushConfig(), platform, srv, nil)

	err := runUntil(t, b, srv.started.Load)
	require.ErrorIs(t, err, bot.ErrTeardown)
	assert.Equal(t, 1, platform.DeleteCalls())
}

func TestRun_ServerFailure(t *testing.T) {
	t.Parallel()

	listenErr := errors.New("address already in use")
	platform := &testutil.FakePlatform{}
	b := bot.NewBot(logger.Discard(), pushConfig(), platform, &fakeServer{err: listenErr}, nil)

	err := b.Run(context.Background())
	require.ErrorIs(t, err, listenErr)
	assert.Equal(t, 1, platform.DeleteCalls())
}

func TestRun_PushModeNeedsServer(t *testing.T) {
	t.Parallel()

	b := bot.NewBot(logger.Discard(), pushConfig(), &testutil.FakePlatform{}, nil, nil)
	require.Error(t, b.Run(context.Background()))
}

func TestRun_StartsScheduler(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	cfg := testutil.Config()
	cfg.Scheduler.Tasks = map[string]config.TaskConfig{
		"tick": {Enabled: true, Schedule: "* * * * * *"},
	}
	sched, err := bot.NewScheduler(logger.Discard(), &cfg.Scheduler, map[string]tasks.ScheduledTaskFunc{
		"tick": func(context.Context) error { runs.Add(1); return nil },
	})
	require.NoError(t, err)

	platform := &testutil.FakePlatform{}
	b := bot.NewBot(logger.Discard(), cfg, platform, nil, sched)

	require.NoError(t, runUntil(t, b, func() bool { return runs.Load() > 0 }))
}
