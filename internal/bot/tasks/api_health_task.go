package tasks

import (
	"context"
	"fmt"
	"time"
)

// newAPIHealthTask checks that the platform API answers and still knows the
// bot under the identity it had at startup.
func newAPIHealthTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", APIHealthTask)

	return func(ctx context.Context) error {
		start := time.Now()
		me, err := deps.Platform.GetMe(ctx)
		latency := time.Since(start)
		if err != nil {
			log.ErrorContext(ctx, "Telegram API health check failed", "error", err, "latency", latency)
			return fmt.Errorf("getMe failed: %w", err)
		}

		if want := deps.Config.BotID(); want != 0 && me.ID != want {
			log.WarnContext(ctx, "Bot identity changed since startup", "expected_id", want, "got_id", me.ID)
		}
		log.InfoContext(ctx, "Telegram API reachable", "bot_username", me.Username, "latency", latency)
		return nil
	}
}
