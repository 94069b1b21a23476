package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot/models"
)

const (
	pendingBacklogWarn = 100
	recentErrorWindow  = 10 * time.Minute
)

// Problems reported by the webhook status check.
const (
	ProblemURLMismatch  = "url_mismatch"
	ProblemBacklog      = "pending_backlog"
	ProblemDeliveryFail = "delivery_error"
)

// newWebhookStatusTask compares the platform's view of the webhook with the
// configuration and warns about anything that would stop updates arriving.
func newWebhookStatusTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", WebhookStatusTask)
	wantURL := deps.Config.WebhookURL()

	return func(ctx context.Context) error {
		info, err := deps.Platform.GetWebhookInfo(ctx)
		if err != nil {
			log.ErrorContext(ctx, "Failed to fetch webhook info", "error", err)
			return fmt.Errorf("getWebhookInfo failed: %w", err)
		}

		problems := WebhookProblems(info, wantURL, time.Now())
		for _, p := range problems {
			switch p {
			case ProblemURLMismatch:
				log.WarnContext(ctx, "Registered webhook URL does not match configuration", "has_url", info.URL != "")
			case ProblemBacklog:
				log.WarnContext(ctx, "Webhook has a backlog of pending updates", "pending", info.PendingUpdateCount)
			case ProblemDeliveryFail:
				log.WarnContext(ctx, "Platform reported a recent webhook delivery error",
					"message", info.LastErrorMessage, "at", time.Unix(int64(info.LastErrorDate), 0).UTC())
			}
		}
		if len(problems) == 0 {
			log.DebugContext(ctx, "Webhook healthy", "pending", info.PendingUpdateCount)
		}
		return nil
	}
}

// WebhookProblems lists what is wrong with the registered webhook, if anything.
func WebhookProblems(info *models.WebhookInfo, wantURL string, now time.Time) []string {
	var out []string
	if info.URL != wantURL {
		out = append(out, ProblemURLMismatch)
	}
	if info.PendingUpdateCount >= pendingBacklogWarn {
		out = append(out, ProblemBacklog)
	}
	if info.LastErrorDate != 0 && now.Sub(time.Unix(int64(info.LastErrorDate), 0)) < recentErrorWindow {
		out = append(out, ProblemDeliveryFail)
	}
	return out
}
