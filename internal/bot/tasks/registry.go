package tasks

import (
	"context"

	"github.com/edgard/telebot/internal/config"
)

// ScheduledTaskFunc is the signature of every scheduled task. The context is
// cancelled when the scheduler shuts down.
type ScheduledTaskFunc func(ctx context.Context) error

// Task names, as used under scheduler.tasks in the configuration.
const (
	APIHealthTask     = "api_health"
	WebhookStatusTask = "webhook_status"
)

// RegisterAllTasks returns the tasks known to the bot, keyed by name.
// The webhook status check is only registered in push mode.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := map[string]ScheduledTaskFunc{
		APIHealthTask: newAPIHealthTask(deps),
	}
	if deps.Config.Mode() == config.ModePush {
		tasks[WebhookStatusTask] = newWebhookStatusTask(deps)
	}

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
