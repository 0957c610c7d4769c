package jobs

import (
	"context"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/pkg/metrics"

	"github.com/go-faster/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultDispatchSchedule runs the dispatch every five seconds.
const DefaultDispatchSchedule = "*/5 * * * * *"

// NotificationDispatcher delivers one batch of pending notifications.
type NotificationDispatcher interface {
	Handle(ctx context.Context, cmd commands.DispatchNotificationsCommand) (commands.DispatchResult, error)
}

// NotificationDispatchJob periodically drains the notification outbox.
type NotificationDispatchJob struct {
	dispatcher NotificationDispatcher
	cmd        commands.DispatchNotificationsCommand
	schedule   string
	timeout    time.Duration
	cron       *cron.Cron
	logger     *zap.Logger
}

// NewNotificationDispatchJob creates the dispatch job. An empty schedule selects
// DefaultDispatchSchedule; the schedule uses the six field (seconds) cron format.
func NewNotificationDispatchJob(
	dispatcher NotificationDispatcher,
	cmd commands.DispatchNotificationsCommand,
	schedule string,
	logger *zap.Logger,
) (*NotificationDispatchJob, error) {
	if dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if schedule == "" {
		schedule = DefaultDispatchSchedule
	}

	return &NotificationDispatchJob{
		dispatcher: dispatcher,
		cmd:        cmd,
		schedule:   schedule,
		timeout:    time.Minute,
		cron:       cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:     logger.Named("notification_dispatch_job"),
	}, nil
}

// Start registers the job and starts the scheduler.
func (j *NotificationDispatchJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return errors.Wrapf(err, "schedule %q", j.schedule)
	}

	j.cron.Start()
	j.logger.Info("Notification dispatch job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops the scheduler and waits for a running dispatch to finish.
func (j *NotificationDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Notification dispatch job stopped")
}

// RunOnce delivers one batch and records the outcome in metrics.
func (j *NotificationDispatchJob) RunOnce(ctx context.Context) (commands.DispatchResult, error) {
	result, err := j.dispatcher.Handle(ctx, j.cmd)

	metrics.NotificationsDispatched.WithLabelValues("sent").Add(float64(result.Sent))
	metrics.NotificationsDispatched.WithLabelValues("failed").Add(float64(result.Failed))

	return result, err
}

func (j *NotificationDispatchJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	result, err := j.RunOnce(ctx)
	if err != nil {
		j.logger.Error("Notification dispatch failed", zap.Error(err))
		return
	}
	if result.Sent > 0 || result.Failed > 0 {
		j.logger.Debug("Notifications dispatched",
			zap.Int("sent", result.Sent),
			zap.Int("failed", result.Failed),
		)
	}
}
