package jobs

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const DefaultGuestExpirySchedule = "@every 1m"

// GuestOrderExpirer expires a batch of overdue guest orders.
type GuestOrderExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireGuestOrdersCommand) (int, error)
}

// GuestOrderExpiryJob periodically moves guest orders past their tracking
// window to Expired.
type GuestOrderExpiryJob struct {
	handler   GuestOrderExpirer
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewGuestOrderExpiryJob creates the job. An empty schedule falls back to
// DefaultGuestExpirySchedule and a non-positive batch size to
// commands.DefaultExpiryBatchSize.
func NewGuestOrderExpiryJob(
	handler GuestOrderExpirer,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *GuestOrderExpiryJob {
	if schedule == "" {
		schedule = DefaultGuestExpirySchedule
	}
	if batchSize <= 0 {
		batchSize = commands.DefaultExpiryBatchSize
	}
	return &GuestOrderExpiryJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "guest_order_expiry_job"),
	}
}

// Start registers the sweep on the schedule and starts the scheduler.
func (j *GuestOrderExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.RunOnce(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Guest order expiry job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single sweep and reports how many orders expired.
func (j *GuestOrderExpiryJob) RunOnce(ctx context.Context) (int, error) {
	cmd, err := commands.NewExpireGuestOrdersCommand(j.batchSize)
	if err != nil {
		return 0, err
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Guest order expiry job failed", "error", err)
		return expired, err
	}

	if expired > 0 {
		j.logger.InfoContext(ctx, "Guest orders expired", "count", expired)
	}
	return expired, nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *GuestOrderExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Guest order expiry job stopped")
}
