package jobs

import (
	"context"
	"log/slog"
	"time"

	"canteen/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PaymentSweeperJob periodically cancels stale pending orders whose payment
// failed. Runs every minute and sweeps orders older than the configured age.
type PaymentSweeperJob struct {
	handler   commands.SweepFailedPaymentsCommandHandler
	olderThan time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPaymentSweeperJob creates a job that sweeps failed payments.
// Orders stay untouched until they are at least olderThan old, giving the
// payment provider time to retry before the order is cancelled.
func NewPaymentSweeperJob(
	handler commands.SweepFailedPaymentsCommandHandler,
	olderThan time.Duration,
	logger *slog.Logger,
) *PaymentSweeperJob {
	return &PaymentSweeperJob{
		handler:   handler,
		olderThan: olderThan,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "payment_sweeper_job"),
	}
}

// Start begins the payment sweeper job to run every minute.
func (j *PaymentSweeperJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewSweepFailedPaymentsCommand(j.olderThan)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Payment sweeper job misconfigured", "error", cmdErr)
			return
		}

		cancelled, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Payment sweeper job failed", "error", handleErr)
			return
		}

		if cancelled > 0 {
			j.logger.InfoContext(ctx, "Cancelled stale orders with failed payments",
				"count", cancelled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment sweeper job started (running every minute)")
	return nil
}

// Stop stops the payment sweeper job.
func (j *PaymentSweeperJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment sweeper job stopped")
}
