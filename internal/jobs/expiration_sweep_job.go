package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"broker/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ExpirationSweepJob enforces TTLs on pending quotes and offers. Each tick
// runs one sweep pass that expires everything past its deadline.
type ExpirationSweepJob struct {
	handler  commands.SweepExpiredCommandHandler
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewExpirationSweepJob creates the sweep job. The interval controls how
// often a pass runs; anything below a second is rounded up to one second.
func NewExpirationSweepJob(
	handler commands.SweepExpiredCommandHandler,
	interval time.Duration,
	logger *slog.Logger,
) *ExpirationSweepJob {
	if interval < time.Second {
		interval = time.Second
	}
	return &ExpirationSweepJob{
		handler:  handler,
		interval: interval,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "expiration_sweep_job"),
	}
}

// Start schedules the sweep and begins ticking.
func (j *ExpirationSweepJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		ctx := context.Background()
		cmd := commands.NewSweepExpiredCommand()

		report, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Expiration sweep failed", "error", err)
			return
		}

		// An empty pass is the common case and not worth a log line.
		if report.QuotesExpired > 0 || report.OffersExpired > 0 {
			j.logger.InfoContext(ctx, "Expiration sweep completed",
				"quotes_expired", report.QuotesExpired,
				"offers_expired", report.OffersExpired)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expiration sweep job started", "interval", j.interval.String())
	return nil
}

// Stop stops the sweep job.
func (j *ExpirationSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Expiration sweep job stopped")
}
