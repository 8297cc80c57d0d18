package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/erzhanov/jobtrack/internal/domain"
	"github.com/erzhanov/jobtrack/internal/email"
	"github.com/erzhanov/jobtrack/internal/metrics"
	"github.com/robfig/cron/v3"
)

// jobLister is the slice of the job repository the digest needs.
type jobLister interface {
	OpenApplications(ctx context.Context) ([]*domain.DigestEntry, error)
}

// Digest periodically emails each user a summary of their applications
// that are still in play (pending or interview).
type Digest struct {
	jobs   jobLister
	email  email.Sender
	logger *slog.Logger
	cron   *cron.Cron
	spec   string
}

func New(jobs jobLister, sender email.Sender, logger *slog.Logger, spec string) *Digest {
	return &Digest{
		jobs:   jobs,
		email:  sender,
		logger: logger.With("component", "digest"),
		cron:   cron.New(),
		spec:   spec,
	}
}

// Start schedules the digest according to the cron spec.
func (d *Digest) Start() error {
	_, err := d.cron.AddFunc(d.spec, func() {
		if err := d.Run(context.Background()); err != nil {
			d.logger.Error("digest cycle", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule digest %q: %w", d.spec, err)
	}
	d.cron.Start()
	d.logger.Info("digest scheduled", "cron", d.spec)
	return nil
}

// Stop halts the schedule and waits for a running cycle to finish.
func (d *Digest) Stop() {
	<-d.cron.Stop().Done()
}

// Run executes one delivery cycle. A failed send for one user does not
// abort the cycle for the rest.
func (d *Digest) Run(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.DigestCycleDuration.Observe(time.Since(start).Seconds())
	}()

	entries, err := d.jobs.OpenApplications(ctx)
	if err != nil {
		return fmt.Errorf("load open applications: %w", err)
	}

	var sent, failed int
	for _, e := range entries {
		if err := d.email.Send(ctx, e.Email, "Your week in applications", renderBody(e)); err != nil {
			d.logger.Warn("digest email", "user_id", e.UserID, "error", err)
			metrics.DigestEmailsTotal.WithLabelValues("error").Inc()
			failed++
			continue
		}
		metrics.DigestEmailsTotal.WithLabelValues("success").Inc()
		sent++
	}

	d.logger.Info("digest cycle complete", "users", len(entries), "sent", sent, "failed", failed)
	return nil
}

func renderBody(e *domain.DigestEntry) string {
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>You have %d application(s) waiting to hear back and %d in the interview stage. Keep at it!</p>",
		e.Username, e.Pending, e.Interview,
	)
}
