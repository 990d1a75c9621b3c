package digest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/customer360/internal/config"
	"github.com/Dan9191/customer360/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// runTimeout bounds a single digest run
const runTimeout = time.Minute

// ErrDisabled is returned when no schedule or no recipients are configured
var ErrDisabled = errors.New("digest disabled")

// SummaryProvider computes the KPI tiles that go into a digest
type SummaryProvider interface {
	TodaySummary(ctx context.Context) (models.TodaySummary, error)
}

// Mailer delivers a rendered digest
type Mailer interface {
	SendDailyDigest(recipients []string, summary models.TodaySummary) error
}

// Scheduler emails today's KPI summary on a cron schedule
type Scheduler struct {
	cron       *cron.Cron
	summaries  SummaryProvider
	mailer     Mailer
	recipients []string
	log        *logrus.Logger
}

// NewScheduler registers the digest job. The schedule is a standard five field cron
// expression evaluated in the configured timezone.
func NewScheduler(cfg *config.Config, summaries SummaryProvider, mailer Mailer, log *logrus.Logger) (*Scheduler, error) {
	if cfg.DigestSchedule == "" || len(cfg.DigestRecipients) == 0 {
		return nil, ErrDisabled
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		summaries:  summaries,
		mailer:     mailer,
		recipients: cfg.DigestRecipients,
		log:        log,
	}
	if _, err := s.cron.AddFunc(cfg.DigestSchedule, s.run); err != nil {
		return nil, fmt.Errorf("failed to schedule digest %q: %w", cfg.DigestSchedule, err)
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Infof("Digest scheduled, next run at %s", s.cron.Entries()[0].Next.Format(time.RFC3339))
}

// Stop halts the scheduler. The returned context is done once a running job finishes.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunOnce computes today's summary and mails it
func (s *Scheduler) RunOnce(ctx context.Context) error {
	summary, err := s.summaries.TodaySummary(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute digest: %w", err)
	}
	if err := s.mailer.SendDailyDigest(s.recipients, summary); err != nil {
		return err
	}
	s.log.Infof("Digest for %s sent to %d recipients", summary.Date, len(s.recipients))
	return nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	if err := s.RunOnce(ctx); err != nil {
		s.log.Errorf("Digest run failed: %v", err)
	}
}
