// Package worker runs the periodic background jobs.
package worker

import (
	"context"
	"time"

	"enquirycrm/internal/domain"
	"enquirycrm/internal/logger"
	"enquirycrm/internal/metrics"
	"enquirycrm/internal/notify"
)

// Scanner is the read side the worker drives.
type Scanner interface {
	Window(days int) (time.Time, time.Time)
	Due(ctx context.Context, salesPersonID *uint, windowDays int) ([]domain.Enquiry, error)
}

// FollowUpWorker scans for due follow-ups on a fixed interval and hands the
// result to every notifier.
type FollowUpWorker struct {
	scanner   Scanner
	notifiers []notify.Notifier
	interval  time.Duration
	days      int
}

// NewFollowUpWorker creates the worker. days is the scan window beyond today.
func NewFollowUpWorker(scanner Scanner, interval time.Duration, days int, notifiers ...notify.Notifier) *FollowUpWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	if days < 0 {
		days = 0
	}
	return &FollowUpWorker{scanner: scanner, notifiers: notifiers, interval: interval, days: days}
}

// Start scans immediately and then on every tick until ctx is cancelled.
func (w *FollowUpWorker) Start(ctx context.Context) {
	log := logger.For("FOLLOW_UP")
	log.WithFields(map[string]any{
		"interval": w.interval.String(),
		"days":     w.days,
	}).Info("Starting follow-up worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.safeRun(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info("Follow-up worker stopped")
			return
		case <-ticker.C:
			w.safeRun(ctx)
		}
	}
}

func (w *FollowUpWorker) safeRun(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.For("FOLLOW_UP").WithField("panic", r).Error("Follow-up scan panicked, retrying on next tick")
		}
	}()
	_, _ = w.RunOnce(ctx)
}

// RunOnce performs a single scan and delivery. Notifier failures are logged
// and counted but do not fail the run.
func (w *FollowUpWorker) RunOnce(ctx context.Context) (int, error) {
	log := logger.For("FOLLOW_UP")

	due, err := w.scanner.Due(ctx, nil, w.days)
	metrics.RecordFollowUpScan(len(due), err)
	if err != nil {
		log.WithError(err).Error("Follow-up scan failed")
		return 0, err
	}
	if len(due) == 0 {
		log.Debug("No follow-ups due")
		return 0, nil
	}

	from, to := w.scanner.Window(w.days)
	d := notify.Digest{From: from, To: to, Enquiries: due}
	for _, n := range w.notifiers {
		err := n.Notify(ctx, d)
		metrics.RecordNotification(n.Name(), err)
		if err != nil {
			log.WithError(err).WithField("channel", n.Name()).Warn("Follow-up notification failed")
		}
	}
	return len(due), nil
}
