package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Nudger composes the morning reminder. ok is false when no reminder is due.
type Nudger interface {
	BuildNudge() (msg string, ok bool, err error)
}

// Notifier delivers a reminder somewhere the user will see it.
type Notifier interface {
	Notify(ctx context.Context, msg string) error
}

const deliveryTimeout = 30 * time.Second

type Scheduler struct {
	cron     *cron.Cron
	nudger   Nudger
	notifier Notifier
	log      *zap.Logger

	mu      sync.Mutex
	entryID cron.EntryID
	expr    string
}

func New(nudger Nudger, notifier Notifier, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron:     cron.New(),
		nudger:   nudger,
		notifier: notifier,
		log:      log.With(zap.String("component", "scheduler")),
	}
}

// Schedule registers the daily check-in at the given cron expression,
// replacing any earlier registration.
func (s *Scheduler) Schedule(expr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(expr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()
		if _, err := s.RunOnce(ctx); err != nil {
			s.log.Error("check-in failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron %q: %w", expr, err)
	}
	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
	}
	s.entryID = id
	s.expr = expr
	s.log.Info("check-in scheduled", zap.String("cron", expr))
	return nil
}

// Next reports when the check-in fires next. Zero if nothing is scheduled or
// the scheduler is not running.
func (s *Scheduler) Next() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entryID == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started")
}

// Stop halts the cron loop and waits for a running check-in to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce builds today's nudge and delivers it if one is due. It reports
// whether a message was sent.
func (s *Scheduler) RunOnce(ctx context.Context) (bool, error) {
	msg, ok, err := s.nudger.BuildNudge()
	if err != nil {
		return false, err
	}
	if !ok {
		s.log.Info("entry already written today, skipping check-in")
		return false, nil
	}
	if err := s.notifier.Notify(ctx, msg); err != nil {
		return false, fmt.Errorf("delivering check-in: %w", err)
	}
	s.log.Info("check-in delivered")
	return true, nil
}
