package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sashafierce98/TGPTaskflow/internal/repository"
)

// SchedulerService wraps cron-based jobs.
type SchedulerService struct {
	cron *cron.Cron
}

func NewSchedulerService() *SchedulerService {
	return &SchedulerService{
		cron: cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
	}
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// ScheduleInterval registers a periodic job every given duration.
func (s *SchedulerService) ScheduleInterval(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	spec := fmt.Sprintf("@every %ds", seconds)
	return s.cron.AddFunc(spec, job)
}

// SessionPurger drops sessions whose expiry has passed.
type SessionPurger struct {
	sessionRepo repository.SessionRepositoryInterface
	now         func() time.Time
}

func NewSessionPurger(sessionRepo repository.SessionRepositoryInterface) *SessionPurger {
	return &SessionPurger{sessionRepo: sessionRepo, now: time.Now}
}

func (p *SessionPurger) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	purged, err := p.sessionRepo.DeleteExpired(ctx, p.now())
	if err != nil {
		slog.Error("purge expired sessions", "err", err)
		return
	}
	if purged > 0 {
		slog.Info("purged expired sessions", "count", purged)
	}
}
