package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the daily stats report on a cron schedule (UTC).
type Scheduler struct {
	cron       *cron.Cron
	ctx        context.Context
	cancel     context.CancelFunc
	spec       string
	reportFunc func(ctx context.Context) error
}

func New(spec string, reportFunc func(ctx context.Context) error) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		ctx:        ctx,
		cancel:     cancel,
		spec:       spec,
		reportFunc: reportFunc,
	}
}

func (s *Scheduler) Start() error {
	if s.spec == "" {
		log.Println("daily report disabled: empty schedule")
		return nil
	}
	_, err := s.cron.AddFunc(s.spec, func() {
		if err := s.reportFunc(s.ctx); err != nil {
			log.Printf("daily report failed: %v", err)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("scheduler started, daily report at %q UTC", s.spec)
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
}
