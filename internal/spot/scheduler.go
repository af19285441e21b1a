package spot

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultPruneInterval = time.Minute

// Scheduler drives the providers: one poll job per provider on its own
// refresh interval, plus a shared job pruning stale rates.
type Scheduler struct {
	providers     []*Provider
	pruneInterval time.Duration
	// -----
	sched gocron.Scheduler
}

func NewScheduler(providers []*Provider, pruneInterval time.Duration) *Scheduler {
	if pruneInterval <= 0 {
		pruneInterval = defaultPruneInterval
	}
	return &Scheduler{providers: providers, pruneInterval: pruneInterval}
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.sched = scheduler

	for _, p := range s.providers {
		job := func(jobCtx context.Context) {
			execID := uuid.NewString()
			rates := p.Poll(jobCtx)
			logrus.Infof("%s poll published %d rates; execID: %s", p.Name(), len(rates), execID)
		}

		_, err = scheduler.NewJob(
			gocron.DurationJob(p.RefreshInterval()),
			gocron.NewTask(job),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithStartAt(gocron.WithStartImmediately()),
		)
		if err != nil {
			return err
		}
	}

	pruneJob := func(context.Context) {
		for _, p := range s.providers {
			p.PruneStale()
		}
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(s.pruneInterval),
		gocron.NewTask(pruneJob),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}
