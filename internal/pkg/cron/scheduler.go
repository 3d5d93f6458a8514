package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type job struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context) error
}

// Scheduler runs registered jobs on fixed intervals, one goroutine per
// job. WorkLoop's background work is a single retention sweep, so this
// stays deliberately small; there is no calendar syntax.
type Scheduler struct {
	mu     sync.Mutex
	jobs   []job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers a job. Jobs added after Start are not picked up.
func (s *Scheduler) AddJob(name string, interval time.Duration, run func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, job{name: name, interval: interval, run: run})
	slog.Info("Background job registered", "job", name, "interval", interval)
}

// Start launches every registered job. Each job runs once immediately,
// then on every interval tick.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(j)
	}
	slog.Info("Scheduler started", "jobs", len(s.jobs))
}

// Stop cancels all jobs and waits for in-flight runs to return.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) loop(j job) {
	defer s.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	s.execute(s.ctx, j)
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.execute(s.ctx, j)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, j job) {
	start := time.Now()
	if err := j.run(ctx); err != nil {
		slog.Error("Background job failed", "job", j.name, "error", err, "elapsed", time.Since(start))
		return
	}
	slog.Debug("Background job finished", "job", j.name, "elapsed", time.Since(start))
}

// RunOnce executes every registered job a single time, synchronously.
// The server does not call this; tests and one-off maintenance do.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		s.execute(ctx, j)
	}
}
