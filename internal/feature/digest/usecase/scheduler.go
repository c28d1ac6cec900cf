package usecase

import (
	"context"
	"log/slog"
	"time"
)

// Job は定期実行される1回分の処理です。
type Job func(ctx context.Context) error

// Scheduler はcontextが終わるまで一定間隔でJobを実行します。
type Scheduler struct {
	interval time.Duration
	job      Job
	tick     func(d time.Duration) (<-chan time.Time, func())
}

// NewScheduler はSchedulerを生成します。
func NewScheduler(interval time.Duration, job Job) *Scheduler {
	return &Scheduler{
		interval: interval,
		job:      job,
		tick: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
	}
}

// Run はctxが終わるまでブロックします。失敗した回はログに残し、次の回も実行します。
func (s *Scheduler) Run(ctx context.Context) {
	c, stop := s.tick(s.interval)
	defer stop()
	slog.Info("scheduler started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("scheduler stopped")
			return
		case <-c:
			if err := s.job(ctx); err != nil {
				slog.Error("scheduled job failed", "error", err)
			}
		}
	}
}
