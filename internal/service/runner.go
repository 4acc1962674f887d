package service

import (
	"context"
	"log"
	"time"
)

// Runner is the continuous-mode host loop. Each frame interval it advances
// every running session of its service by one tick.
type Runner struct {
	svc      *LayoutService
	interval time.Duration
}

// NewRunner creates a host loop for svc. A non-positive interval defaults to 16ms.
func NewRunner(svc *LayoutService, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &Runner{svc: svc, interval: interval}
}

// Run blocks until ctx is cancelled
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Printf("Host loop started (frame interval %s)", r.interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("Host loop stopped")
			return
		case <-ticker.C:
			r.svc.AdvanceAll()
		}
	}
}
