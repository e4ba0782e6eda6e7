package service

import (
	"context"
	"time"

	"github.com/DenisKhanov/BotPanel/internal/panel/constant"
	"github.com/sirupsen/logrus"
)

// StatusChecker is the part of Panel the poller drives.
type StatusChecker interface {
	CheckStatus(ctx context.Context) error
}

// Poller keeps the run state fresh by calling CheckStatus on a fixed interval.
type Poller struct {
	checker  StatusChecker
	interval time.Duration
	timeout  time.Duration // per-check timeout
}

// NewPoller creates a new instance of Poller.
// Arguments:
//   - checker: the panel whose status is refreshed.
//   - interval: time between checks; zero means constant.POLL_INTERVAL.
//   - timeout: deadline of a single check; zero means constant.REQUEST_TIMEOUT.
//
// Returns a pointer to a Poller.
func NewPoller(checker StatusChecker, interval, timeout time.Duration) *Poller {
	if interval <= 0 {
		interval = constant.POLL_INTERVAL
	}
	if timeout <= 0 {
		timeout = constant.REQUEST_TIMEOUT
	}
	return &Poller{checker: checker, interval: interval, timeout: timeout}
}

// Run checks once right away, then on every tick until ctx is done.
// Errors are not fatal: the next tick simply tries again.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.check(ctx)
	for {
		select {
		case <-ctx.Done():
			logrus.Info("Status poller stopped")
			return
		case <-ticker.C:
			p.check(ctx)
		}
	}
}

func (p *Poller) check(ctx context.Context) {
	checkCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	_ = p.checker.CheckStatus(checkCtx) // already logged by the checker
}
