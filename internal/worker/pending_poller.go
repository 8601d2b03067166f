// Package worker runs the background jobs that keep the requisition flow
// moving without user interaction.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ssrfm/indent-service/internal/application/port"
)

// PendingPoller periodically counts requisitions that have sat in
// pending_approval longer than the configured threshold and logs a stale-queue
// warning so operators notice an idle approver.
type PendingPoller struct {
	requisitionRepo port.RequisitionRepository
	logger          *zap.Logger

	pollInterval time.Duration
	pendingAfter time.Duration

	mu        sync.Mutex
	isRunning bool
	ctx       context.Context
	cancel    context.CancelFunc
	now       func() time.Time
}

// NewPendingPoller creates a new pending-requisition poller
func NewPendingPoller(
	requisitionRepo port.RequisitionRepository,
	pollInterval time.Duration,
	pendingAfter time.Duration,
	logger *zap.Logger,
) *PendingPoller {
	return &PendingPoller{
		requisitionRepo: requisitionRepo,
		logger:          logger,
		pollInterval:    pollInterval,
		pendingAfter:    pendingAfter,
		now:             time.Now,
	}
}

// Start starts the polling worker
func (p *PendingPoller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isRunning {
		return fmt.Errorf("pending poller is already running")
	}

	p.ctx, p.cancel = context.WithCancel(ctx)
	p.isRunning = true

	p.logger.Info("PendingPoller started",
		zap.Duration("poll_interval", p.pollInterval),
		zap.Duration("pending_after", p.pendingAfter))

	go p.pollLoop()

	return nil
}

// Stop stops the polling worker
func (p *PendingPoller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isRunning {
		return
	}

	p.isRunning = false
	if p.cancel != nil {
		p.cancel()
	}

	p.logger.Info("PendingPoller stopped")
}

// Name returns the worker name for identification
func (p *PendingPoller) Name() string {
	return "PendingPoller"
}

func (p *PendingPoller) pollLoop() {
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	// Check immediately on start
	p.checkStalePending()

	for {
		select {
		case <-p.ctx.Done():
			return

		case <-ticker.C:
			p.checkStalePending()
		}
	}
}

func (p *PendingPoller) checkStalePending() {
	ctx, cancel := context.WithTimeout(p.ctx, 10*time.Second)
	defer cancel()

	cutoff := p.now().Add(-p.pendingAfter)

	count, err := p.requisitionRepo.CountPendingOlderThan(ctx, cutoff.Unix())
	if err != nil {
		p.logger.Error("Failed to count stale pending requisitions", zap.Error(err))
		return
	}

	if count == 0 {
		return
	}

	p.logger.Warn("Requisitions awaiting approval past threshold",
		zap.Int("count", count),
		zap.Time("pending_since_before", cutoff))
}
