package worker

import (
	"context"

	"go.uber.org/zap"
)

// Worker defines the common contract for all background workers
type Worker interface {
	Start(ctx context.Context) error
	Stop()
	Name() string
}

// Manager owns the lifecycle of a fixed set of background workers
type Manager struct {
	workers []Worker
	logger  *zap.Logger
}

// NewManager creates a manager over the given workers
func NewManager(logger *zap.Logger, workers ...Worker) *Manager {
	return &Manager{
		workers: workers,
		logger:  logger,
	}
}

// StartAll starts the workers in order. The first failure stops the rollout,
// stops anything already started, and is returned.
func (m *Manager) StartAll(ctx context.Context) error {
	for i, w := range m.workers {
		if err := w.Start(ctx); err != nil {
			m.logger.Error("Failed to start worker",
				zap.String("name", w.Name()),
				zap.Error(err))
			m.stopFrom(i - 1)
			return err
		}
		m.logger.Info("Worker started", zap.String("name", w.Name()))
	}
	return nil
}

// StopAll stops all workers in reverse start order
func (m *Manager) StopAll() {
	m.stopFrom(len(m.workers) - 1)
}

func (m *Manager) stopFrom(i int) {
	for ; i >= 0; i-- {
		w := m.workers[i]
		w.Stop()
		m.logger.Info("Worker stopped", zap.String("name", w.Name()))
	}
}
