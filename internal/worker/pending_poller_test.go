package worker

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ssrfm/indent-service/internal/application/port"
	"github.com/ssrfm/indent-service/internal/domain/entity"
)

type countingRepo struct {
	port.RequisitionRepository

	gotCutoff int64
	count     int
	err       error
}

func (r *countingRepo) CountPendingOlderThan(ctx context.Context, cutoffUnix int64) (int, error) {
	r.gotCutoff = cutoffUnix
	return r.count, r.err
}

func (r *countingRepo) List(ctx context.Context, limit, offset int) ([]*entity.Requisition, error) {
	return nil, nil
}

func TestCheckStalePendingUsesThresholdCutoff(t *testing.T) {
	repo := &countingRepo{count: 2}
	poller := NewPendingPoller(repo, time.Minute, 24*time.Hour, zap.NewNop())

	now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	poller.now = func() time.Time { return now }
	poller.ctx, poller.cancel = context.WithCancel(context.Background())
	defer poller.cancel()

	poller.checkStalePending()

	want := now.Add(-24 * time.Hour).Unix()
	if repo.gotCutoff != want {
		t.Errorf("cutoff = %d, want %d", repo.gotCutoff, want)
	}
}

func TestStartTwiceFails(t *testing.T) {
	repo := &countingRepo{}
	poller := NewPendingPoller(repo, time.Hour, 24*time.Hour, zap.NewNop())

	if err := poller.Start(context.Background()); err != nil {
		t.Fatalf("first Start() error = %v", err)
	}
	defer poller.Stop()

	if err := poller.Start(context.Background()); err == nil {
		t.Error("second Start() should fail while running")
	}
}

func TestStopWithoutStartIsNoop(t *testing.T) {
	poller := NewPendingPoller(&countingRepo{}, time.Hour, 24*time.Hour, zap.NewNop())
	poller.Stop()
}

type recordingWorker struct {
	name    string
	started bool
	stopped bool
	failErr error
}

func (w *recordingWorker) Start(ctx context.Context) error {
	if w.failErr != nil {
		return w.failErr
	}
	w.started = true
	return nil
}

func (w *recordingWorker) Stop()        { w.stopped = true }
func (w *recordingWorker) Name() string { return w.name }

func TestManagerStartsAndStopsAll(t *testing.T) {
	first := &recordingWorker{name: "first"}
	second := &recordingWorker{name: "second"}
	mgr := NewManager(zap.NewNop(), first, second)

	if err := mgr.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll() error = %v", err)
	}
	if !first.started || !second.started {
		t.Error("all workers should start")
	}

	mgr.StopAll()
	if !first.stopped || !second.stopped {
		t.Error("all workers should stop")
	}
}

func TestManagerRollsBackOnStartFailure(t *testing.T) {
	first := &recordingWorker{name: "first"}
	failing := &recordingWorker{name: "failing", failErr: context.DeadlineExceeded}
	mgr := NewManager(zap.NewNop(), first, failing)

	if err := mgr.StartAll(context.Background()); err == nil {
		t.Fatal("StartAll() should surface the worker failure")
	}
	if !first.stopped {
		t.Error("previously started workers should be stopped on failure")
	}
}
