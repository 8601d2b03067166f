package dispatcher

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ssrfm/indent-service/internal/domain/event"
)

// mockLogger implements Logger for testing
type mockLogger struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, msg)
}

func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, msg)
}

func (m *mockLogger) HasInfo(msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, info := range m.infos {
		if info == msg {
			return true
		}
	}
	return false
}

func TestDispatchCallsHandlersInOrder(t *testing.T) {
	d := New(nil)
	var order []string

	d.Subscribe(event.TypeRequisitionApproved, "first", func(ctx context.Context, evt *event.Event) error {
		order = append(order, "first")
		return nil
	})
	d.Subscribe(event.TypeRequisitionApproved, "second", func(ctx context.Context, evt *event.Event) error {
		order = append(order, "second")
		return nil
	})

	evt := event.New(event.TypeRequisitionApproved, 7, "SSRFM/UNIT2/R-240105/03", nil)
	if err := d.Dispatch(context.Background(), evt); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("handler order = %v, want [first second]", order)
	}
}

func TestDispatchSkipsOtherEventTypes(t *testing.T) {
	d := New(nil)
	called := false

	d.Subscribe(event.TypeRequisitionRejected, "rejected-only", func(ctx context.Context, evt *event.Event) error {
		called = true
		return nil
	})

	evt := event.New(event.TypeRequisitionApproved, 7, "", nil)
	if err := d.Dispatch(context.Background(), evt); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	if called {
		t.Error("handler for another event type should not run")
	}
}

func TestDispatchReturnsFirstHandlerError(t *testing.T) {
	logger := &mockLogger{}
	d := New(logger)
	wantErr := errors.New("boom")
	secondCalled := false

	d.Subscribe(event.TypeStatusChanged, "failing", func(ctx context.Context, evt *event.Event) error {
		return wantErr
	})
	d.Subscribe(event.TypeStatusChanged, "after", func(ctx context.Context, evt *event.Event) error {
		secondCalled = true
		return nil
	})

	err := d.Dispatch(context.Background(), event.New(event.TypeStatusChanged, 7, "", nil))
	if !errors.Is(err, wantErr) {
		t.Fatalf("Dispatch() error = %v, want wrapped boom", err)
	}
	if secondCalled {
		t.Error("handlers after a failure should not run")
	}
}

func TestDispatchRecoversHandlerPanic(t *testing.T) {
	d := New(nil)

	d.Subscribe(event.TypeStatusChanged, "panicking", func(ctx context.Context, evt *event.Event) error {
		panic("unexpected")
	})

	err := d.Dispatch(context.Background(), event.New(event.TypeStatusChanged, 7, "", nil))
	if err == nil {
		t.Fatal("expected error from panicking handler")
	}
}

func TestDispatchAsyncRunsHandlers(t *testing.T) {
	d := New(nil)
	var count atomic.Int32

	d.Subscribe(event.TypeRequisitionCreated, "counter", func(ctx context.Context, evt *event.Event) error {
		count.Add(1)
		return nil
	})

	d.DispatchAsync(context.Background(), event.New(event.TypeRequisitionCreated, 7, "", nil))

	// Close waits for in-flight async handlers
	if err := d.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if count.Load() != 1 {
		t.Errorf("handler calls = %d, want 1", count.Load())
	}
}

func TestClosedDispatcherRejectsDispatch(t *testing.T) {
	logger := &mockLogger{}
	d := New(logger)

	if err := d.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := d.Close(); err == nil {
		t.Error("second Close() should fail")
	}

	if err := d.Dispatch(context.Background(), event.New(event.TypeStatusChanged, 7, "", nil)); err == nil {
		t.Error("Dispatch() on closed dispatcher should fail")
	}

	d.DispatchAsync(context.Background(), event.New(event.TypeStatusChanged, 7, "", nil))
	deadline := time.After(100 * time.Millisecond)
	<-deadline
	if len(logger.errors) == 0 {
		t.Error("async dispatch on closed dispatcher should log an error")
	}
}

func TestSubscribeLogsRegistration(t *testing.T) {
	logger := &mockLogger{}
	d := New(logger)

	d.Subscribe(event.TypeOrderSheetWritten, "order-writer", func(ctx context.Context, evt *event.Event) error {
		return nil
	})

	if !logger.HasInfo("Handler registered") {
		t.Error("expected registration to be logged")
	}
}
