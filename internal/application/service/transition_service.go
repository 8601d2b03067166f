package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ssrfm/indent-service/internal/application/dispatcher"
	"github.com/ssrfm/indent-service/internal/application/port"
	"github.com/ssrfm/indent-service/internal/domain/entity"
	"github.com/ssrfm/indent-service/internal/domain/event"
	"github.com/ssrfm/indent-service/internal/domain/workflow"
)

// TransitionService executes lifecycle transitions against persisted
// requisitions. Approve and Reject are the two dedicated write operations of
// the external surface; every other transition goes through Execute, the
// generic status update.
type TransitionService interface {
	Execute(ctx context.Context, id int64, role workflow.Role, target workflow.Status, data workflow.TransitionData, actor string) (*entity.Requisition, error)
	Approve(ctx context.Context, id int64, selections map[int64]string, actor string) (*entity.Requisition, error)
	Reject(ctx context.Context, id int64, reason, actor string) (*entity.Requisition, error)
	AllowedTransitions(ctx context.Context, id int64, role workflow.Role) ([]workflow.Status, error)
}

type transitionServiceImpl struct {
	indents         IndentService
	requisitionRepo port.RequisitionRepository
	itemRepo        port.ItemRepository
	historyRepo     port.HistoryRepository
	txManager       port.TransactionManager
	events          dispatcher.Dispatcher
	logger          Logger
	now             func() time.Time
}

// NewTransitionService creates a new TransitionService. The dispatcher may be
// nil when no side effects are wired.
func NewTransitionService(
	indents IndentService,
	requisitionRepo port.RequisitionRepository,
	itemRepo port.ItemRepository,
	historyRepo port.HistoryRepository,
	txManager port.TransactionManager,
	events dispatcher.Dispatcher,
	logger Logger,
) TransitionService {
	return &transitionServiceImpl{
		indents:         indents,
		requisitionRepo: requisitionRepo,
		itemRepo:        itemRepo,
		historyRepo:     historyRepo,
		txManager:       txManager,
		events:          events,
		logger:          logger,
		now:             time.Now,
	}
}

// Execute loads the aggregate, applies the transition in memory, and
// persists the outcome in one transaction. The status write is guarded by
// the version read at load time, so a requisition changed by another session
// in between surfaces workflow.ErrConcurrentModification instead of a silent
// last-write-wins.
func (s *transitionServiceImpl) Execute(ctx context.Context, id int64, role workflow.Role, target workflow.Status, data workflow.TransitionData, actor string) (*entity.Requisition, error) {
	req, err := s.indents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	version := req.Version
	if err := workflow.Apply(req, role, target, data, actor, s.now()); err != nil {
		s.logger.Error("Transition refused", "error", err, "id", id, "target", target, "role", role)
		return nil, err
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.requisitionRepo.UpdateStatus(txCtx, id, req.Status, version); err != nil {
			return err
		}

		if approve, ok := data.(workflow.ApproveData); ok {
			for itemID, quotationID := range approve.Selections {
				if err := s.itemRepo.SetSelectedVendor(txCtx, itemID, quotationID); err != nil {
					return fmt.Errorf("record vendor selection: %w", err)
				}
			}
		}
		if resubmit, ok := data.(workflow.ResubmitData); ok {
			for _, edit := range resubmit.Edits {
				item := req.ItemByID(edit.ItemID)
				if item == nil {
					continue
				}
				if err := s.itemRepo.Update(txCtx, item); err != nil {
					return fmt.Errorf("persist item edit: %w", err)
				}
			}
		}

		// Apply appends exactly one entry per successful transition.
		entry := req.History[len(req.History)-1]
		if err := s.historyRepo.Create(txCtx, entry); err != nil {
			return fmt.Errorf("create history: %w", err)
		}

		return nil
	})

	if err != nil {
		s.logger.Error("Failed to persist transition", "error", err, "id", id, "target", target)
		return nil, err
	}

	req.Version = version + 1
	s.logger.Info("Transition applied", "id", id, "indent_no", req.IndentNo, "status", req.Status, "role", role)
	s.publishTransition(ctx, req, actor)
	return req, nil
}

// publishTransition raises the status-changed event plus the dedicated
// approved/rejected event, after the transaction has committed.
func (s *transitionServiceImpl) publishTransition(ctx context.Context, req *entity.Requisition, actor string) {
	if s.events == nil {
		return
	}

	payload := map[string]interface{}{
		"status": req.Status,
		"actor":  actor,
	}

	evt := event.New(event.TypeStatusChanged, req.ID, req.IndentNo, payload)
	s.events.DispatchAsync(ctx, evt)

	switch req.Status {
	case entity.StatusApproved:
		s.events.DispatchAsync(ctx, event.NewWithCorrelation(
			event.TypeRequisitionApproved, req.ID, req.IndentNo, payload, evt.CorrelationID))
	case entity.StatusRejected:
		s.events.DispatchAsync(ctx, event.NewWithCorrelation(
			event.TypeRequisitionRejected, req.ID, req.IndentNo, payload, evt.CorrelationID))
	}
}

// Approve moves a pending requisition to approved, recording the vendor
// selection for each item.
func (s *transitionServiceImpl) Approve(ctx context.Context, id int64, selections map[int64]string, actor string) (*entity.Requisition, error) {
	return s.Execute(ctx, id, workflow.RoleApprover, workflow.StatusApproved,
		workflow.ApproveData{Selections: selections}, actor)
}

// Reject terminally rejects a pending requisition.
func (s *transitionServiceImpl) Reject(ctx context.Context, id int64, reason, actor string) (*entity.Requisition, error) {
	return s.Execute(ctx, id, workflow.RoleApprover, workflow.StatusRejected,
		workflow.RejectData{Reason: reason}, actor)
}

// AllowedTransitions reports which targets the role can reach from the
// requisition's current status.
func (s *transitionServiceImpl) AllowedTransitions(ctx context.Context, id int64, role workflow.Role) ([]workflow.Status, error) {
	req, err := s.requisitionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: id %d", workflow.ErrNotFound, id)
	}
	return workflow.AllowedTransitions(workflow.Status(req.Status), role), nil
}
