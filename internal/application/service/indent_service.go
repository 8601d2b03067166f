package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ssrfm/indent-service/internal/application/dispatcher"
	"github.com/ssrfm/indent-service/internal/application/port"
	"github.com/ssrfm/indent-service/internal/domain/entity"
	"github.com/ssrfm/indent-service/internal/domain/event"
	"github.com/ssrfm/indent-service/internal/domain/indentid"
	"github.com/ssrfm/indent-service/internal/domain/workflow"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// NewItem carries the fields needed to create one requisition line.
type NewItem struct {
	ProductName    string
	Specifications string
	MachineName    string
	MeasureUnit    string
	OldStock       string
	ReqQuantity    string
	Notes          string
}

// NewQuotation carries the fields needed to record a vendor quotation
// against an item.
type NewQuotation struct {
	ItemID        int64
	VendorName    string
	ContactPerson string
	Phone         string
	QuotedPrice   string
	Notes         string
	AttachmentRef string
	IsSelected    bool
}

// IndentService manages requisition aggregates
type IndentService interface {
	Create(ctx context.Context, requestedBy, location string, items []NewItem) (*entity.Requisition, error)
	GetByID(ctx context.Context, id int64) (*entity.Requisition, error)
	GetByIndentNo(ctx context.Context, indentNo string) (*entity.Requisition, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Requisition, error)
	ListRecentApproved(ctx context.Context, limit int) ([]*entity.Requisition, error)
	AddQuotation(ctx context.Context, requisitionID int64, q NewQuotation) (*entity.VendorQuotation, error)
}

type indentServiceImpl struct {
	requisitionRepo port.RequisitionRepository
	itemRepo        port.ItemRepository
	quotationRepo   port.QuotationRepository
	historyRepo     port.HistoryRepository
	txManager       port.TransactionManager
	events          dispatcher.Dispatcher
	logger          Logger
}

// NewIndentService creates a new IndentService. The dispatcher may be nil
// when no side effects are wired.
func NewIndentService(
	requisitionRepo port.RequisitionRepository,
	itemRepo port.ItemRepository,
	quotationRepo port.QuotationRepository,
	historyRepo port.HistoryRepository,
	txManager port.TransactionManager,
	events dispatcher.Dispatcher,
	logger Logger,
) IndentService {
	return &indentServiceImpl{
		requisitionRepo: requisitionRepo,
		itemRepo:        itemRepo,
		quotationRepo:   quotationRepo,
		historyRepo:     historyRepo,
		txManager:       txManager,
		events:          events,
		logger:          logger,
	}
}

// Create creates a new requisition in pending_approval with its items, and
// assigns the human-readable indent number from the per-location sequence.
func (s *indentServiceImpl) Create(ctx context.Context, requestedBy, location string, items []NewItem) (*entity.Requisition, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: a requisition needs at least one item", workflow.ErrMissingRequiredData)
	}

	now := time.Now()
	req := &entity.Requisition{
		Status:      string(workflow.StatusPendingApproval),
		RequestedBy: requestedBy,
		Location:    location,
		RequestDate: now,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		seq, err := s.requisitionRepo.NextSequence(txCtx, location)
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}

		indentNo, err := indentid.Generate(location, indentid.KindRequest, now, seq)
		if err != nil {
			return fmt.Errorf("generate indent no: %w", err)
		}
		req.IndentNo = indentNo

		if err := s.requisitionRepo.Create(txCtx, req); err != nil {
			return fmt.Errorf("create requisition: %w", err)
		}

		for _, in := range items {
			item := &entity.RequisitionItem{
				RequisitionID:  req.ID,
				ProductName:    in.ProductName,
				Specifications: in.Specifications,
				MachineName:    in.MachineName,
				MeasureUnit:    in.MeasureUnit,
				OldStock:       in.OldStock,
				ReqQuantity:    in.ReqQuantity,
				Notes:          in.Notes,
				CreatedAt:      now,
			}
			if err := s.itemRepo.Create(txCtx, item); err != nil {
				return fmt.Errorf("create item: %w", err)
			}
			req.Items = append(req.Items, item)
		}

		entry := &entity.StatusHistoryEntry{
			RequisitionID: req.ID,
			Status:        string(workflow.StatusPendingApproval),
			Actor:         requestedBy,
			ActorRole:     string(workflow.RoleSupervisor),
			Description:   "Requisition raised",
			Timestamp:     now,
		}
		if err := s.historyRepo.Create(txCtx, entry); err != nil {
			return fmt.Errorf("create history: %w", err)
		}
		req.History = append(req.History, entry)

		return nil
	})

	if err != nil {
		s.logger.Error("Failed to create requisition", "error", err, "location", location)
		return nil, err
	}

	s.logger.Info("Requisition created", "id", req.ID, "indent_no", req.IndentNo, "items", len(req.Items))
	if s.events != nil {
		s.events.DispatchAsync(ctx, event.New(event.TypeRequisitionCreated, req.ID, req.IndentNo, map[string]interface{}{
			"location":     location,
			"requested_by": requestedBy,
		}))
	}
	return req, nil
}

// GetByID retrieves the full aggregate: requisition, items, quotations and
// status history.
func (s *indentServiceImpl) GetByID(ctx context.Context, id int64) (*entity.Requisition, error) {
	req, err := s.requisitionRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get requisition", "error", err, "id", id)
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: id %d", workflow.ErrNotFound, id)
	}

	if err := s.loadAggregate(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// GetByIndentNo retrieves the full aggregate by its human-readable indent
// number.
func (s *indentServiceImpl) GetByIndentNo(ctx context.Context, indentNo string) (*entity.Requisition, error) {
	req, err := s.requisitionRepo.GetByIndentNo(ctx, indentNo)
	if err != nil {
		s.logger.Error("Failed to get requisition", "error", err, "indent_no", indentNo)
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: indent %s", workflow.ErrNotFound, indentNo)
	}

	if err := s.loadAggregate(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// List retrieves a paginated list of requisitions, most recent first. Items
// and history are not loaded for list views.
func (s *indentServiceImpl) List(ctx context.Context, limit, offset int) ([]*entity.Requisition, error) {
	reqs, err := s.requisitionRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list requisitions", "error", err)
		return nil, err
	}
	return reqs, nil
}

// ListRecentApproved returns the last N approved requisitions for the
// history display.
func (s *indentServiceImpl) ListRecentApproved(ctx context.Context, limit int) ([]*entity.Requisition, error) {
	reqs, err := s.requisitionRepo.ListByStatus(ctx, string(workflow.StatusApproved), limit)
	if err != nil {
		s.logger.Error("Failed to list approved requisitions", "error", err)
		return nil, err
	}
	return reqs, nil
}

// AddQuotation records a vendor quotation against an item. Quotations may
// only be added while the requisition is still pending approval; they are
// immutable afterwards.
func (s *indentServiceImpl) AddQuotation(ctx context.Context, requisitionID int64, in NewQuotation) (*entity.VendorQuotation, error) {
	req, err := s.requisitionRepo.GetByID(ctx, requisitionID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: id %d", workflow.ErrNotFound, requisitionID)
	}
	if req.Status != string(workflow.StatusPendingApproval) {
		return nil, fmt.Errorf("%w: quotations can only be added while pending approval, status is %s",
			workflow.ErrInvalidTransition, req.Status)
	}

	price, err := decimalFromString(in.QuotedPrice)
	if err != nil {
		return nil, fmt.Errorf("%w: quoted price %q", workflow.ErrMissingRequiredData, in.QuotedPrice)
	}

	q := &entity.VendorQuotation{
		ID:            uuid.NewString(),
		ItemID:        in.ItemID,
		VendorName:    in.VendorName,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		QuotedPrice:   price,
		Notes:         in.Notes,
		AttachmentRef: in.AttachmentRef,
		IsSelected:    in.IsSelected,
		CreatedAt:     time.Now(),
	}

	if q.VendorName == "" {
		return nil, fmt.Errorf("%w: vendor name is required", workflow.ErrMissingRequiredData)
	}

	if err := s.quotationRepo.Create(ctx, q); err != nil {
		s.logger.Error("Failed to add quotation", "error", err, "requisition_id", requisitionID)
		return nil, err
	}

	s.logger.Info("Quotation added", "requisition_id", requisitionID, "item_id", in.ItemID, "vendor", in.VendorName)
	if s.events != nil {
		s.events.DispatchAsync(ctx, event.New(event.TypeQuotationAdded, requisitionID, req.IndentNo, map[string]interface{}{
			"item_id": in.ItemID,
			"vendor":  in.VendorName,
		}))
	}
	return q, nil
}

// loadAggregate attaches items, their quotations and the status history to
// the requisition.
func (s *indentServiceImpl) loadAggregate(ctx context.Context, req *entity.Requisition) error {
	items, err := s.itemRepo.GetByRequisitionID(ctx, req.ID)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	for _, item := range items {
		quotations, err := s.quotationRepo.GetByItemID(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("load quotations: %w", err)
		}
		item.Quotations = quotations
	}
	req.Items = items

	history, err := s.historyRepo.GetByRequisitionID(ctx, req.ID)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	req.History = history

	return nil
}

func decimalFromString(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty decimal")
	}
	return decimal.NewFromString(s)
}
