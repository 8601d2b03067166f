package port

import (
	"context"

	"github.com/ssrfm/indent-service/internal/domain/entity"
)

// RequisitionRepository defines persistence operations for Requisition
type RequisitionRepository interface {
	Create(ctx context.Context, req *entity.Requisition) error
	GetByID(ctx context.Context, id int64) (*entity.Requisition, error)
	GetByIndentNo(ctx context.Context, indentNo string) (*entity.Requisition, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Requisition, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]*entity.Requisition, error)
	CountPendingOlderThan(ctx context.Context, cutoffUnix int64) (int, error)

	// UpdateStatus writes the new status only when the stored version still
	// matches expectedVersion, and bumps the version on success. A stale
	// version yields workflow.ErrConcurrentModification.
	UpdateStatus(ctx context.Context, id int64, status string, expectedVersion int64) error

	// NextSequence returns the next per-location id sequence number.
	NextSequence(ctx context.Context, location string) (int, error)
}

// ItemRepository defines persistence operations for RequisitionItem
type ItemRepository interface {
	Create(ctx context.Context, item *entity.RequisitionItem) error
	GetByRequisitionID(ctx context.Context, requisitionID int64) ([]*entity.RequisitionItem, error)
	Update(ctx context.Context, item *entity.RequisitionItem) error
	SetSelectedVendor(ctx context.Context, itemID int64, quotationID string) error
}

// QuotationRepository defines persistence operations for VendorQuotation
type QuotationRepository interface {
	Create(ctx context.Context, q *entity.VendorQuotation) error
	GetByItemID(ctx context.Context, itemID int64) ([]*entity.VendorQuotation, error)
}

// HistoryRepository defines persistence operations for StatusHistoryEntry
type HistoryRepository interface {
	Create(ctx context.Context, entry *entity.StatusHistoryEntry) error
	GetByRequisitionID(ctx context.Context, requisitionID int64) ([]*entity.StatusHistoryEntry, error)
}

// TransactionManager runs a function inside a database transaction carried
// through the context
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
