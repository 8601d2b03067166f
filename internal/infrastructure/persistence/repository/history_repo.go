package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/ssrfm/indent-service/internal/application/port"
	"github.com/ssrfm/indent-service/internal/domain/entity"
)

// HistoryRepository implements port.HistoryRepository. The status history is
// append-only; entries are never updated or deleted.
type HistoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *sql.DB, logger *zap.Logger) port.HistoryRepository {
	return &HistoryRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends a history entry
func (r *HistoryRepository) Create(ctx context.Context, entry *entity.StatusHistoryEntry) error {
	query := `
		INSERT INTO status_history (
			requisition_id, previous_status, status, actor, actor_role,
			description, received_quantity, received_date, revert_reason,
			timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		entry.RequisitionID,
		entry.PreviousStatus,
		entry.Status,
		entry.Actor,
		entry.ActorRole,
		entry.Description,
		nullString(entry.ReceivedQuantity),
		nullString(entry.ReceivedDate),
		nullString(entry.RevertReason),
		entry.Timestamp,
	)
	if err != nil {
		r.logger.Error("Failed to create history entry", zap.Int64("requisition_id", entry.RequisitionID), zap.Error(err))
		return fmt.Errorf("failed to create history entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	entry.ID = id
	return nil
}

// GetByRequisitionID retrieves a requisition's history, oldest first
func (r *HistoryRepository) GetByRequisitionID(ctx context.Context, requisitionID int64) ([]*entity.StatusHistoryEntry, error) {
	query := `
		SELECT id, requisition_id, previous_status, status, actor, actor_role,
			description, received_quantity, received_date, revert_reason,
			timestamp
		FROM status_history
		WHERE requisition_id = ?
		ORDER BY id
	`

	rows, err := executorFrom(ctx, r.db).QueryContext(ctx, query, requisitionID)
	if err != nil {
		r.logger.Error("Failed to list history", zap.Int64("requisition_id", requisitionID), zap.Error(err))
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []*entity.StatusHistoryEntry
	for rows.Next() {
		var entry entity.StatusHistoryEntry
		var receivedQuantity, receivedDate, revertReason sql.NullString

		err := rows.Scan(
			&entry.ID,
			&entry.RequisitionID,
			&entry.PreviousStatus,
			&entry.Status,
			&entry.Actor,
			&entry.ActorRole,
			&entry.Description,
			&receivedQuantity,
			&receivedDate,
			&revertReason,
			&entry.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		entry.ReceivedQuantity = receivedQuantity.String
		entry.ReceivedDate = receivedDate.String
		entry.RevertReason = revertReason.String

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// Verify interface compliance
var _ port.HistoryRepository = (*HistoryRepository)(nil)
