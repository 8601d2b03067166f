package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/ssrfm/indent-service/internal/application/port"
	"github.com/ssrfm/indent-service/internal/domain/entity"
	"github.com/ssrfm/indent-service/internal/domain/workflow"
)

// RequisitionRepository implements port.RequisitionRepository
type RequisitionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRequisitionRepository creates a new requisition repository
func NewRequisitionRepository(db *sql.DB, logger *zap.Logger) port.RequisitionRepository {
	return &RequisitionRepository{
		db:     db,
		logger: logger,
	}
}

const requisitionColumns = `
	id, indent_no, status, requested_by, location, request_date,
	version, created_at, updated_at
`

// Create creates a new requisition
func (r *RequisitionRepository) Create(ctx context.Context, req *entity.Requisition) error {
	query := `
		INSERT INTO requisitions (
			indent_no, status, requested_by, location, request_date,
			version, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		req.IndentNo,
		req.Status,
		req.RequestedBy,
		req.Location,
		req.RequestDate,
		req.Version,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create requisition", zap.Error(err))
		return fmt.Errorf("failed to create requisition: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	req.ID = id
	return nil
}

// GetByID retrieves a requisition by ID
func (r *RequisitionRepository) GetByID(ctx context.Context, id int64) (*entity.Requisition, error) {
	query := `SELECT ` + requisitionColumns + ` FROM requisitions WHERE id = ?`
	return r.scanOne(ctx, query, id)
}

// GetByIndentNo retrieves a requisition by its human-readable id
func (r *RequisitionRepository) GetByIndentNo(ctx context.Context, indentNo string) (*entity.Requisition, error) {
	query := `SELECT ` + requisitionColumns + ` FROM requisitions WHERE indent_no = ?`
	return r.scanOne(ctx, query, indentNo)
}

func (r *RequisitionRepository) scanOne(ctx context.Context, query string, arg interface{}) (*entity.Requisition, error) {
	var req entity.Requisition

	err := executorFrom(ctx, r.db).QueryRowContext(ctx, query, arg).Scan(
		&req.ID,
		&req.IndentNo,
		&req.Status,
		&req.RequestedBy,
		&req.Location,
		&req.RequestDate,
		&req.Version,
		&req.CreatedAt,
		&req.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get requisition", zap.Error(err))
		return nil, fmt.Errorf("failed to get requisition: %w", err)
	}

	return &req, nil
}

// List retrieves requisitions with pagination, most recent first
func (r *RequisitionRepository) List(ctx context.Context, limit, offset int) ([]*entity.Requisition, error) {
	query := `
		SELECT ` + requisitionColumns + `
		FROM requisitions
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`
	return r.scanMany(ctx, query, limit, offset)
}

// ListByStatus retrieves the most recent requisitions in the given status
func (r *RequisitionRepository) ListByStatus(ctx context.Context, status string, limit int) ([]*entity.Requisition, error) {
	query := `
		SELECT ` + requisitionColumns + `
		FROM requisitions
		WHERE status = ?
		ORDER BY updated_at DESC
		LIMIT ?
	`
	return r.scanMany(ctx, query, status, limit)
}

func (r *RequisitionRepository) scanMany(ctx context.Context, query string, args ...interface{}) ([]*entity.Requisition, error) {
	rows, err := executorFrom(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list requisitions", zap.Error(err))
		return nil, fmt.Errorf("failed to list requisitions: %w", err)
	}
	defer rows.Close()

	var reqs []*entity.Requisition
	for rows.Next() {
		var req entity.Requisition
		err := rows.Scan(
			&req.ID,
			&req.IndentNo,
			&req.Status,
			&req.RequestedBy,
			&req.Location,
			&req.RequestDate,
			&req.Version,
			&req.CreatedAt,
			&req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan requisition: %w", err)
		}
		reqs = append(reqs, &req)
	}

	return reqs, rows.Err()
}

// CountPendingOlderThan counts requisitions still pending approval whose
// last update predates the cutoff
func (r *RequisitionRepository) CountPendingOlderThan(ctx context.Context, cutoffUnix int64) (int, error) {
	// strftime returns TEXT; the cast is required for the comparison against
	// the bound integer cutoff to be numeric.
	query := `
		SELECT COUNT(*)
		FROM requisitions
		WHERE status = ? AND CAST(strftime('%s', updated_at) AS INTEGER) < ?
	`

	var count int
	err := executorFrom(ctx, r.db).QueryRowContext(ctx, query,
		string(workflow.StatusPendingApproval), cutoffUnix).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count pending requisitions", zap.Error(err))
		return 0, fmt.Errorf("failed to count pending requisitions: %w", err)
	}

	return count, nil
}

// UpdateStatus writes the new status guarded by the version read at load
// time. RowsAffected of zero means another session won the write; the caller
// should re-fetch and retry.
func (r *RequisitionRepository) UpdateStatus(ctx context.Context, id int64, status string, expectedVersion int64) error {
	query := `
		UPDATE requisitions
		SET status = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND version = ?
	`

	result, err := executorFrom(ctx, r.db).ExecContext(ctx, query, status, id, expectedVersion)
	if err != nil {
		r.logger.Error("Failed to update status", zap.Int64("id", id), zap.String("status", status), zap.Error(err))
		return fmt.Errorf("failed to update status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		r.logger.Error("Stale version on status update", zap.Int64("id", id), zap.Int64("expected_version", expectedVersion))
		return fmt.Errorf("%w: id %d version %d", workflow.ErrConcurrentModification, id, expectedVersion)
	}

	return nil
}

// NextSequence increments and returns the per-location id sequence
func (r *RequisitionRepository) NextSequence(ctx context.Context, location string) (int, error) {
	ex := executorFrom(ctx, r.db)

	_, err := ex.ExecContext(ctx, `
		INSERT INTO location_sequences (location, seq) VALUES (?, 1)
		ON CONFLICT(location) DO UPDATE SET seq = seq + 1
	`, location)
	if err != nil {
		r.logger.Error("Failed to advance sequence", zap.String("location", location), zap.Error(err))
		return 0, fmt.Errorf("failed to advance sequence: %w", err)
	}

	var seq int
	err = ex.QueryRowContext(ctx, `SELECT seq FROM location_sequences WHERE location = ?`, location).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to read sequence: %w", err)
	}

	return seq, nil
}

// Verify interface compliance
var _ port.RequisitionRepository = (*RequisitionRepository)(nil)
