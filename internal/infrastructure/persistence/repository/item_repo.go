package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/ssrfm/indent-service/internal/application/port"
	"github.com/ssrfm/indent-service/internal/domain/entity"
)

// ItemRepository implements port.ItemRepository
type ItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *sql.DB, logger *zap.Logger) port.ItemRepository {
	return &ItemRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new requisition item
func (r *ItemRepository) Create(ctx context.Context, item *entity.RequisitionItem) error {
	query := `
		INSERT INTO requisition_items (
			requisition_id, product_name, specifications, machine_name,
			measure_unit, old_stock, req_quantity, notes, selected_vendor_id,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		item.RequisitionID,
		item.ProductName,
		item.Specifications,
		item.MachineName,
		item.MeasureUnit,
		item.OldStock,
		item.ReqQuantity,
		item.Notes,
		nullString(item.SelectedVendorID),
		item.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create item", zap.Error(err))
		return fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	item.ID = id
	return nil
}

// GetByRequisitionID retrieves all items of a requisition in insertion order
func (r *ItemRepository) GetByRequisitionID(ctx context.Context, requisitionID int64) ([]*entity.RequisitionItem, error) {
	query := `
		SELECT id, requisition_id, product_name, specifications, machine_name,
			measure_unit, old_stock, req_quantity, notes, selected_vendor_id,
			created_at
		FROM requisition_items
		WHERE requisition_id = ?
		ORDER BY id
	`

	rows, err := executorFrom(ctx, r.db).QueryContext(ctx, query, requisitionID)
	if err != nil {
		r.logger.Error("Failed to list items", zap.Int64("requisition_id", requisitionID), zap.Error(err))
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*entity.RequisitionItem
	for rows.Next() {
		var item entity.RequisitionItem
		var selectedVendor sql.NullString

		err := rows.Scan(
			&item.ID,
			&item.RequisitionID,
			&item.ProductName,
			&item.Specifications,
			&item.MachineName,
			&item.MeasureUnit,
			&item.OldStock,
			&item.ReqQuantity,
			&item.Notes,
			&selectedVendor,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}

		if selectedVendor.Valid {
			item.SelectedVendorID = selectedVendor.String
		}

		items = append(items, &item)
	}

	return items, rows.Err()
}

// Update persists the fields editable while the requisition is reverted
func (r *ItemRepository) Update(ctx context.Context, item *entity.RequisitionItem) error {
	query := `
		UPDATE requisition_items
		SET specifications = ?, req_quantity = ?, notes = ?
		WHERE id = ?
	`

	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		item.Specifications,
		item.ReqQuantity,
		item.Notes,
		item.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update item", zap.Int64("id", item.ID), zap.Error(err))
		return fmt.Errorf("failed to update item: %w", err)
	}

	return nil
}

// SetSelectedVendor records the chosen quotation for an item
func (r *ItemRepository) SetSelectedVendor(ctx context.Context, itemID int64, quotationID string) error {
	query := `UPDATE requisition_items SET selected_vendor_id = ? WHERE id = ?`

	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query, quotationID, itemID)
	if err != nil {
		r.logger.Error("Failed to set selected vendor", zap.Int64("item_id", itemID), zap.Error(err))
		return fmt.Errorf("failed to set selected vendor: %w", err)
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Verify interface compliance
var _ port.ItemRepository = (*ItemRepository)(nil)
