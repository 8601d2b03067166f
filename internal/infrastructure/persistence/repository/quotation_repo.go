package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ssrfm/indent-service/internal/application/port"
	"github.com/ssrfm/indent-service/internal/domain/entity"
)

// QuotationRepository implements port.QuotationRepository
type QuotationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewQuotationRepository creates a new quotation repository
func NewQuotationRepository(db *sql.DB, logger *zap.Logger) port.QuotationRepository {
	return &QuotationRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new vendor quotation. Quotations are immutable once
// created; there is no update operation.
func (r *QuotationRepository) Create(ctx context.Context, q *entity.VendorQuotation) error {
	query := `
		INSERT INTO vendor_quotations (
			id, item_id, vendor_name, contact_person, phone, quoted_price,
			notes, attachment_ref, is_selected, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		q.ID,
		q.ItemID,
		q.VendorName,
		q.ContactPerson,
		q.Phone,
		q.QuotedPrice.String(),
		q.Notes,
		nullString(q.AttachmentRef),
		q.IsSelected,
		q.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create quotation", zap.String("id", q.ID), zap.Error(err))
		return fmt.Errorf("failed to create quotation: %w", err)
	}

	return nil
}

// GetByItemID retrieves all quotations captured against an item
func (r *QuotationRepository) GetByItemID(ctx context.Context, itemID int64) ([]*entity.VendorQuotation, error) {
	query := `
		SELECT id, item_id, vendor_name, contact_person, phone, quoted_price,
			notes, attachment_ref, is_selected, created_at
		FROM vendor_quotations
		WHERE item_id = ?
		ORDER BY created_at, id
	`

	rows, err := executorFrom(ctx, r.db).QueryContext(ctx, query, itemID)
	if err != nil {
		r.logger.Error("Failed to list quotations", zap.Int64("item_id", itemID), zap.Error(err))
		return nil, fmt.Errorf("failed to list quotations: %w", err)
	}
	defer rows.Close()

	var quotations []*entity.VendorQuotation
	for rows.Next() {
		var q entity.VendorQuotation
		var price string
		var attachmentRef sql.NullString

		err := rows.Scan(
			&q.ID,
			&q.ItemID,
			&q.VendorName,
			&q.ContactPerson,
			&q.Phone,
			&price,
			&q.Notes,
			&attachmentRef,
			&q.IsSelected,
			&q.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quotation: %w", err)
		}

		q.QuotedPrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("failed to parse quoted price %q: %w", price, err)
		}
		if attachmentRef.Valid {
			q.AttachmentRef = attachmentRef.String
		}

		quotations = append(quotations, &q)
	}

	return quotations, rows.Err()
}

// Verify interface compliance
var _ port.QuotationRepository = (*QuotationRepository)(nil)
