package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// VendorQuotation is a vendor's priced offer against a requisition item.
// Quotations are captured by inventory management before the requisition
// enters approval and are immutable once created; a new selection supersedes
// an old one, quotations themselves are never deleted.
type VendorQuotation struct {
	ID            string          `json:"id"`
	ItemID        int64           `json:"item_id"`
	VendorName    string          `json:"vendor_name"`
	ContactPerson string          `json:"contact_person"`
	Phone         string          `json:"phone"`
	QuotedPrice   decimal.Decimal `json:"quoted_price"`
	Notes         string          `json:"notes"`
	AttachmentRef string          `json:"attachment_ref,omitempty"`
	IsSelected    bool            `json:"is_selected"`
	CreatedAt     time.Time       `json:"created_at"`
}
