package entity

import "time"

// Requisition represents a material indent raised by a site supervisor and
// tracked through the approval-to-receipt lifecycle.
type Requisition struct {
	ID          int64                `json:"id"`
	IndentNo    string               `json:"indent_no"`
	Status      string               `json:"status"`
	RequestedBy string               `json:"requested_by"`
	Location    string               `json:"location"`
	RequestDate time.Time            `json:"request_date"`
	Items       []*RequisitionItem   `json:"items"`
	History     []*StatusHistoryEntry `json:"history,omitempty"`
	Version     int64                `json:"version"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ItemByID returns the item with the given id, or nil if not present.
func (r *Requisition) ItemByID(id int64) *RequisitionItem {
	for _, item := range r.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// RequisitionItem is a single requested material line. Descriptive fields and
// the requested quantity are editable only while the parent requisition is in
// the reverted state.
type RequisitionItem struct {
	ID               int64              `json:"id"`
	RequisitionID    int64              `json:"requisition_id"`
	ProductName      string             `json:"product_name"`
	Specifications   string             `json:"specifications"`
	MachineName      string             `json:"machine_name"`
	MeasureUnit      string             `json:"measure_unit"`
	OldStock         string             `json:"old_stock"`
	ReqQuantity      string             `json:"req_quantity"`
	Notes            string             `json:"notes"`
	SelectedVendorID string             `json:"selected_vendor_id,omitempty"`
	Quotations       []*VendorQuotation `json:"vendor_quotations,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
}

// QuotationByID returns the quotation with the given id, or nil if not present.
func (i *RequisitionItem) QuotationByID(id string) *VendorQuotation {
	for _, q := range i.Quotations {
		if q.ID == id {
			return q
		}
	}
	return nil
}
