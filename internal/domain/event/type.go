package event

// Type identifies the type of domain event
type Type string

const (
	TypeRequisitionCreated  Type = "requisition.created"
	TypeRequisitionApproved Type = "requisition.approved"
	TypeRequisitionRejected Type = "requisition.rejected"
	TypeStatusChanged       Type = "requisition.status_changed"
	TypeQuotationAdded      Type = "requisition.quotation_added"
	TypeOrderSheetWritten   Type = "order.sheet_written"
)

// String returns the string representation of the event type
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the event type is one of the defined constants
func (t Type) IsValid() bool {
	switch t {
	case TypeRequisitionCreated,
		TypeRequisitionApproved,
		TypeRequisitionRejected,
		TypeStatusChanged,
		TypeQuotationAdded,
		TypeOrderSheetWritten:
		return true
	default:
		return false
	}
}
