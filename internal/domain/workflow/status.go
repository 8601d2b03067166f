package workflow

// Status represents a requisition lifecycle state
type Status string

const (
	StatusPendingApproval   Status = "pending_approval"
	StatusApproved          Status = "approved"
	StatusRejected          Status = "rejected"
	StatusReverted          Status = "reverted"
	StatusOrdered           Status = "ordered"
	StatusPartiallyReceived Status = "partially_received"
	StatusMaterialReceived  Status = "material_received"
	StatusIssued            Status = "issued"
	StatusCompleted         Status = "completed"
)

var validStatuses = map[Status]bool{
	StatusPendingApproval:   true,
	StatusApproved:          true,
	StatusRejected:          true,
	StatusReverted:          true,
	StatusOrdered:           true,
	StatusPartiallyReceived: true,
	StatusMaterialReceived:  true,
	StatusIssued:            true,
	StatusCompleted:         true,
}

var terminalStatuses = map[Status]bool{
	StatusRejected:  true,
	StatusCompleted: true,
}

// IsTerminal returns true if the status admits no further transitions
func (s Status) IsTerminal() bool {
	return terminalStatuses[s]
}

// IsValid returns true if the status is a defined lifecycle state
func (s Status) IsValid() bool {
	return validStatuses[s]
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}
