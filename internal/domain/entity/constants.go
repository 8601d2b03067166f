package entity

// Status constants for Requisition
const (
	StatusPendingApproval   = "pending_approval"
	StatusApproved          = "approved"
	StatusRejected          = "rejected"
	StatusReverted          = "reverted"
	StatusOrdered           = "ordered"
	StatusPartiallyReceived = "partially_received"
	StatusMaterialReceived  = "material_received"
	StatusIssued            = "issued"
	StatusCompleted         = "completed"
)

// Actor role constants
const (
	RoleSupervisor = "supervisor"
	RoleApprover   = "approver"
)
