package workflow

// lifecycle is the requisition transition table. It is the single source of
// truth for which actor may move a requisition where; both Apply and the
// presentation-facing AllowedTransitions consult it.
var lifecycle = newLifecycle()

func newLifecycle() *Machine {
	b := NewBuilder()

	b.Configure(StatusPendingApproval).
		Permit(RoleApprover, StatusApproved).
		Permit(RoleApprover, StatusRejected).
		Permit(RoleApprover, StatusReverted)

	b.Configure(StatusApproved).
		Permit(RoleSupervisor, StatusOrdered)

	b.Configure(StatusOrdered).
		Permit(RoleSupervisor, StatusPartiallyReceived).
		Permit(RoleSupervisor, StatusMaterialReceived)

	// Re-entrant: each additional delivery stays in partially_received
	// until the supervisor marks the final receipt.
	b.Configure(StatusPartiallyReceived).
		Permit(RoleSupervisor, StatusPartiallyReceived).
		Permit(RoleSupervisor, StatusMaterialReceived)

	b.Configure(StatusMaterialReceived).
		Permit(RoleSupervisor, StatusIssued)

	b.Configure(StatusIssued).
		Permit(RoleSupervisor, StatusCompleted)

	b.Configure(StatusReverted).
		Permit(RoleSupervisor, StatusPendingApproval)

	return b.Build()
}

// AllowedTransitions returns the target statuses the role may reach from the
// given status. Unknown statuses and roles yield an empty set.
func AllowedTransitions(from Status, role Role) []Status {
	return lifecycle.AllowedTargets(from, role)
}
