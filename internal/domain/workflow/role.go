package workflow

// Role identifies the actor attempting a transition. There is no ambient
// role context; every transition call carries its role explicitly.
type Role string

const (
	// RoleSupervisor is the site supervisor who raises requisitions,
	// records orders and receipts, and issues received material.
	RoleSupervisor Role = "supervisor"

	// RoleApprover is the inventory manager / company owner who decides
	// pending requisitions.
	RoleApprover Role = "approver"
)

var validRoles = map[Role]bool{
	RoleSupervisor: true,
	RoleApprover:   true,
}

// IsValid returns true if the role is a known actor role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}
