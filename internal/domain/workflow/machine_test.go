package workflow

import "testing"

func TestStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   Status
		expected bool
	}{
		{StatusPendingApproval, false},
		{StatusApproved, false},
		{StatusReverted, false},
		{StatusOrdered, false},
		{StatusPartiallyReceived, false},
		{StatusMaterialReceived, false},
		{StatusIssued, false},
		{StatusRejected, true},
		{StatusCompleted, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.expected {
				t.Errorf("Status.IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		expected bool
	}{
		{"valid status", StatusPendingApproval, true},
		{"valid status", StatusCompleted, true},
		{"invalid status", Status("INVALID"), false},
		{"empty status", Status(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.expected {
				t.Errorf("Status.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRole_IsValid(t *testing.T) {
	if !RoleSupervisor.IsValid() || !RoleApprover.IsValid() {
		t.Error("defined roles should be valid")
	}
	if Role("auditor").IsValid() {
		t.Error("unknown role should be invalid")
	}
}

func TestBuilder_ConfigurePanicsOnInvalidStatus(t *testing.T) {
	builder := NewBuilder()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Configure() should panic on invalid status")
		}
	}()

	builder.Configure(Status("INVALID"))
}

func TestBuilder_PermitPanicsOnTerminalSource(t *testing.T) {
	builder := NewBuilder()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Permit() should panic on terminal source status")
		}
	}()

	builder.Configure(StatusRejected).Permit(RoleApprover, StatusPendingApproval)
}

func TestMachine_Permits(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StatusPendingApproval).
		Permit(RoleApprover, StatusApproved)

	machine := builder.Build()

	tests := []struct {
		name     string
		from     Status
		role     Role
		target   Status
		expected bool
	}{
		{"permitted", StatusPendingApproval, RoleApprover, StatusApproved, true},
		{"wrong role", StatusPendingApproval, RoleSupervisor, StatusApproved, false},
		{"wrong target", StatusPendingApproval, RoleApprover, StatusCompleted, false},
		{"unconfigured source", StatusOrdered, RoleSupervisor, StatusIssued, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := machine.Permits(tt.from, tt.role, tt.target); got != tt.expected {
				t.Errorf("Permits(%s, %s, %s) = %v, want %v", tt.from, tt.role, tt.target, got, tt.expected)
			}
		})
	}
}

func TestMachine_Immutability(t *testing.T) {
	builder := NewBuilder()
	config := builder.Configure(StatusPendingApproval).
		Permit(RoleApprover, StatusApproved)

	machine := builder.Build()

	// Further configuration after Build must not leak into the machine.
	config.Permit(RoleApprover, StatusRejected)

	if machine.Permits(StatusPendingApproval, RoleApprover, StatusRejected) {
		t.Error("machine should be frozen at Build() time")
	}
}

func TestAllowedTransitions_Table(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		role    Role
		targets []Status
	}{
		{"approver decides pending", StatusPendingApproval, RoleApprover,
			[]Status{StatusApproved, StatusRejected, StatusReverted}},
		{"supervisor cannot decide pending", StatusPendingApproval, RoleSupervisor, nil},
		{"supervisor orders approved", StatusApproved, RoleSupervisor, []Status{StatusOrdered}},
		{"approver cannot order", StatusApproved, RoleApprover, nil},
		{"supervisor receives ordered", StatusOrdered, RoleSupervisor,
			[]Status{StatusPartiallyReceived, StatusMaterialReceived}},
		{"partial receipt is re-entrant", StatusPartiallyReceived, RoleSupervisor,
			[]Status{StatusPartiallyReceived, StatusMaterialReceived}},
		{"supervisor issues received", StatusMaterialReceived, RoleSupervisor, []Status{StatusIssued}},
		{"supervisor completes issued", StatusIssued, RoleSupervisor, []Status{StatusCompleted}},
		{"supervisor resubmits reverted", StatusReverted, RoleSupervisor, []Status{StatusPendingApproval}},
		{"approver cannot resubmit", StatusReverted, RoleApprover, nil},
		{"rejected is terminal", StatusRejected, RoleApprover, nil},
		{"rejected is terminal for supervisor", StatusRejected, RoleSupervisor, nil},
		{"completed is terminal", StatusCompleted, RoleSupervisor, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AllowedTransitions(tt.from, tt.role)
			if len(got) != len(tt.targets) {
				t.Fatalf("AllowedTransitions(%s, %s) = %v, want %v", tt.from, tt.role, got, tt.targets)
			}
			for i, target := range tt.targets {
				if got[i] != target {
					t.Errorf("AllowedTransitions(%s, %s)[%d] = %v, want %v", tt.from, tt.role, i, got[i], target)
				}
			}
		})
	}
}

// Every (status, role, target) triple not in the lifecycle table must be
// refused, including all transitions out of terminal statuses.
func TestAllowedTransitions_Completeness(t *testing.T) {
	allStatuses := []Status{
		StatusPendingApproval, StatusApproved, StatusRejected, StatusReverted,
		StatusOrdered, StatusPartiallyReceived, StatusMaterialReceived,
		StatusIssued, StatusCompleted,
	}
	roles := []Role{RoleSupervisor, RoleApprover}

	for _, from := range allStatuses {
		for _, role := range roles {
			allowed := make(map[Status]bool)
			for _, target := range AllowedTransitions(from, role) {
				allowed[target] = true
			}

			for _, target := range allStatuses {
				if allowed[target] {
					continue
				}
				if lifecycle.Permits(from, role, target) {
					t.Errorf("Permits(%s, %s, %s) = true but target not in AllowedTransitions", from, role, target)
				}
			}
		}
	}
}
