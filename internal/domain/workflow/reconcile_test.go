package workflow

import "testing"

func TestReconcile(t *testing.T) {
	tests := []struct {
		name     string
		proposed map[int64]Status
		current  Status
		expected Status
	}{
		{
			name:     "uniform proposals become the value",
			proposed: map[int64]Status{1: StatusApproved, 2: StatusApproved},
			current:  StatusPendingApproval,
			expected: StatusApproved,
		},
		{
			name:     "mixed proposals stay put",
			proposed: map[int64]Status{1: StatusApproved, 2: StatusRejected},
			current:  StatusPendingApproval,
			expected: StatusPendingApproval,
		},
		{
			name:     "no proposals stay put",
			proposed: map[int64]Status{},
			current:  StatusPendingApproval,
			expected: StatusPendingApproval,
		},
		{
			name:     "single proposal becomes the value",
			proposed: map[int64]Status{1: StatusReverted},
			current:  StatusPendingApproval,
			expected: StatusReverted,
		},
		{
			name:     "uniform supervisor proposals",
			proposed: map[int64]Status{1: StatusOrdered, 2: StatusOrdered, 3: StatusOrdered},
			current:  StatusApproved,
			expected: StatusOrdered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reconcile(tt.proposed, tt.current); got != tt.expected {
				t.Errorf("Reconcile() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCanSubmit(t *testing.T) {
	tests := []struct {
		name     string
		proposed map[int64]Status
		itemIDs  []int64
		expected bool
	}{
		{"all items proposed", map[int64]Status{1: StatusApproved, 2: StatusRejected}, []int64{1, 2}, true},
		{"one item missing", map[int64]Status{1: StatusApproved}, []int64{1, 2}, false},
		{"no proposals", map[int64]Status{}, []int64{1, 2}, false},
		{"no items", map[int64]Status{}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanSubmit(tt.proposed, tt.itemIDs); got != tt.expected {
				t.Errorf("CanSubmit() = %v, want %v", got, tt.expected)
			}
		})
	}
}

// The label tie-break (uniform vs mixed) mirrors Reconcile exactly.
func TestSubmitLabel(t *testing.T) {
	tests := []struct {
		name     string
		proposed map[int64]Status
		total    int
		expected string
	}{
		{
			name:     "uniform approvals",
			proposed: map[int64]Status{1: StatusApproved, 2: StatusApproved},
			total:    2,
			expected: "Approve 2 Items",
		},
		{
			name:     "mixed decisions",
			proposed: map[int64]Status{1: StatusApproved, 2: StatusRejected},
			total:    2,
			expected: "Submit Decisions (2/2)",
		},
		{
			name:     "single item singular noun",
			proposed: map[int64]Status{1: StatusRejected},
			total:    1,
			expected: "Reject 1 Item",
		},
		{
			name:     "no proposals",
			proposed: map[int64]Status{},
			total:    3,
			expected: "Submit Decisions (0/3)",
		},
		{
			name:     "uniform reverts",
			proposed: map[int64]Status{1: StatusReverted, 2: StatusReverted, 3: StatusReverted},
			total:    3,
			expected: "Revert 3 Items",
		},
		{
			name:     "partial but uniform",
			proposed: map[int64]Status{1: StatusApproved},
			total:    2,
			expected: "Approve 1 Item",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SubmitLabel(tt.proposed, tt.total); got != tt.expected {
				t.Errorf("SubmitLabel() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// Label derivation and reconciliation agree: a label that names a single
// verb implies Reconcile resolves to that status, and a "Submit Decisions"
// label implies Reconcile leaves the current status unchanged.
func TestSubmitLabel_ConsistentWithReconcile(t *testing.T) {
	cases := []map[int64]Status{
		{1: StatusApproved, 2: StatusApproved},
		{1: StatusApproved, 2: StatusRejected},
		{1: StatusReverted},
		{1: StatusRejected, 2: StatusRejected, 3: StatusReverted},
	}

	for _, proposed := range cases {
		label := SubmitLabel(proposed, len(proposed))
		resolved := Reconcile(proposed, StatusPendingApproval)

		mixedLabel := len(label) >= 6 && label[:6] == "Submit"
		stayed := resolved == StatusPendingApproval

		if mixedLabel != stayed {
			t.Errorf("label %q disagrees with Reconcile result %v for %v", label, resolved, proposed)
		}
	}
}
