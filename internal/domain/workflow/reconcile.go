package workflow

import "fmt"

// Reconcile folds per-item proposed statuses into a single requisition-level
// status. A uniform, complete set of proposals becomes that value; anything
// mixed or incomplete is indeterminate and leaves the requisition where it
// is rather than guessing a priority order.
func Reconcile(proposed map[int64]Status, current Status) Status {
	if len(proposed) == 0 {
		return current
	}

	var uniform Status
	first := true
	for _, s := range proposed {
		if first {
			uniform = s
			first = false
			continue
		}
		if s != uniform {
			return current
		}
	}
	return uniform
}

// CanSubmit reports whether every item has a proposed status. The
// presentation layer disables the submit affordance until this holds.
func CanSubmit(proposed map[int64]Status, itemIDs []int64) bool {
	if len(itemIDs) == 0 {
		return false
	}
	for _, id := range itemIDs {
		if _, ok := proposed[id]; !ok {
			return false
		}
	}
	return true
}

var statusVerbs = map[Status]string{
	StatusApproved:          "Approve",
	StatusRejected:          "Reject",
	StatusReverted:          "Revert",
	StatusOrdered:           "Order",
	StatusPartiallyReceived: "Receive",
	StatusMaterialReceived:  "Receive",
	StatusIssued:            "Issue",
	StatusCompleted:         "Complete",
	StatusPendingApproval:   "Resubmit",
}

// SubmitLabel derives the submission button label from the proposed-status
// multiset. Uniform proposals read "<Verb> n Item(s)"; mixed proposals read
// "Submit Decisions (k/total)", mirroring the reconciliation tie-break.
func SubmitLabel(proposed map[int64]Status, total int) string {
	if len(proposed) == 0 {
		return fmt.Sprintf("Submit Decisions (0/%d)", total)
	}

	var uniform Status
	first := true
	mixed := false
	for _, s := range proposed {
		if first {
			uniform = s
			first = false
			continue
		}
		if s != uniform {
			mixed = true
			break
		}
	}

	if mixed {
		return fmt.Sprintf("Submit Decisions (%d/%d)", len(proposed), total)
	}

	noun := "Items"
	if len(proposed) == 1 {
		noun = "Item"
	}
	return fmt.Sprintf("%s %d %s", statusVerbs[uniform], len(proposed), noun)
}
