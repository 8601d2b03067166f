package workflow

import (
	"fmt"
	"time"

	"github.com/ssrfm/indent-service/internal/domain/entity"
)

// Apply executes one lifecycle transition on the requisition in place.
//
// It rejects with ErrInvalidTransition when (current status, role) does not
// permit the target, ErrMissingRequiredData when the payload is absent or of
// the wrong variant for the target, and ErrApprovalPreconditionFailed when
// approval is attempted while any item lacks a selected vendor. On success it
// sets the status, records vendor selections and item edits where the
// transition carries them, and appends exactly one StatusHistoryEntry.
//
// Apply performs no locking; callers serialize writes per requisition id.
func Apply(req *entity.Requisition, role Role, target Status, data TransitionData, actor string, now time.Time) error {
	current := Status(req.Status)
	if !current.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}
	if !target.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}

	if !lifecycle.Permits(current, role, target) {
		return fmt.Errorf("%w: %s cannot move %s from %s to %s",
			ErrInvalidTransition, role, req.IndentNo, current, target)
	}

	if err := checkPayload(current, target, data); err != nil {
		return err
	}

	entry := &entity.StatusHistoryEntry{
		RequisitionID:  req.ID,
		PreviousStatus: string(current),
		Status:         string(target),
		Actor:          actor,
		ActorRole:      string(role),
		Timestamp:      now,
	}

	switch d := data.(type) {
	case ApproveData:
		if err := applySelections(req, d); err != nil {
			return err
		}
		entry.Description = "Approved with vendor selections"

	case RejectData:
		entry.Description = fmt.Sprintf("Rejected: %s", d.Reason)
		entry.RevertReason = d.Reason

	case RevertData:
		entry.Description = "Sent back for correction"
		entry.RevertReason = d.Reason

	case ReceiptData:
		entry.ReceivedQuantity = d.Quantity
		entry.ReceivedDate = d.Date
		if target == StatusMaterialReceived {
			entry.Description = "All material received"
		} else {
			entry.Description = "Partial delivery received"
		}
		if d.Notes != "" {
			entry.Description = fmt.Sprintf("%s: %s", entry.Description, d.Notes)
		}

	case ResubmitData:
		applyEdits(req, d)
		entry.Description = "Resubmitted after correction"

	default:
		switch target {
		case StatusOrdered:
			entry.Description = "Purchase order placed"
		case StatusIssued:
			entry.Description = "Material issued to requesting team"
		case StatusCompleted:
			entry.Description = "Requisition completed"
		}
	}

	req.Status = string(target)
	req.UpdatedAt = now
	req.History = append(req.History, entry)

	return nil
}

// checkPayload verifies the payload variant matches the target and that its
// required fields are present. The variant check runs even when the caller
// already validated at the surface; the table here is authoritative.
func checkPayload(current, target Status, data TransitionData) error {
	switch target {
	case StatusApproved:
		if _, ok := data.(ApproveData); !ok {
			return fmt.Errorf("%w: approval requires vendor selections", ErrMissingRequiredData)
		}
	case StatusRejected:
		if _, ok := data.(RejectData); !ok {
			return fmt.Errorf("%w: rejection requires a reason", ErrMissingRequiredData)
		}
	case StatusReverted:
		if _, ok := data.(RevertData); !ok {
			return fmt.Errorf("%w: revert requires a reason", ErrMissingRequiredData)
		}
	case StatusPartiallyReceived, StatusMaterialReceived:
		if _, ok := data.(ReceiptData); !ok {
			return fmt.Errorf("%w: receipt requires quantity and date", ErrMissingRequiredData)
		}
	case StatusPendingApproval:
		// Only reachable as a resubmission out of reverted.
		if current == StatusReverted {
			if _, ok := data.(ResubmitData); !ok {
				return fmt.Errorf("%w: resubmission requires item edits payload", ErrMissingRequiredData)
			}
		}
	default:
		// ordered, issued, completed carry no payload; nil and NoData
		// are both accepted.
		if data == nil {
			return nil
		}
		if _, ok := data.(NoData); !ok {
			return fmt.Errorf("%w: transition to %s carries no payload", ErrMissingRequiredData, target)
		}
		return nil
	}

	if data == nil {
		return fmt.Errorf("%w: transition to %s requires a payload", ErrMissingRequiredData, target)
	}
	return data.Validate()
}

// applySelections records the chosen quotation on each item. Every
// precondition is checked before any item is written, so a failed approval
// leaves the aggregate exactly as it was loaded: each item must end up with a
// selected vendor, whether chosen now or on an earlier attempt.
func applySelections(req *entity.Requisition, data ApproveData) error {
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: requisition has no items", ErrApprovalPreconditionFailed)
	}
	for itemID, quotationID := range data.Selections {
		item := req.ItemByID(itemID)
		if item == nil {
			return fmt.Errorf("%w: selection for unknown item %d", ErrApprovalPreconditionFailed, itemID)
		}
		if item.QuotationByID(quotationID) == nil {
			return fmt.Errorf("%w: item %d has no quotation %q", ErrApprovalPreconditionFailed, itemID, quotationID)
		}
	}
	for _, item := range req.Items {
		if _, chosen := data.Selections[item.ID]; chosen {
			continue
		}
		if item.SelectedVendorID == "" {
			return fmt.Errorf("%w: item %d has no selected vendor", ErrApprovalPreconditionFailed, item.ID)
		}
	}

	for itemID, quotationID := range data.Selections {
		req.ItemByID(itemID).SelectedVendorID = quotationID
	}
	return nil
}

// applyEdits applies reverted-state corrections. Notes are appended, never
// replaced; unknown item ids are ignored rather than failing the
// resubmission.
func applyEdits(req *entity.Requisition, data ResubmitData) {
	for _, edit := range data.Edits {
		item := req.ItemByID(edit.ItemID)
		if item == nil {
			continue
		}
		if edit.ReqQuantity != "" {
			item.ReqQuantity = edit.ReqQuantity
		}
		if edit.Specifications != "" {
			item.Specifications = edit.Specifications
		}
		if edit.Notes != "" {
			if item.Notes != "" {
				item.Notes = item.Notes + "\n" + edit.Notes
			} else {
				item.Notes = edit.Notes
			}
		}
	}
}
