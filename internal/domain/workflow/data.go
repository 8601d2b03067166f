package workflow

import "fmt"

// TransitionData is the additional payload accompanying a transition. Each
// target status that needs extra data has its own variant carrying exactly
// the fields that transition requires; the union is sealed so a missing
// variant is a compile-time gap, not a runtime surprise.
type TransitionData interface {
	transitionData()

	// Validate checks the variant's own required fields and reports
	// ErrMissingRequiredData when any of them is empty.
	Validate() error
}

// ApproveData accompanies the approved transition. Selections maps item id
// to the chosen vendor quotation id; items whose vendor was selected on an
// earlier attempt may be omitted.
type ApproveData struct {
	Selections map[int64]string
}

func (ApproveData) transitionData() {}

func (d ApproveData) Validate() error {
	for itemID, quotationID := range d.Selections {
		if quotationID == "" {
			return fmt.Errorf("%w: empty vendor selection for item %d", ErrMissingRequiredData, itemID)
		}
	}
	return nil
}

// RejectData accompanies the terminal rejected transition.
type RejectData struct {
	Reason string
}

func (RejectData) transitionData() {}

func (d RejectData) Validate() error {
	if d.Reason == "" {
		return fmt.Errorf("%w: rejection reason is required", ErrMissingRequiredData)
	}
	return nil
}

// RevertData accompanies the reverted transition, which sends the
// requisition back to the requester for correction.
type RevertData struct {
	Reason string
}

func (RevertData) transitionData() {}

func (d RevertData) Validate() error {
	if d.Reason == "" {
		return fmt.Errorf("%w: revert reason is required", ErrMissingRequiredData)
	}
	return nil
}

// ReceiptData accompanies the partially_received and material_received
// transitions and records one delivery against the requisition.
type ReceiptData struct {
	Quantity string
	Date     string
	Notes    string
}

func (ReceiptData) transitionData() {}

func (d ReceiptData) Validate() error {
	if d.Quantity == "" {
		return fmt.Errorf("%w: received quantity is required", ErrMissingRequiredData)
	}
	if d.Date == "" {
		return fmt.Errorf("%w: received date is required", ErrMissingRequiredData)
	}
	return nil
}

// ItemEdit carries the fields a supervisor may change while a requisition
// sits in the reverted state.
type ItemEdit struct {
	ItemID         int64
	ReqQuantity    string
	Specifications string
	Notes          string
}

// ResubmitData accompanies the reverted -> pending_approval transition.
// Edits may be empty; editability is gated by the reverted state, the
// transition itself does not mechanically require a change.
type ResubmitData struct {
	Edits []ItemEdit
}

func (ResubmitData) transitionData() {}

func (d ResubmitData) Validate() error {
	for _, edit := range d.Edits {
		if edit.ItemID == 0 {
			return fmt.Errorf("%w: item edit without item id", ErrMissingRequiredData)
		}
	}
	return nil
}

// NoData accompanies transitions that carry no additional payload
// (ordered, issued, completed).
type NoData struct{}

func (NoData) transitionData() {}

func (NoData) Validate() error { return nil }
