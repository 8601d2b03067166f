package entity

import "time"

// StatusHistoryEntry is one record in a requisition's append-only audit
// trail. Exactly one entry is written per status transition; entries are
// never mutated or deleted.
type StatusHistoryEntry struct {
	ID               int64     `json:"id"`
	RequisitionID    int64     `json:"requisition_id"`
	PreviousStatus   string    `json:"previous_status"`
	Status           string    `json:"status"`
	Actor            string    `json:"actor"`
	ActorRole        string    `json:"actor_role"`
	Description      string    `json:"description"`
	ReceivedQuantity string    `json:"received_quantity,omitempty"`
	ReceivedDate     string    `json:"received_date,omitempty"`
	RevertReason     string    `json:"revert_reason,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}
