package event

import (
	"testing"
)

func TestNewPopulatesIdentity(t *testing.T) {
	evt := New(TypeRequisitionApproved, 7, "SSRFM/UNIT2/R-240105/03", map[string]interface{}{
		"actor": "J. Mehta",
	})

	if evt.ID == "" {
		t.Error("expected generated ID")
	}
	if evt.CorrelationID == "" {
		t.Error("expected generated correlation ID")
	}
	if evt.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
	if evt.RequisitionID != 7 {
		t.Errorf("RequisitionID = %d, want 7", evt.RequisitionID)
	}
	if evt.IndentNo != "SSRFM/UNIT2/R-240105/03" {
		t.Errorf("IndentNo = %q", evt.IndentNo)
	}
}

func TestNewWithCorrelationPreservesChain(t *testing.T) {
	first := New(TypeRequisitionCreated, 7, "SSRFM/UNIT2/R-240105/03", nil)
	second := NewWithCorrelation(TypeStatusChanged, 7, "SSRFM/UNIT2/R-240105/03", nil, first.CorrelationID)

	if second.CorrelationID != first.CorrelationID {
		t.Errorf("CorrelationID = %q, want %q", second.CorrelationID, first.CorrelationID)
	}
	if second.ID == first.ID {
		t.Error("events in a chain must have distinct IDs")
	}
}

func TestPayloadAccessors(t *testing.T) {
	evt := New(TypeStatusChanged, 7, "", map[string]interface{}{
		"status":  "approved",
		"version": 3,
		"float":   2.0,
	})

	if got := evt.PayloadString("status"); got != "approved" {
		t.Errorf("PayloadString(status) = %q, want approved", got)
	}
	if got := evt.PayloadString("missing"); got != "" {
		t.Errorf("PayloadString(missing) = %q, want empty", got)
	}
	if got := evt.PayloadInt("version"); got != 3 {
		t.Errorf("PayloadInt(version) = %d, want 3", got)
	}
	if got := evt.PayloadInt("float"); got != 2 {
		t.Errorf("PayloadInt(float) = %d, want 2", got)
	}
	if got := evt.PayloadInt("status"); got != 0 {
		t.Errorf("PayloadInt(status) = %d, want 0", got)
	}
}

func TestTypeValidity(t *testing.T) {
	valid := []Type{
		TypeRequisitionCreated,
		TypeRequisitionApproved,
		TypeRequisitionRejected,
		TypeStatusChanged,
		TypeQuotationAdded,
		TypeOrderSheetWritten,
	}
	for _, typ := range valid {
		if !typ.IsValid() {
			t.Errorf("%s should be valid", typ)
		}
	}

	if Type("requisition.archived").IsValid() {
		t.Error("unknown type should be invalid")
	}
}
