package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ssrfm/indent-service/internal/domain/entity"
	"github.com/ssrfm/indent-service/internal/domain/workflow"
)

func approvedRequisition() *entity.Requisition {
	return &entity.Requisition{
		ID:          7,
		IndentNo:    "SSRFM/UNIT2/R-240105/03",
		Status:      entity.StatusApproved,
		RequestedBy: "R. Kumar",
		Location:    "Unit II",
		RequestDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Items: []*entity.RequisitionItem{
			{
				ID:               11,
				ProductName:      "Bearing 6204",
				Specifications:   "ZZ shielded",
				MeasureUnit:      "pcs",
				ReqQuantity:      "4",
				SelectedVendorID: "q1",
				Quotations: []*entity.VendorQuotation{
					{
						ID:            "q1",
						ItemID:        11,
						VendorName:    "Sharma Traders",
						ContactPerson: "A. Sharma",
						QuotedPrice:   decimal.RequireFromString("125.50"),
					},
				},
			},
		},
	}
}

func TestGenerateWritesWorkbook(t *testing.T) {
	writer := NewPurchaseOrderWriter(t.TempDir(), "SSRFM", zap.NewNop())

	path, err := writer.Generate(context.Background(), approvedRequisition())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)

	checks := []struct {
		cell string
		want string
	}{
		{"A1", "SSRFM"},
		{"B4", "SSRFM/UNIT2/R-240105/03"},
		{"B10", "Bearing 6204"},
		{"G10", "Sharma Traders"},
		{"I10", "125.50"},
		{"J10", "502.00"},
		{"J12", "502.00"},
	}
	for _, tt := range checks {
		got, err := f.GetCellValue(sheet, tt.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) error = %v", tt.cell, err)
		}
		if got != tt.want {
			t.Errorf("cell %s = %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestGenerateRefusesPendingRequisition(t *testing.T) {
	writer := NewPurchaseOrderWriter(t.TempDir(), "SSRFM", zap.NewNop())

	req := approvedRequisition()
	req.Status = entity.StatusPendingApproval

	if _, err := writer.Generate(context.Background(), req); !errors.Is(err, workflow.ErrInvalidTransition) {
		t.Errorf("Generate() error = %v, want ErrInvalidTransition", err)
	}
}

func TestOrderFileName(t *testing.T) {
	got := orderFileName("SSRFM/UNIT2/R-240105/03")
	want := "PO-SSRFM-UNIT2-R-240105-03.xlsx"
	if got != want {
		t.Errorf("orderFileName() = %q, want %q", got, want)
	}
}
