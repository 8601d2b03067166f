// Package report renders purchase-order sheets for approved requisitions.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ssrfm/indent-service/internal/domain/entity"
	"github.com/ssrfm/indent-service/internal/domain/workflow"
)

// orderable lists the statuses a purchase order can be produced for. Anything
// before approval has no vendor selections to print.
var orderable = map[string]bool{
	entity.StatusApproved:          true,
	entity.StatusOrdered:           true,
	entity.StatusPartiallyReceived: true,
	entity.StatusMaterialReceived:  true,
	entity.StatusIssued:            true,
	entity.StatusCompleted:         true,
}

// PurchaseOrderWriter writes purchase-order workbooks into an output directory
type PurchaseOrderWriter struct {
	outputDir   string
	companyName string
	logger      *zap.Logger
}

// NewPurchaseOrderWriter creates a new purchase-order writer
func NewPurchaseOrderWriter(outputDir, companyName string, logger *zap.Logger) *PurchaseOrderWriter {
	return &PurchaseOrderWriter{
		outputDir:   outputDir,
		companyName: companyName,
		logger:      logger,
	}
}

// Generate writes the purchase-order sheet for the requisition and returns
// the written file path.
func (w *PurchaseOrderWriter) Generate(ctx context.Context, req *entity.Requisition) (string, error) {
	if !orderable[req.Status] {
		return "", fmt.Errorf("%w: purchase order requires an approved requisition, got %s",
			workflow.ErrInvalidTransition, req.Status)
	}

	w.logger.Info("Generating purchase order",
		zap.Int64("requisition_id", req.ID),
		zap.String("indent_no", req.IndentNo))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(0)

	w.setCell(f, sheetName, "A1", w.companyName)
	w.setCell(f, sheetName, "A2", "Purchase Order")
	w.setCell(f, sheetName, "A4", "Indent No")
	w.setCell(f, sheetName, "B4", req.IndentNo)
	w.setCell(f, sheetName, "A5", "Location")
	w.setCell(f, sheetName, "B5", req.Location)
	w.setCell(f, sheetName, "A6", "Requested By")
	w.setCell(f, sheetName, "B6", req.RequestedBy)
	w.setCell(f, sheetName, "A7", "Order Date")
	w.setCell(f, sheetName, "B7", time.Now().Format("2006-01-02"))

	headers := []string{"#", "Product", "Specifications", "Machine", "Unit", "Quantity", "Vendor", "Contact", "Unit Price", "Amount"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 9)
		if err != nil {
			return "", fmt.Errorf("failed to build header cell: %w", err)
		}
		w.setCell(f, sheetName, cell, header)
	}

	total := decimal.Zero
	row := 10
	for i, item := range req.Items {
		vendor, price := selectedVendor(item)
		qty := quantityDecimal(item.ReqQuantity)
		amount := price.Mul(qty)
		total = total.Add(amount)

		values := []interface{}{
			i + 1,
			item.ProductName,
			item.Specifications,
			item.MachineName,
			item.MeasureUnit,
			item.ReqQuantity,
		}
		if vendor != nil {
			values = append(values, vendor.VendorName, vendor.ContactPerson, price.StringFixed(2), amount.StringFixed(2))
		} else {
			values = append(values, "", "", "", "")
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return "", fmt.Errorf("failed to build item cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				w.logger.Warn("Failed to set cell value",
					zap.String("cell", cell),
					zap.Error(err))
			}
		}
		row++
	}

	totalLabel, err := excelize.CoordinatesToCellName(len(headers)-1, row+1)
	if err != nil {
		return "", fmt.Errorf("failed to build total cell: %w", err)
	}
	totalCell, err := excelize.CoordinatesToCellName(len(headers), row+1)
	if err != nil {
		return "", fmt.Errorf("failed to build total cell: %w", err)
	}
	w.setCell(f, sheetName, totalLabel, "Total")
	w.setCell(f, sheetName, totalCell, total.StringFixed(2))

	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(w.outputDir, orderFileName(req.IndentNo))
	if err := f.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("failed to save purchase order: %w", err)
	}

	w.logger.Info("Purchase order written", zap.String("output_path", outputPath))

	return outputPath, nil
}

// setCell sets a cell value, logging instead of failing on a bad cell
func (w *PurchaseOrderWriter) setCell(f *excelize.File, sheet, cell, value string) {
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		w.logger.Warn("Failed to set cell value",
			zap.String("sheet", sheet),
			zap.String("cell", cell),
			zap.Error(err))
	}
}

// selectedVendor returns the quotation chosen during approval, or nil when
// none was recorded for the item.
func selectedVendor(item *entity.RequisitionItem) (*entity.VendorQuotation, decimal.Decimal) {
	if item.SelectedVendorID == "" {
		return nil, decimal.Zero
	}
	q := item.QuotationByID(item.SelectedVendorID)
	if q == nil {
		return nil, decimal.Zero
	}
	return q, q.QuotedPrice
}

// quantityDecimal parses the free-text requested quantity, treating anything
// non-numeric as zero so a malformed quantity never blocks the sheet.
func quantityDecimal(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// orderFileName derives a filesystem-safe workbook name from the indent
// number, which contains path separators.
func orderFileName(indentNo string) string {
	safe := strings.NewReplacer("/", "-", "\\", "-").Replace(indentNo)
	return "PO-" + safe + ".xlsx"
}
