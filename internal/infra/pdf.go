package infra

// Handover summary PDF generation using go-pdf/fpdf.
// One A5 page per finalized shift day:
//   - header with business date and who finalized
//   - cash figures (start of day, expected, counted, discrepancy)
//   - receipt comparison table with a match mark per field
//
// The output file is saved to storagePath/handover_{date}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/phuoclv264/katrina-one-sub004/internal/model"
)

// GenerateHandoverPDF renders the summary for a finalized handover report.
// Returns the absolute path to the generated file.
func GenerateHandoverPDF(report *model.CashHandoverReport, storagePath string) (string, error) {
	if report.FinalDetails == nil {
		return "", fmt.Errorf("pdf: report %s is not finalized", report.ID)
	}
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("handover_%s.pdf", report.BusinessDate)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Shift Handover Summary", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, report.BusinessDate, "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5,
		fmt.Sprintf("Finalized by %s at %s",
			report.FinalDetails.FinalizedByName,
			report.FinalDetails.FinalizedAt.Format("02/01/2006 15:04")),
		"", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	// ── Cash figures ──────────────────────────────────────────────────────────
	figure := func(label, value string) {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW*0.55, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW*0.45, 6, value, "", 1, "R", false, 0, "")
	}
	figure("Start-of-day cash", report.StartOfDayCash.StringFixed(0))
	figure("Expected cash on hand", report.ExpectedCash.StringFixed(0))
	figure("Actual cash counted", report.ActualCashCounted.StringFixed(0))
	figure("Discrepancy", report.Discrepancy.StringFixed(0))
	if report.DiscrepancyReason != nil && *report.DiscrepancyReason != "" {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(contentW, 4.5, "Reason: "+*report.DiscrepancyReason, "", "L", false)
	}
	pdf.Ln(3)

	// ── Comparison table ──────────────────────────────────────────────────────
	col1 := contentW * 0.40
	col2 := contentW * 0.24
	col3 := contentW * 0.24
	col4 := contentW * 0.12

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 6, "Field", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "App", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 6, "Receipt", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "OK", "B", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range report.FinalDetails.Comparison {
		mark := "x"
		if row.IsMatch {
			mark = "ok"
		}
		pdf.CellFormat(col1, 5.5, row.Field, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5.5, row.AppValue.StringFixed(0), "", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 5.5, row.ReceiptValue.StringFixed(0), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 5.5, mark, "", 1, "C", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
