package reporter

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"backtest-analyzer/internal/types"
)

const (
	pdfFont     = "Arial"
	pdfRowH     = 6.0
	pdfKeyWidth = 45.0
)

// column widths in mm for a landscape A4 page with 10mm margins
var pdfColumnWidths = []float64{22, 18, 22, 28, 28, 28, 24, 26, 26, 28, 25}

type pdfRenderer struct{}

func (pdfRenderer) Extension() string { return "pdf" }

func (pdfRenderer) Render(analysis *types.Analysis) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(pdfFont, "B", 14)
	title := "Backtest analysis"
	if analysis.Source != "" {
		title += ": " + analysis.Source
	}
	pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont(pdfFont, "", 9)
	pdf.CellFormat(0, pdfRowH, "Generated "+analysis.GeneratedAt.Format("2006-01-02 15:04:05"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(analysis.Settings) > 0 {
		heading(pdf, "Settings")
		for _, s := range analysis.Settings {
			pdf.SetFont(pdfFont, "B", 9)
			pdf.CellFormat(pdfKeyWidth, pdfRowH, tr(s.Key), "", 0, "L", false, 0, "")
			pdf.SetFont(pdfFont, "", 9)
			pdf.MultiCell(0, pdfRowH, tr(s.Value), "", "L", false)
		}
		pdf.Ln(2)
	}

	heading(pdf, "Monthly analysis")
	if msg := statusMessage(analysis); msg != "" {
		pdf.SetFont(pdfFont, "", 9)
		pdf.CellFormat(0, pdfRowH, msg, "", 1, "L", false, 0, "")
	} else {
		pdf.SetFont(pdfFont, "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for i, c := range monthColumns {
			pdf.CellFormat(pdfColumnWidths[i], pdfRowH, c, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont(pdfFont, "", 8)
		for _, m := range analysis.Months {
			for i, c := range monthCells(m) {
				align := "R"
				if i == 0 {
					align = "L"
				}
				pdf.CellFormat(pdfColumnWidths[i], pdfRowH, c, "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(2)
		pdf.SetFont(pdfFont, "", 9)
		pdf.CellFormat(0, pdfRowH, fmt.Sprintf("Total trades: %d, net profit: %s",
			analysis.Totals.Trades, money(analysis.Totals.NetProfit)), "", 1, "L", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}
	return buf.Bytes(), nil
}

func heading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont(pdfFont, "B", 11)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}
