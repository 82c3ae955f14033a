package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/nero-collectibles/kassa/internal/closing"
	"github.com/nero-collectibles/kassa/internal/model"
)

// CashClosing renders the end-of-day reconciliation sheet.
func CashClosing(rep closing.Report, s model.CompanySettings) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Text(leftMargin, 20, tr("Kassenabschluss"))

	doc.SetFont("Helvetica", "", 10)
	doc.Text(leftMargin, 30, tr(s.DisplayName()))
	doc.Text(leftMargin, 36, tr("Datum: "+rep.Date))
	if rep.Location != "" {
		doc.Text(leftMargin, 41, tr("Ort: "+rep.Location))
	}

	rows := [][2]string{
		{"Kassenbestand Anfang", money(rep.Figures.Opening)},
		{"+ Barverkäufe", money(rep.Daily.CashSales)},
		{"- Barankäufe", "-" + money(rep.Daily.CashPurchases)},
		{"+ Privateinlage", money(rep.Figures.Deposit)},
		{"- Privatentnahme", "-" + money(rep.Figures.Withdrawal)},
		{"Rechnerischer Endbestand", money(rep.Expected)},
		{"Gezählter Endbestand (Ist)", money(rep.Figures.Counted)},
		{"Differenz", money(rep.Difference)},
	}

	doc.SetXY(leftMargin, 50)
	doc.SetFillColor(251, 190, 94)
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(120, 8, tr("Position"), "1", 0, "L", true, 0, "")
	doc.CellFormat(50, 8, tr("Betrag"), "1", 0, "R", true, 0, "")
	doc.Ln(-1)

	for i, row := range rows {
		style := ""
		// expected, counted and difference carry the weight of the sheet
		if i >= 5 {
			style = "B"
		}
		doc.SetFont("Helvetica", style, 10)
		doc.SetX(leftMargin)
		doc.CellFormat(120, 7, tr(row[0]), "1", 0, "L", false, 0, "")
		doc.CellFormat(50, 7, tr(row[1]), "1", 0, "R", false, 0, "")
		doc.Ln(-1)
	}

	y := doc.GetY() + 10
	if rep.Daily.Count > 0 {
		doc.SetFont("Helvetica", "", 9)
		doc.Text(leftMargin, y, tr(fmt.Sprintf("Erfasste Barbelege: %d", rep.Daily.Count)))
		y += 8
	}
	if rep.Notes != "" {
		doc.SetFont("Helvetica", "", 9)
		doc.SetXY(leftMargin, y)
		doc.MultiCell(170, 5, tr("Bemerkungen: "+rep.Notes), "", "L", false)
		y = doc.GetY() + 8
	}

	doc.Line(leftMargin, y+20, 90, y+20)
	doc.SetFont("Helvetica", "", 8)
	doc.Text(leftMargin, y+25, tr("Ort, Datum, Unterschrift"))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render cash closing: %w", err)
	}
	return buf.Bytes(), nil
}
