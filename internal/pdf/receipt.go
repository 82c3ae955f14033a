// Package pdf renders receipts and cash-closing reports. Layout and
// wording follow the documents the shop has always handed out, German
// labels included. Totals are taken verbatim from the stored record while
// the per-line breakdown is re-derived from price, quantity and rate,
// which reproduces the creation-time figures exactly.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/nero-collectibles/kassa/internal/model"
	"github.com/nero-collectibles/kassa/internal/tax"
	"github.com/nero-collectibles/kassa/pkg/logger"
)

const (
	leftMargin = 14.0
	rightEdge  = 196.0
)

var paymentLabels = map[model.PaymentMethod]string{
	model.PaymentCash:   "Barzahlung",
	model.PaymentPaypal: "PayPal",
	model.PaymentBank:   "Banküberweisung",
}

// Receipt renders one transaction as a printable document. The number is
// the derived document number, not stored on the record.
func Receipt(t model.Transaction, number string, s model.CompanySettings) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	// header: logo left, company block right
	if s.LogoURL != "" {
		placeImage(doc, s.LogoURL, "logo", leftMargin, 15, 50, 30)
	}

	doc.SetFont("Helvetica", "B", 10)
	rightText(doc, tr(s.DisplayName()), 20)
	doc.SetFont("Helvetica", "", 10)
	y := 25.0
	if s.OwnerName != "" {
		rightText(doc, tr(s.OwnerName), y)
	}
	y += 5
	for _, line := range strings.Split(s.Address, "\n") {
		rightText(doc, tr(line), y)
		y += 5
	}
	rightText(doc, tr(s.Email), y+5)
	rightText(doc, tr(s.Website), y+10)
	taxID := s.TaxID
	if taxID == "" {
		taxID = "-"
	}
	rightText(doc, tr("USt-ID: "+taxID), y+15)

	// title and metadata
	doc.SetFont("Helvetica", "", 18)
	title := "Gutschrift / Ankaufbeleg"
	if t.Type == model.TypeSale {
		title = "Rechnung"
	}
	doc.Text(leftMargin, 70, tr(title))

	doc.SetFont("Helvetica", "", 10)
	doc.Text(leftMargin, 80, tr("Beleg-Nr: "+number))
	doc.Text(leftMargin, 85, tr("Datum: "+t.Date))
	doc.Text(leftMargin, 90, tr("Zahlungsart: "+paymentLabels[t.PaymentMethod.Normalize()]))

	partnerLabel := "Verkäufer"
	if t.Type == model.TypeSale {
		partnerLabel = "Kunde"
	}
	doc.Text(leftMargin, 100, tr(fmt.Sprintf("%s: %s", partnerLabel, t.PartnerName)))
	doc.SetXY(leftMargin, 102)
	doc.MultiCell(70, 5, tr(t.PartnerAddress), "", "L", false)

	startY := doc.GetY() + 8
	if startY < 125 {
		startY = 125
	}
	endY := itemTable(doc, tr, t, startY)
	finalY := totalsBlock(doc, tr, t, endY+10)
	signatureBlock(doc, tr, t, finalY+10)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

type column struct {
	label string
	width float64
	align string
}

// itemTable draws the line items and returns the y position below the
// table. Margin-taxed documents hide the net/tax columns entirely.
func itemTable(doc *gofpdf.Fpdf, tr func(string) string, t model.Transaction, startY float64) float64 {
	isDiff := t.TaxMethod == model.TaxDiff

	var cols []column
	if isDiff {
		cols = []column{
			{"Pos", 12, "C"},
			{"Artikel", 90, "L"},
			{"Menge", 20, "C"},
			{"Einzelpreis", 30, "R"},
			{"Gesamt", 30, "R"},
		}
	} else {
		cols = []column{
			{"Pos", 12, "C"},
			{"Artikel", 75, "L"},
			{"Menge", 18, "C"},
			{"Netto", 27, "R"},
			{"MwSt", 20, "C"},
			{"Brutto", 30, "R"},
		}
	}

	doc.SetXY(leftMargin, startY)
	doc.SetFillColor(251, 190, 94)
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "B", 10)
	for _, c := range cols {
		doc.CellFormat(c.width, 8, tr(c.label), "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 10)
	for i, item := range t.Items {
		b := tax.Line(item, t.Type, t.TaxMethod)

		var cells []string
		if isDiff {
			cells = []string{
				fmt.Sprintf("%d", i+1),
				item.Name,
				fmt.Sprintf("%d", item.Quantity),
				money(item.Price),
				money(b.Gross),
			}
		} else {
			cells = []string{
				fmt.Sprintf("%d", i+1),
				item.Name,
				fmt.Sprintf("%d", item.Quantity),
				money(b.Net),
				fmt.Sprintf("%g%%", item.TaxRate),
				money(b.Gross),
			}
		}

		doc.SetX(leftMargin)
		for j, c := range cols {
			doc.CellFormat(c.width, 7, tr(cells[j]), "1", 0, c.align, false, 0, "")
		}
		doc.Ln(-1)
	}

	return doc.GetY()
}

func totalsBlock(doc *gofpdf.Fpdf, tr func(string) string, t model.Transaction, finalY float64) float64 {
	if t.TaxMethod == model.TaxDiff {
		doc.SetFont("Helvetica", "B", 12)
		rightText(doc, tr("Gesamtbetrag: "+money(t.TotalGross)), finalY)

		doc.SetFont("Helvetica", "", 8)
		doc.SetXY(leftMargin, finalY+6)
		doc.MultiCell(180, 4, tr("Gebrauchtgegenstände/Sonderregelung: Differenzbesteuerung (§25a UStG). "+
			"Die Umsatzsteuer ist im Kaufpreis enthalten, wird jedoch nicht gesondert ausgewiesen."), "", "L", false)
		return finalY + 20
	}

	doc.SetFont("Helvetica", "", 10)
	rightText(doc, tr("Netto Gesamt: "+money(t.TotalNet)), finalY)
	rightText(doc, tr("MwSt Gesamt: "+money(t.TotalTax)), finalY+5)
	doc.SetFont("Helvetica", "B", 12)
	rightText(doc, tr("Gesamtbetrag: "+money(t.TotalGross)), finalY+12)
	return finalY + 12
}

func signatureBlock(doc *gofpdf.Fpdf, tr func(string) string, t model.Transaction, y float64) {
	doc.SetFont("Helvetica", "", 10)
	confirm := "Bestätigung: Ware erhalten"
	signer := "Käufer"
	if t.Type == model.TypePurchase {
		confirm = "Bestätigung: Geld erhalten"
		signer = "Verkäufer"
	}
	doc.Text(leftMargin, y+10, tr(confirm))

	labelY := y + 35
	if t.SignatureURL != "" && placeImage(doc, t.SignatureURL, "signature", leftMargin, y+15, 60, 30) {
		doc.Line(leftMargin, y+45, 80, y+45)
		labelY = y + 50
	} else {
		doc.Line(leftMargin, y+30, 80, y+30)
	}

	doc.SetFont("Helvetica", "", 8)
	doc.Text(leftMargin, labelY, tr(fmt.Sprintf("Ort, Datum, Unterschrift (%s)", signer)))
}

// placeImage embeds a data-URL image, scaled into the given box. Returns
// false and logs when the image cannot be used; the document goes on
// without it.
func placeImage(doc *gofpdf.Fpdf, dataURL, name string, x, y, maxW, maxH float64) bool {
	img, err := decodeDataURL(dataURL)
	if err != nil {
		logger.Warn("skipping embedded image", "name", name, "error", err)
		return false
	}
	w, h := img.fit(maxW, maxH)

	opts := gofpdf.ImageOptions{ImageType: img.kind}
	doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.data))
	if doc.Err() {
		logger.Warn("skipping embedded image", "name", name, "error", doc.Error())
		doc.ClearError()
		return false
	}
	doc.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return true
}

func rightText(doc *gofpdf.Fpdf, s string, y float64) {
	doc.SetXY(leftMargin, y-4)
	doc.CellFormat(rightEdge-leftMargin, 5, s, "", 0, "R", false, 0, "")
}

func money(v float64) string {
	return fmt.Sprintf("%.2f €", v)
}
