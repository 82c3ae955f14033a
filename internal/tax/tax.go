// Package tax derives net/tax/gross figures for transaction line items.
//
// All prices entered by the operator are gross. Under standard taxation a
// sale's line gross is tax-inclusive and the net is extracted with the
// usual VAT formula. Under margin taxation, and for purchases regardless
// of method, the receipt carries no tax line: purchases from private
// sellers have no deductible input tax, and margin-taxed sales settle VAT
// on the margin outside the receipt.
package tax

import "github.com/nero-collectibles/kassa/internal/model"

type Breakdown struct {
	Net   float64
	Tax   float64
	Gross float64
}

type Totals struct {
	TotalNet   float64
	TotalTax   float64
	TotalGross float64
}

// Line computes one item's breakdown. Line gross is always price times
// quantity; a rate of 0 under regular taxation degenerates to net==gross.
func Line(item model.TransactionItem, typ model.TransactionType, method model.TaxMethod) Breakdown {
	gross := item.Price * float64(item.Quantity)

	if typ == model.TypeSale && method == model.TaxRegular {
		net := gross / (1 + item.TaxRate/100)
		return Breakdown{Net: net, Tax: gross - net, Gross: gross}
	}

	return Breakdown{Net: gross, Tax: 0, Gross: gross}
}

// Compute sums the per-line breakdowns in input order. Totals keep full
// float precision; rounding to 2 decimals happens at presentation only.
func Compute(items []model.TransactionItem, typ model.TransactionType, method model.TaxMethod) Totals {
	var t Totals
	for _, item := range items {
		b := Line(item, typ, method)
		t.TotalNet += b.Net
		t.TotalTax += b.Tax
		t.TotalGross += b.Gross
	}
	return t
}
