// Package closing computes the daily cash reconciliation.
package closing

import "github.com/nero-collectibles/kassa/internal/model"

// DailyCash is the transactional side of a cash closing: cash-paid gross
// totals for one calendar date, split by direction.
type DailyCash struct {
	CashSales     float64 `json:"cashSales"`
	CashPurchases float64 `json:"cashPurchases"`
	Count         int     `json:"count"`
}

// Aggregate sums cash transactions for the given date. A record with no
// payment method counts as cash.
func Aggregate(all []model.Transaction, date string) DailyCash {
	var d DailyCash
	for _, t := range all {
		if t.Date != date || t.PaymentMethod.Normalize() != model.PaymentCash {
			continue
		}
		if t.Type == model.TypeSale {
			d.CashSales += t.TotalGross
		} else {
			d.CashPurchases += t.TotalGross
		}
		d.Count++
	}
	return d
}

// Figures are the manually entered side of the closing: counted balances
// and private deposits/withdrawals.
type Figures struct {
	Opening    float64 `json:"opening"`
	Counted    float64 `json:"counted"`
	Deposit    float64 `json:"deposit"`
	Withdrawal float64 `json:"withdrawal"`
}

// Report combines both sides plus presentation metadata for the PDF.
type Report struct {
	Date     string    `json:"date"`
	Location string    `json:"location"`
	Notes    string    `json:"notes"`
	Figures  Figures   `json:"figures"`
	Daily    DailyCash `json:"daily"`

	Expected   float64 `json:"expected"`
	Difference float64 `json:"difference"`
}

// ExpectedBalance is the theoretical closing balance:
// opening + cash sales - cash purchases + deposit - withdrawal.
func ExpectedBalance(f Figures, d DailyCash) float64 {
	return f.Opening + d.CashSales - d.CashPurchases + f.Deposit - f.Withdrawal
}

// BuildReport resolves the derived fields. Difference is counted minus
// expected, positive when there is more cash in the drawer than computed.
func BuildReport(date, location, notes string, f Figures, d DailyCash) Report {
	expected := ExpectedBalance(f, d)
	return Report{
		Date:       date,
		Location:   location,
		Notes:      notes,
		Figures:    f,
		Daily:      d,
		Expected:   expected,
		Difference: f.Counted - expected,
	}
}
