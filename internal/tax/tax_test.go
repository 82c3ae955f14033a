package tax

import (
	"testing"

	"github.com/nero-collectibles/kassa/internal/model"
	"github.com/stretchr/testify/assert"
)

func item(price float64, qty int, rate float64) model.TransactionItem {
	return model.TransactionItem{ID: "i", Name: "Karte", Quantity: qty, Price: price, TaxRate: rate}
}

func TestLine(t *testing.T) {
	t.Run("regular sale extracts tax from gross", func(t *testing.T) {
		b := Line(item(100, 1, 19), model.TypeSale, model.TaxRegular)

		assert.InDelta(t, 100.0, b.Gross, 1e-9)
		assert.InDelta(t, 100.0/1.19, b.Net, 1e-9)
		assert.InDelta(t, 100.0-100.0/1.19, b.Tax, 1e-9)
	})

	t.Run("regular sale with zero rate degenerates to gross", func(t *testing.T) {
		b := Line(item(50, 2, 0), model.TypeSale, model.TaxRegular)

		assert.Equal(t, 100.0, b.Gross)
		assert.Equal(t, 100.0, b.Net)
		assert.Equal(t, 0.0, b.Tax)
	})

	t.Run("margin sale shows no tax", func(t *testing.T) {
		b := Line(item(100, 1, 19), model.TypeSale, model.TaxDiff)

		assert.Equal(t, 100.0, b.Net)
		assert.Equal(t, 0.0, b.Tax)
	})

	t.Run("purchase never carries tax regardless of method", func(t *testing.T) {
		for _, method := range []model.TaxMethod{model.TaxRegular, model.TaxDiff} {
			b := Line(item(80, 1, 19), model.TypePurchase, method)

			assert.Equal(t, 80.0, b.Net)
			assert.Equal(t, 0.0, b.Tax)
		}
	})

	t.Run("zero price and quantity do not blow up", func(t *testing.T) {
		b := Line(item(0, 0, 19), model.TypeSale, model.TaxRegular)

		assert.Equal(t, 0.0, b.Gross)
		assert.Equal(t, 0.0, b.Net)
		assert.Equal(t, 0.0, b.Tax)
	})
}

func TestCompute(t *testing.T) {
	t.Run("sums per line in input order", func(t *testing.T) {
		items := []model.TransactionItem{
			item(100, 1, 19),
			item(10, 3, 7),
		}
		totals := Compute(items, model.TypeSale, model.TaxRegular)

		wantNet := 100.0/1.19 + 30.0/1.07
		assert.InDelta(t, 130.0, totals.TotalGross, 1e-9)
		assert.InDelta(t, wantNet, totals.TotalNet, 1e-9)
		assert.InDelta(t, 130.0-wantNet, totals.TotalTax, 1e-9)
	})

	t.Run("net plus tax equals gross", func(t *testing.T) {
		items := []model.TransactionItem{
			item(12.49, 3, 19),
			item(0.99, 7, 7),
			item(250, 1, 0),
		}
		totals := Compute(items, model.TypeSale, model.TaxRegular)

		assert.InDelta(t, totals.TotalGross, totals.TotalNet+totals.TotalTax, 1e-6)
	})

	t.Run("margin purchase fixture", func(t *testing.T) {
		totals := Compute([]model.TransactionItem{item(50, 2, 0)}, model.TypePurchase, model.TaxDiff)

		assert.Equal(t, 100.0, totals.TotalGross)
		assert.Equal(t, 100.0, totals.TotalNet)
		assert.Equal(t, 0.0, totals.TotalTax)
	})

	t.Run("empty item list yields zero totals", func(t *testing.T) {
		totals := Compute(nil, model.TypeSale, model.TaxRegular)

		assert.Equal(t, Totals{}, totals)
	})
}
