package handlers

import (
	"encoding/json"
	"testing"

	"github.com/nero-collectibles/kassa/internal/closing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClosingService struct {
	daily  closing.DailyCash
	pdfErr error
}

func (f *fakeClosingService) Daily(string) closing.DailyCash { return f.daily }

func (f *fakeClosingService) Report(date, location, notes string, fig closing.Figures) closing.Report {
	return closing.BuildReport(date, location, notes, fig, f.daily)
}

func (f *fakeClosingService) ReportPDF(rep closing.Report) (string, []byte, error) {
	if f.pdfErr != nil {
		return "", nil, f.pdfErr
	}
	return "Kassenabschluss_" + rep.Date + ".pdf", []byte("%PDF-fake"), nil
}

func TestGetDailyCash(t *testing.T) {
	t.Run("answers the aggregate for the date", func(t *testing.T) {
		h := NewClosingHandler(&fakeClosingService{daily: closing.DailyCash{CashSales: 200, CashPurchases: 50, Count: 3}})

		ctx := newCtx("GET", "/api/v1/cash-closing?date=2024-06-01", nil)
		h.GetDailyCash(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		var got closing.DailyCash
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &got))
		assert.Equal(t, 200.0, got.CashSales)
	})

	t.Run("missing or malformed date answers 400", func(t *testing.T) {
		h := NewClosingHandler(&fakeClosingService{})

		for _, uri := range []string{"/api/v1/cash-closing", "/api/v1/cash-closing?date=01.06.2024"} {
			ctx := newCtx("GET", uri, nil)
			h.GetDailyCash(ctx)
			assert.Equal(t, 400, ctx.Response.StatusCode())
		}
	})
}

func TestCreateReport(t *testing.T) {
	body := []byte(`{"date":"2024-06-01","location":"Laden","opening":150,"counted":310.50,"deposit":20,"withdrawal":10}`)

	t.Run("answers the resolved report as JSON", func(t *testing.T) {
		h := NewClosingHandler(&fakeClosingService{daily: closing.DailyCash{CashSales: 200, CashPurchases: 50}})

		ctx := newCtx("POST", "/api/v1/cash-closing/report", body)
		h.CreateReport(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		var got closing.Report
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &got))
		assert.InDelta(t, 310.0, got.Expected, 1e-9)
		assert.InDelta(t, 0.50, got.Difference, 1e-9)
	})

	t.Run("pdf flag answers the printable sheet", func(t *testing.T) {
		h := NewClosingHandler(&fakeClosingService{})

		ctx := newCtx("POST", "/api/v1/cash-closing/report",
			[]byte(`{"date":"2024-06-01","opening":100,"counted":100,"pdf":true}`))
		h.CreateReport(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		assert.Equal(t, "application/pdf", string(ctx.Response.Header.ContentType()))
		assert.Contains(t, string(ctx.Response.Header.Peek("Content-Disposition")), "Kassenabschluss_2024-06-01.pdf")
	})

	t.Run("malformed date answers 400", func(t *testing.T) {
		h := NewClosingHandler(&fakeClosingService{})

		ctx := newCtx("POST", "/api/v1/cash-closing/report", []byte(`{"date":"gestern"}`))
		h.CreateReport(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})
}
