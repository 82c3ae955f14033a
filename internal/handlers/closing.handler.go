package handlers

import (
	"time"

	"github.com/fasthttp/router"
	"github.com/nero-collectibles/kassa/internal/closing"
	xhttp "github.com/nero-collectibles/kassa/pkg/http"
)

type ClosingService interface {
	Daily(date string) closing.DailyCash
	Report(date, location, notes string, f closing.Figures) closing.Report
	ReportPDF(rep closing.Report) (string, []byte, error)
}

type ClosingHandler struct {
	svc ClosingService
}

func RegisterClosingRoutes(e *router.Group, h *ClosingHandler) {
	e.GET("/cash-closing", h.GetDailyCash)
	e.POST("/cash-closing/report", h.CreateReport)
}

func NewClosingHandler(svc ClosingService) *ClosingHandler {
	return &ClosingHandler{svc: svc}
}

type reportRequest struct {
	Date       string  `json:"date"`
	Location   string  `json:"location"`
	Notes      string  `json:"notes"`
	Opening    float64 `json:"opening"`
	Counted    float64 `json:"counted"`
	Deposit    float64 `json:"deposit"`
	Withdrawal float64 `json:"withdrawal"`
	PDF        bool    `json:"pdf"`
}

func (h *ClosingHandler) GetDailyCash(ctx *xhttp.RequestCtx) {
	date := query(ctx, "date")
	if !validDate(date) {
		writeError(ctx, 400, "date must be a calendar date in YYYY-MM-DD form")
		return
	}
	writeJSON(ctx, 200, h.svc.Daily(date))
}

// CreateReport resolves the full closing report. With pdf=true the
// response is the printable sheet instead of JSON.
func (h *ClosingHandler) CreateReport(ctx *xhttp.RequestCtx) {
	var req reportRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	if !validDate(req.Date) {
		writeError(ctx, 400, "date must be a calendar date in YYYY-MM-DD form")
		return
	}

	rep := h.svc.Report(req.Date, req.Location, req.Notes, closing.Figures{
		Opening:    req.Opening,
		Counted:    req.Counted,
		Deposit:    req.Deposit,
		Withdrawal: req.Withdrawal,
	})

	if !req.PDF {
		writeJSON(ctx, 200, rep)
		return
	}

	filename, data, err := h.svc.ReportPDF(rep)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writePDF(ctx, filename, data)
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
