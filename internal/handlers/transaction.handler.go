package handlers

import (
	"encoding/json"
	"errors"

	"github.com/fasthttp/router"
	"github.com/nero-collectibles/kassa/internal/model"
	"github.com/nero-collectibles/kassa/internal/services"
	xhttp "github.com/nero-collectibles/kassa/pkg/http"
)

type TransactionService interface {
	Create(req model.CreateTransactionRequest) (*model.Transaction, error)
	Delete(id string) error
	List(f services.TransactionFilter) []services.NumberedTransaction
	Stats() services.Stats
}

type ReceiptService interface {
	Render(id string) (string, []byte, error)
	Email(id string) error
}

type TransactionHandler struct {
	svc      TransactionService
	receipts ReceiptService
}

func RegisterTransactionRoutes(e *router.Group, h *TransactionHandler) {
	e.POST("/transactions", h.CreateTransaction)
	e.GET("/transactions", h.ListTransactions)
	e.DELETE("/transactions/{id}", h.DeleteTransaction)
	e.GET("/transactions/{id}/receipt", h.DownloadReceipt)
	e.POST("/transactions/{id}/email", h.EmailReceipt)
	e.GET("/stats", h.GetStats)
}

func NewTransactionHandler(svc TransactionService, receipts ReceiptService) *TransactionHandler {
	return &TransactionHandler{svc: svc, receipts: receipts}
}

type listResponse struct {
	Items []services.NumberedTransaction `json:"items"`
	Total int                            `json:"total"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *TransactionHandler) CreateTransaction(ctx *xhttp.RequestCtx) {
	var req model.CreateTransactionRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	t, err := h.svc.Create(req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, t)
}

func (h *TransactionHandler) ListTransactions(ctx *xhttp.RequestCtx) {
	var f services.TransactionFilter

	if v := query(ctx, "type"); v != "" {
		t := model.TransactionType(v)
		if !t.IsValid() {
			writeError(ctx, 400, "type must be purchase or sale")
			return
		}
		f.Type = t
	}
	f.Query = query(ctx, "q")

	items := h.svc.List(f)
	writeJSON(ctx, 200, listResponse{Items: items, Total: len(items)})
}

func (h *TransactionHandler) DeleteTransaction(ctx *xhttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if err := h.svc.Delete(id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Response.SetStatusCode(204)
}

func (h *TransactionHandler) DownloadReceipt(ctx *xhttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	filename, data, err := h.receipts.Render(id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writePDF(ctx, filename, data)
}

func (h *TransactionHandler) EmailReceipt(ctx *xhttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if err := h.receipts.Email(id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 202, map[string]string{"status": "queued"})
}

func (h *TransactionHandler) GetStats(ctx *xhttp.RequestCtx) {
	writeJSON(ctx, 200, h.svc.Stats())
}

/* --------------------------------- Helpers ----------------------------------- */

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	return json.Unmarshal(ctx.PostBody(), dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writePDF(ctx *xhttp.RequestCtx, filename string, data []byte) {
	ctx.Response.Header.Set("Content-Type", "application/pdf")
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Response.SetStatusCode(200)
	ctx.Response.SetBodyRaw(data)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

// writeServiceError maps service failures onto status codes: unknown ids
// are 404, rejected input is 400, persistence and rendering failures 500.
func writeServiceError(ctx *xhttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeError(ctx, 404, err.Error())
	case errors.Is(err, services.ErrMailerDisabled),
		errors.Is(err, services.ErrNoPartnerEmail),
		errors.Is(err, services.ErrMailQueueFull),
		isValidationError(err):
		writeError(ctx, 400, err.Error())
	default:
		writeError(ctx, 500, err.Error())
	}
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		model.ErrInvalidType,
		model.ErrInvalidTaxMethod,
		model.ErrInvalidPaymentMethod,
		model.ErrInvalidDate,
		model.ErrPartnerNameRequired,
		model.ErrPartnerAddressRequire,
		model.ErrNoItems,
		model.ErrInvalidItem,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}
