package handlers

import (
	"time"

	"github.com/fasthttp/router"
	"github.com/nero-collectibles/kassa/internal/model"
	xhttp "github.com/nero-collectibles/kassa/pkg/http"
)

type BackupService interface {
	Export() []model.Transaction
	Import(list []model.Transaction) error
}

type BackupHandler struct {
	svc BackupService
}

func RegisterBackupRoutes(e *router.Group, h *BackupHandler) {
	e.GET("/backup", h.Export)
	e.POST("/restore", h.Import)
}

func NewBackupHandler(svc BackupService) *BackupHandler {
	return &BackupHandler{svc: svc}
}

func (h *BackupHandler) Export(ctx *xhttp.RequestCtx) {
	filename := "kassa_backup_" + time.Now().Format("20060102") + ".json"
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	writeJSON(ctx, 200, h.svc.Export())
}

// Import replaces the whole collection with the posted backup. There is
// deliberately no merge: restore means restore.
func (h *BackupHandler) Import(ctx *xhttp.RequestCtx) {
	var list []model.Transaction
	if err := readJSON(ctx, &list); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	if err := h.svc.Import(list); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, map[string]int{"imported": len(list)})
}
