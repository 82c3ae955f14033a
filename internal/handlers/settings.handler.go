package handlers

import (
	"github.com/fasthttp/router"
	"github.com/nero-collectibles/kassa/internal/model"
	xhttp "github.com/nero-collectibles/kassa/pkg/http"
)

type SettingsStore interface {
	Get() model.CompanySettings
	Update(model.CompanySettings) error
}

type SettingsHandler struct {
	store SettingsStore
}

func RegisterSettingsRoutes(e *router.Group, h *SettingsHandler) {
	e.GET("/settings", h.GetSettings)
	e.PUT("/settings", h.UpdateSettings)
}

func NewSettingsHandler(store SettingsStore) *SettingsHandler {
	return &SettingsHandler{store: store}
}

func (h *SettingsHandler) GetSettings(ctx *xhttp.RequestCtx) {
	writeJSON(ctx, 200, h.store.Get())
}

func (h *SettingsHandler) UpdateSettings(ctx *xhttp.RequestCtx) {
	// merge over the current profile so a partial update does not wipe
	// the rest, the UI sends only the fields it changed
	s := h.store.Get()
	if err := readJSON(ctx, &s); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	if err := h.store.Update(s); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, s)
}
