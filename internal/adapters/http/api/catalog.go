package api

import (
	"net/http"

	service "github.com/okian/wbdash/internal/app"
	"github.com/okian/wbdash/internal/domain/model"
)

// CatalogDependencies defines the interface for catalog reads.
type CatalogDependencies interface {
	Configurer
	CatalogView(locale model.Locale) service.CatalogView
}

// CatalogHandler handles catalog requests.
type CatalogHandler struct {
	deps CatalogDependencies
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps CatalogDependencies) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

// HandleCatalog handles GET /api/catalog?lang= requests.
func (h *CatalogHandler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.deps.RequestConfig(r.URL.Query().Get("lang"), 0, 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.CatalogView(cfg.Locale))
}
