package api

import (
	"net/http"

	"github.com/MikeSquared-Agency/Regen/internal/catalog"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

// Technologies lists every selectable technology.
// GET /api/v1/technologies
func (h *CatalogHandler) Technologies(w http.ResponseWriter, r *http.Request) {
	out := h.catalog.Technologies
	if cat := r.URL.Query().Get("category"); cat != "" {
		var want catalog.Category
		if err := want.UnmarshalText([]byte(cat)); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		out = []catalog.Technology{}
		for _, t := range h.catalog.Technologies {
			if t.Category == want {
				out = append(out, t)
			}
		}
	}
	if out == nil {
		out = []catalog.Technology{}
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /api/v1/damage-types
func (h *CatalogHandler) DamageTypes(w http.ResponseWriter, r *http.Request) {
	out := h.catalog.DamageTypes
	if out == nil {
		out = []catalog.DamageType{}
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /api/v1/constants
func (h *CatalogHandler) Constants(w http.ResponseWriter, r *http.Request) {
	out := h.catalog.Constants
	if out == nil {
		out = []catalog.Constant{}
	}
	writeJSON(w, http.StatusOK, out)
}
