package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dealspot/subscription-deals-site/pkg/logging"
)

// Handler serves the deal catalog to the page. The page's modal and cards
// render from these responses.
type Handler struct {
	catalog *Catalog
	logger  *logging.Logger
}

// NewHandler creates a catalog handler.
func NewHandler(c *Catalog, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{catalog: c, logger: logger}
}

// ListDeals handles GET /api/deals.
func (h *Handler) ListDeals(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"deals": h.catalog.Entries(),
		"count": h.catalog.Len(),
	})
}

// GetDeal handles GET /api/deals/{dealID}. Unlike in-process lookups, the
// id arrives from the network here, so an unknown id is a plain 404.
func (h *Handler) GetDeal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "dealID")
	entry, ok := h.catalog.Get(id)
	if !ok {
		h.logger.Debug("deal not found", "deal_id", id)
		http.Error(w, "deal not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entry)
}
