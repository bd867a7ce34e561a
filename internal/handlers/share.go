package handlers

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/moduquote/moduquote/httpx"
	"github.com/moduquote/moduquote/internal/middleware"
	"github.com/moduquote/moduquote/internal/models"
	"github.com/moduquote/moduquote/internal/services"
	"github.com/moduquote/moduquote/view"
)

// ShareHandler serves the public read-only viewer. No authentication: anyone
// holding the link sees the document, rendered from the same input shape as
// the editor preview so the two can never drift apart.
type ShareHandler struct {
	DB      *gorm.DB
	Store   services.QuoteStore
	Pricing *services.PricingService
}

func NewShareHandler(db *gorm.DB) *ShareHandler {
	return &ShareHandler{DB: db, Store: services.NewGormQuoteStore(db), Pricing: services.NewPricingService()}
}

// View: GET /share?id=... – HTML or JSON.
func (h *ShareHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	q, err := h.Store.GetQuote(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrQuoteNotFound) {
			httpx.NotFound(w)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_quote", nil)
		return
	}
	in, err := BuildRenderInput(h.DB, h.Pricing, q, middleware.LangFrom(r))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_decode_quote", nil)
		return
	}
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html") {
		httpx.JSON(w, http.StatusOK, viewerPayload(q, in))
		return
	}
	_ = view.Render(w, r, "share.html", map[string]any{
		"Quote":    q,
		"Input":    in,
		"IsRental": q.Type == models.TypeRental,
	})
}
