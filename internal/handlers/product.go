package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/moduquote/moduquote/gate"
	"github.com/moduquote/moduquote/httpx"
	"github.com/moduquote/moduquote/internal/models"
	"github.com/moduquote/moduquote/internal/policy"
	"github.com/moduquote/moduquote/internal/services"
	"github.com/moduquote/moduquote/validation"
)

type ProductHandler struct {
	DB      *gorm.DB
	Gate    *gate.Gate[uint]
	Library services.ProductLibrary
}

func NewProductHandler(db *gorm.DB, g *gate.Gate[uint]) *ProductHandler {
	return &ProductHandler{DB: db, Gate: g, Library: services.NewGormProductLibrary(db)}
}

// List: GET /products?team_id=...
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	teamID, ok := queryID(r, "team_id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_team_id", nil)
		return
	}
	if err := h.Gate.Authorize(r.Context(), uid, gate.ActionList, policy.ResourceProduct, teamID); err != nil {
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
		return
	}
	products, err := h.Library.ListProducts(r.Context(), teamID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": products})
}

// Create: POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req struct {
		TeamID    uint   `json:"team_id"`
		Name      string `json:"name"`
		UnitPrice int64  `json:"unit_price"`
		Specs     string `json:"specs"`
		ImageURL  string `json:"image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	violations := validation.Violations{}
	validation.Required("name", req.Name, violations)
	validation.NonNegativeAmount("unit_price", req.UnitPrice, violations)
	if req.TeamID == 0 {
		violations["team_id"] = "required"
	}
	if !violations.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", violations)
		return
	}
	if err := h.Gate.Authorize(r.Context(), uid, gate.ActionCreate, policy.ResourceProduct, req.TeamID); err != nil {
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
		return
	}
	p := &models.CatalogProduct{
		TeamID:    req.TeamID,
		Name:      strings.TrimSpace(req.Name),
		UnitPrice: req.UnitPrice,
		Specs:     req.Specs,
		ImageURL:  req.ImageURL,
	}
	if err := h.Library.CreateProduct(r.Context(), p); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_product", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

// Delete: POST /products/delete?team_id=...&id=...
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	teamID, ok := queryID(r, "team_id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_team_id", nil)
		return
	}
	id, ok := queryID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Gate.Authorize(r.Context(), uid, gate.ActionDelete, policy.ResourceProduct, teamID); err != nil {
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
		return
	}
	if err := h.Library.DeleteProduct(r.Context(), teamID, id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			httpx.NotFound(w)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_product", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
