package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/moduquote/moduquote/gate"
	"github.com/moduquote/moduquote/httpx"
	"github.com/moduquote/moduquote/internal/middleware"
	"github.com/moduquote/moduquote/internal/models"
	"github.com/moduquote/moduquote/internal/policy"
	"github.com/moduquote/moduquote/internal/render"
	"github.com/moduquote/moduquote/internal/services"
	pdfgen "github.com/moduquote/moduquote/pdf"
)

type QuoteHandler struct {
	DB      *gorm.DB
	Gate    *gate.Gate[uint]
	Store   services.QuoteStore
	Library services.ProductLibrary
	Pricing *services.PricingService
}

func NewQuoteHandler(db *gorm.DB, g *gate.Gate[uint]) *QuoteHandler {
	return &QuoteHandler{
		DB:      db,
		Gate:    g,
		Store:   services.NewGormQuoteStore(db),
		Library: services.NewGormProductLibrary(db),
		Pricing: services.NewPricingService(),
	}
}

// quoteReq is the transport shape shared by create and update. The item list
// is submitted whole; the session regenerates missing ids.
type quoteReq struct {
	ProjectID        uint               `json:"project_id"`
	Title            string             `json:"title"`
	Type             string             `json:"type"`
	Template         string             `json:"template"`
	Status           string             `json:"status"`
	RecipientName    string             `json:"recipient_name"`
	RecipientContact string             `json:"recipient_contact"`
	RecipientEmail   string             `json:"recipient_email"`
	Items            []models.QuoteItem `json:"items"`
}

func (h *QuoteHandler) teamIDForProject(projectID uint) uint {
	return membershipTeamID(h.DB, projectID)
}

// List: GET /quotes?project_id=...
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	projectID, ok := queryID(r, "project_id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_project_id", nil)
		return
	}
	teamID := h.teamIDForProject(projectID)
	if teamID == 0 {
		httpx.NotFound(w)
		return
	}
	if err := h.Gate.Authorize(r.Context(), uid, gate.ActionList, policy.ResourceQuote, teamID); err != nil {
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
		return
	}
	var quotes []models.Quote
	if err := h.DB.WithContext(r.Context()).Where("project_id = ?", projectID).Order("id desc").Find(&quotes).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_quotes", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": quotes})
}

// Create: POST /quotes – one commit of a fresh editor session.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req quoteReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.ProjectID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"project_id": "required"})
		return
	}
	teamID := h.teamIDForProject(req.ProjectID)
	if teamID == 0 {
		httpx.NotFound(w)
		return
	}
	if err := h.Gate.Authorize(r.Context(), uid, gate.ActionCreate, policy.ResourceQuote, teamID); err != nil {
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
		return
	}

	session := services.NewEditorSession(req.ProjectID, teamID, h.Store, h.Library, h.Pricing)
	h.applyRequest(session, req)
	q, err := session.Commit(r.Context(), commitStatus(req.Status))
	if err != nil {
		writeCommitError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, quoteJSON(q))
}

// Update: POST /quotes/update?id=...
func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
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
	teamID := h.teamIDForProject(q.ProjectID)
	if err := h.Gate.Authorize(r.Context(), uid, gate.ActionUpdate, policy.ResourceQuote, teamID); err != nil {
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
		return
	}
	var req quoteReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	session, err := services.OpenEditorSession(q, teamID, h.Store, h.Library, h.Pricing)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_open_session", nil)
		return
	}
	h.applyRequest(session, req)
	status := q.Status
	if req.Status != "" {
		status = commitStatus(req.Status)
	}
	saved, err := session.Commit(r.Context(), status)
	if err != nil {
		writeCommitError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quoteJSON(saved))
}

// applyRequest maps submitted fields onto the draft. Empty title on a new
// quote defaults to today's date.
func (h *QuoteHandler) applyRequest(session *services.EditorSession, req quoteReq) {
	title := strings.TrimSpace(req.Title)
	if title == "" && session.QuoteID() == 0 {
		title = time.Now().Format("2006-01-02")
	}
	if title != "" {
		session.SetTitle(title)
	}
	if req.Type != "" {
		session.SetType(models.QuoteType(req.Type))
	}
	if req.Template != "" {
		session.SetTemplate(req.Template)
	}
	session.SetRecipient(req.RecipientName, req.RecipientContact, req.RecipientEmail)
	if req.Items != nil {
		session.ReplaceItems(req.Items)
	}
}

func commitStatus(s string) models.QuoteStatus {
	switch models.QuoteStatus(s) {
	case models.StatusSent:
		return models.StatusSent
	case models.StatusAccepted:
		return models.StatusAccepted
	default:
		return models.StatusDraft
	}
}

func writeCommitError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", verr.Violations)
		return
	}
	if errors.Is(err, services.ErrQuoteNotFound) {
		httpx.NotFound(w)
		return
	}
	httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_quote", nil)
}

func quoteJSON(q *models.Quote) map[string]any {
	items, _ := q.Items()
	return map[string]any{
		"id":                q.ID,
		"project_id":        q.ProjectID,
		"title":             q.Title,
		"type":              q.Type,
		"template":          q.Template,
		"status":            q.Status,
		"total_amount":      q.TotalAmount,
		"recipient_name":    q.RecipientName,
		"recipient_contact": q.RecipientContact,
		"recipient_email":   q.RecipientEmail,
		"sent_at":           q.SentAt,
		"items":             items,
	}
}

// Get: GET /quotes/get?id=... – the decoded document plus totals, the same
// shape the public viewer receives.
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
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
	teamID := h.teamIDForProject(q.ProjectID)
	if err := h.Gate.Authorize(r.Context(), uid, gate.ActionView, policy.ResourceQuote, teamID); err != nil {
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
		return
	}
	in, err := BuildRenderInput(h.DB, h.Pricing, q, middleware.LangFrom(r))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_decode_quote", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, viewerPayload(q, in))
}

// SaveItemToLibrary: POST /quotes/save-item?id=...&item_id=...&confirmed=1
func (h *QuoteHandler) SaveItemToLibrary(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := queryID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	itemID := r.URL.Query().Get("item_id")
	confirmed := r.URL.Query().Get("confirmed") == "1"
	q, err := h.Store.GetQuote(r.Context(), id)
	if err != nil {
		httpx.NotFound(w)
		return
	}
	teamID := h.teamIDForProject(q.ProjectID)
	if err := h.Gate.Authorize(r.Context(), uid, gate.ActionCreate, policy.ResourceProduct, teamID); err != nil {
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
		return
	}
	session, err := services.OpenEditorSession(q, teamID, h.Store, h.Library, h.Pricing)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_open_session", nil)
		return
	}
	p, err := session.SaveItemToLibrary(r.Context(), itemID, confirmed)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrConfirmationRequired):
			httpx.JSONError(w, http.StatusBadRequest, "confirmation_required", nil)
		case errors.Is(err, services.ErrItemNotFound):
			httpx.NotFound(w)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_product", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

// PDF: GET /quotes/pdf?id=... – export failures report to the caller; the
// quote itself is untouched and the export can simply be retried.
func (h *QuoteHandler) PDF(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
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
	teamID := h.teamIDForProject(q.ProjectID)
	if err := h.Gate.Authorize(r.Context(), uid, gate.ActionView, policy.ResourceQuote, teamID); err != nil {
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
		return
	}
	in, err := BuildRenderInput(h.DB, h.Pricing, q, middleware.LangFrom(r))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_decode_quote", nil)
		return
	}
	data, genErr := pdfgen.QuotePDF(q.Template, in)
	if genErr != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdfgen.Filename(q.RecipientName)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// BuildRenderInput assembles the single input shape every presentation
// surface consumes. Editor preview, PDF export, and the public viewer all go
// through here so their totals can never disagree.
func BuildRenderInput(db *gorm.DB, pricing *services.PricingService, q *models.Quote, lang string) (render.Input, error) {
	items, err := q.Items()
	if err != nil {
		return render.Input{}, err
	}
	in := render.NewInput(items, q.Type, pricing)
	in.Title = q.Title
	in.RecipientName = q.RecipientName
	in.RecipientContact = q.RecipientContact
	in.Number = fmt.Sprintf("MQ-%04d", q.ID)
	in.Lang = lang
	in.IssuedAt = q.CreatedAt

	var project models.Project
	if err := db.First(&project, q.ProjectID).Error; err == nil {
		var team models.Team
		if err := db.First(&team, project.TeamID).Error; err == nil {
			in.TeamName = team.Name
			in.TeamLogoURL = team.LogoURL
			var owner models.User
			if err := db.First(&owner, team.OwnerID).Error; err == nil {
				in.ManagerName = owner.Name
				in.ManagerEmail = owner.Email
			}
		}
	}
	return in, nil
}

// viewerPayload is the JSON shape shared by the editor preview and the public
// viewer.
func viewerPayload(q *models.Quote, in render.Input) map[string]any {
	lines := make([]map[string]any, len(in.Lines))
	for i, l := range in.Lines {
		lines[i] = map[string]any{"item": l.Item, "total": l.Total}
	}
	return map[string]any{
		"id":                q.ID,
		"title":             q.Title,
		"type":              q.Type,
		"template":          q.Template,
		"status":            q.Status,
		"sent_at":           q.SentAt,
		"recipient_name":    in.RecipientName,
		"recipient_contact": in.RecipientContact,
		"recipient_email":   q.RecipientEmail,
		"team_name":         in.TeamName,
		"team_logo_url":     in.TeamLogoURL,
		"manager_name":      in.ManagerName,
		"manager_email":     in.ManagerEmail,
		"number":            in.Number,
		"lines":             lines,
		"grand_total":       in.GrandTotal,
	}
}
