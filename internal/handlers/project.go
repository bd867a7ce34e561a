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
)

type ProjectHandler struct {
	DB   *gorm.DB
	Gate *gate.Gate[uint]
}

func NewProjectHandler(db *gorm.DB, g *gate.Gate[uint]) *ProjectHandler {
	return &ProjectHandler{DB: db, Gate: g}
}

// List: GET /projects?team_id=...
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	teamID, ok := queryID(r, "team_id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_team_id", nil)
		return
	}
	if err := h.Gate.Authorize(r.Context(), uid, gate.ActionList, policy.ResourceProject, teamID); err != nil {
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
		return
	}
	var projects []models.Project
	if err := h.DB.WithContext(r.Context()).Where("team_id = ?", teamID).Order("id desc").Find(&projects).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_projects", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": projects})
}

// Create: POST /projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req struct {
		TeamID uint   `json:"team_id"`
		Name   string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.TeamID == 0 || req.Name == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"team_id": "required", "name": "required"})
		return
	}
	if err := h.Gate.Authorize(r.Context(), uid, gate.ActionCreate, policy.ResourceProject, req.TeamID); err != nil {
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
		return
	}
	project := models.Project{TeamID: req.TeamID, Name: req.Name}
	if err := h.DB.WithContext(r.Context()).Create(&project).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_project", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, project)
}

// Get: GET /projects/get?id=... – the project with its quotes.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := queryID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var project models.Project
	if err := h.DB.WithContext(r.Context()).Preload("Quotes").First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.NotFound(w)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_project", nil)
		return
	}
	if err := h.Gate.Authorize(r.Context(), uid, gate.ActionView, policy.ResourceProject, project.TeamID); err != nil {
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, project)
}
