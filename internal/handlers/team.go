package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/moduquote/moduquote/auth"
	"github.com/moduquote/moduquote/gate"
	"github.com/moduquote/moduquote/httpx"
	"github.com/moduquote/moduquote/internal/models"
	"github.com/moduquote/moduquote/internal/policy"
)

type TeamHandler struct {
	DB   *gorm.DB
	Gate *gate.Gate[uint]
}

func NewTeamHandler(db *gorm.DB, g *gate.Gate[uint]) *TeamHandler {
	return &TeamHandler{DB: db, Gate: g}
}

func requireUser(w http.ResponseWriter, r *http.Request) (uint, bool) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok || uid == 0 {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return 0, false
	}
	return uid, true
}

func queryID(r *http.Request, name string) (uint, bool) {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || n <= 0 {
		return 0, false
	}
	return uint(n), true
}

// List: GET /teams – teams the current user belongs to.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	var teams []models.Team
	err := h.DB.WithContext(r.Context()).
		Joins("JOIN team_members tm ON tm.team_id = teams.id").
		Where("tm.user_id = ?", uid).
		Find(&teams).Error
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_teams", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": teams})
}

// Create: POST /teams – creator becomes OWNER.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req struct {
		Name    string `json:"name"`
		LogoURL string `json:"logo_url"`
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
	} else if err := r.ParseForm(); err == nil {
		req.Name = r.Form.Get("name")
		req.LogoURL = r.Form.Get("logo_url")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"name": "required"})
		return
	}
	team := models.Team{Name: req.Name, LogoURL: req.LogoURL, OwnerID: uid}
	err := h.DB.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		return tx.Create(&models.TeamMember{TeamID: team.ID, UserID: uid, Role: models.RoleOwner}).Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_team", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, team)
}

// Invite: POST /teams/invite?id=... – owner adds a member by email.
func (h *TeamHandler) Invite(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	teamID, ok := queryID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var team models.Team
	if err := h.DB.WithContext(r.Context()).First(&team, teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.NotFound(w)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_team", nil)
		return
	}
	if err := h.Gate.Authorize(r.Context(), uid, gate.ActionUpdate, policy.ResourceTeam, &team); err != nil {
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
		return
	}
	var req struct {
		Email string `json:"email"`
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
	} else if err := r.ParseForm(); err == nil {
		req.Email = r.Form.Get("email")
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"email": "required"})
		return
	}
	var invitee models.User
	if err := h.DB.WithContext(r.Context()).Where("email = ?", req.Email).First(&invitee).Error; err != nil {
		httpx.NotFound(w)
		return
	}
	member := models.TeamMember{TeamID: team.ID, UserID: invitee.ID, Role: models.RoleMember}
	if err := h.DB.WithContext(r.Context()).Create(&member).Error; err != nil {
		httpx.JSONError(w, http.StatusConflict, "already_a_member", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"team_id": team.ID, "user_id": invitee.ID, "role": member.Role})
}

// SetLogo: POST /teams/logo?id=... – owner updates the team logo reference.
func (h *TeamHandler) SetLogo(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	teamID, ok := queryID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var team models.Team
	if err := h.DB.WithContext(r.Context()).First(&team, teamID).Error; err != nil {
		httpx.NotFound(w)
		return
	}
	if err := h.Gate.Authorize(r.Context(), uid, gate.ActionUpdate, policy.ResourceTeam, &team); err != nil {
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
		return
	}
	var req struct {
		LogoURL string `json:"logo_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.DB.WithContext(r.Context()).Model(&team).Update("logo_url", req.LogoURL).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_team", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"id": team.ID, "logo_url": req.LogoURL})
}

// membershipTeamID resolves the team owning a project, or 0.
func membershipTeamID(db *gorm.DB, projectID uint) uint {
	var project models.Project
	if err := db.First(&project, projectID).Error; err != nil {
		return 0
	}
	return project.TeamID
}
