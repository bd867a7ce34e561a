package main

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"github.com/moduquote/moduquote/auth"
	"github.com/moduquote/moduquote/internal/middleware"
	"github.com/moduquote/moduquote/internal/models"
	"github.com/moduquote/moduquote/internal/server"
	"github.com/moduquote/moduquote/view"
)

var templateBase string

func init() {
	// Detect templates directory whether running from repo root or subdir (e.g., cmd/server).
	candidates := []string{"templates", "../templates", "../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			templateBase = filepath.Clean(c)
			break
		}
	}
	if templateBase == "" { // fallback to relative; parsing will error clearly
		templateBase = "templates"
	}

	// Inject language/theme resolvers into the shared view package so it stays
	// decoupled from the middleware package.
	view.SetLangResolver(middleware.LangFrom)
	view.SetThemeResolver(middleware.ThemeFrom)
}

// NewApp bundles landing, dashboard, and API routes.
func NewApp(dbConn *gorm.DB) http.Handler {
	rootAPI := auth.Middleware(server.New(dbConn))

	baseHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/dashboard" {
			uid, ok := auth.UserIDFromContext(r.Context())
			if !ok || uid == 0 {
				if parsed, ok2 := auth.ParseSession(r); ok2 {
					uid = parsed
				}
			}
			if uid == 0 {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			data := map[string]any{"Year": time.Now().Year()}
			if c, err := r.Cookie("flash"); err == nil {
				if dec, derr := url.QueryUnescape(c.Value); derr == nil {
					data["Flash"] = dec
				} else {
					data["Flash"] = c.Value
				}
				http.SetCookie(w, &http.Cookie{Name: "flash", Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
			}
			var user models.User
			if err := dbConn.First(&user, uid).Error; err == nil {
				data["User"] = user
			}
			var teams []models.Team
			dbConn.Joins("JOIN team_members tm ON tm.team_id = teams.id").Where("tm.user_id = ?", uid).Find(&teams)
			data["Teams"] = teams
			teamIDs := make([]uint, 0, len(teams))
			for _, t := range teams {
				teamIDs = append(teamIDs, t.ID)
			}
			var quoteCount, projectCount, productCount int64
			if len(teamIDs) > 0 {
				dbConn.Model(&models.Project{}).Where("team_id IN ?", teamIDs).Count(&projectCount)
				dbConn.Model(&models.Quote{}).
					Joins("JOIN projects p ON p.id = quotes.project_id").
					Where("p.team_id IN ?", teamIDs).Count(&quoteCount)
				dbConn.Model(&models.CatalogProduct{}).Where("team_id IN ?", teamIDs).Count(&productCount)
				var recentQuotes []models.Quote
				dbConn.Joins("JOIN projects p ON p.id = quotes.project_id").
					Where("p.team_id IN ?", teamIDs).
					Order("quotes.created_at desc").Limit(5).Find(&recentQuotes)
				data["RecentQuotes"] = recentQuotes
			}
			data["Stats"] = map[string]any{"QuoteCount": quoteCount, "ProjectCount": projectCount, "ProductCount": productCount}
			if err := view.Render(w, r, "dashboard.html", data); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				if _, werr := w.Write([]byte("render error")); werr != nil {
					_ = werr
				}
			}
			return
		}
		if r.URL.Path == "/" {
			data := map[string]any{}
			if c, err := r.Cookie("flash"); err == nil {
				if dec, derr := url.QueryUnescape(c.Value); derr == nil {
					data["Flash"] = dec
				} else {
					data["Flash"] = c.Value
				}
				http.SetCookie(w, &http.Cookie{Name: "flash", Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
			}
			uid, ok := auth.UserIDFromContext(r.Context())
			if !ok || uid == 0 {
				if parsed, ok2 := auth.ParseSession(r); ok2 {
					uid = parsed
				}
			}
			if uid != 0 {
				var user models.User
				if err := dbConn.First(&user, uid).Error; err == nil {
					data["User"] = user
				}
			}
			if err := view.Render(w, r, "index.html", data); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				if _, werr := w.Write([]byte("render error")); werr != nil {
					_ = werr
				}
			}
			return
		}
		rootAPI.ServeHTTP(w, r)
	})
	return middleware.Prefs(baseHandler)
}
