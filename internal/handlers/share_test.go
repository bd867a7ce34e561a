package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/moduquote/moduquote/internal/models"
	"github.com/moduquote/moduquote/internal/policy"
)

func TestShareViewerMatchesEditorPayload(t *testing.T) {
	db := setupTestDB(t)
	user, _, project := seedWorkspace(t, db)
	qh := NewQuoteHandler(db, policy.NewGate(db))
	sh := NewShareHandler(db)

	body := `{"project_id":` + itoa(project.ID) + `,"title":"2025-11-20","type":"RENTAL",` +
		`"recipient_name":"베어로보틱스","items":[{"name":"서비 플러스","price":600000,"qty":1,"period":36}]}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(body)), user.ID)
	w := httptest.NewRecorder()
	qh.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d", w.Code)
	}
	var q models.Quote
	if err := db.First(&q).Error; err != nil {
		t.Fatalf("load: %v", err)
	}

	// Editor view, authenticated.
	reqEd := asUser(httptest.NewRequest(http.MethodGet, "/quotes/get?id="+itoa(q.ID), nil), user.ID)
	reqEd.Header.Set("Accept", "application/json")
	wEd := httptest.NewRecorder()
	qh.Get(wEd, reqEd)
	if wEd.Code != http.StatusOK {
		t.Fatalf("editor get: %d", wEd.Code)
	}

	// Public viewer, no session at all.
	reqPub := httptest.NewRequest(http.MethodGet, "/share?id="+itoa(q.ID), nil)
	reqPub.Header.Set("Accept", "application/json")
	wPub := httptest.NewRecorder()
	sh.View(wPub, reqPub)
	if wPub.Code != http.StatusOK {
		t.Fatalf("public get: %d", wPub.Code)
	}

	var ed, pub map[string]any
	if err := json.Unmarshal(wEd.Body.Bytes(), &ed); err != nil {
		t.Fatalf("decode editor: %v", err)
	}
	if err := json.Unmarshal(wPub.Body.Bytes(), &pub); err != nil {
		t.Fatalf("decode public: %v", err)
	}
	for _, key := range []string{"grand_total", "recipient_name", "team_name", "type", "template", "number"} {
		if ed[key] != pub[key] {
			t.Fatalf("surfaces disagree on %s: %v vs %v", key, ed[key], pub[key])
		}
	}
	if pub["grand_total"].(float64) != 21600000 {
		t.Fatalf("grand total %v", pub["grand_total"])
	}
}

func TestShareViewerNotFound(t *testing.T) {
	db := setupTestDB(t)
	sh := NewShareHandler(db)
	req := httptest.NewRequest(http.MethodGet, "/share?id=999", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	sh.View(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
