package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/moduquote/moduquote/internal/models"
)

func setupSessionTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Team{}, &models.TeamMember{}, &models.Project{}, &models.Quote{}, &models.CatalogProduct{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProject(t *testing.T, db *gorm.DB) (models.Team, models.Project) {
	t.Helper()
	user := models.User{Email: "owner@test", Password: "x", Name: "Owner"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	team := models.Team{Name: "ModuQuote", OwnerID: user.ID}
	if err := db.Create(&team).Error; err != nil {
		t.Fatalf("team: %v", err)
	}
	project := models.Project{TeamID: team.ID, Name: "2025 영업"}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("project: %v", err)
	}
	return team, project
}

func newTestSession(t *testing.T) (*EditorSession, *gorm.DB) {
	t.Helper()
	db := setupSessionTestDB(t)
	team, project := seedProject(t, db)
	s := NewEditorSession(project.ID, team.ID, NewGormQuoteStore(db), NewGormProductLibrary(db), NewPricingService())
	return s, db
}

func TestAddItemDefaults(t *testing.T) {
	s, _ := newTestSession(t)

	id := s.AddItem()
	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item got %d", len(items))
	}
	it := items[0]
	if it.ID != id || it.Name != "" || it.UnitPrice != 0 || it.Quantity != 1 {
		t.Fatalf("unexpected blank item: %+v", it)
	}
	if it.PeriodMonths != PricingFloorMonths {
		t.Fatalf("purchase draft should default period to %d, got %d", PricingFloorMonths, it.PeriodMonths)
	}

	s.SetType(models.TypeRental)
	s.AddItem()
	items = s.Items()
	if items[1].PeriodMonths != RentalDefaultTermMonths {
		t.Fatalf("rental draft should default period to %d, got %d", RentalDefaultTermMonths, items[1].PeriodMonths)
	}
}

func TestUpdateItemTouchesExactlyOneItem(t *testing.T) {
	s, _ := newTestSession(t)
	a := s.AddItem()
	b := s.AddItem()

	if err := s.UpdateItem(a, "name", "서비 플러스"); err != nil {
		t.Fatalf("update name: %v", err)
	}
	if err := s.UpdateItem(a, "price", int64(600000)); err != nil {
		t.Fatalf("update price: %v", err)
	}
	if err := s.UpdateItem(a, "specs", "서빙로봇, 535x550x1095mm"); err != nil {
		t.Fatalf("update specs: %v", err)
	}
	items := s.Items()
	if items[0].Name != "서비 플러스" || items[0].UnitPrice != 600000 {
		t.Fatalf("item a not updated: %+v", items[0])
	}
	if len(items[0].Specs) != 2 || items[0].Specs[0] != "서빙로봇" {
		t.Fatalf("specs not parsed: %+v", items[0].Specs)
	}
	if items[1].ID != b || items[1].Name != "" {
		t.Fatalf("item b must be untouched: %+v", items[1])
	}
}

func TestUpdateItemUnknownID(t *testing.T) {
	s, _ := newTestSession(t)
	s.AddItem()
	if err := s.UpdateItem("missing", "name", "x"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if got := s.Items()[0].Name; got != "" {
		t.Fatalf("no item may be mutated on unknown id, got name %q", got)
	}
}

func TestUpdateItemUnknownField(t *testing.T) {
	s, _ := newTestSession(t)
	id := s.AddItem()
	if err := s.UpdateItem(id, "colour", "red"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestRemoveLastItemLeavesValidEmptyQuote(t *testing.T) {
	s, _ := newTestSession(t)
	id := s.AddItem()
	if err := s.RemoveItem(id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if n := len(s.Items()); n != 0 {
		t.Fatalf("expected empty list, got %d", n)
	}
	snap, err := s.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.TotalAmount != 0 {
		t.Fatalf("zero-item quote should total 0, got %d", snap.TotalAmount)
	}
}

func TestAttachImageReplacesPrior(t *testing.T) {
	s, _ := newTestSession(t)
	id := s.AddItem()
	if err := s.AttachImage(id, "data:image/png;base64,aGVsbG8="); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := s.AttachImage(id, "https://cdn.example.com/servi.png"); err != nil {
		t.Fatalf("attach replace: %v", err)
	}
	if got := s.Items()[0].ImageRef; got != "https://cdn.example.com/servi.png" {
		t.Fatalf("image not replaced: %q", got)
	}
}

func TestTypeToggleKeepsPeriods(t *testing.T) {
	s, _ := newTestSession(t)
	s.SetType(models.TypeRental)
	id := s.AddItem()
	if err := s.UpdateItem(id, "period", 24); err != nil {
		t.Fatalf("update period: %v", err)
	}

	s.SetType(models.TypePurchase)
	if got := s.Items()[0].PeriodMonths; got != 24 {
		t.Fatalf("toggle to purchase must keep period, got %d", got)
	}
	s.SetType(models.TypeRental)
	if got := s.Items()[0].PeriodMonths; got != 24 {
		t.Fatalf("toggle back must keep period, got %d", got)
	}
}

func TestImportFromLibrary(t *testing.T) {
	s, db := newTestSession(t)
	s.SetType(models.TypeRental)

	p := models.CatalogProduct{TeamID: 1, Name: "서비 플러스", UnitPrice: 600000, Specs: "서빙로봇, 4단 트레이", ImageURL: "https://cdn.example.com/servi.png"}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	id := s.ImportFromLibrary(p)
	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item")
	}
	it := items[0]
	if it.ID != id || it.Name != p.Name || it.UnitPrice != 600000 || it.ImageRef != p.ImageURL {
		t.Fatalf("imported item wrong: %+v", it)
	}
	if it.PeriodMonths != RentalDefaultTermMonths {
		t.Fatalf("rental import should default period %d, got %d", RentalDefaultTermMonths, it.PeriodMonths)
	}
	if len(it.Specs) != 2 || it.Specs[1] != "4단 트레이" {
		t.Fatalf("specs not split on import: %+v", it.Specs)
	}
}

func TestSaveItemToLibraryRequiresConfirmation(t *testing.T) {
	s, db := newTestSession(t)
	id := s.AddItem()
	_ = s.UpdateItem(id, "name", "서비 플러스")
	_ = s.UpdateItem(id, "price", int64(600000))

	if _, err := s.SaveItemToLibrary(context.Background(), id, false); !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	var count int64
	db.Model(&models.CatalogProduct{}).Count(&count)
	if count != 0 {
		t.Fatalf("unconfirmed save must not write, found %d rows", count)
	}

	p, err := s.SaveItemToLibrary(context.Background(), id, true)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if p.ID == 0 || p.Name != "서비 플러스" || p.UnitPrice != 600000 {
		t.Fatalf("catalog entry wrong: %+v", p)
	}
}

func TestCommitValidation(t *testing.T) {
	s, db := newTestSession(t)

	_, err := s.Commit(context.Background(), models.StatusDraft)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Violations["title"]; !ok {
		t.Fatalf("missing title violation: %+v", verr.Violations)
	}

	s.SetTitle("2025-11-20")
	s.AddItem() // unnamed item is fine in a draft
	if _, err := s.Commit(context.Background(), models.StatusDraft); err != nil {
		t.Fatalf("draft commit: %v", err)
	}

	if _, err := s.Commit(context.Background(), models.StatusSent); err == nil {
		t.Fatalf("sending with unnamed items must fail")
	}
	var count int64
	db.Model(&models.Quote{}).Where("status = ?", models.StatusSent).Count(&count)
	if count != 0 {
		t.Fatalf("failed send must not write")
	}
}

func TestCommitStampsSentAtExactlyOnce(t *testing.T) {
	s, _ := newTestSession(t)
	s.SetTitle("2025-11-20")
	id := s.AddItem()
	_ = s.UpdateItem(id, "name", "서비 플러스")
	_ = s.UpdateItem(id, "price", int64(600000))

	q, err := s.Commit(context.Background(), models.StatusDraft)
	if err != nil {
		t.Fatalf("draft commit: %v", err)
	}
	if q.SentAt != nil {
		t.Fatalf("draft must not stamp SentAt")
	}

	q, err = s.Commit(context.Background(), models.StatusSent)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if q.SentAt == nil {
		t.Fatalf("first send must stamp SentAt")
	}
	first := *q.SentAt

	q, err = s.Commit(context.Background(), models.StatusSent)
	if err != nil {
		t.Fatalf("re-send: %v", err)
	}
	if q.SentAt == nil || !q.SentAt.Equal(first) {
		t.Fatalf("re-send must keep the original SentAt: got %v want %v", q.SentAt, first)
	}
}

func TestCommitSnapshotsAtInvocation(t *testing.T) {
	s, db := newTestSession(t)
	s.SetTitle("2025-11-20")
	s.SetType(models.TypeRental)
	id := s.AddItem()
	_ = s.UpdateItem(id, "name", "서비 플러스")
	_ = s.UpdateItem(id, "price", int64(600000))
	_ = s.UpdateItem(id, "period", 36)

	q, err := s.Commit(context.Background(), models.StatusDraft)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if q.TotalAmount != 21600000 {
		t.Fatalf("stamped total %d want 21600000", q.TotalAmount)
	}

	// Edits after the commit resolved must not be visible in the stored row.
	_ = s.UpdateItem(id, "price", int64(1))
	var stored models.Quote
	if err := db.First(&stored, q.ID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	items, err := stored.Items()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if items[0].UnitPrice != 600000 {
		t.Fatalf("stored row must hold the snapshot, got %d", items[0].UnitPrice)
	}
}

func TestCommitCreatesThenUpdates(t *testing.T) {
	s, db := newTestSession(t)
	s.SetTitle("2025-11-20")

	q1, err := s.Commit(context.Background(), models.StatusDraft)
	if err != nil {
		t.Fatalf("first commit: %v", err)
	}
	if q1.ID == 0 {
		t.Fatalf("create must assign an id")
	}

	s.SetTitle("2025-11-21")
	q2, err := s.Commit(context.Background(), models.StatusDraft)
	if err != nil {
		t.Fatalf("second commit: %v", err)
	}
	if q2.ID != q1.ID {
		t.Fatalf("second commit must update, not create: %d vs %d", q2.ID, q1.ID)
	}
	var count int64
	db.Model(&models.Quote{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single row, got %d", count)
	}
}

func TestCommitPreservesCreatedAt(t *testing.T) {
	s, db := newTestSession(t)
	s.SetTitle("2025-11-20")
	id := s.AddItem()
	_ = s.UpdateItem(id, "name", "서비 플러스")

	q, err := s.Commit(context.Background(), models.StatusDraft)
	if err != nil {
		t.Fatalf("draft commit: %v", err)
	}
	var created models.Quote
	if err := db.First(&created, q.ID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("create must stamp CreatedAt")
	}

	if _, err := s.Commit(context.Background(), models.StatusSent); err != nil {
		t.Fatalf("send: %v", err)
	}
	var updated models.Quote
	if err := db.First(&updated, q.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("update must keep CreatedAt: was %v now %v", created.CreatedAt, updated.CreatedAt)
	}
}

func TestCommitRejectsNegativePrice(t *testing.T) {
	s, db := newTestSession(t)
	s.SetTitle("2025-11-20")
	s.ReplaceItems([]models.QuoteItem{{Name: "서비 플러스", UnitPrice: -100, Quantity: 2}})

	_, err := s.Commit(context.Background(), models.StatusDraft)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Violations["items.0.price"] == "" {
		t.Fatalf("expected items.0.price violation, got %v", verr.Violations)
	}
	var count int64
	db.Model(&models.Quote{}).Count(&count)
	if count != 0 {
		t.Fatalf("failed validation must not write, got %d rows", count)
	}
}

type failingQuoteStore struct{}

func (failingQuoteStore) GetQuote(ctx context.Context, id uint) (*models.Quote, error) {
	return nil, ErrQuoteNotFound
}
func (failingQuoteStore) CreateQuote(ctx context.Context, q *models.Quote) error {
	return errors.New("db down")
}
func (failingQuoteStore) UpdateQuote(ctx context.Context, q *models.Quote) error {
	return errors.New("db down")
}

func TestFailedCommitLeavesDraftStatus(t *testing.T) {
	s := NewEditorSession(1, 1, failingQuoteStore{}, nil, NewPricingService())
	s.SetTitle("2025-11-20")
	id := s.AddItem()
	_ = s.UpdateItem(id, "name", "서비 플러스")

	if _, err := s.Commit(context.Background(), models.StatusSent); err == nil {
		t.Fatalf("expected store error")
	}
	snap, err := s.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Status != models.StatusDraft {
		t.Fatalf("failed send must leave the draft status untouched, got %s", snap.Status)
	}
}
