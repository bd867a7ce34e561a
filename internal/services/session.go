package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/moduquote/moduquote/internal/models"
	"github.com/moduquote/moduquote/validation"
)

var (
	ErrItemNotFound         = errors.New("item not found")
	ErrUnknownField         = errors.New("unknown item field")
	ErrConfirmationRequired = errors.New("saving to the library requires confirmation")
)

// ValidationError carries the per-field violations from a rejected commit.
// The draft is untouched when a commit fails validation.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string { return "validation failed" }

// EditorSession owns one mutable quote draft. Item edits are synchronous and
// atomic; persistence and library calls snapshot the draft first so an edit
// racing a slow commit can never leak partial state into the write.
type EditorSession struct {
	mu sync.Mutex

	quoteID   uint
	projectID uint
	teamID    uint

	title            string
	typ              models.QuoteType
	template         string
	status           models.QuoteStatus
	recipientName    string
	recipientContact string
	recipientEmail   string
	items            []models.QuoteItem

	store   QuoteStore
	library ProductLibrary
	pricing *PricingService
}

// NewEditorSession starts a fresh draft for a project. New rental drafts get
// the common financing term as their item default; see AddItem.
func NewEditorSession(projectID, teamID uint, store QuoteStore, library ProductLibrary, pricing *PricingService) *EditorSession {
	return &EditorSession{
		projectID: projectID,
		teamID:    teamID,
		typ:       models.TypePurchase,
		template:  models.TemplateStandard,
		status:    models.StatusDraft,
		items:     []models.QuoteItem{},
		store:     store,
		library:   library,
		pricing:   pricing,
	}
}

// OpenEditorSession resumes editing a persisted quote.
func OpenEditorSession(q *models.Quote, teamID uint, store QuoteStore, library ProductLibrary, pricing *PricingService) (*EditorSession, error) {
	items, err := q.Items()
	if err != nil {
		return nil, fmt.Errorf("open session for quote %d: %w", q.ID, err)
	}
	s := NewEditorSession(q.ProjectID, teamID, store, library, pricing)
	s.quoteID = q.ID
	s.title = q.Title
	s.typ = q.Type
	s.template = q.Template
	s.status = q.Status
	s.recipientName = q.RecipientName
	s.recipientContact = q.RecipientContact
	s.recipientEmail = q.RecipientEmail
	s.items = items
	return s, nil
}

func (s *EditorSession) QuoteID() uint { return s.quoteID }

func (s *EditorSession) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
}

func (s *EditorSession) SetTemplate(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.template = tag
}

func (s *EditorSession) SetRecipient(name, contact, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipientName = name
	s.recipientContact = contact
	s.recipientEmail = email
}

// SetType toggles PURCHASE/RENTAL. Stored periods are left untouched so a
// round trip back to RENTAL loses nothing.
func (s *EditorSession) SetType(typ models.QuoteType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typ = typ
}

// AddItem appends a blank line and returns its generated id. The default term
// depends on the current quote type: rentals start at the common financing
// term, purchases at the pricing floor.
func (s *EditorSession) AddItem() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := models.QuoteItem{
		ID:           uuid.NewString(),
		Quantity:     1,
		PeriodMonths: s.defaultPeriodLocked(),
		Specs:        []string{},
	}
	s.items = append(s.items, item)
	return item.ID
}

func (s *EditorSession) indexLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *EditorSession) defaultPeriodLocked() int {
	if s.typ == models.TypeRental {
		return RentalDefaultTermMonths
	}
	return PricingFloorMonths
}

// UpdateItem replaces one field of one item. Unknown ids and unknown field
// names are errors; no other item is ever touched.
func (s *EditorSession) UpdateItem(id, field string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return ErrItemNotFound
	}
	item := &s.items[idx]
	switch field {
	case "name":
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: name wants a string", ErrUnknownField)
		}
		item.Name = v
	case "price":
		v, ok := toInt64(value)
		if !ok || v < 0 {
			return fmt.Errorf("%w: price wants a non-negative integer", ErrUnknownField)
		}
		item.UnitPrice = v
	case "qty":
		v, ok := toInt64(value)
		if !ok || v < 1 {
			return fmt.Errorf("%w: qty wants a positive integer", ErrUnknownField)
		}
		item.Quantity = int(v)
	case "period":
		v, ok := toInt64(value)
		if !ok || v < 1 {
			return fmt.Errorf("%w: period wants a positive integer", ErrUnknownField)
		}
		item.PeriodMonths = int(v)
	case "specs":
		switch v := value.(type) {
		case []string:
			item.Specs = append([]string(nil), v...)
		case string:
			item.Specs = models.ParseSpecs(v)
		default:
			return fmt.Errorf("%w: specs wants a string or string list", ErrUnknownField)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// RemoveItem deletes one line. An empty list is a valid zero-total quote.
func (s *EditorSession) RemoveItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return ErrItemNotFound
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return nil
}

// AttachImage associates an image reference with one item, replacing any
// prior image.
func (s *EditorSession) AttachImage(id, imageRef string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return ErrItemNotFound
	}
	s.items[idx].ImageRef = imageRef
	return nil
}

// ImportFromLibrary copies a catalog product into a new line with a fresh id
// and the type-appropriate default term.
func (s *EditorSession) ImportFromLibrary(p models.CatalogProduct) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := models.QuoteItem{
		ID:           uuid.NewString(),
		Name:         p.Name,
		UnitPrice:    p.UnitPrice,
		Quantity:     1,
		PeriodMonths: s.defaultPeriodLocked(),
		Specs:        p.SpecList(),
		ImageRef:     p.ImageURL,
	}
	s.items = append(s.items, item)
	return item.ID
}

// SaveItemToLibrary creates a catalog entry from one item's current values.
// The caller must pass confirmed=true; the side effect is visible, never
// silent. A library failure leaves the draft untouched.
func (s *EditorSession) SaveItemToLibrary(ctx context.Context, id string, confirmed bool) (*models.CatalogProduct, error) {
	if !confirmed {
		return nil, ErrConfirmationRequired
	}
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, ErrItemNotFound
	}
	item := s.items[idx]
	teamID := s.teamID
	s.mu.Unlock()

	p := &models.CatalogProduct{
		TeamID:    teamID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
		Specs:     models.JoinSpecs(item.Specs),
		ImageURL:  item.ImageRef,
	}
	if err := s.library.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ReplaceItems swaps the whole draft sequence, for transports that submit the
// full item list in one request. Ids are generated where the client sent none.
func (s *EditorSession) ReplaceItems(items []models.QuoteItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.QuoteItem, len(items))
	copy(next, items)
	for i := range next {
		if next[i].ID == "" {
			next[i].ID = uuid.NewString()
		}
		if next[i].Quantity < 1 {
			next[i].Quantity = 1
		}
		if next[i].Specs == nil {
			next[i].Specs = []string{}
		}
	}
	s.items = next
}

// Items returns a copy of the current draft sequence.
func (s *EditorSession) Items() []models.QuoteItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.QuoteItem, len(s.items))
	copy(out, s.items)
	return out
}

// Snapshot freezes the draft into a quote record without persisting it. Used
// by the live preview, which renders exactly what a commit would store.
func (s *EditorSession) Snapshot() (*models.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *EditorSession) snapshotLocked() (*models.Quote, error) {
	content, err := models.EncodeItems(s.items)
	if err != nil {
		return nil, err
	}
	return &models.Quote{
		ID:               s.quoteID,
		ProjectID:        s.projectID,
		Title:            s.title,
		Type:             s.typ,
		Template:         s.template,
		Status:           s.status,
		Content:          content,
		TotalAmount:      s.pricing.GrandTotal(s.items, s.typ),
		RecipientName:    s.recipientName,
		RecipientContact: s.recipientContact,
		RecipientEmail:   s.recipientEmail,
	}, nil
}

// Commit validates the draft, freezes a snapshot, and performs exactly one
// persistence call. On validation failure nothing is written and the draft is
// preserved. The store owns the SentAt stamp; the session never sets it.
func (s *EditorSession) Commit(ctx context.Context, status models.QuoteStatus) (*models.Quote, error) {
	s.mu.Lock()
	violations := validation.Violations{}
	validation.Required("title", s.title, violations)
	for i, item := range s.items {
		validation.NonNegativeAmount(fmt.Sprintf("items.%d.price", i), item.UnitPrice, violations)
		validation.MinInt(fmt.Sprintf("items.%d.period", i), item.PeriodMonths, 0, violations)
		if status == models.StatusSent || status == models.StatusAccepted {
			if strings.TrimSpace(item.Name) == "" {
				violations[fmt.Sprintf("items.%d.name", i)] = "required"
			}
		}
	}
	if !violations.Empty() {
		s.mu.Unlock()
		return nil, &ValidationError{Violations: violations}
	}
	q, err := s.snapshotLocked()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	q.Status = status

	if q.ID == 0 {
		err = s.store.CreateQuote(ctx, q)
	} else {
		err = s.store.UpdateQuote(ctx, q)
	}
	if err != nil {
		return nil, err
	}

	// The draft only takes on the committed status once the write has
	// actually happened, so a failed send leaves it retryable as before.
	s.mu.Lock()
	s.quoteID = q.ID
	s.status = status
	s.mu.Unlock()
	return q, nil
}
