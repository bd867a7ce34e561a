package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/moduquote/moduquote/internal/models"
)

var ErrQuoteNotFound = errors.New("quote not found")

// QuoteStore persists quote documents. The editor session talks to this
// interface so its commit logic can be tested against an in-memory double.
type QuoteStore interface {
	GetQuote(ctx context.Context, id uint) (*models.Quote, error)
	CreateQuote(ctx context.Context, q *models.Quote) error
	UpdateQuote(ctx context.Context, q *models.Quote) error
}

// GormQuoteStore is the database-backed store.
type GormQuoteStore struct {
	DB *gorm.DB
}

func NewGormQuoteStore(db *gorm.DB) *GormQuoteStore { return &GormQuoteStore{DB: db} }

func (s *GormQuoteStore) GetQuote(ctx context.Context, id uint) (*models.Quote, error) {
	var q models.Quote
	if err := s.DB.WithContext(ctx).First(&q, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("load quote %d: %w", id, err)
	}
	return &q, nil
}

func (s *GormQuoteStore) CreateQuote(ctx context.Context, q *models.Quote) error {
	stampSent(q, nil)
	if err := s.DB.WithContext(ctx).Create(q).Error; err != nil {
		return fmt.Errorf("create quote: %w", err)
	}
	return nil
}

func (s *GormQuoteStore) UpdateQuote(ctx context.Context, q *models.Quote) error {
	var prev models.Quote
	if err := s.DB.WithContext(ctx).Select("id", "created_at", "sent_at").First(&prev, q.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuoteNotFound
		}
		return fmt.Errorf("load quote %d: %w", q.ID, err)
	}
	// Commit snapshots are built fresh each time, so the row's original
	// creation time has to come from the stored copy.
	q.CreatedAt = prev.CreatedAt
	stampSent(q, prev.SentAt)
	if err := s.DB.WithContext(ctx).Save(q).Error; err != nil {
		return fmt.Errorf("update quote %d: %w", q.ID, err)
	}
	return nil
}

// stampSent records the first transition into SENT. A quote that was already
// sent keeps its original timestamp no matter how often it is re-sent.
func stampSent(q *models.Quote, prev *time.Time) {
	if prev != nil {
		q.SentAt = prev
		return
	}
	if q.Status == models.StatusSent && q.SentAt == nil {
		now := time.Now().UTC()
		q.SentAt = &now
	}
}
