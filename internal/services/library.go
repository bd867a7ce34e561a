package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/moduquote/moduquote/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

// ProductLibrary is the team-scoped catalog of reusable products.
type ProductLibrary interface {
	ListProducts(ctx context.Context, teamID uint) ([]models.CatalogProduct, error)
	GetProduct(ctx context.Context, teamID, id uint) (*models.CatalogProduct, error)
	CreateProduct(ctx context.Context, p *models.CatalogProduct) error
	DeleteProduct(ctx context.Context, teamID, id uint) error
}

type GormProductLibrary struct {
	DB *gorm.DB
}

func NewGormProductLibrary(db *gorm.DB) *GormProductLibrary { return &GormProductLibrary{DB: db} }

func (l *GormProductLibrary) ListProducts(ctx context.Context, teamID uint) ([]models.CatalogProduct, error) {
	var out []models.CatalogProduct
	if err := l.DB.WithContext(ctx).Where("team_id = ?", teamID).Order("id desc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

func (l *GormProductLibrary) GetProduct(ctx context.Context, teamID, id uint) (*models.CatalogProduct, error) {
	var p models.CatalogProduct
	if err := l.DB.WithContext(ctx).Where("team_id = ?", teamID).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("load product %d: %w", id, err)
	}
	return &p, nil
}

func (l *GormProductLibrary) CreateProduct(ctx context.Context, p *models.CatalogProduct) error {
	if err := l.DB.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (l *GormProductLibrary) DeleteProduct(ctx context.Context, teamID, id uint) error {
	res := l.DB.WithContext(ctx).Where("team_id = ?", teamID).Delete(&models.CatalogProduct{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
