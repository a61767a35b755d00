package services

import (
	"gorm.io/gorm"

	apperrors "mensa/internal/errors"
	"mensa/internal/logger"
	"mensa/internal/models"
	"mensa/internal/pagination"
)

// catalogService handles the read-only meal catalog.
type catalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a new CatalogServicer.
func NewCatalogService(db *gorm.DB) CatalogServicer {
	return &catalogService{db: db}
}

// Initialize seeds the catalog with its static reference data. The seed runs
// only against an empty table, so reopening an existing database never
// duplicates rows, while a destructive schema recreation (which empties the
// table) seeds again through the same path.
func (s *catalogService) Initialize() error {
	var count int64
	if err := s.db.Model(&models.CatalogItem{}).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	if count > 0 {
		return nil
	}

	items := seedCatalog()
	if err := s.db.Create(&items).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}

	logger.Get().Infow("catalog seeded", "items", len(items))
	return nil
}

// ListItems returns every catalog row in insertion order.
func (s *catalogService) ListItems() ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	if err := s.db.Order("id").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return items, nil
}

// ListItemsPage returns a page of catalog rows in insertion order.
func (s *catalogService) ListItemsPage(page pagination.PageRequest) (*pagination.PageResponse[models.CatalogItem], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.CatalogItem{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var items []models.CatalogItem
	if err := s.db.Order("id").Scopes(pagination.Paginate(page)).Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(items, page.Page, page.PageSize, totalItems)
	return &result, nil
}
