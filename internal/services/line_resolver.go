package services

import (
	"gorm.io/gorm"

	apperrors "mensa/internal/errors"
	"mensa/internal/logger"
	"mensa/internal/models"
)

// lineResolver materializes stored line items against the catalog.
type lineResolver struct {
	db *gorm.DB
}

// NewLineResolver creates a new LineResolver.
func NewLineResolver(db *gorm.DB) LineResolver {
	return &lineResolver{db: db}
}

// ResolveLines returns the plan's line items in insertion order, each
// materialized from whichever side of the union its row populates:
// catalog-backed rows take name, cost, category, and calories from the
// catalog; custom rows carry their own name and cost with the custom
// sentinel identity and no category or calories.
func (r *lineResolver) ResolveLines(planID uint) ([]models.ResolvedLine, error) {
	var rows []models.LineItem
	err := r.db.Where("plan_id = ?", planID).
		Order("id").
		Preload("CatalogItem").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	lines := make([]models.ResolvedLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, resolveRow(row))
	}
	return lines, nil
}

func resolveRow(row models.LineItem) models.ResolvedLine {
	if row.CatalogItemID != nil {
		if row.CatalogItem == nil {
			// The referenced catalog row is gone. That should not happen
			// with an immutable catalog, but a destructive migration racing
			// an old plan could produce it; surface the line with an empty
			// name rather than failing the whole plan.
			logger.Get().Warnw("line item references missing catalog item",
				"line_id", row.ID,
				"catalog_item_id", *row.CatalogItemID,
			)
			return models.ResolvedLine{ID: int64(*row.CatalogItemID)}
		}
		item := row.CatalogItem
		return models.ResolvedLine{
			ID:       int64(item.ID),
			Name:     item.Name,
			Cost:     item.Cost,
			Category: item.Category,
			Calories: item.Calories,
		}
	}

	line := models.ResolvedLine{ID: models.CustomItemID}
	if row.CustomName != nil {
		line.Name = *row.CustomName
	}
	if row.CustomCost != nil {
		line.Cost = *row.CustomCost
	}
	return line
}
