package models

// LineItem is the storage row for one entry within a plan. Exactly one of
// CatalogItemID or the (CustomName, CustomCost) pair is populated per row.
// The row form never crosses the persistence boundary; callers work with
// LineEntry on the way in and ResolvedLine on the way out.
type LineItem struct {
	ID            uint     `gorm:"primaryKey" json:"-"`
	PlanID        uint     `gorm:"not null" json:"-"`
	CatalogItemID *uint    `json:"-"`
	CustomName    *string  `json:"-"`
	CustomCost    *float64 `json:"-"`

	// Relationships
	CatalogItem *CatalogItem `gorm:"foreignKey:CatalogItemID" json:"-"`
}
