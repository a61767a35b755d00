package models

// CatalogItem is a fixed, pre-seeded priced offering available for selection.
// Rows are written once by the catalog seed and are never updated or deleted
// afterwards; line items reference them by id.
type CatalogItem struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"not null" json:"name"`
	Cost     float64 `gorm:"not null" json:"cost"`
	Category *string `json:"category,omitempty"`
	Calories *int    `json:"calories,omitempty"`
}
