package services

import (
	"mensa/internal/models"
	"mensa/internal/pagination"
)

// CatalogServicer defines the contract for the read-only meal catalog.
// The catalog is seeded once per database lifetime and never mutated
// afterwards; no update or delete surface exists.
type CatalogServicer interface {
	Initialize() error
	ListItems() ([]models.CatalogItem, error)
	ListItemsPage(page pagination.PageRequest) (*pagination.PageResponse[models.CatalogItem], error)
}

// PlanServicer defines the contract for daily plan persistence. All writes
// route through ReplacePlanForDate, which is what keeps the one-plan-per-date
// invariant intact.
type PlanServicer interface {
	ReplacePlanForDate(date string, targetCost float64, entries []models.LineEntry) (uint, error)
	FindPlanByDate(date string) (*models.Plan, error)
	ListPlanDates() ([]string, error)
	DeletePlan(planID uint) error
}

// LineResolver materializes a plan's stored line items for display,
// hiding the two-column storage encoding from callers.
type LineResolver interface {
	ResolveLines(planID uint) ([]models.ResolvedLine, error)
}
