package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"mensa/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestCatalogItem creates a catalog item with the given name and cost
// and no category or calorie metadata.
func CreateTestCatalogItem(t *testing.T, db *gorm.DB, name string, cost float64) *models.CatalogItem {
	t.Helper()

	item := &models.CatalogItem{Name: name, Cost: cost}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test catalog item: %v", err)
	}
	return item
}

// CreateTestCatalogItemWithMeta creates a catalog item carrying category and
// calorie metadata.
func CreateTestCatalogItemWithMeta(t *testing.T, db *gorm.DB, name string, cost float64, category string, calories int) *models.CatalogItem {
	t.Helper()

	item := &models.CatalogItem{Name: name, Cost: cost, Category: &category, Calories: &calories}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test catalog item: %v", err)
	}
	return item
}

// CreateTestPlan creates a plan row directly, bypassing the plan store. Use
// it for read-path tests; write-path tests should go through the service.
func CreateTestPlan(t *testing.T, db *gorm.DB, date string, targetCost float64) *models.Plan {
	t.Helper()

	plan := &models.Plan{Date: date, TargetCost: targetCost}
	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("failed to create test plan: %v", err)
	}
	return plan
}

// CreateTestLine inserts a line row for the plan from the given entry.
func CreateTestLine(t *testing.T, db *gorm.DB, planID uint, entry models.LineEntry) *models.LineItem {
	t.Helper()

	row := entry.Row(planID)
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("failed to create test line item: %v", err)
	}
	return &row
}

// UniqueDate returns a date key unused by other fixtures in this run.
func UniqueDate(t *testing.T) string {
	t.Helper()
	return fmt.Sprintf("2024-01-%02d", nextID()%28+1)
}
