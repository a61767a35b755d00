package models

import (
	"errors"
	"fmt"
)

// CustomItemID is the identity carried by a resolved line that did not come
// from the catalog. The value is part of the wire contract: clients send it
// to create a custom entry and receive it back when one is read.
const CustomItemID int64 = -1

// LineEntry is a selection for one plan line: either a reference to a
// catalog item or a free-form custom entry with its own name and cost.
// Build one with CatalogRef or CustomEntry; the zero value encodes neither
// variant and fails Validate.
type LineEntry struct {
	catalogItemID *uint
	customName    string
	customCost    float64
}

// CatalogRef returns an entry referencing the catalog item with the given id.
func CatalogRef(itemID uint) LineEntry {
	id := itemID
	return LineEntry{catalogItemID: &id}
}

// CustomEntry returns an entry carrying its own name and cost.
func CustomEntry(name string, cost float64) LineEntry {
	return LineEntry{customName: name, customCost: cost}
}

// IsCustom reports whether the entry is a custom entry rather than a
// catalog reference.
func (e LineEntry) IsCustom() bool { return e.catalogItemID == nil }

// CatalogItemID returns the referenced catalog item id when the entry is a
// catalog reference.
func (e LineEntry) CatalogItemID() (uint, bool) {
	if e.catalogItemID == nil {
		return 0, false
	}
	return *e.catalogItemID, true
}

// Custom returns the custom name and cost. Meaningful only when IsCustom
// reports true.
func (e LineEntry) Custom() (string, float64) {
	return e.customName, e.customCost
}

// Validate checks the write-boundary encoding rules for the entry.
func (e LineEntry) Validate() error {
	if e.catalogItemID != nil {
		if *e.catalogItemID == 0 {
			return errors.New("catalog reference requires a positive item id")
		}
		return nil
	}
	if e.customName == "" {
		return errors.New("entry encodes neither a catalog reference nor custom fields")
	}
	if e.customCost < 0 {
		return errors.New("custom cost must not be negative")
	}
	return nil
}

// Row converts the entry into its two-nullable-column storage form for the
// given plan. Only the persistence layer calls this.
func (e LineEntry) Row(planID uint) LineItem {
	if e.catalogItemID != nil {
		id := *e.catalogItemID
		return LineItem{PlanID: planID, CatalogItemID: &id}
	}
	name := e.customName
	cost := e.customCost
	return LineItem{PlanID: planID, CustomName: &name, CustomCost: &cost}
}

// ResolvedLine is the materialized, display-ready form of a line item after
// catalog lookup. ID is the catalog item id, or CustomItemID for custom
// entries, which also carry nil Category and Calories.
type ResolvedLine struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Cost     float64 `json:"cost"`
	Category *string `json:"category,omitempty"`
	Calories *int    `json:"calories,omitempty"`
}

// EntryFromResolved converts an incoming materialized item back into a
// LineEntry. Items carrying CustomItemID become custom entries; any positive
// id becomes a catalog reference, with name and cost ignored in favor of the
// catalog row at resolve time.
func EntryFromResolved(r ResolvedLine) (LineEntry, error) {
	switch {
	case r.ID == CustomItemID:
		entry := CustomEntry(r.Name, r.Cost)
		if err := entry.Validate(); err != nil {
			return LineEntry{}, err
		}
		return entry, nil
	case r.ID > 0:
		return CatalogRef(uint(r.ID)), nil
	default:
		return LineEntry{}, fmt.Errorf("id %d is neither a catalog item id nor the custom marker", r.ID)
	}
}
