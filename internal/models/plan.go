package models

// Plan is a budgeted set of meal selections for a single date.
// At most one plan exists per date value. The invariant is procedural, not a
// uniqueness constraint: every write goes through the plan store's
// replace-for-date operation, which removes any previous plan for the date
// inside the same transaction that writes the new one.
type Plan struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Date       string  `gorm:"not null;index" json:"date"`
	TargetCost float64 `gorm:"not null" json:"target_cost"`
}
