package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "mensa/internal/errors"
	"mensa/internal/models"
)

// planService handles daily plan persistence.
type planService struct {
	db *gorm.DB
}

// NewPlanService creates a new PlanServicer.
func NewPlanService(db *gorm.DB) PlanServicer {
	return &planService{db: db}
}

// ReplacePlanForDate replaces whatever plan exists for the date with a new
// one built from the given entries, in order. The delete of the previous
// plan (and its lines) and the insert of the new one happen in a single
// transaction: a failure at any point leaves the previous plan untouched,
// never a mix of the two. The previous plan is discarded permanently.
func (s *planService) ReplacePlanForDate(date string, targetCost float64, entries []models.LineEntry) (uint, error) {
	if date == "" {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if targetCost < 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "target cost must not be negative")
	}

	// Reject malformed entries before touching the database so a bad item
	// cannot cost the caller their existing plan.
	for i, entry := range entries {
		if err := entry.Validate(); err != nil {
			return 0, apperrors.WithMessage(apperrors.ErrConstraintViolation, fmt.Sprintf("items[%d]: %v", i, err))
		}
	}

	var planID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Clear every plan for the date, not just the first, so the
		// invariant self-heals if rows were ever duplicated.
		var existing []models.Plan
		if err := tx.Where("date = ?", date).Find(&existing).Error; err != nil {
			return err
		}
		for _, old := range existing {
			if err := tx.Where("plan_id = ?", old.ID).Delete(&models.LineItem{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Plan{}, old.ID).Error; err != nil {
				return err
			}
		}

		plan := models.Plan{Date: date, TargetCost: targetCost}
		if err := tx.Create(&plan).Error; err != nil {
			return err
		}

		for _, entry := range entries {
			row := entry.Row(plan.ID)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		planID = plan.ID
		return nil
	})
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return planID, nil
}

// FindPlanByDate returns the plan for the date, or nil when none exists.
// Absence is a normal state, not an error.
func (s *planService) FindPlanByDate(date string) (*models.Plan, error) {
	var plan models.Plan
	if err := s.db.Where("date = ?", date).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &plan, nil
}

// ListPlanDates returns every date with a plan, most recent first, with no
// duplicates.
func (s *planService) ListPlanDates() ([]string, error) {
	var dates []string
	err := s.db.Model(&models.Plan{}).
		Distinct("date").
		Order("date DESC").
		Pluck("date", &dates).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if dates == nil {
		dates = []string{}
	}
	return dates, nil
}

// DeletePlan deletes the plan and every line referencing it. Deleting a
// plan that does not exist is a no-op, not an error.
func (s *planService) DeletePlan(planID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", planID).Delete(&models.LineItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Plan{}, planID).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
