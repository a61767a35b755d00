package services

import (
	"testing"

	"mensa/internal/models"
	"mensa/internal/testutil"
)

func TestReplacePlanForDate(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		resolver := NewLineResolver(db)
		soup := testutil.CreateTestCatalogItem(t, db, "Soup", 5.00)

		planID, err := svc.ReplacePlanForDate("2024-01-01", 20.00, []models.LineEntry{
			models.CatalogRef(soup.ID),
			models.CustomEntry("Snack", 3.00),
		})
		testutil.AssertNoError(t, err)
		if planID == 0 {
			t.Fatal("expected non-zero plan id")
		}

		plan, err := svc.FindPlanByDate("2024-01-01")
		testutil.AssertNoError(t, err)
		if plan == nil {
			t.Fatal("expected a plan for 2024-01-01")
		}
		if plan.TargetCost != 20.00 {
			t.Errorf("expected target cost 20.00, got %v", plan.TargetCost)
		}

		lines, err := resolver.ResolveLines(planID)
		testutil.AssertNoError(t, err)
		if len(lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(lines))
		}
		if lines[0].Name != "Soup" || lines[0].Cost != 5.00 {
			t.Errorf("expected (Soup, 5.00) first, got (%s, %v)", lines[0].Name, lines[0].Cost)
		}
		if lines[1].Name != "Snack" || lines[1].Cost != 3.00 {
			t.Errorf("expected (Snack, 3.00) second, got (%s, %v)", lines[1].Name, lines[1].Cost)
		}
	})

	t.Run("preserves_item_order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		resolver := NewLineResolver(db)

		entries := []models.LineEntry{
			models.CustomEntry("Third", 3),
			models.CustomEntry("First", 1),
			models.CustomEntry("Second", 2),
		}
		planID, err := svc.ReplacePlanForDate("2024-01-02", 10, entries)
		testutil.AssertNoError(t, err)

		lines, err := resolver.ResolveLines(planID)
		testutil.AssertNoError(t, err)

		want := []string{"Third", "First", "Second"}
		for i, name := range want {
			if lines[i].Name != name {
				t.Errorf("line %d: expected %q, got %q", i, name, lines[i].Name)
			}
		}
	})

	t.Run("replacement_is_idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		resolver := NewLineResolver(db)

		firstID, err := svc.ReplacePlanForDate("2024-01-01", 15.00, []models.LineEntry{
			models.CustomEntry("Old Lunch", 6.00),
			models.CustomEntry("Old Drink", 2.00),
		})
		testutil.AssertNoError(t, err)

		secondID, err := svc.ReplacePlanForDate("2024-01-01", 25.00, []models.LineEntry{
			models.CustomEntry("New Lunch", 9.00),
		})
		testutil.AssertNoError(t, err)

		var planCount int64
		testutil.AssertNoError(t, db.Model(&models.Plan{}).Where("date = ?", "2024-01-01").Count(&planCount).Error)
		if planCount != 1 {
			t.Errorf("expected exactly one plan for the date, got %d", planCount)
		}

		// No orphaned lines from the first call.
		var orphanCount int64
		testutil.AssertNoError(t, db.Model(&models.LineItem{}).Where("plan_id = ?", firstID).Count(&orphanCount).Error)
		if orphanCount != 0 {
			t.Errorf("expected no lines for the replaced plan, got %d", orphanCount)
		}

		lines, err := resolver.ResolveLines(secondID)
		testutil.AssertNoError(t, err)
		if len(lines) != 1 || lines[0].Name != "New Lunch" {
			t.Errorf("expected only the second call's items, got %+v", lines)
		}
	})

	t.Run("rejects_invalid_entry_and_keeps_existing_plan", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)

		_, err := svc.ReplacePlanForDate("2024-01-01", 10, []models.LineEntry{
			models.CustomEntry("Lunch", 6.00),
		})
		testutil.AssertNoError(t, err)

		var broken models.LineEntry
		_, err = svc.ReplacePlanForDate("2024-01-01", 12, []models.LineEntry{broken})
		testutil.AssertAppError(t, err, "CONSTRAINT_VIOLATION")

		plan, err := svc.FindPlanByDate("2024-01-01")
		testutil.AssertNoError(t, err)
		if plan == nil || plan.TargetCost != 10 {
			t.Errorf("expected the existing plan to survive a rejected write, got %+v", plan)
		}
	})

	t.Run("rejects_negative_target_cost", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)

		_, err := svc.ReplacePlanForDate("2024-01-01", -1, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_empty_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)

		_, err := svc.ReplacePlanForDate("", 10, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("empty_item_set_is_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		resolver := NewLineResolver(db)

		planID, err := svc.ReplacePlanForDate("2024-01-03", 5.00, nil)
		testutil.AssertNoError(t, err)

		lines, err := resolver.ResolveLines(planID)
		testutil.AssertNoError(t, err)
		if len(lines) != 0 {
			t.Errorf("expected no lines, got %d", len(lines))
		}
	})

	t.Run("heals_duplicated_plan_rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)

		// Two rows for one date can only come from a bug; a replace must
		// leave exactly one either way.
		testutil.CreateTestPlan(t, db, "2024-01-01", 10)
		testutil.CreateTestPlan(t, db, "2024-01-01", 11)

		_, err := svc.ReplacePlanForDate("2024-01-01", 12, nil)
		testutil.AssertNoError(t, err)

		var count int64
		testutil.AssertNoError(t, db.Model(&models.Plan{}).Where("date = ?", "2024-01-01").Count(&count).Error)
		if count != 1 {
			t.Errorf("expected one plan after replacement, got %d", count)
		}
	})
}

func TestFindPlanByDate(t *testing.T) {
	t.Run("absent_is_nil_not_error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)

		plan, err := svc.FindPlanByDate("2024-06-15")
		testutil.AssertNoError(t, err)
		if plan != nil {
			t.Errorf("expected nil plan, got %+v", plan)
		}
	})
}

func TestListPlanDates(t *testing.T) {
	t.Run("descending_and_distinct", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)

		for _, date := range []string{"2024-01-02", "2024-03-01", "2024-01-15"} {
			_, err := svc.ReplacePlanForDate(date, 10, nil)
			testutil.AssertNoError(t, err)
		}
		// Replacing an existing date must not add a second entry.
		_, err := svc.ReplacePlanForDate("2024-01-15", 12, nil)
		testutil.AssertNoError(t, err)

		dates, err := svc.ListPlanDates()
		testutil.AssertNoError(t, err)

		want := []string{"2024-03-01", "2024-01-15", "2024-01-02"}
		if len(dates) != len(want) {
			t.Fatalf("expected %d dates, got %d: %v", len(want), len(dates), dates)
		}
		for i, date := range want {
			if dates[i] != date {
				t.Errorf("position %d: expected %s, got %s", i, date, dates[i])
			}
		}
	})

	t.Run("dedupes_rows_duplicated_by_a_bug", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)

		testutil.CreateTestPlan(t, db, "2024-01-01", 10)
		testutil.CreateTestPlan(t, db, "2024-01-01", 11)

		dates, err := svc.ListPlanDates()
		testutil.AssertNoError(t, err)
		if len(dates) != 1 {
			t.Errorf("expected one date, got %v", dates)
		}
	})

	t.Run("reflects_deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)

		id1, err := svc.ReplacePlanForDate("2024-01-01", 10, nil)
		testutil.AssertNoError(t, err)
		_, err = svc.ReplacePlanForDate("2024-01-02", 10, nil)
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeletePlan(id1))

		dates, err := svc.ListPlanDates()
		testutil.AssertNoError(t, err)
		if len(dates) != 1 || dates[0] != "2024-01-02" {
			t.Errorf("expected only 2024-01-02, got %v", dates)
		}
	})
}

func TestDeletePlan(t *testing.T) {
	t.Run("removes_plan_and_lines", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)

		planID, err := svc.ReplacePlanForDate("2024-01-01", 20, []models.LineEntry{
			models.CustomEntry("Lunch", 6.00),
			models.CustomEntry("Drink", 2.00),
		})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeletePlan(planID))

		plan, err := svc.FindPlanByDate("2024-01-01")
		testutil.AssertNoError(t, err)
		if plan != nil {
			t.Errorf("expected plan to be gone, got %+v", plan)
		}

		var lineCount int64
		testutil.AssertNoError(t, db.Model(&models.LineItem{}).Where("plan_id = ?", planID).Count(&lineCount).Error)
		if lineCount != 0 {
			t.Errorf("expected no orphaned lines, got %d", lineCount)
		}
	})

	t.Run("absent_plan_is_a_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)

		testutil.AssertNoError(t, svc.DeletePlan(9999))
	})
}
