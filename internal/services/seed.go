package services

import "mensa/internal/models"

// seedCatalog returns the static reference data written on first
// initialization. Returned fresh each call so GORM id assignment never
// mutates shared state.
func seedCatalog() []models.CatalogItem {
	category := func(s string) *string { return &s }
	calories := func(n int) *int { return &n }

	return []models.CatalogItem{
		{Name: "Soup of the Day", Cost: 5.00, Category: category("starters"), Calories: calories(220)},
		{Name: "Garden Salad", Cost: 4.50, Category: category("starters"), Calories: calories(180)},
		{Name: "Grilled Chicken Plate", Cost: 9.50, Category: category("mains"), Calories: calories(640)},
		{Name: "Veggie Stir-Fry", Cost: 8.00, Category: category("mains"), Calories: calories(520)},
		{Name: "Pasta Bolognese", Cost: 8.50, Category: category("mains"), Calories: calories(710)},
		{Name: "Falafel Wrap", Cost: 7.00, Category: category("mains"), Calories: calories(580)},
		{Name: "Fish and Chips", Cost: 10.00, Category: category("mains"), Calories: calories(850)},
		{Name: "Fruit Cup", Cost: 3.00, Category: category("sides"), Calories: calories(120)},
		{Name: "Yogurt Parfait", Cost: 3.50, Category: category("sides"), Calories: calories(240)},
		{Name: "Chocolate Brownie", Cost: 2.50, Category: category("desserts"), Calories: calories(380)},
		{Name: "Coffee", Cost: 2.00, Category: category("drinks"), Calories: calories(5)},
		{Name: "Fresh Juice", Cost: 3.50, Category: category("drinks"), Calories: calories(160)},
	}
}
