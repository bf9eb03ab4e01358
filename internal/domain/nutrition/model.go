package nutrition

// NutritionItem is one food the model identified.
type NutritionItem struct {
	Name     string  `json:"name" jsonschema:"description=Food name"`
	AmountG  float64 `json:"amount_g" jsonschema:"description=Estimated mass in grams"`
	Kcal     float64 `json:"kcal"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbG    float64 `json:"carb_g"`
}

// Totals aggregates the macro fields across all items. The model computes
// it; nothing here checks the arithmetic.
type Totals struct {
	Kcal     float64 `json:"kcal"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbG    float64 `json:"carb_g"`
}

// NutritionReport is the reply shape requested by count-calories and
// analyze-photo.
type NutritionReport struct {
	Items []NutritionItem `json:"items"`
	Total Totals          `json:"total"`
}

// MealItem is one food inside a planned meal.
type MealItem struct {
	Name    string  `json:"name"`
	AmountG float64 `json:"amount_g"`
	Kcal    float64 `json:"kcal"`
}

// Meal groups the items eaten together.
type Meal struct {
	Title string     `json:"title"`
	Items []MealItem `json:"items"`
}

// MealPlan is the reply shape requested by the diet use case.
type MealPlan struct {
	CalorieTarget float64 `json:"calorie_target"`
	Meals         []Meal  `json:"meals"`
}
