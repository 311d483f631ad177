package longevity

import "strings"

// DefaultNutritionScore is returned for foods that match neither table.
const DefaultNutritionScore = 60

type foodScore struct {
	Name  string
	Score int
}

// Tables are slices, not maps: partial matching returns the first hit in
// table order, so iteration order must be stable.
var healthyFoods = []foodScore{
	{"apple", 85}, {"banana", 80}, {"broccoli", 95}, {"salmon", 90},
	{"quinoa", 85}, {"spinach", 95}, {"blueberries", 90}, {"avocado", 85},
	{"sweet potato", 80}, {"greek yogurt", 85}, {"almonds", 85},
	{"chicken breast", 80}, {"oatmeal", 82}, {"kale", 95}, {"berries", 88},
	{"nuts", 85}, {"fish", 88}, {"beans", 80},
}

var unhealthyFoods = []foodScore{
	{"pizza", 35}, {"burger", 30}, {"fries", 25}, {"soda", 15},
	{"candy", 20}, {"chips", 25}, {"ice cream", 35}, {"donuts", 20},
	{"cookies", 30}, {"cake", 25}, {"fast food", 28},
	{"processed meat", 32}, {"sugary drinks", 18},
}

// NutritionScore rates a free-text food name on a 0-100 scale.
//
// Lookup order: exact match (healthy, then unhealthy), then partial match
// in either direction (healthy, then unhealthy), then DefaultNutritionScore.
// The first partial match in table order wins, even when a longer key
// would fit better: "sweet potato fries" scores as sweet potato.
func NutritionScore(foodName string) int {
	food := strings.ToLower(strings.TrimSpace(foodName))
	if food == "" {
		return DefaultNutritionScore
	}

	for _, table := range [][]foodScore{healthyFoods, unhealthyFoods} {
		for _, f := range table {
			if f.Name == food {
				return f.Score
			}
		}
	}

	for _, table := range [][]foodScore{healthyFoods, unhealthyFoods} {
		for _, f := range table {
			if strings.Contains(food, f.Name) || strings.Contains(f.Name, food) {
				return f.Score
			}
		}
	}

	return DefaultNutritionScore
}
