package longevity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNutritionScoreExactMatches(t *testing.T) {
	for _, f := range healthyFoods {
		assert.Equal(t, f.Score, NutritionScore(f.Name), "healthy %q", f.Name)
	}
	for _, f := range unhealthyFoods {
		assert.Equal(t, f.Score, NutritionScore(f.Name), "unhealthy %q", f.Name)
	}
}

func TestNutritionScoreNormalizes(t *testing.T) {
	assert.Equal(t, 85, NutritionScore("  APPLE "))
	assert.Equal(t, 15, NutritionScore("Soda"))
}

func TestNutritionScorePartialMatch(t *testing.T) {
	tests := []struct {
		food string
		want int
	}{
		{"green apple", 85},
		{"salmon fillet", 90},
		{"mixed berries", 88},
		{"kal", 95},
		{"pizza slice", 35},
		{"sweet potato fries", 80},
		{"chicken breast sandwich", 80},
		{"bag of chips", 25},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NutritionScore(tt.food), tt.food)
	}
}

func TestNutritionScoreDefault(t *testing.T) {
	assert.Equal(t, DefaultNutritionScore, NutritionScore("totally-unknown-food"))
	assert.Equal(t, 60, NutritionScore(""))
	assert.Equal(t, 60, NutritionScore("   "))
}
