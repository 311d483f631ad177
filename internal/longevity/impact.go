package longevity

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
)

// Kind identifies which calculator handles an event.
type Kind string

const (
	KindFood     Kind = "food"
	KindExercise Kind = "exercise"
	KindSleep    Kind = "sleep"
)

// Impact is the modeled effect of one logged event.
type Impact struct {
	Hours       float64 `json:"hours"`
	Explanation string  `json:"explanation"`
}

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// DefaultExerciseRate is the per-minute yield for unrecognized exercise types.
const DefaultExerciseRate = 0.06

var exerciseRates = map[string]float64{
	"running":       0.08,
	"cycling":       0.06,
	"swimming":      0.09,
	"walking":       0.04,
	"weightlifting": 0.07,
	"yoga":          0.05,
	"hiit":          0.10,
	"cardio":        0.07,
	"strength":      0.07,
}

var intensityFactors = map[string]float64{
	"low":      0.7,
	"moderate": 1.0,
	"high":     1.3,
}

// Calculator computes life impacts. Food and sleep impacts draw from the
// injected Source; exercise impacts are deterministic.
type Calculator struct {
	mu  sync.Mutex
	src Source
}

// NewCalculator creates a Calculator drawing from src.
func NewCalculator(src Source) *Calculator {
	return &Calculator{src: src}
}

// NewSeededCalculator creates a Calculator with a PCG generator seeded by seed.
func NewSeededCalculator(seed uint64) *Calculator {
	return NewCalculator(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// uniform draws from [lo, hi).
func (c *Calculator) uniform(lo, hi float64) float64 {
	c.mu.Lock()
	v := c.src.Float64()
	c.mu.Unlock()
	return lo + v*(hi-lo)
}

// FoodImpact bands the nutrition score into four ranges.
func (c *Calculator) FoodImpact(foodName string, score int) Impact {
	var hours float64
	var explanation string

	switch {
	case score >= 85:
		hours = c.uniform(1.5, 3.0)
		explanation = fmt.Sprintf("%s is highly nutritious and supports longevity through powerful antioxidants and essential nutrients.", foodName)
	case score >= 70:
		hours = c.uniform(0.5, 1.5)
		explanation = fmt.Sprintf("%s provides good nutritional value with beneficial compounds for health.", foodName)
	case score >= 50:
		hours = c.uniform(0.0, 0.3)
		explanation = fmt.Sprintf("%s provides moderate nutritional value with some beneficial compounds.", foodName)
	default:
		hours = -c.uniform(0.5, 2.0)
		explanation = fmt.Sprintf("%s is highly processed and may contribute to inflammation and metabolic stress.", foodName)
	}

	return Impact{Hours: Round2(hours), Explanation: explanation}
}

// ExerciseImpact is duration × base rate × intensity factor.
func (c *Calculator) ExerciseImpact(exerciseType string, durationMinutes float64, intensity string) Impact {
	rate, ok := exerciseRates[strings.ToLower(exerciseType)]
	if !ok {
		rate = DefaultExerciseRate
	}
	factor, ok := intensityFactors[strings.ToLower(intensity)]
	if !ok {
		factor = 1.0
	}

	return Impact{
		Hours: Round2(durationMinutes * rate * factor),
		Explanation: fmt.Sprintf("%s for %s minutes at %s intensity improves cardiovascular health and cellular repair mechanisms.",
			exerciseType, formatNumber(durationMinutes), intensity),
	}
}

// SleepImpact bands on duration (hours) and quality (1-10).
func (c *Calculator) SleepImpact(durationHours float64, quality int) Impact {
	switch {
	case durationHours >= 7 && durationHours <= 9 && quality >= 8:
		return Impact{
			Hours:       Round2(c.uniform(1.5, 2.5)),
			Explanation: "Optimal sleep duration and quality supports cellular repair and hormone regulation.",
		}
	case durationHours >= 6 && durationHours <= 10 && quality >= 6:
		return Impact{
			Hours:       Round2(c.uniform(0.2, 1.0)),
			Explanation: "Good sleep supports recovery, though there's room for improvement.",
		}
	default:
		return Impact{
			Hours:       Round2(-c.uniform(0.3, 1.5)),
			Explanation: "Poor sleep quality or duration increases stress hormones and inflammation.",
		}
	}
}

// Fields carries the inputs of any event kind. Only the fields relevant to
// the kind are read.
type Fields struct {
	FoodName       string
	NutritionScore int

	ExerciseType string
	Duration     float64 // minutes for exercise, hours for sleep
	Intensity    string

	Quality int
}

// Compute dispatches to the calculator for kind.
func (c *Calculator) Compute(kind Kind, f Fields) (Impact, error) {
	switch kind {
	case KindFood:
		return c.FoodImpact(f.FoodName, f.NutritionScore), nil
	case KindExercise:
		return c.ExerciseImpact(f.ExerciseType, f.Duration, f.Intensity), nil
	case KindSleep:
		return c.SleepImpact(f.Duration, f.Quality), nil
	default:
		return Impact{}, fmt.Errorf("%w: unknown event kind %q", ErrInvalidInput, kind)
	}
}

// Round2 rounds to two decimals, halves toward positive infinity.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
