package engine

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/lazypower/lifeclock/internal/longevity"
)

// FoodRequest logs a food. A nil NutritionScore is scored from FoodName.
type FoodRequest struct {
	FoodName       string `json:"foodName" validate:"required,max=200"`
	Quantity       string `json:"quantity" validate:"max=100"`
	NutritionScore *int   `json:"nutritionScore" validate:"omitempty,gte=0,lte=100"`
}

// ExerciseRequest logs a workout. Duration is in minutes.
type ExerciseRequest struct {
	ExerciseType   string  `json:"exerciseType" validate:"required,max=100"`
	Duration       float64 `json:"duration" validate:"gt=0,lte=1440"`
	Intensity      string  `json:"intensity" validate:"omitempty,oneof=low moderate high"`
	CaloriesBurned *int    `json:"caloriesBurned" validate:"omitempty,gte=0"`
}

// SleepRequest logs a night of sleep. Duration is in hours.
type SleepRequest struct {
	Duration  float64 `json:"duration" validate:"gt=0,lte=24"`
	Quality   int     `json:"quality" validate:"gte=1,lte=10"`
	SleepTime string  `json:"sleepTime" validate:"max=64"`
	WakeTime  string  `json:"wakeTime" validate:"max=64"`
}

// LifeExpectancyRequest overrides the running estimate.
type LifeExpectancyRequest struct {
	NewLifeExpectancy *float64 `json:"newLifeExpectancy" validate:"required,gt=0,lte=200"`
	ExtensionHours    float64  `json:"extensionHours" validate:"gte=-876000,lte=876000"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so errors match what the client sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check validates req and wraps any failure in longevity.ErrInvalidInput.
func (e *Engine) check(req any) error {
	err := e.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", longevity.ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Field() + " failed " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("%w: %s", longevity.ErrInvalidInput, strings.Join(msgs, "; "))
}
