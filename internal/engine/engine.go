package engine

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lazypower/lifeclock/internal/longevity"
	"github.com/lazypower/lifeclock/internal/metrics"
	"github.com/lazypower/lifeclock/internal/store"
)

// DemoUserID owns every entry; the service has a single user.
const DemoUserID int64 = 1

// RecentLimit caps the list endpoints.
const RecentLimit = 10

const (
	defaultQuantity  = "1 serving"
	defaultIntensity = "moderate"
	caloriesPerMin   = 5
)

// Engine turns logged events into entries and folds their impact into the
// ledger. Appending an entry and applying its impact happen under one lock
// so the log and the ledger advance in the same order.
type Engine struct {
	DB      *store.DB
	Ledger  *longevity.Ledger
	Calc    *longevity.Calculator
	Metrics *metrics.Metrics

	log      *zap.Logger
	validate *validator.Validate
	now      func() time.Time
	mu       sync.Mutex
}

// New creates a new Engine. logger may be nil.
func New(db *store.DB, ledger *longevity.Ledger, calc *longevity.Calculator, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		DB:       db,
		Ledger:   ledger,
		Calc:     calc,
		log:      logger.Named("engine"),
		validate: newValidator(),
		now:      time.Now,
	}
}

// SetMetrics configures the Prometheus collectors.
func (e *Engine) SetMetrics(m *metrics.Metrics) {
	e.Metrics = m
	if m != nil {
		m.SetState(e.Ledger.Snapshot())
	}
}

// Bootstrap stores the demo profile. Call once at startup.
func (e *Engine) Bootstrap(ctx context.Context, u store.User) error {
	u.ID = DemoUserID
	if err := e.DB.UpsertUser(ctx, &u); err != nil {
		return fmt.Errorf("bootstrap user: %w", err)
	}
	return nil
}

// NutritionScore rates foodName on a 0-100 scale.
func (e *Engine) NutritionScore(foodName string) int {
	return longevity.NutritionScore(foodName)
}

// LogFood validates req, scores and records the food, and applies its impact.
func (e *Engine) LogFood(ctx context.Context, req FoodRequest) (*store.FoodEntry, error) {
	req.FoodName = strings.TrimSpace(req.FoodName)
	if err := e.check(&req); err != nil {
		e.rejected(longevity.KindFood)
		return nil, err
	}

	var score int
	if req.NutritionScore != nil {
		score = *req.NutritionScore
	} else {
		score = longevity.NutritionScore(req.FoodName)
	}
	quantity := req.Quantity
	if quantity == "" {
		quantity = defaultQuantity
	}

	impact, err := e.Calc.Compute(longevity.KindFood, longevity.Fields{
		FoodName:       req.FoodName,
		NutritionScore: score,
	})
	if err != nil {
		return nil, err
	}
	entry := &store.FoodEntry{
		UserID:          DemoUserID,
		FoodName:        req.FoodName,
		Quantity:        quantity,
		NutritionScore:  score,
		LifeImpactHours: impact.Hours,
		Explanation:     impact.Explanation,
		Timestamp:       e.now(),
	}

	err = e.record(longevity.KindFood, impact, func() error {
		return e.DB.AddFoodEntry(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// LogExercise validates req, records the workout, and applies its impact.
func (e *Engine) LogExercise(ctx context.Context, req ExerciseRequest) (*store.ExerciseEntry, error) {
	req.ExerciseType = strings.TrimSpace(req.ExerciseType)
	req.Intensity = strings.ToLower(strings.TrimSpace(req.Intensity))
	if err := e.check(&req); err != nil {
		e.rejected(longevity.KindExercise)
		return nil, err
	}

	if req.Intensity == "" {
		req.Intensity = defaultIntensity
	}
	calories := int(math.Round(req.Duration * caloriesPerMin))
	if req.CaloriesBurned != nil {
		calories = *req.CaloriesBurned
	}

	impact, err := e.Calc.Compute(longevity.KindExercise, longevity.Fields{
		ExerciseType: req.ExerciseType,
		Duration:     req.Duration,
		Intensity:    req.Intensity,
	})
	if err != nil {
		return nil, err
	}
	entry := &store.ExerciseEntry{
		UserID:          DemoUserID,
		ExerciseType:    req.ExerciseType,
		Duration:        req.Duration,
		Intensity:       req.Intensity,
		CaloriesBurned:  calories,
		LifeImpactHours: impact.Hours,
		Explanation:     impact.Explanation,
		Timestamp:       e.now(),
	}

	err = e.record(longevity.KindExercise, impact, func() error {
		return e.DB.AddExerciseEntry(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// LogSleep validates req, records the night, and applies its impact.
func (e *Engine) LogSleep(ctx context.Context, req SleepRequest) (*store.SleepEntry, error) {
	req.SleepTime = strings.TrimSpace(req.SleepTime)
	req.WakeTime = strings.TrimSpace(req.WakeTime)
	if err := e.check(&req); err != nil {
		e.rejected(longevity.KindSleep)
		return nil, err
	}

	impact, err := e.Calc.Compute(longevity.KindSleep, longevity.Fields{
		Duration: req.Duration,
		Quality:  req.Quality,
	})
	if err != nil {
		return nil, err
	}
	entry := &store.SleepEntry{
		UserID:          DemoUserID,
		Duration:        req.Duration,
		Quality:         req.Quality,
		SleepTime:       req.SleepTime,
		WakeTime:        req.WakeTime,
		LifeImpactHours: impact.Hours,
		Explanation:     impact.Explanation,
		Timestamp:       e.now(),
	}

	err = e.record(longevity.KindSleep, impact, func() error {
		return e.DB.AddSleepEntry(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// record appends via insert and applies impact, both under e.mu.
func (e *Engine) record(kind longevity.Kind, impact longevity.Impact, insert func() error) error {
	if math.IsNaN(impact.Hours) || math.IsInf(impact.Hours, 0) {
		e.rejected(kind)
		return fmt.Errorf("%w: %s impact is not finite", longevity.ErrInvalidInput, kind)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := insert(); err != nil {
		return fmt.Errorf("record %s: %w", kind, err)
	}
	state, err := e.Ledger.Apply(impact.Hours)
	if err != nil {
		return fmt.Errorf("apply %s impact: %w", kind, err)
	}

	if e.Metrics != nil {
		e.Metrics.ObserveEntry(kind, impact.Hours, state)
	}
	e.log.Debug("applied impact",
		zap.String("kind", string(kind)),
		zap.Float64("hours", impact.Hours),
		zap.Float64("life_expectancy", state.CurrentLifeExpectancy),
		zap.Float64("life_extension", state.TotalLifeExtension),
	)
	return nil
}

func (e *Engine) rejected(kind longevity.Kind) {
	if e.Metrics != nil {
		e.Metrics.ObserveRejected(kind)
	}
}

// UserView is the profile plus the ledger state as the API reports it.
// CurrentLifeExpectancy is a decimal string, matching what clients expect.
type UserView struct {
	store.User
	CurrentLifeExpectancy string  `json:"currentLifeExpectancy"`
	TotalLifeExtension    float64 `json:"totalLifeExtension"`
}

func newUserView(u *store.User, s longevity.State) UserView {
	return UserView{
		User:                  *u,
		CurrentLifeExpectancy: strconv.FormatFloat(s.CurrentLifeExpectancy, 'f', -1, 64),
		TotalLifeExtension:    s.TotalLifeExtension,
	}
}

// User returns the profile and the current longevity state.
func (e *Engine) User(ctx context.Context) (UserView, error) {
	u, err := e.user(ctx)
	if err != nil {
		return UserView{}, err
	}
	return newUserView(u, e.Ledger.Snapshot()), nil
}

// OverrideLifeExpectancy sets the estimate directly and adds the extension.
func (e *Engine) OverrideLifeExpectancy(ctx context.Context, req LifeExpectancyRequest) (UserView, error) {
	if err := e.check(&req); err != nil {
		return UserView{}, err
	}
	u, err := e.user(ctx)
	if err != nil {
		return UserView{}, err
	}

	e.mu.Lock()
	state, err := e.Ledger.Override(*req.NewLifeExpectancy, req.ExtensionHours)
	e.mu.Unlock()
	if err != nil {
		return UserView{}, err
	}

	if e.Metrics != nil {
		e.Metrics.SetState(state)
	}
	e.log.Info("life expectancy overridden",
		zap.Float64("life_expectancy", state.CurrentLifeExpectancy),
		zap.Float64("extension_hours", req.ExtensionHours),
	)
	return newUserView(u, state), nil
}

// Countdown returns the time remaining for the demo user.
func (e *Engine) Countdown(ctx context.Context) (longevity.Countdown, error) {
	u, err := e.user(ctx)
	if err != nil {
		return longevity.Countdown{}, err
	}
	return longevity.Remaining(e.Ledger.Snapshot().CurrentLifeExpectancy, u.Age), nil
}

func (e *Engine) user(ctx context.Context) (*store.User, error) {
	u, err := e.DB.GetUser(ctx, DemoUserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %d not bootstrapped", DemoUserID)
	}
	return u, nil
}

// EntryCounts is the number of logged entries per kind.
type EntryCounts struct {
	Food     int `json:"food"`
	Exercise int `json:"exercise"`
	Sleep    int `json:"sleep"`
}

// Counts returns how many entries of each kind the demo user has logged.
func (e *Engine) Counts(ctx context.Context) (EntryCounts, error) {
	food, exercise, sleep, err := e.DB.CountEntries(ctx, DemoUserID)
	if err != nil {
		return EntryCounts{}, err
	}
	return EntryCounts{Food: food, Exercise: exercise, Sleep: sleep}, nil
}

// RecentFood returns the last RecentLimit food entries, oldest first.
func (e *Engine) RecentFood(ctx context.Context) ([]store.FoodEntry, error) {
	return e.DB.RecentFoodEntries(ctx, DemoUserID, RecentLimit)
}

// TodayFood returns the food entries logged on the current UTC day.
func (e *Engine) TodayFood(ctx context.Context) ([]store.FoodEntry, error) {
	now := e.now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return e.DB.FoodEntriesBetween(ctx, DemoUserID, start, start.AddDate(0, 0, 1))
}

// RecentExercise returns the last RecentLimit exercise entries, oldest first.
func (e *Engine) RecentExercise(ctx context.Context) ([]store.ExerciseEntry, error) {
	return e.DB.RecentExerciseEntries(ctx, DemoUserID, RecentLimit)
}

// RecentSleep returns the last RecentLimit sleep entries, oldest first.
func (e *Engine) RecentSleep(ctx context.Context) ([]store.SleepEntry, error) {
	return e.DB.RecentSleepEntries(ctx, DemoUserID, RecentLimit)
}
