package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"
)

// FoodEntry is one logged meal or snack.
type FoodEntry struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	FoodName        string    `json:"foodName"`
	Quantity        string    `json:"quantity"`
	NutritionScore  int       `json:"nutritionScore"`
	LifeImpactHours float64   `json:"lifeImpactHours"`
	Explanation     string    `json:"explanation"`
	Timestamp       time.Time `json:"timestamp"`
}

// ExerciseEntry is one logged workout. Duration is in minutes.
type ExerciseEntry struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	ExerciseType    string    `json:"exerciseType"`
	Duration        float64   `json:"duration"`
	Intensity       string    `json:"intensity"`
	CaloriesBurned  int       `json:"caloriesBurned"`
	LifeImpactHours float64   `json:"lifeImpactHours"`
	Explanation     string    `json:"explanation"`
	Timestamp       time.Time `json:"timestamp"`
}

// SleepEntry is one logged night. Duration is in hours.
type SleepEntry struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	Duration        float64   `json:"duration"`
	Quality         int       `json:"quality"`
	SleepTime       string    `json:"sleepTime,omitempty"`
	WakeTime        string    `json:"wakeTime,omitempty"`
	LifeImpactHours float64   `json:"lifeImpactHours"`
	Explanation     string    `json:"explanation"`
	Timestamp       time.Time `json:"timestamp"`
}

// AddFoodEntry appends e and fills in its ID. Timestamp defaults to now.
func (db *DB) AddFoodEntry(ctx context.Context, e *FoodEntry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	e.Timestamp = e.Timestamp.UTC().Truncate(time.Millisecond)
	result, err := db.ExecContext(ctx, `
		INSERT INTO food_entries (user_id, food_name, quantity, nutrition_score, life_impact_hours, explanation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.UserID, e.FoodName, e.Quantity, e.NutritionScore, e.LifeImpactHours, e.Explanation, e.Timestamp.UnixMilli())
	if err != nil {
		return fmt.Errorf("add food entry: %w", err)
	}
	e.ID, _ = result.LastInsertId()
	return nil
}

// AddExerciseEntry appends e and fills in its ID. Timestamp defaults to now.
func (db *DB) AddExerciseEntry(ctx context.Context, e *ExerciseEntry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	e.Timestamp = e.Timestamp.UTC().Truncate(time.Millisecond)
	result, err := db.ExecContext(ctx, `
		INSERT INTO exercise_entries (user_id, exercise_type, duration, intensity, calories_burned, life_impact_hours, explanation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.UserID, e.ExerciseType, e.Duration, e.Intensity, e.CaloriesBurned, e.LifeImpactHours, e.Explanation, e.Timestamp.UnixMilli())
	if err != nil {
		return fmt.Errorf("add exercise entry: %w", err)
	}
	e.ID, _ = result.LastInsertId()
	return nil
}

// AddSleepEntry appends e and fills in its ID. Timestamp defaults to now.
func (db *DB) AddSleepEntry(ctx context.Context, e *SleepEntry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	e.Timestamp = e.Timestamp.UTC().Truncate(time.Millisecond)
	result, err := db.ExecContext(ctx, `
		INSERT INTO sleep_entries (user_id, duration, quality, sleep_time, wake_time, life_impact_hours, explanation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.UserID, e.Duration, e.Quality, e.SleepTime, e.WakeTime, e.LifeImpactHours, e.Explanation, e.Timestamp.UnixMilli())
	if err != nil {
		return fmt.Errorf("add sleep entry: %w", err)
	}
	e.ID, _ = result.LastInsertId()
	return nil
}

// RecentFoodEntries returns the last limit food entries for userID, oldest first.
func (db *DB) RecentFoodEntries(ctx context.Context, userID int64, limit int) ([]FoodEntry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, user_id, food_name, quantity, nutrition_score, life_impact_hours, explanation, created_at
		FROM food_entries WHERE user_id = ? ORDER BY id DESC LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent food entries: %w", err)
	}
	entries, err := scanFoodEntries(rows)
	if err != nil {
		return nil, err
	}
	slices.Reverse(entries)
	return entries, nil
}

// FoodEntriesBetween returns food entries for userID created in [from, to), oldest first.
func (db *DB) FoodEntriesBetween(ctx context.Context, userID int64, from, to time.Time) ([]FoodEntry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, user_id, food_name, quantity, nutrition_score, life_impact_hours, explanation, created_at
		FROM food_entries WHERE user_id = ? AND created_at >= ? AND created_at < ? ORDER BY id
	`, userID, from.UnixMilli(), to.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("food entries between: %w", err)
	}
	return scanFoodEntries(rows)
}

func scanFoodEntries(rows *sql.Rows) ([]FoodEntry, error) {
	defer rows.Close()

	entries := []FoodEntry{}
	for rows.Next() {
		var e FoodEntry
		var created int64
		if err := rows.Scan(&e.ID, &e.UserID, &e.FoodName, &e.Quantity, &e.NutritionScore, &e.LifeImpactHours, &e.Explanation, &created); err != nil {
			return nil, fmt.Errorf("scan food entry: %w", err)
		}
		e.Timestamp = time.UnixMilli(created).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecentExerciseEntries returns the last limit exercise entries for userID, oldest first.
func (db *DB) RecentExerciseEntries(ctx context.Context, userID int64, limit int) ([]ExerciseEntry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, user_id, exercise_type, duration, intensity, calories_burned, life_impact_hours, explanation, created_at
		FROM exercise_entries WHERE user_id = ? ORDER BY id DESC LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent exercise entries: %w", err)
	}
	defer rows.Close()

	entries := []ExerciseEntry{}
	for rows.Next() {
		var e ExerciseEntry
		var created int64
		if err := rows.Scan(&e.ID, &e.UserID, &e.ExerciseType, &e.Duration, &e.Intensity, &e.CaloriesBurned, &e.LifeImpactHours, &e.Explanation, &created); err != nil {
			return nil, fmt.Errorf("scan exercise entry: %w", err)
		}
		e.Timestamp = time.UnixMilli(created).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	slices.Reverse(entries)
	return entries, nil
}

// RecentSleepEntries returns the last limit sleep entries for userID, oldest first.
func (db *DB) RecentSleepEntries(ctx context.Context, userID int64, limit int) ([]SleepEntry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, user_id, duration, quality, COALESCE(sleep_time, ''), COALESCE(wake_time, ''), life_impact_hours, explanation, created_at
		FROM sleep_entries WHERE user_id = ? ORDER BY id DESC LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent sleep entries: %w", err)
	}
	defer rows.Close()

	entries := []SleepEntry{}
	for rows.Next() {
		var e SleepEntry
		var created int64
		if err := rows.Scan(&e.ID, &e.UserID, &e.Duration, &e.Quality, &e.SleepTime, &e.WakeTime, &e.LifeImpactHours, &e.Explanation, &created); err != nil {
			return nil, fmt.Errorf("scan sleep entry: %w", err)
		}
		e.Timestamp = time.UnixMilli(created).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	slices.Reverse(entries)
	return entries, nil
}

// CountEntries returns how many entries of each kind exist for userID.
func (db *DB) CountEntries(ctx context.Context, userID int64) (food, exercise, sleep int, err error) {
	err = db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM food_entries WHERE user_id = ?),
			(SELECT COUNT(*) FROM exercise_entries WHERE user_id = ?),
			(SELECT COUNT(*) FROM sleep_entries WHERE user_id = ?)
	`, userID, userID, userID).Scan(&food, &exercise, &sleep)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("count entries: %w", err)
	}
	return food, exercise, sleep, nil
}
