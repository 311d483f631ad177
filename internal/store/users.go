package store

import (
	"context"
	"database/sql"
	"fmt"
)

// User is the demo profile the event logs belong to.
type User struct {
	ID            int64   `json:"id"`
	Username      string  `json:"username"`
	Age           float64 `json:"age"`
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
	ActivityLevel string  `json:"activityLevel"`
	Gender        string  `json:"gender"`
}

// UpsertUser inserts u or replaces the profile with the same id.
func (db *DB) UpsertUser(ctx context.Context, u *User) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO users (id, username, age, height, weight, activity_level, gender)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			age = excluded.age,
			height = excluded.height,
			weight = excluded.weight,
			activity_level = excluded.activity_level,
			gender = excluded.gender
	`, u.ID, u.Username, u.Age, u.Height, u.Weight, u.ActivityLevel, u.Gender)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// GetUser returns the profile with id, or nil if none exists.
func (db *DB) GetUser(ctx context.Context, id int64) (*User, error) {
	var u User
	err := db.QueryRowContext(ctx, `
		SELECT id, username, age, COALESCE(height, 0), COALESCE(weight, 0),
		       COALESCE(activity_level, ''), COALESCE(gender, '')
		FROM users WHERE id = ?
	`, id).Scan(&u.ID, &u.Username, &u.Age, &u.Height, &u.Weight, &u.ActivityLevel, &u.Gender)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
