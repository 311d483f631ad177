package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "users: single demo profile",
		SQL: `
CREATE TABLE users (
    id             INTEGER PRIMARY KEY,
    username       TEXT NOT NULL UNIQUE,
    age            REAL NOT NULL,
    height         REAL,
    weight         REAL,
    activity_level TEXT,
    gender         TEXT
);
`,
	},
	{
		Version:     2,
		Description: "food_entries: append-only food log",
		SQL: `
CREATE TABLE food_entries (
    id                INTEGER PRIMARY KEY,
    user_id           INTEGER NOT NULL,
    food_name         TEXT NOT NULL,
    quantity          TEXT NOT NULL,
    nutrition_score   INTEGER NOT NULL CHECK (nutrition_score BETWEEN 0 AND 100),
    life_impact_hours REAL NOT NULL,
    explanation       TEXT NOT NULL,
    created_at        INTEGER NOT NULL,

    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE INDEX idx_food_user_created ON food_entries(user_id, created_at);
`,
	},
	{
		Version:     3,
		Description: "exercise_entries: append-only exercise log",
		SQL: `
CREATE TABLE exercise_entries (
    id                INTEGER PRIMARY KEY,
    user_id           INTEGER NOT NULL,
    exercise_type     TEXT NOT NULL,
    duration          REAL NOT NULL CHECK (duration > 0),
    intensity         TEXT NOT NULL,
    calories_burned   INTEGER NOT NULL,
    life_impact_hours REAL NOT NULL,
    explanation       TEXT NOT NULL,
    created_at        INTEGER NOT NULL,

    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE INDEX idx_exercise_user_created ON exercise_entries(user_id, created_at);
`,
	},
	{
		Version:     4,
		Description: "sleep_entries: append-only sleep log",
		SQL: `
CREATE TABLE sleep_entries (
    id                INTEGER PRIMARY KEY,
    user_id           INTEGER NOT NULL,
    duration          REAL NOT NULL CHECK (duration > 0),
    quality           INTEGER NOT NULL CHECK (quality BETWEEN 1 AND 10),
    sleep_time        TEXT,
    wake_time         TEXT,
    life_impact_hours REAL NOT NULL,
    explanation       TEXT NOT NULL,
    created_at        INTEGER NOT NULL,

    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE INDEX idx_sleep_user_created ON sleep_entries(user_id, created_at);
`,
	},
}

const schemaTable = `
CREATE TABLE IF NOT EXISTS schema_versions (
    version     INTEGER PRIMARY KEY,
    description TEXT NOT NULL,
    applied_at  INTEGER NOT NULL DEFAULT (unixepoch() * 1000)
)`

// migrate applies every migration newer than the recorded schema version.
// Each one runs in its own transaction together with its version row.
func (db *DB) migrate() error {
	if _, err := db.Exec(schemaTable); err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	current, err := db.SchemaVersion()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := db.apply(m); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) apply(m migration) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", m.Version, err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec(m.SQL); err != nil {
		return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
	}
	if _, err = tx.Exec(`INSERT INTO schema_versions (version, description) VALUES (?, ?)`, m.Version, m.Description); err != nil {
		return fmt.Errorf("record migration %d: %w", m.Version, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", m.Version, err)
	}
	return nil
}

// SchemaVersion returns the highest applied migration, or 0 on a fresh database.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_versions`).Scan(&version)
	return version, err
}
