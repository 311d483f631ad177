package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenMemory(t *testing.T) {
	db := testDB(t)
	assert.Equal(t, ":memory:", db.Path)
}

func TestSchemaVersion(t *testing.T) {
	db := testDB(t)

	v, err := db.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)
}

func TestTablesExist(t *testing.T) {
	db := testDB(t)

	tables := []string{"schema_versions", "users", "food_entries", "exercise_entries", "sleep_entries"}
	for _, table := range tables {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		assert.NoError(t, err, "table %q", table)
	}
}

func TestSleepEntryConstraints(t *testing.T) {
	db := testDB(t)
	seedUser(t, db)

	_, err := db.Exec(`
		INSERT INTO sleep_entries (user_id, duration, quality, life_impact_hours, explanation, created_at)
		VALUES (1, 8, 9, 2.0, 'ok', 1000)
	`)
	require.NoError(t, err)

	// Quality out of range
	_, err = db.Exec(`
		INSERT INTO sleep_entries (user_id, duration, quality, life_impact_hours, explanation, created_at)
		VALUES (1, 8, 11, 2.0, 'bad', 1000)
	`)
	assert.Error(t, err, "quality 11")

	// Unknown user
	_, err = db.Exec(`
		INSERT INTO sleep_entries (user_id, duration, quality, life_impact_hours, explanation, created_at)
		VALUES (99, 8, 9, 2.0, 'orphan', 1000)
	`)
	assert.Error(t, err, "foreign key")
}

func TestMigrationsIdempotent(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.migrate())

	v, err := db.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)

	var rows int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_versions").Scan(&rows))
	assert.Equal(t, len(migrations), rows)
}

func TestMigrateRollsBackFailedStep(t *testing.T) {
	db := testDB(t)

	bad := migration{Version: len(migrations) + 1, Description: "broken", SQL: `CREATE TABLE extra (id INTEGER); NOT SQL`}
	require.Error(t, db.apply(bad))

	v, err := db.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE name = 'extra'").Scan(&n))
	assert.Zero(t, n)
}

func TestForeignKeysEnabled(t *testing.T) {
	db := testDB(t)

	var fk int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}
