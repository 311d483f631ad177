package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, db *DB) *User {
	t.Helper()
	u := &User{ID: 1, Username: "demo", Age: 30, Height: 170, Weight: 70, ActivityLevel: "moderate", Gender: "other"}
	require.NoError(t, db.UpsertUser(context.Background(), u))
	return u
}

func TestUpsertAndGetUser(t *testing.T) {
	db := testDB(t)
	want := seedUser(t, db)

	got, err := db.GetUser(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *want, *got)

	// Upsert replaces in place
	want.Age = 31
	require.NoError(t, db.UpsertUser(context.Background(), want))
	got, err = db.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 31.0, got.Age)
}

func TestGetUserMissing(t *testing.T) {
	db := testDB(t)

	got, err := db.GetUser(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}
