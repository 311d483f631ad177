package server

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNutritionScoreEndpoint(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		body string
		want int
	}{
		{`{"foodName":"Broccoli"}`, 95},
		{`{"foodName":"pizza slice"}`, 35},
		{`{"foodName":"tofu"}`, 60},
		{`{"foodName":""}`, 60},
	}
	for _, tt := range tests {
		w := do(t, srv, "POST", "/api/nutrition-score", tt.body)
		require.Equal(t, http.StatusOK, w.Code, tt.body)
		resp := decodeBody[map[string]int](t, w)
		assert.Equal(t, tt.want, resp["score"], tt.body)
	}
}

func TestAddFoodEntry(t *testing.T) {
	srv := testServer(t)

	w := do(t, srv, "POST", "/api/food-entries", `{"foodName":"salmon","quantity":"150g"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeBody[map[string]any](t, w)
	assert.Equal(t, 1.0, resp["id"])
	assert.Equal(t, 90.0, resp["nutritionScore"])
	assert.Equal(t, 2.25, resp["lifeImpactHours"])
	assert.Equal(t, "150g", resp["quantity"])
}

func TestAddFoodEntryRejectsBadInput(t *testing.T) {
	srv := testServer(t)

	bodies := []string{
		`{"foodName":""}`,
		`{"foodName":"apple","nutritionScore":101}`,
		`{"foodName":`,
		`[]`,
	}
	for _, body := range bodies {
		w := do(t, srv, "POST", "/api/food-entries", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		resp := decodeBody[map[string]string](t, w)
		assert.NotEmpty(t, resp["error"], body)
	}

	// Nothing reached the ledger.
	user := decodeBody[map[string]any](t, do(t, srv, "GET", "/api/user", ""))
	assert.Equal(t, 0.0, user["totalLifeExtension"])
}

func TestListFoodEntries(t *testing.T) {
	srv := testServer(t)

	for i := 0; i < 12; i++ {
		w := do(t, srv, "POST", "/api/food-entries", `{"foodName":"food-`+strconv.Itoa(i)+`","nutritionScore":60}`)
		require.Equal(t, http.StatusOK, w.Code, "add %d", i)
	}

	w := do(t, srv, "GET", "/api/food-entries", "")
	require.Equal(t, http.StatusOK, w.Code)
	entries := decodeBody[[]map[string]any](t, w)
	require.Len(t, entries, 10)
	assert.Equal(t, "food-2", entries[0]["foodName"])
	assert.Equal(t, "food-11", entries[9]["foodName"])

	w = do(t, srv, "GET", "/api/food-entries/today", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]map[string]any](t, w), 12)
}

func TestEmptyListsAreArrays(t *testing.T) {
	srv := testServer(t)

	for _, path := range []string{"/api/food-entries", "/api/food-entries/today", "/api/exercise-entries", "/api/sleep-entries"} {
		w := do(t, srv, "GET", path, "")
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()), path)
	}
}

func TestAddExerciseEntry(t *testing.T) {
	srv := testServer(t)

	w := do(t, srv, "POST", "/api/exercise-entries", `{"exerciseType":"running","duration":30}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody[map[string]any](t, w)
	assert.Equal(t, 2.4, resp["lifeImpactHours"])
	assert.Equal(t, "moderate", resp["intensity"])
	assert.Equal(t, 150.0, resp["caloriesBurned"])

	w = do(t, srv, "GET", "/api/exercise-entries", "")
	assert.Len(t, decodeBody[[]map[string]any](t, w), 1)
}

func TestAddExerciseEntryRejectsBadInput(t *testing.T) {
	srv := testServer(t)

	bodies := []string{
		`{"exerciseType":"running","duration":0}`,
		`{"exerciseType":"running","duration":-5}`,
		`{"exerciseType":"","duration":30}`,
		`{"exerciseType":"running","duration":30,"intensity":"extreme"}`,
		`{"exerciseType":"running","duration":"thirty"}`,
	}
	for _, body := range bodies {
		w := do(t, srv, "POST", "/api/exercise-entries", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestAddSleepEntry(t *testing.T) {
	srv := testServer(t)

	w := do(t, srv, "POST", "/api/sleep-entries", `{"duration":8,"quality":9,"sleepTime":"23:00","wakeTime":"07:00"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody[map[string]any](t, w)
	assert.Equal(t, 2.0, resp["lifeImpactHours"])
	assert.Equal(t, "23:00", resp["sleepTime"])

	for _, body := range []string{`{"duration":8,"quality":0}`, `{"duration":8,"quality":11}`, `{"duration":0,"quality":5}`} {
		w := do(t, srv, "POST", "/api/sleep-entries", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	w = do(t, srv, "GET", "/api/sleep-entries", "")
	assert.Len(t, decodeBody[[]map[string]any](t, w), 1)
}

func TestUserReflectsLoggedImpact(t *testing.T) {
	srv := testServer(t)

	do(t, srv, "POST", "/api/exercise-entries", `{"exerciseType":"running","duration":30}`)
	do(t, srv, "POST", "/api/food-entries", `{"foodName":"salmon"}`)

	w := do(t, srv, "GET", "/api/user", "")
	require.Equal(t, http.StatusOK, w.Code)
	user := decodeBody[map[string]any](t, w)

	assert.Equal(t, "demo", user["username"])
	total, _ := user["totalLifeExtension"].(float64)
	assert.InDelta(t, 4.65, total, 1e-9)

	s, ok := user["currentLifeExpectancy"].(string)
	require.True(t, ok, "currentLifeExpectancy = %T, want string", user["currentLifeExpectancy"])
	got, err := strconv.ParseFloat(s, 64)
	require.NoError(t, err)
	assert.InDelta(t, 78.5+total/8760, got, 1e-9)
}

func TestSetLifeExpectancy(t *testing.T) {
	srv := testServer(t)

	w := do(t, srv, "POST", "/api/user/life-expectancy", `{"newLifeExpectancy":80,"extensionHours":10}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user := decodeBody[map[string]any](t, w)
	assert.Equal(t, 10.0, user["totalLifeExtension"])

	for _, body := range []string{`{}`, `{"newLifeExpectancy":-1}`, `{"newLifeExpectancy":0}`} {
		w := do(t, srv, "POST", "/api/user/life-expectancy", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestSetLifeExpectancyRejectsHugeExtension(t *testing.T) {
	srv := testServer(t)

	for i := 0; i < 2; i++ {
		w := do(t, srv, "POST", "/api/user/life-expectancy", `{"newLifeExpectancy":80,"extensionHours":1e308}`)
		assert.Equal(t, http.StatusBadRequest, w.Code, "attempt %d: %s", i, w.Body.String())
	}

	w := do(t, srv, "GET", "/api/user", "")
	require.Equal(t, http.StatusOK, w.Code)
	user := decodeBody[map[string]any](t, w)
	assert.Equal(t, "78.5", user["currentLifeExpectancy"])
	assert.Equal(t, 0.0, user["totalLifeExtension"])

	// The ledger still takes ordinary entries.
	w = do(t, srv, "POST", "/api/exercise-entries", `{"exerciseType":"running","duration":30}`)
	require.Equal(t, http.StatusOK, w.Code)
	user = decodeBody[map[string]any](t, do(t, srv, "GET", "/api/user", ""))
	assert.Equal(t, 2.4, user["totalLifeExtension"])
}

func TestCountdownEndpoint(t *testing.T) {
	srv := testServer(t)

	w := do(t, srv, "GET", "/api/user/countdown", "")
	require.Equal(t, http.StatusOK, w.Code)
	c := decodeBody[map[string]any](t, w)
	assert.Equal(t, 48.0, c["years"])
	assert.Equal(t, 5.0, c["months"])
}
