//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chihironakai0517/workout-tracker/internal/auth"
	"github.com/chihironakai0517/workout-tracker/internal/datasync"
	"github.com/chihironakai0517/workout-tracker/internal/health"
	"github.com/chihironakai0517/workout-tracker/internal/misc"
	"github.com/chihironakai0517/workout-tracker/internal/summary"
	"github.com/chihironakai0517/workout-tracker/internal/workouts"
)

func (s *IntegrationTestSuite) doLogin(ctx context.Context) string {
	t := s.T()
	body, err := json.Marshal(auth.Credentials{Username: testUsername, Password: testPassword})
	require.NoError(t, err)

	resp := s.doRequest(ctx, "POST", "/a/login", "", bytes.NewReader(body))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp misc.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	require.NotEmpty(t, loginResp.Token)
	return loginResp.Token
}

func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path, token string, body io.Reader) *http.Response {
	t := s.T()
	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, body)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	return resp
}

func (s *IntegrationTestSuite) doJSON(ctx context.Context, method, path, token string, in any, expectedStatus int, out any) {
	t := s.T()
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		require.NoError(t, err)
		body = bytes.NewReader(payload)
	}

	resp := s.doRequest(ctx, method, path, token, body)
	defer resp.Body.Close()
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, resp.StatusCode, string(respBytes))

	if out != nil {
		require.NoError(t, json.Unmarshal(respBytes, out))
	}
}

func (s *IntegrationTestSuite) storedDocument(key string) []byte {
	var value []byte
	err := s.DB.QueryRow(`SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	require.NoError(s.T(), err)
	return value
}

func (s *IntegrationTestSuite) TestLogin() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for caseName, tc := range map[string]struct {
		creds              auth.Credentials
		expectedStatusCode int
	}{
		"good creds":     {creds: auth.Credentials{Username: testUsername, Password: testPassword}, expectedStatusCode: http.StatusOK},
		"wrong password": {creds: auth.Credentials{Username: testUsername, Password: "nope"}, expectedStatusCode: http.StatusBadRequest},
		"wrong username": {creds: auth.Credentials{Username: "nobody", Password: testPassword}, expectedStatusCode: http.StatusBadRequest},
	} {
		body, err := json.Marshal(tc.creds)
		require.NoError(t, err)
		resp := s.doRequest(ctx, "POST", "/a/login", "", bytes.NewReader(body))
		assert.Equal(t, tc.expectedStatusCode, resp.StatusCode, caseName)
		_ = resp.Body.Close()
	}

	token := s.doLogin(ctx)
	s.doJSON(ctx, "GET", "/health/goals", token, nil, http.StatusOK, nil)

	resp := s.doRequest(ctx, "GET", "/a/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = s.doRequest(ctx, "GET", "/health/goals", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func (s *IntegrationTestSuite) TestWorkoutsAndSummary() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	token := s.doLogin(ctx)

	workout := workouts.Workout{
		Date: "2024-01-16",
		MuscleGroups: []workouts.MuscleGroup{
			{ID: "chest", Name: "Chest", Exercises: []workouts.Exercise{
				{Type: workouts.ExerciseTypeWeight, Name: "Bench Press", Weight: 80, Reps: 8, Sets: 3},
			}},
			{ID: "cardio", Name: "Cardio", Exercises: []workouts.Exercise{
				{Type: workouts.ExerciseTypeCardio, Name: "Running", Duration: 30, Distance: 5},
			}},
		},
	}

	var saved workouts.Workout
	s.doJSON(ctx, "POST", "/workouts", token, workout, http.StatusCreated, &saved)
	require.NotEmpty(t, saved.ID)
	assert.Greater(t, saved.TotalCalories, 0.0)

	var last workouts.Workout
	s.doJSON(ctx, "GET", "/workouts/last", token, nil, http.StatusOK, &last)
	assert.Equal(t, saved.ID, last.ID)

	// stored as one jsonb document
	var stored []workouts.Workout
	require.NoError(t, json.Unmarshal(s.storedDocument(workouts.WorkoutHistoryKey), &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, saved.ID, stored[0].ID)

	var weekly summary.WeeklySummary
	s.doJSON(ctx, "GET", "/summary/weekly/2024-01-15", token, nil, http.StatusOK, &weekly)
	assert.Equal(t, "2024-01-21", weekly.EndDate)
	assert.Equal(t, 1, weekly.TotalWorkouts)

	var deleted workouts.DeleteWorkoutResponse
	s.doJSON(ctx, "DELETE", "/workouts/"+saved.ID, token, nil, http.StatusOK, &deleted)
	assert.Equal(t, saved.ID, deleted.DeletedID)
	s.doJSON(ctx, "GET", "/workouts/"+saved.ID, token, nil, http.StatusNotFound, nil)
}

func (s *IntegrationTestSuite) TestNutrition() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	token := s.doLogin(ctx)

	date := "2024-02-10"
	meal := health.Meal{
		MealType: health.MealLunch,
		Name:     gofakeit.Lunch(),
		Calories: 650,
		Protein:  40,
		Carbs:    70,
		Fat:      20,
	}

	var day health.DailyNutrition
	s.doJSON(ctx, "POST", fmt.Sprintf("/health/nutrition/%s/meals", date), token, meal, http.StatusCreated, &day)
	require.Len(t, day.Meals, 1)
	assert.Equal(t, 650.0, day.TotalCalories)

	s.doJSON(ctx, "DELETE", fmt.Sprintf("/health/nutrition/%s/meals/%s", date, day.Meals[0].ID), token, nil, http.StatusOK, &day)
	assert.Empty(t, day.Meals)
	assert.Equal(t, 0.0, day.TotalCalories)
}

func (s *IntegrationTestSuite) TestExportImportIsIdempotent() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	token := s.doLogin(ctx)

	workout := workouts.Workout{
		Date: "2024-03-01",
		MuscleGroups: []workouts.MuscleGroup{
			{ID: "legs", Name: "Legs", Exercises: []workouts.Exercise{
				{Type: workouts.ExerciseTypeWeight, Name: "Squat", Weight: 100, Reps: 5, Sets: 5},
			}},
		},
	}
	s.doJSON(ctx, "POST", "/workouts", token, workout, http.StatusCreated, nil)

	resp := s.doRequest(ctx, "GET", "/sync/export", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Disposition"), "attachment;"))
	exported, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	var before datasync.DataStats
	s.doJSON(ctx, "GET", "/sync/stats", token, nil, http.StatusOK, &before)

	resp = s.doRequest(ctx, "POST", "/sync/import", token, bytes.NewReader(exported))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result datasync.ImportResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	_ = resp.Body.Close()
	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ImportedCount)

	var after datasync.DataStats
	s.doJSON(ctx, "GET", "/sync/stats", token, nil, http.StatusOK, &after)
	assert.Equal(t, before.TotalWorkouts, after.TotalWorkouts)

	var code datasync.SyncCodeResponse
	s.doJSON(ctx, "GET", "/sync/code", token, nil, http.StatusOK, &code)
	assert.NotEmpty(t, code.Code)
}
