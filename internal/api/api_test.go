package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-health-coach/internal/api"
	"ai-health-coach/internal/clock"
	"ai-health-coach/internal/coach"
	"ai-health-coach/internal/database"
	"ai-health-coach/internal/profile"
	"ai-health-coach/internal/stats"
	"ai-health-coach/internal/storage"
)

const (
	testSecret = "test-secret"
	testEmail  = "user@example.com"
)

// testNow is a Thursday; its week runs 2024-06-10 through 2024-06-16.
var testNow = time.Date(2024, 6, 13, 10, 0, 0, 0, time.UTC)

type stubGenerator struct {
	response string
	calls    int
}

func (g *stubGenerator) GenerateContent(_ context.Context, _ string) (string, error) {
	g.calls++
	return g.response, nil
}

func newTestServer(t *testing.T, gen *stubGenerator) (http.Handler, *storage.Store) {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "coach.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := storage.New(db.SQL)
	clk := clock.Fixed{T: testNow}
	log := zerolog.Nop()
	agg := stats.NewAggregator(store, store)

	router := api.NewRouter(api.Deps{
		Chat:      coach.NewChatService(store, store, agg, gen, clk, log),
		MealPlans: coach.NewMealPlanService(store, store, agg, gen, clk, log),
		Exercise:  coach.NewExerciseReviewService(store, store, agg, gen, clk, log),
		Nutrition: coach.NewNutritionReviewService(store, store, agg, gen, clk, log),
		Stats:     agg,
		Profiles:  store,
		Records:   store,
		DB:        db.SQL,
		Clock:     clk,
		JWTSecret: testSecret,
		Log:       log,
	})
	return router, store
}

func seedProfile(t *testing.T, store *storage.Store) {
	t.Helper()
	weight := 72.5
	goal := "lose weight"
	err := store.UpsertHealthProfile(context.Background(), &profile.HealthProfile{
		Email:     testEmail,
		Weight:    &weight,
		Goal:      &goal,
		UpdatedAt: testNow,
	})
	require.NoError(t, err)
}

func bearerToken(t *testing.T, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, testEmail))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestServer(t, &stubGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAuthRequired(t *testing.T) {
	router, _ := newTestServer(t, &stubGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/api/me/ai-chat/history", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/me/ai-chat/history", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChatSendAndHistory(t *testing.T) {
	gen := &stubGenerator{response: "Keep up the steady pace this week."}
	router, store := newTestServer(t, gen)
	seedProfile(t, store)

	rec := doRequest(t, router, http.MethodPost, "/api/me/ai-chat/send", map[string]string{"message": "How am I doing?"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	transcript := decodeBody[coach.ChatTranscript](t, rec)
	require.Len(t, transcript.Messages, 2)
	assert.Equal(t, coach.SenderUser, transcript.Messages[0].Sender)
	assert.Equal(t, "How am I doing?", transcript.Messages[0].Content)
	assert.Equal(t, coach.SenderAI, transcript.Messages[1].Sender)
	assert.Equal(t, gen.response, transcript.Messages[1].Content)
	assert.Equal(t, 1, gen.calls)

	rec = doRequest(t, router, http.MethodGet, "/api/me/ai-chat/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	transcript = decodeBody[coach.ChatTranscript](t, rec)
	assert.Len(t, transcript.Messages, 2)

	// Another day's history is empty.
	rec = doRequest(t, router, http.MethodGet, "/api/me/ai-chat/history?date=2024-06-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	transcript = decodeBody[coach.ChatTranscript](t, rec)
	assert.Empty(t, transcript.Messages)
}

func TestChatSendBlankMessage(t *testing.T) {
	gen := &stubGenerator{response: "unused"}
	router, store := newTestServer(t, gen)
	seedProfile(t, store)

	rec := doRequest(t, router, http.MethodPost, "/api/me/ai-chat/send", map[string]string{"message": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, gen.calls)
}

func TestMealPlanGenerateIdempotent(t *testing.T) {
	gen := &stubGenerator{response: `[{"mealTime":"BREAKFAST","menuDescription":"Oatmeal with berries","calories":320}]`}
	router, store := newTestServer(t, gen)
	seedProfile(t, store)

	rec := doRequest(t, router, http.MethodPost, "/api/me/ai-meal-plans/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decodeBody[coach.MealPlanResult](t, rec)
	assert.True(t, result.Generated)
	require.Len(t, result.Meals, 1)
	assert.Equal(t, "Oatmeal with berries", result.Meals[0].Menu)

	// The second call returns the stored plan without touching the model.
	rec = doRequest(t, router, http.MethodPost, "/api/me/ai-meal-plans/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, gen.calls)

	rec = doRequest(t, router, http.MethodGet, "/api/me/ai-meal-plans/daily", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	result = decodeBody[coach.MealPlanResult](t, rec)
	assert.True(t, result.Generated)

	// The read endpoint never generates for a date with no plan.
	rec = doRequest(t, router, http.MethodGet, "/api/me/ai-meal-plans/daily?date=2024-06-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	result = decodeBody[coach.MealPlanResult](t, rec)
	assert.False(t, result.Generated)
	assert.Empty(t, result.Meals)
	assert.Equal(t, 1, gen.calls)
}

func TestWorkoutEvaluation(t *testing.T) {
	gen := &stubGenerator{response: `{"summary":"Good consistency.","recommendation":"Add one rest day."}`}
	router, store := newTestServer(t, gen)
	seedProfile(t, store)

	rec := doRequest(t, router, http.MethodPost, "/api/me/ai-workout-evaluations/run", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decodeBody[coach.ExerciseReviewResult](t, rec)
	require.NotNil(t, result.Summary)
	assert.Equal(t, "Good consistency.", *result.Summary)
	assert.Equal(t, "2024-06-10", result.WeekStart.Format(time.DateOnly))

	rec = doRequest(t, router, http.MethodGet, "/api/me/ai-workout-evaluations/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	result = decodeBody[coach.ExerciseReviewResult](t, rec)
	require.NotNil(t, result.Summary)
	assert.Equal(t, "Good consistency.", *result.Summary)
	assert.Equal(t, 1, gen.calls)

	// A week with no stored review reads back empty, without generating.
	rec = doRequest(t, router, http.MethodGet, "/api/me/ai-workout-evaluations/summary?date=2024-05-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	result = decodeBody[coach.ExerciseReviewResult](t, rec)
	assert.Nil(t, result.Summary)
	assert.Equal(t, 1, gen.calls)
}

func TestNutritionEvaluation(t *testing.T) {
	gen := &stubGenerator{response: `{"summary":"Protein trending up.","proteinStatus":"LOW"}`}
	router, store := newTestServer(t, gen)
	seedProfile(t, store)

	rec := doRequest(t, router, http.MethodPost, "/api/me/ai-nutrition-evaluations/run", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decodeBody[coach.NutritionReviewResult](t, rec)
	require.NotNil(t, result.Summary)
	assert.Equal(t, "Protein trending up.", *result.Summary)
	require.NotNil(t, result.ProteinStatus)
	assert.Equal(t, "LOW", *result.ProteinStatus)
	assert.Nil(t, result.FatStatus)
}

func TestWeeklyStats(t *testing.T) {
	router, store := newTestServer(t, &stubGenerator{})
	seedProfile(t, store)

	rec := doRequest(t, router, http.MethodPost, "/api/me/diets", map[string]any{
		"recordDate": "2024-06-11",
		"mealType":   "LUNCH",
		"items": []map[string]any{
			{"name": "rice", "carbohydrate": 45.25, "calories": 210.5},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/api/me/stats/weekly", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	weekly := decodeBody[stats.WeeklyStats](t, rec)
	require.Len(t, weekly.Diet, 7)
	require.Len(t, weekly.Exercise, 7)
	assert.Equal(t, "Tuesday", weekly.Diet[1].Weekday)
	assert.Equal(t, 45.3, weekly.Diet[1].Carbohydrate)
	assert.Equal(t, 210.5, weekly.Diet[1].Calories)
	assert.Zero(t, weekly.Diet[0].Calories)
}

func TestProfileRoundTrip(t *testing.T) {
	router, _ := newTestServer(t, &stubGenerator{})

	rec := doRequest(t, router, http.MethodGet, "/api/me/profile/health", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodPut, "/api/me/profile/health", map[string]any{
		"height":      175.0,
		"weight":      72.5,
		"hasDiabetes": true,
		"goal":        "lose weight",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/api/me/profile/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	p := decodeBody[profile.HealthProfile](t, rec)
	require.NotNil(t, p.Height)
	assert.Equal(t, 175.0, *p.Height)
	assert.True(t, p.HasDiabetes)
}

func TestExerciseRecords(t *testing.T) {
	router, _ := newTestServer(t, &stubGenerator{})

	rec := doRequest(t, router, http.MethodPost, "/api/me/exercises", map[string]any{
		"name":            "running",
		"durationMinutes": 30.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/api/me/exercises", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 1, out.Count)

	// Name is required.
	rec = doRequest(t, router, http.MethodPost, "/api/me/exercises", map[string]any{"durationMinutes": 30.0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvalidDateParam(t *testing.T) {
	router, _ := newTestServer(t, &stubGenerator{})

	rec := doRequest(t, router, http.MethodGet, "/api/me/stats/weekly?date=13-06-2024", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
