// Package api is the HTTP transport over the coaching services.
package api

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"ai-health-coach/internal/clock"
	"ai-health-coach/internal/coach"
	"ai-health-coach/internal/profile"
	"ai-health-coach/internal/records"
	"ai-health-coach/internal/stats"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Chat      *coach.ChatService
	MealPlans *coach.MealPlanService
	Exercise  *coach.ExerciseReviewService
	Nutrition *coach.NutritionReviewService
	Stats     *stats.Aggregator
	Profiles  profile.Store
	Records   records.Store
	DB        *sql.DB
	Clock     clock.Clock
	JWTSecret string
	Log       zerolog.Logger
}

// NewRouter creates the HTTP router. Everything under /api/me requires a
// valid bearer token; /health does not.
func NewRouter(d Deps) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestIDMiddleware)
	router.Use(recoveryMiddleware(d.Log))

	healthHandler := NewHealthHandler(d.DB, d.Log)
	router.HandleFunc("/health", healthHandler.Check).Methods(http.MethodGet)

	chatHandler := NewChatHandler(d.Chat, d.Clock, d.Log)
	mealPlanHandler := NewMealPlanHandler(d.MealPlans, d.Clock, d.Log)
	reviewHandler := NewReviewHandler(d.Exercise, d.Nutrition, d.Clock, d.Log)
	statsHandler := NewStatsHandler(d.Stats, d.Clock, d.Log)
	profileHandler := NewProfileHandler(d.Profiles, d.Clock, d.Log)
	recordHandler := NewRecordHandler(d.Records, d.Clock, d.Log)

	me := router.PathPrefix("/api/me").Subrouter()
	me.Use(authMiddleware(d.JWTSecret, d.Log))

	me.HandleFunc("/ai-chat/send", chatHandler.Send).Methods(http.MethodPost)
	me.HandleFunc("/ai-chat/history", chatHandler.History).Methods(http.MethodGet)

	me.HandleFunc("/ai-meal-plans/generate", mealPlanHandler.Generate).Methods(http.MethodPost)
	me.HandleFunc("/ai-meal-plans/daily", mealPlanHandler.Daily).Methods(http.MethodGet)

	me.HandleFunc("/ai-workout-evaluations/run", reviewHandler.RunWorkout).Methods(http.MethodPost)
	me.HandleFunc("/ai-workout-evaluations/summary", reviewHandler.WorkoutSummary).Methods(http.MethodGet)

	me.HandleFunc("/ai-nutrition-evaluations/run", reviewHandler.RunNutrition).Methods(http.MethodPost)
	me.HandleFunc("/ai-nutrition-evaluations/summary", reviewHandler.NutritionSummary).Methods(http.MethodGet)

	me.HandleFunc("/stats/weekly", statsHandler.Weekly).Methods(http.MethodGet)

	me.HandleFunc("/profile/health", profileHandler.Get).Methods(http.MethodGet)
	me.HandleFunc("/profile/health", profileHandler.Put).Methods(http.MethodPut)

	me.HandleFunc("/diets", recordHandler.ListDiets).Methods(http.MethodGet)
	me.HandleFunc("/diets", recordHandler.CreateDiet).Methods(http.MethodPost)
	me.HandleFunc("/exercises", recordHandler.ListExercises).Methods(http.MethodGet)
	me.HandleFunc("/exercises", recordHandler.CreateExercise).Methods(http.MethodPost)

	return router
}
