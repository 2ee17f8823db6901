package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-health-coach/internal/api"
	"ai-health-coach/internal/clock"
	"ai-health-coach/internal/coach"
	"ai-health-coach/internal/config"
	"ai-health-coach/internal/database"
	"ai-health-coach/internal/llm"
	"ai-health-coach/internal/logger"
	"ai-health-coach/internal/stats"
	"ai-health-coach/internal/storage"
)

func main() {
	log := logger.New("ai-health-coach")
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("COACH_JWT_SECRET is required")
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid timezone")
	}
	clk := clock.Real{Loc: loc}

	db, err := database.NewDB(cfg.DBPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	textGen, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Gemini client")
	}
	if closer, ok := textGen.(llm.Closer); ok {
		defer closer.Close()
	}
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("no Gemini API key configured, AI endpoints will fail until one is set")
	}

	store := storage.New(db.SQL)
	agg := stats.NewAggregator(store, store)

	router := api.NewRouter(api.Deps{
		Chat:      coach.NewChatService(store, store, agg, textGen, clk, log),
		MealPlans: coach.NewMealPlanService(store, store, agg, textGen, clk, log),
		Exercise:  coach.NewExerciseReviewService(store, store, agg, textGen, clk, log),
		Nutrition: coach.NewNutritionReviewService(store, store, agg, textGen, clk, log),
		Stats:     agg,
		Profiles:  store,
		Records:   store,
		DB:        db.SQL,
		Clock:     clk,
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
