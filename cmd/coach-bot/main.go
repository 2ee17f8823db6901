package main

import (
	"context"
	"os/signal"
	"syscall"

	"ai-health-coach/internal/clock"
	"ai-health-coach/internal/coach"
	"ai-health-coach/internal/config"
	"ai-health-coach/internal/database"
	"ai-health-coach/internal/llm"
	"ai-health-coach/internal/logger"
	"ai-health-coach/internal/stats"
	"ai-health-coach/internal/storage"
	"ai-health-coach/internal/telegram"
)

func main() {
	log := logger.New("coach-bot")
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.TelegramBotToken == "" || cfg.TelegramAllowUserID == 0 || cfg.TelegramUserEmail == "" {
		log.Fatal().Msg("COACH_TELEGRAM_BOT_TOKEN, COACH_TELEGRAM_ALLOW_USER_ID and COACH_TELEGRAM_USER_EMAIL are required")
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

	store := storage.New(db.SQL)
	agg := stats.NewAggregator(store, store)

	bot, err := telegram.NewBot(
		cfg.TelegramBotToken,
		cfg.TelegramAllowUserID,
		cfg.TelegramUserEmail,
		coach.NewChatService(store, store, agg, textGen, clk, log),
		coach.NewMealPlanService(store, store, agg, textGen, clk, log),
		coach.NewExerciseReviewService(store, store, agg, textGen, clk, log),
		coach.NewNutritionReviewService(store, store, agg, textGen, clk, log),
		clk,
		log,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telegram bot")
	}

	log.Info().Msg("bot started, polling for updates")
	bot.Run(ctx)
	log.Info().Msg("bot stopped")
}
