package coach

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"ai-health-coach/internal/clock"
	"ai-health-coach/internal/llm"
	"ai-health-coach/internal/stats"
	"ai-health-coach/internal/week"
)

// NutritionReviewService evaluates a week's nutrient intake as of a clamped
// evaluation date, generate-or-fetch per (user, evaluation date).
type NutritionReviewService struct {
	store    NutritionReviewStore
	profiles ProfileSource
	stats    *stats.Aggregator
	textGen  llm.TextGenerator
	clock    clock.Clock
	log      zerolog.Logger
}

// NewNutritionReviewService creates a new NutritionReviewService.
func NewNutritionReviewService(store NutritionReviewStore, profiles ProfileSource, agg *stats.Aggregator, textGen llm.TextGenerator, clk clock.Clock, log zerolog.Logger) *NutritionReviewService {
	return &NutritionReviewService{
		store:    store,
		profiles: profiles,
		stats:    agg,
		textGen:  textGen,
		clock:    clk,
		log:      log,
	}
}

// Evaluate returns the stored review for the reference date's evaluation
// key, or generates and persists one on a miss.
func (s *NutritionReviewService) Evaluate(ctx context.Context, email string, referenceDate time.Time) (*NutritionReviewResult, error) {
	referenceDate = clock.Midnight(referenceDate)
	evaluationDate := week.ClampEvaluationDate(referenceDate, clock.Today(s.clock))

	existing, err := s.store.FindNutritionReview(ctx, email, evaluationDate)
	if err != nil {
		return nil, fmt.Errorf("failed to look up nutrition review: %w", err)
	}
	if existing != nil {
		return nutritionReviewResult(existing), nil
	}

	prof, err := s.profiles.HealthProfile(ctx, email)
	if err != nil {
		return nil, err
	}
	weekly, err := s.stats.WeeklyStats(ctx, email, evaluationDate)
	if err != nil {
		return nil, err
	}

	prompt, err := buildNutritionReviewPrompt(prof, weekly, evaluationDate)
	if err != nil {
		return nil, err
	}

	raw, err := s.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	parsed, err := parseNutritionReview(raw)
	if err != nil {
		return nil, err
	}

	review := &NutritionReview{
		Email:              email,
		WeekStart:          week.StartOf(referenceDate),
		EvaluationDate:     evaluationDate,
		Summary:            *parsed.Summary,
		CarbohydrateStatus: parsed.CarbohydrateStatus,
		ProteinStatus:      parsed.ProteinStatus,
		FatStatus:          parsed.FatStatus,
		CalorieStatus:      parsed.CalorieStatus,
		CreatedAt:          s.clock.Now(),
	}
	if err := s.store.InsertNutritionReview(ctx, review); err != nil {
		if errors.Is(err, ErrConflict) {
			s.log.Warn().Str("email", email).Str("evaluationDate", evaluationDate.Format(time.DateOnly)).
				Msg("nutrition review insert lost a race, returning stored review")
			stored, findErr := s.store.FindNutritionReview(ctx, email, evaluationDate)
			if findErr != nil || stored == nil {
				return nil, fmt.Errorf("failed to re-read nutrition review after conflict: %w", err)
			}
			return nutritionReviewResult(stored), nil
		}
		return nil, fmt.Errorf("failed to store nutrition review: %w", err)
	}

	s.log.Info().Str("email", email).Str("evaluationDate", evaluationDate.Format(time.DateOnly)).
		Msg("nutrition review generated")
	return nutritionReviewResult(review), nil
}

// Get returns the stored review for the reference date's evaluation key, or
// an empty result when none exists. It never triggers generation.
func (s *NutritionReviewService) Get(ctx context.Context, email string, referenceDate time.Time) (*NutritionReviewResult, error) {
	referenceDate = clock.Midnight(referenceDate)
	evaluationDate := week.ClampEvaluationDate(referenceDate, clock.Today(s.clock))

	review, err := s.store.FindNutritionReview(ctx, email, evaluationDate)
	if err != nil {
		return nil, fmt.Errorf("failed to look up nutrition review: %w", err)
	}
	if review == nil {
		return &NutritionReviewResult{
			WeekStart:      week.StartOf(referenceDate),
			EvaluationDate: evaluationDate,
		}, nil
	}
	return nutritionReviewResult(review), nil
}

func nutritionReviewResult(r *NutritionReview) *NutritionReviewResult {
	summary := r.Summary
	createdAt := r.CreatedAt
	return &NutritionReviewResult{
		WeekStart:          r.WeekStart,
		EvaluationDate:     r.EvaluationDate,
		Summary:            &summary,
		CarbohydrateStatus: r.CarbohydrateStatus,
		ProteinStatus:      r.ProteinStatus,
		FatStatus:          r.FatStatus,
		CalorieStatus:      r.CalorieStatus,
		CreatedAt:          &createdAt,
	}
}
