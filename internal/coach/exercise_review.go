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

// ExerciseReviewService evaluates a week's exercise volume as of a clamped
// evaluation date, generate-or-fetch per (user, evaluation date).
type ExerciseReviewService struct {
	store    ExerciseReviewStore
	profiles ProfileSource
	stats    *stats.Aggregator
	textGen  llm.TextGenerator
	clock    clock.Clock
	log      zerolog.Logger
}

// NewExerciseReviewService creates a new ExerciseReviewService.
func NewExerciseReviewService(store ExerciseReviewStore, profiles ProfileSource, agg *stats.Aggregator, textGen llm.TextGenerator, clk clock.Clock, log zerolog.Logger) *ExerciseReviewService {
	return &ExerciseReviewService{
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
func (s *ExerciseReviewService) Evaluate(ctx context.Context, email string, referenceDate time.Time) (*ExerciseReviewResult, error) {
	referenceDate = clock.Midnight(referenceDate)
	evaluationDate := week.ClampEvaluationDate(referenceDate, clock.Today(s.clock))

	existing, err := s.store.FindExerciseReview(ctx, email, evaluationDate)
	if err != nil {
		return nil, fmt.Errorf("failed to look up exercise review: %w", err)
	}
	if existing != nil {
		return exerciseReviewResult(existing), nil
	}

	prof, err := s.profiles.HealthProfile(ctx, email)
	if err != nil {
		return nil, err
	}
	weekly, err := s.stats.WeeklyStats(ctx, email, evaluationDate)
	if err != nil {
		return nil, err
	}

	prompt, err := buildExerciseReviewPrompt(prof, weekly, evaluationDate)
	if err != nil {
		return nil, err
	}

	raw, err := s.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	summary, recommendation, err := parseExerciseReview(raw)
	if err != nil {
		return nil, err
	}

	review := &ExerciseReview{
		Email:          email,
		WeekStart:      week.StartOf(referenceDate),
		EvaluationDate: evaluationDate,
		Summary:        summary,
		Recommendation: recommendation,
		CreatedAt:      s.clock.Now(),
	}
	if err := s.store.InsertExerciseReview(ctx, review); err != nil {
		if errors.Is(err, ErrConflict) {
			s.log.Warn().Str("email", email).Str("evaluationDate", evaluationDate.Format(time.DateOnly)).
				Msg("exercise review insert lost a race, returning stored review")
			stored, findErr := s.store.FindExerciseReview(ctx, email, evaluationDate)
			if findErr != nil || stored == nil {
				return nil, fmt.Errorf("failed to re-read exercise review after conflict: %w", err)
			}
			return exerciseReviewResult(stored), nil
		}
		return nil, fmt.Errorf("failed to store exercise review: %w", err)
	}

	s.log.Info().Str("email", email).Str("evaluationDate", evaluationDate.Format(time.DateOnly)).
		Msg("exercise review generated")
	return exerciseReviewResult(review), nil
}

// Get returns the stored review for the reference date's evaluation key, or
// an empty result when none exists. It never triggers generation.
func (s *ExerciseReviewService) Get(ctx context.Context, email string, referenceDate time.Time) (*ExerciseReviewResult, error) {
	referenceDate = clock.Midnight(referenceDate)
	evaluationDate := week.ClampEvaluationDate(referenceDate, clock.Today(s.clock))

	review, err := s.store.FindExerciseReview(ctx, email, evaluationDate)
	if err != nil {
		return nil, fmt.Errorf("failed to look up exercise review: %w", err)
	}
	if review == nil {
		return &ExerciseReviewResult{
			WeekStart:      week.StartOf(referenceDate),
			EvaluationDate: evaluationDate,
		}, nil
	}
	return exerciseReviewResult(review), nil
}

func exerciseReviewResult(r *ExerciseReview) *ExerciseReviewResult {
	summary := r.Summary
	createdAt := r.CreatedAt
	return &ExerciseReviewResult{
		WeekStart:      r.WeekStart,
		EvaluationDate: r.EvaluationDate,
		Summary:        &summary,
		Recommendation: r.Recommendation,
		CreatedAt:      &createdAt,
	}
}
