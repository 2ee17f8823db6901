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
)

// MealPlanService is the generate-or-fetch coordinator for daily meal
// plans: at most one plan is persisted per (user, plan date), and a lookup
// hit never re-invokes the model.
type MealPlanService struct {
	store    MealPlanStore
	profiles ProfileSource
	stats    *stats.Aggregator
	textGen  llm.TextGenerator
	clock    clock.Clock
	log      zerolog.Logger
}

// NewMealPlanService creates a new MealPlanService.
func NewMealPlanService(store MealPlanStore, profiles ProfileSource, agg *stats.Aggregator, textGen llm.TextGenerator, clk clock.Clock, log zerolog.Logger) *MealPlanService {
	return &MealPlanService{
		store:    store,
		profiles: profiles,
		stats:    agg,
		textGen:  textGen,
		clock:    clk,
		log:      log,
	}
}

// Generate returns the stored plan for the date, or generates and persists
// one on a miss. Generation failures persist nothing.
//
// There is deliberately no lock between lookup and insert; two concurrent
// misses may both generate. Whoever inserts second hits the unique key and
// recovers by returning the winner's row.
func (s *MealPlanService) Generate(ctx context.Context, email string, planDate time.Time) (*MealPlanResult, error) {
	planDate = clock.Midnight(planDate)

	plan, items, err := s.store.FindMealPlan(ctx, email, planDate)
	if err != nil {
		return nil, fmt.Errorf("failed to look up meal plan: %w", err)
	}
	if plan != nil {
		return mealPlanResult(plan, items), nil
	}

	prof, err := s.profiles.HealthProfile(ctx, email)
	if err != nil {
		return nil, err
	}
	weekly, err := s.stats.WeeklyStats(ctx, email, planDate)
	if err != nil {
		return nil, err
	}

	prompt, err := buildMealPlanPrompt(prof, weekly, planDate)
	if err != nil {
		return nil, err
	}

	raw, err := s.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	parsed := parseMealPlanItems(raw)
	if len(parsed) == 0 {
		return nil, fmt.Errorf("%w: meal plan response was empty", ErrGeneration)
	}

	newPlan := &MealPlan{
		Email:         email,
		PlanDate:      planDate,
		PromptContext: prompt,
		RawResponse:   raw,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.store.InsertMealPlan(ctx, newPlan, parsed); err != nil {
		if errors.Is(err, ErrConflict) {
			s.log.Warn().Str("email", email).Str("planDate", planDate.Format(time.DateOnly)).
				Msg("meal plan insert lost a race, returning stored plan")
			plan, items, findErr := s.store.FindMealPlan(ctx, email, planDate)
			if findErr != nil || plan == nil {
				return nil, fmt.Errorf("failed to re-read meal plan after conflict: %w", err)
			}
			return mealPlanResult(plan, items), nil
		}
		return nil, fmt.Errorf("failed to store meal plan: %w", err)
	}

	s.log.Info().Str("email", email).Str("planDate", planDate.Format(time.DateOnly)).
		Int("items", len(parsed)).Msg("meal plan generated")
	return mealPlanResult(newPlan, parsed), nil
}

// Existing returns the stored plan for the date, or a not-generated result.
// It never triggers generation.
func (s *MealPlanService) Existing(ctx context.Context, email string, planDate time.Time) (*MealPlanResult, error) {
	planDate = clock.Midnight(planDate)

	plan, items, err := s.store.FindMealPlan(ctx, email, planDate)
	if err != nil {
		return nil, fmt.Errorf("failed to look up meal plan: %w", err)
	}
	if plan == nil {
		return &MealPlanResult{PlanDate: planDate, Generated: false, Meals: []MealPlanItem{}}, nil
	}
	return mealPlanResult(plan, items), nil
}

func mealPlanResult(plan *MealPlan, items []MealPlanItem) *MealPlanResult {
	if items == nil {
		items = []MealPlanItem{}
	}
	createdAt := plan.CreatedAt
	raw := plan.RawResponse
	return &MealPlanResult{
		PlanDate:    plan.PlanDate,
		Generated:   true,
		GeneratedAt: &createdAt,
		Meals:       items,
		RawText:     &raw,
	}
}
