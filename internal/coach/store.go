package coach

import (
	"context"
	"time"

	"ai-health-coach/internal/profile"
)

// ChatStore persists the append-only daily chat log.
type ChatStore interface {
	InsertChatMessages(ctx context.Context, msgs []ChatMessage) error
	ChatMessagesByDate(ctx context.Context, email string, date time.Time) ([]ChatMessage, error)
}

// MealPlanStore persists one meal plan per (user, plan date).
// FindMealPlan returns (nil, nil, nil) when no plan exists for the key.
// InsertMealPlan returns ErrConflict when another writer got there first.
type MealPlanStore interface {
	FindMealPlan(ctx context.Context, email string, planDate time.Time) (*MealPlan, []MealPlanItem, error)
	InsertMealPlan(ctx context.Context, plan *MealPlan, items []MealPlanItem) error
}

// ExerciseReviewStore persists one exercise review per (user, evaluation
// date). Find returns (nil, nil) on a miss; Insert returns ErrConflict on a
// duplicate key.
type ExerciseReviewStore interface {
	FindExerciseReview(ctx context.Context, email string, evaluationDate time.Time) (*ExerciseReview, error)
	InsertExerciseReview(ctx context.Context, review *ExerciseReview) error
}

// NutritionReviewStore persists one nutrition review per (user, evaluation
// date), with the same miss and conflict conventions.
type NutritionReviewStore interface {
	FindNutritionReview(ctx context.Context, email string, evaluationDate time.Time) (*NutritionReview, error)
	InsertNutritionReview(ctx context.Context, review *NutritionReview) error
}

// ProfileSource supplies the health profile a prompt is built around.
type ProfileSource interface {
	HealthProfile(ctx context.Context, email string) (*profile.HealthProfile, error)
}
