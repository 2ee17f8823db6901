package coach

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"ai-health-coach/internal/profile"
	"ai-health-coach/internal/records"
)

func day(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func fl(v float64) *float64 { return &v }
func str(s string) *string  { return &s }

// mockTextGenerator returns a canned response and counts calls, so tests
// can assert the generate-or-fetch discipline.
type mockTextGenerator struct {
	response string
	err      error
	calls    int
}

func (m *mockTextGenerator) GenerateContent(_ context.Context, _ string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

type mockProfiles struct {
	profile *profile.HealthProfile
	err     error
}

func (m *mockProfiles) HealthProfile(context.Context, string) (*profile.HealthProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.profile, nil
}

func testProfile() *profile.HealthProfile {
	return &profile.HealthProfile{
		Email:         "user@test.io",
		Height:        fl(175),
		Weight:        fl(80.5),
		GoalWeight:    fl(72),
		ActivityLevel: str("moderate"),
		HasDiabetes:   true,
		Goal:          str("lose weight"),
	}
}

// emptyRecords satisfies both record source interfaces with no data.
type emptyRecords struct{}

func (emptyRecords) DietRecordsByDate(context.Context, string, time.Time, int) ([]records.DietRecord, error) {
	return nil, nil
}

func (emptyRecords) ExerciseRecordsByDate(context.Context, string, time.Time, int) ([]records.ExerciseRecord, error) {
	return nil, nil
}

// memChatStore is an in-memory ChatStore.
type memChatStore struct {
	rows    []ChatMessage
	inserts int
}

func (m *memChatStore) InsertChatMessages(_ context.Context, msgs []ChatMessage) error {
	m.inserts++
	m.rows = append(m.rows, msgs...)
	return nil
}

func (m *memChatStore) ChatMessagesByDate(_ context.Context, email string, date time.Time) ([]ChatMessage, error) {
	var out []ChatMessage
	for _, r := range m.rows {
		if r.Email == email && r.MessageDate.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

// memMealPlanStore is an in-memory MealPlanStore with an optional forced
// conflict on first insert, mimicking a lost duplicate-key race.
type memMealPlanStore struct {
	plan          *MealPlan
	items         []MealPlanItem
	inserts       int
	conflictOnce  bool
	conflictStash *MealPlan
	stashItems    []MealPlanItem
}

func (m *memMealPlanStore) FindMealPlan(_ context.Context, email string, planDate time.Time) (*MealPlan, []MealPlanItem, error) {
	if m.plan != nil && m.plan.Email == email && m.plan.PlanDate.Equal(planDate) {
		return m.plan, m.items, nil
	}
	return nil, nil, nil
}

func (m *memMealPlanStore) InsertMealPlan(_ context.Context, plan *MealPlan, items []MealPlanItem) error {
	m.inserts++
	if m.conflictOnce {
		// Another writer won the race: surface its row on re-read.
		m.conflictOnce = false
		m.plan = m.conflictStash
		m.items = m.stashItems
		return ErrConflict
	}
	if m.plan != nil && m.plan.Email == plan.Email && m.plan.PlanDate.Equal(plan.PlanDate) {
		return ErrConflict
	}
	m.plan = plan
	m.items = items
	return nil
}

type memExerciseReviewStore struct {
	review  *ExerciseReview
	inserts int
}

func (m *memExerciseReviewStore) FindExerciseReview(_ context.Context, email string, evaluationDate time.Time) (*ExerciseReview, error) {
	if m.review != nil && m.review.Email == email && m.review.EvaluationDate.Equal(evaluationDate) {
		return m.review, nil
	}
	return nil, nil
}

func (m *memExerciseReviewStore) InsertExerciseReview(_ context.Context, review *ExerciseReview) error {
	m.inserts++
	if m.review != nil && m.review.Email == review.Email && m.review.EvaluationDate.Equal(review.EvaluationDate) {
		return ErrConflict
	}
	m.review = review
	return nil
}

type memNutritionReviewStore struct {
	review  *NutritionReview
	inserts int
}

func (m *memNutritionReviewStore) FindNutritionReview(_ context.Context, email string, evaluationDate time.Time) (*NutritionReview, error) {
	if m.review != nil && m.review.Email == email && m.review.EvaluationDate.Equal(evaluationDate) {
		return m.review, nil
	}
	return nil, nil
}

func (m *memNutritionReviewStore) InsertNutritionReview(_ context.Context, review *NutritionReview) error {
	m.inserts++
	if m.review != nil && m.review.Email == review.Email && m.review.EvaluationDate.Equal(review.EvaluationDate) {
		return ErrConflict
	}
	m.review = review
	return nil
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
