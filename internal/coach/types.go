package coach

import "time"

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser Sender = "USER"
	SenderAI   Sender = "AI"
)

// Meal slot values the meal-plan prompt contracts on. MealSlotUnknown is
// substituted when the model returns an item without a recognizable slot.
const (
	MealSlotBreakfast = "BREAKFAST"
	MealSlotLunch     = "LUNCH"
	MealSlotDinner    = "DINNER"
	MealSlotUnknown   = "MEAL"
)

// ChatMessage is one line of a user's daily coaching transcript.
// The log is append-only and ordered by CreatedAt.
type ChatMessage struct {
	ID          int64     `json:"-"`
	Email       string    `json:"-"`
	MessageDate time.Time `json:"-"`
	Sender      Sender    `json:"sender"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ChatTranscript is the full ordered transcript for one day.
type ChatTranscript struct {
	MessageDate time.Time     `json:"messageDate"`
	Messages    []ChatMessage `json:"messages"`
}

// MealPlan is a persisted daily meal plan. At most one exists per
// (user, plan date); it is immutable once written.
type MealPlan struct {
	ID            int64
	Email         string
	PlanDate      time.Time
	PromptContext string
	RawResponse   string
	CreatedAt     time.Time
}

// MealPlanItem is one recommended meal inside a plan. MealTime is nil for
// items produced by the line-split degradation.
type MealPlanItem struct {
	MealTime  *string  `json:"mealTime"`
	Menu      string   `json:"menuDescription"`
	Calories  *float64 `json:"calories"`
	Highlight *string  `json:"highlight"`
}

// MealPlanResult is what callers get for a plan date: either the persisted
// plan or an empty not-generated response.
type MealPlanResult struct {
	PlanDate    time.Time      `json:"planDate"`
	Generated   bool           `json:"generated"`
	GeneratedAt *time.Time     `json:"generatedAt,omitempty"`
	Meals       []MealPlanItem `json:"meals"`
	RawText     *string        `json:"rawText"`
}

// ExerciseReview is a persisted weekly exercise evaluation. At most one
// exists per (user, evaluation date).
type ExerciseReview struct {
	ID             int64
	Email          string
	WeekStart      time.Time
	EvaluationDate time.Time
	Summary        string
	Recommendation *string
	CreatedAt      time.Time
}

// ExerciseReviewResult is the caller-facing view of an exercise review.
// Summary is nil when no review has been generated for the key yet.
type ExerciseReviewResult struct {
	WeekStart      time.Time  `json:"weekStartDate"`
	EvaluationDate time.Time  `json:"evaluationDate"`
	Summary        *string    `json:"summary"`
	Recommendation *string    `json:"recommendation"`
	CreatedAt      *time.Time `json:"createdAt"`
}

// NutritionReview is a persisted weekly nutrition evaluation. At most one
// exists per (user, evaluation date).
type NutritionReview struct {
	ID                 int64
	Email              string
	WeekStart          time.Time
	EvaluationDate     time.Time
	Summary            string
	CarbohydrateStatus *string
	ProteinStatus      *string
	FatStatus          *string
	CalorieStatus      *string
	CreatedAt          time.Time
}

// NutritionReviewResult is the caller-facing view of a nutrition review.
type NutritionReviewResult struct {
	WeekStart          time.Time  `json:"weekStartDate"`
	EvaluationDate     time.Time  `json:"evaluationDate"`
	Summary            *string    `json:"summary"`
	CarbohydrateStatus *string    `json:"carbohydrateStatus"`
	ProteinStatus      *string    `json:"proteinStatus"`
	FatStatus          *string    `json:"fatStatus"`
	CalorieStatus      *string    `json:"calorieStatus"`
	CreatedAt          *time.Time `json:"createdAt"`
}
