package telegram

import (
	"strings"
	"testing"
	"time"

	"ai-health-coach/internal/coach"
)

func strPtr(s string) *string  { return &s }
func flPtr(v float64) *float64 { return &v }

func TestFormatMealPlan(t *testing.T) {
	slot := coach.MealSlotBreakfast
	plan := &coach.MealPlanResult{
		PlanDate:  time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC),
		Generated: true,
		Meals: []coach.MealPlanItem{
			{MealTime: &slot, Menu: "Oatmeal with berries", Calories: flPtr(320), Highlight: strPtr("slow carbs")},
			{Menu: "Leftover soup"},
		},
	}

	out := formatMealPlan(plan)

	if !strings.Contains(out, "2024-06-13") {
		t.Error("missing plan date")
	}
	if !strings.Contains(out, "*BREAKFAST*: Oatmeal with berries (320 kcal)") {
		t.Error("missing breakfast line with calories")
	}
	if !strings.Contains(out, "_slow carbs_") {
		t.Error("missing highlight")
	}
	// Items without a slot fall back to the generic label.
	if !strings.Contains(out, "*MEAL*: Leftover soup") {
		t.Error("missing fallback slot label")
	}
}

func TestFormatWorkoutReview(t *testing.T) {
	review := &coach.ExerciseReviewResult{
		WeekStart:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Summary:        strPtr("Solid week of training."),
		Recommendation: strPtr("Add one rest day."),
	}

	out := formatWorkoutReview(review)

	if !strings.Contains(out, "week of 2024-06-10") {
		t.Error("missing week start")
	}
	if !strings.Contains(out, "Solid week of training.") {
		t.Error("missing summary")
	}
	if !strings.Contains(out, "💡 Add one rest day.") {
		t.Error("missing recommendation")
	}
}

func TestFormatNutritionReview(t *testing.T) {
	review := &coach.NutritionReviewResult{
		WeekStart:     time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Summary:       strPtr("Protein trending up."),
		ProteinStatus: strPtr("LOW"),
	}

	out := formatNutritionReview(review)

	if !strings.Contains(out, "Protein trending up.") {
		t.Error("missing summary")
	}
	if !strings.Contains(out, "• Protein: LOW") {
		t.Error("missing protein status line")
	}
	if strings.Contains(out, "Carbohydrate") {
		t.Error("nil statuses should be omitted")
	}
}
