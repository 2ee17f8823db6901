package coach

import (
	"encoding/json"
	"fmt"
	"strings"
)

// fallbackMenuText replaces a blank menu in an otherwise parsable meal item.
const fallbackMenuText = "Meal details could not be determined."

// mealItemJSON accepts both key spellings the model has been seen to emit.
type mealItemJSON struct {
	MealTime      *string  `json:"mealTime"`
	MealTimeSnake *string  `json:"meal_time"`
	Menu          *string  `json:"menu"`
	MenuAlt       *string  `json:"menuDescription"`
	Calories      *float64 `json:"calories"`
	Highlight     *string  `json:"highlight"`
}

type mealsEnvelopeJSON struct {
	Meals []mealItemJSON `json:"meals"`
}

// parseMealPlanItems reduces raw model output to meal plan items through
// ordered extraction attempts: a JSON array, then a "meals"-keyed object,
// then a line-split degradation. The result is empty only when the raw text
// has no non-blank lines at all; callers treat that as a generation failure.
func parseMealPlanItems(raw string) []MealPlanItem {
	body := stripCodeFence(raw)

	var arr []mealItemJSON
	if err := json.Unmarshal([]byte(body), &arr); err == nil && arr != nil {
		return mealItemsFromJSON(arr)
	}

	var env mealsEnvelopeJSON
	if err := json.Unmarshal([]byte(body), &env); err == nil && env.Meals != nil {
		return mealItemsFromJSON(env.Meals)
	}

	var items []MealPlanItem
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, MealPlanItem{Menu: line})
	}
	return items
}

func mealItemsFromJSON(arr []mealItemJSON) []MealPlanItem {
	items := make([]MealPlanItem, 0, len(arr))
	for _, it := range arr {
		mealTime := firstNonBlank(it.MealTime, it.MealTimeSnake)
		if mealTime == "" {
			mealTime = MealSlotUnknown
		}
		menu := firstNonBlank(it.Menu, it.MenuAlt)
		if menu == "" {
			menu = fallbackMenuText
		}
		items = append(items, MealPlanItem{
			MealTime:  &mealTime,
			Menu:      menu,
			Calories:  it.Calories,
			Highlight: it.Highlight,
		})
	}
	return items
}

type exerciseReviewJSON struct {
	Summary        *string `json:"summary"`
	Recommendation *string `json:"recommendation"`
}

// parseExerciseReview extracts summary and recommendation from raw model
// output. A non-JSON answer degrades to the whole text as the summary.
// A blank resolved summary is a generation failure.
func parseExerciseReview(raw string) (summary string, recommendation *string, err error) {
	body := stripCodeFence(raw)

	var obj exerciseReviewJSON
	if jsonErr := json.Unmarshal([]byte(body), &obj); jsonErr == nil {
		summary = raw
		if obj.Summary != nil {
			summary = *obj.Summary
		}
		recommendation = obj.Recommendation
	} else {
		summary = strings.TrimSpace(raw)
	}

	if strings.TrimSpace(summary) == "" {
		return "", nil, fmt.Errorf("%w: exercise review has no summary", ErrGeneration)
	}
	return summary, recommendation, nil
}

type nutritionReviewJSON struct {
	Summary            *string `json:"summary"`
	CarbohydrateStatus *string `json:"carbohydrateStatus"`
	ProteinStatus      *string `json:"proteinStatus"`
	FatStatus          *string `json:"fatStatus"`
	CalorieStatus      *string `json:"calorieStatus"`
}

// parseNutritionReview is the nutrition counterpart of parseExerciseReview,
// with four optional per-macro status fields.
func parseNutritionReview(raw string) (nutritionReviewJSON, error) {
	body := stripCodeFence(raw)

	var obj nutritionReviewJSON
	if err := json.Unmarshal([]byte(body), &obj); err != nil {
		trimmed := strings.TrimSpace(raw)
		obj = nutritionReviewJSON{Summary: &trimmed}
	} else if obj.Summary == nil {
		obj.Summary = &raw
	}

	if obj.Summary == nil || strings.TrimSpace(*obj.Summary) == "" {
		return nutritionReviewJSON{}, fmt.Errorf("%w: nutrition review has no summary", ErrGeneration)
	}
	return obj, nil
}

// stripCodeFence unwraps a ```-fenced block so fenced JSON can still hit
// the strict parse path. Text without a leading fence passes through.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if i := strings.Index(trimmed, "\n"); i >= 0 {
		trimmed = trimmed[i+1:] // drop the language tag line
	}
	if i := strings.LastIndex(trimmed, "```"); i >= 0 {
		trimmed = trimmed[:i]
	}
	return strings.TrimSpace(trimmed)
}

func firstNonBlank(values ...*string) string {
	for _, v := range values {
		if v != nil && strings.TrimSpace(*v) != "" {
			return strings.TrimSpace(*v)
		}
	}
	return ""
}
