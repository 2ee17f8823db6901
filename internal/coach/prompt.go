package coach

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"text/template"
	"time"

	"ai-health-coach/internal/clock"
	"ai-health-coach/internal/profile"
	"ai-health-coach/internal/stats"
)

//go:embed prompts/chat_prompt.md
var chatPrompt string

//go:embed prompts/meal_plan_prompt.md
var mealPlanPrompt string

//go:embed prompts/exercise_review_prompt.md
var exerciseReviewPrompt string

//go:embed prompts/nutrition_review_prompt.md
var nutritionReviewPrompt string

var (
	chatTmpl            = template.Must(template.New("chat").Parse(chatPrompt))
	mealPlanTmpl        = template.Must(template.New("meal_plan").Parse(mealPlanPrompt))
	exerciseReviewTmpl  = template.Must(template.New("exercise_review").Parse(exerciseReviewPrompt))
	nutritionReviewTmpl = template.Must(template.New("nutrition_review").Parse(nutritionReviewPrompt))
)

const notProvided = "not provided"

type promptProfile struct {
	Height        string
	Weight        string
	GoalWeight    string
	ActivityLevel string
	Conditions    string
	Goal          string
}

type dietLine struct {
	Date         string
	Weekday      string
	Carbohydrate string
	Protein      string
	Fat          string
	Calories     string
}

type exerciseLine struct {
	Date            string
	Weekday         string
	DurationMinutes string
	Calories        string
}

type promptData struct {
	Date     string
	Weekday  string
	Time     string
	Profile  promptProfile
	Diet     []dietLine
	Exercise []exerciseLine
	Message  string
}

// newPromptData renders profile and weekly stats into template-ready form.
// Stats are filtered to days at or before the target date; days the week
// still has ahead never reach a prompt.
func newPromptData(p *profile.HealthProfile, ws *stats.WeeklyStats, target time.Time) promptData {
	target = clock.Midnight(target)
	data := promptData{
		Date:    target.Format(time.DateOnly),
		Weekday: target.Weekday().String(),
		Profile: renderProfile(p),
	}

	for _, d := range ws.Diet {
		if d.Date.After(target) {
			continue
		}
		data.Diet = append(data.Diet, dietLine{
			Date:         d.Date.Format(time.DateOnly),
			Weekday:      d.Weekday,
			Carbohydrate: one(d.Carbohydrate),
			Protein:      one(d.Protein),
			Fat:          one(d.Fat),
			Calories:     one(d.Calories),
		})
	}
	for _, e := range ws.Exercise {
		if e.Date.After(target) {
			continue
		}
		data.Exercise = append(data.Exercise, exerciseLine{
			Date:            e.Date.Format(time.DateOnly),
			Weekday:         e.Weekday,
			DurationMinutes: one(e.DurationMinutes),
			Calories:        one(e.Calories),
		})
	}
	return data
}

func renderProfile(p *profile.HealthProfile) promptProfile {
	if p == nil {
		return promptProfile{
			Height:        notProvided,
			Weight:        notProvided,
			GoalWeight:    notProvided,
			ActivityLevel: notProvided,
			Conditions:    "none",
			Goal:          notProvided,
		}
	}
	return promptProfile{
		Height:        optionalUnit(p.Height, "cm"),
		Weight:        optionalUnit(p.Weight, "kg"),
		GoalWeight:    optionalUnit(p.GoalWeight, "kg"),
		ActivityLevel: optionalText(p.ActivityLevel),
		Conditions:    p.Conditions(),
		Goal:          optionalText(p.Goal),
	}
}

func buildChatPrompt(p *profile.HealthProfile, ws *stats.WeeklyStats, date time.Time, now time.Time, message string) (string, error) {
	data := newPromptData(p, ws, date)
	data.Time = now.Format("15:04")
	data.Message = message
	return render(chatTmpl, data)
}

func buildMealPlanPrompt(p *profile.HealthProfile, ws *stats.WeeklyStats, planDate time.Time) (string, error) {
	return render(mealPlanTmpl, newPromptData(p, ws, planDate))
}

func buildExerciseReviewPrompt(p *profile.HealthProfile, ws *stats.WeeklyStats, evaluationDate time.Time) (string, error) {
	return render(exerciseReviewTmpl, newPromptData(p, ws, evaluationDate))
}

func buildNutritionReviewPrompt(p *profile.HealthProfile, ws *stats.WeeklyStats, evaluationDate time.Time) (string, error) {
	return render(nutritionReviewTmpl, newPromptData(p, ws, evaluationDate))
}

func render(tmpl *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

func one(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func optionalUnit(v *float64, unit string) string {
	if v == nil {
		return notProvided
	}
	return one(*v) + unit
}

func optionalText(s *string) string {
	if s == nil || *s == "" {
		return notProvided
	}
	return *s
}
