// Package stats reduces a user's raw diet and exercise records into per-day
// weekly totals.
package stats

import (
	"context"
	"fmt"
	"math"
	"time"

	"ai-health-coach/internal/records"
	"ai-health-coach/internal/week"
)

// maxRecordsPerDay caps how many rows a single day fetch may return. A
// defensive bound, not a pagination contract.
const maxRecordsPerDay = 1000

// DailyDietStat is the nutrient total for one calendar day.
type DailyDietStat struct {
	Date         time.Time `json:"date"`
	Weekday      string    `json:"weekday"`
	Carbohydrate float64   `json:"totalCarbohydrate"`
	Protein      float64   `json:"totalProtein"`
	Fat          float64   `json:"totalFat"`
	Calories     float64   `json:"totalCalories"`
}

// DailyExerciseStat is the activity total for one calendar day.
type DailyExerciseStat struct {
	Date            time.Time `json:"date"`
	Weekday         string    `json:"weekday"`
	DurationMinutes float64   `json:"totalDurationMinutes"`
	Calories        float64   `json:"totalCalories"`
}

// WeeklyStats is a read-only snapshot of one Monday..Sunday week. Diet and
// Exercise always hold exactly seven entries, ordered Monday first.
type WeeklyStats struct {
	Window   week.Window         `json:"window"`
	Diet     []DailyDietStat     `json:"dietStats"`
	Exercise []DailyExerciseStat `json:"exerciseStats"`
}

// Aggregator computes weekly stats from the record sources. It caches
// nothing; every call re-reads and re-sums.
type Aggregator struct {
	diets     records.DietSource
	exercises records.ExerciseSource
}

// NewAggregator creates an Aggregator over the given record sources.
func NewAggregator(diets records.DietSource, exercises records.ExerciseSource) *Aggregator {
	return &Aggregator{diets: diets, exercises: exercises}
}

// WeeklyStats aggregates the week containing baseDate for the given user.
func (a *Aggregator) WeeklyStats(ctx context.Context, email string, baseDate time.Time) (*WeeklyStats, error) {
	w := week.Of(baseDate)
	out := &WeeklyStats{
		Window:   w,
		Diet:     make([]DailyDietStat, 0, 7),
		Exercise: make([]DailyExerciseStat, 0, 7),
	}

	for i := 0; i < 7; i++ {
		day := w.Day(i)

		diet, err := a.dietStat(ctx, email, day)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate diet stats for %s: %w", day.Format(time.DateOnly), err)
		}
		out.Diet = append(out.Diet, diet)

		exercise, err := a.exerciseStat(ctx, email, day)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate exercise stats for %s: %w", day.Format(time.DateOnly), err)
		}
		out.Exercise = append(out.Exercise, exercise)
	}
	return out, nil
}

func (a *Aggregator) dietStat(ctx context.Context, email string, day time.Time) (DailyDietStat, error) {
	recs, err := a.diets.DietRecordsByDate(ctx, email, day, maxRecordsPerDay)
	if err != nil {
		return DailyDietStat{}, err
	}

	var carbs, protein, fat, calories float64
	for _, rec := range recs {
		for _, item := range rec.Items {
			carbs += deref(item.Carbohydrate)
			protein += deref(item.Protein)
			fat += deref(item.Fat)
			calories += deref(item.Calories)
		}
	}

	return DailyDietStat{
		Date:         day,
		Weekday:      weekdayLabel(day),
		Carbohydrate: roundOneDecimal(carbs),
		Protein:      roundOneDecimal(protein),
		Fat:          roundOneDecimal(fat),
		Calories:     roundOneDecimal(calories),
	}, nil
}

func (a *Aggregator) exerciseStat(ctx context.Context, email string, day time.Time) (DailyExerciseStat, error) {
	recs, err := a.exercises.ExerciseRecordsByDate(ctx, email, day, maxRecordsPerDay)
	if err != nil {
		return DailyExerciseStat{}, err
	}

	var duration, calories float64
	for _, rec := range recs {
		duration += deref(rec.DurationMinutes)
		calories += deref(rec.Calories)
	}

	return DailyExerciseStat{
		Date:            day,
		Weekday:         weekdayLabel(day),
		DurationMinutes: roundOneDecimal(duration),
		Calories:        roundOneDecimal(calories),
	}, nil
}

func weekdayLabel(d time.Time) string {
	return d.Weekday().String()
}

// roundOneDecimal rounds half away from zero to one decimal place.
func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
