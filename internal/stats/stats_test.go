package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-health-coach/internal/records"
)

type fakeRecords struct {
	diets     map[string][]records.DietRecord
	exercises map[string][]records.ExerciseRecord
}

func (f *fakeRecords) DietRecordsByDate(_ context.Context, _ string, date time.Time, _ int) ([]records.DietRecord, error) {
	return f.diets[date.Format(time.DateOnly)], nil
}

func (f *fakeRecords) ExerciseRecordsByDate(_ context.Context, _ string, date time.Time, _ int) ([]records.ExerciseRecord, error) {
	return f.exercises[date.Format(time.DateOnly)], nil
}

func fl(v float64) *float64 { return &v }

func day(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestWeeklyStatsEmptyWeekIsAllZero(t *testing.T) {
	agg := NewAggregator(&fakeRecords{}, &fakeRecords{})

	stats, err := agg.WeeklyStats(context.Background(), "user@test.io", day("2024-06-13"))
	require.NoError(t, err)

	require.Len(t, stats.Diet, 7)
	require.Len(t, stats.Exercise, 7)
	assert.Equal(t, day("2024-06-10"), stats.Window.Start)
	assert.Equal(t, day("2024-06-16"), stats.Window.End)

	for _, d := range stats.Diet {
		assert.Zero(t, d.Carbohydrate)
		assert.Zero(t, d.Protein)
		assert.Zero(t, d.Fat)
		assert.Zero(t, d.Calories)
	}
	for _, e := range stats.Exercise {
		assert.Zero(t, e.DurationMinutes)
		assert.Zero(t, e.Calories)
	}
}

func TestWeeklyStatsSumsAcrossRecordsAndItems(t *testing.T) {
	src := &fakeRecords{
		diets: map[string][]records.DietRecord{
			"2024-06-10": {
				{
					MealType: "BREAKFAST",
					Items: []records.Food{
						{Carbohydrate: fl(30.25), Protein: fl(10.5), Fat: fl(5), Calories: fl(210.25)},
						{Carbohydrate: fl(10.5), Calories: fl(80.5)}, // nil protein/fat count as zero
					},
				},
				{
					MealType: "LUNCH",
					Items:    []records.Food{{Carbohydrate: fl(50), Protein: fl(20.25), Fat: fl(12.5), Calories: fl(400)}},
				},
			},
		},
		exercises: map[string][]records.ExerciseRecord{
			"2024-06-10": {
				{Name: "run", DurationMinutes: fl(30.5), Calories: fl(250.25)},
				{Name: "walk", DurationMinutes: fl(15.25)}, // nil calories
			},
		},
	}
	agg := NewAggregator(src, src)

	stats, err := agg.WeeklyStats(context.Background(), "user@test.io", day("2024-06-10"))
	require.NoError(t, err)

	mon := stats.Diet[0]
	assert.Equal(t, "Monday", mon.Weekday)
	assert.Equal(t, 90.8, mon.Carbohydrate) // 30.25+10.5+50 = 90.75 rounds away from zero
	assert.Equal(t, 30.8, mon.Protein)      // 10.5+20.25 = 30.75
	assert.Equal(t, 17.5, mon.Fat)
	assert.Equal(t, 690.8, mon.Calories) // 210.25+80.5+400 = 690.75

	ex := stats.Exercise[0]
	assert.Equal(t, 45.8, ex.DurationMinutes) // 30.5+15.25 = 45.75
	assert.Equal(t, 250.3, ex.Calories)

	// Other days remain untouched.
	assert.Zero(t, stats.Diet[1].Calories)
	assert.Equal(t, "Tuesday", stats.Diet[1].Weekday)
}

func TestWeeklyStatsIsOrderInsensitive(t *testing.T) {
	itemA := records.Food{Carbohydrate: fl(12.25), Calories: fl(100)}
	itemB := records.Food{Carbohydrate: fl(7.5), Calories: fl(55.25)}

	forward := &fakeRecords{diets: map[string][]records.DietRecord{
		"2024-06-12": {{Items: []records.Food{itemA, itemB}}},
	}}
	reversed := &fakeRecords{diets: map[string][]records.DietRecord{
		"2024-06-12": {{Items: []records.Food{itemB, itemA}}},
	}}

	a, err := NewAggregator(forward, &fakeRecords{}).WeeklyStats(context.Background(), "u", day("2024-06-12"))
	require.NoError(t, err)
	b, err := NewAggregator(reversed, &fakeRecords{}).WeeklyStats(context.Background(), "u", day("2024-06-12"))
	require.NoError(t, err)

	assert.Equal(t, a.Diet, b.Diet)
}

func TestRoundOneDecimal(t *testing.T) {
	assert.Equal(t, 10.3, roundOneDecimal(10.25))
	assert.Equal(t, 10.2, roundOneDecimal(10.24))
	assert.Equal(t, -10.3, roundOneDecimal(-10.25)) // away from zero, not to even
	assert.Equal(t, 0.0, roundOneDecimal(0))
}
