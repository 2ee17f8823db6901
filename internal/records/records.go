// Package records holds the raw per-day diet and exercise entries the
// weekly aggregation reads from.
package records

import (
	"context"
	"time"
)

// Food is one nutrient line item inside a diet record. Nutrient fields are
// nil when the user did not log them; aggregation treats nil as zero.
type Food struct {
	Name         string   `json:"name"`
	Carbohydrate *float64 `json:"carbohydrate,omitempty"`
	Protein      *float64 `json:"protein,omitempty"`
	Fat          *float64 `json:"fat,omitempty"`
	Calories     *float64 `json:"calories,omitempty"`
}

// DietRecord is one logged meal with its food items.
type DietRecord struct {
	ID         int64     `json:"id"`
	Email      string    `json:"-"`
	RecordDate time.Time `json:"recordDate"`
	MealType   string    `json:"mealType"`
	Items      []Food    `json:"items"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ExerciseRecord is one logged exercise session.
type ExerciseRecord struct {
	ID              int64     `json:"id"`
	Email           string    `json:"-"`
	RecordDate      time.Time `json:"recordDate"`
	Name            string    `json:"name"`
	DurationMinutes *float64  `json:"durationMinutes,omitempty"`
	Calories        *float64  `json:"calories,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// DietSource reads a user's diet records for a single day, at most limit rows.
type DietSource interface {
	DietRecordsByDate(ctx context.Context, email string, date time.Time, limit int) ([]DietRecord, error)
}

// ExerciseSource reads a user's exercise records for a single day, at most
// limit rows.
type ExerciseSource interface {
	ExerciseRecordsByDate(ctx context.Context, email string, date time.Time, limit int) ([]ExerciseRecord, error)
}

// Store extends the read sources with the write side the record API uses.
type Store interface {
	DietSource
	ExerciseSource
	InsertDietRecord(ctx context.Context, rec *DietRecord) error
	InsertExerciseRecord(ctx context.Context, rec *ExerciseRecord) error
}
