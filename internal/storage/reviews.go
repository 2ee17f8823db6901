package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ai-health-coach/internal/coach"
)

// FindExerciseReview returns the review for (email, evaluationDate), or
// (nil, nil) when none exists.
func (s *Store) FindExerciseReview(ctx context.Context, email string, evaluationDate time.Time) (*coach.ExerciseReview, error) {
	review := &coach.ExerciseReview{Email: email}
	var weekStartKey, evaluationKey string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, week_start_date, evaluation_date, summary, recommendation, created_at
		 FROM ai_exercise_reviews
		 WHERE email = ? AND evaluation_date = ?`,
		email, dateKey(evaluationDate)).
		Scan(&review.ID, &weekStartKey, &evaluationKey, &review.Summary, &review.Recommendation, &review.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query exercise review: %w", err)
	}
	if review.WeekStart, err = parseDateKey(weekStartKey); err != nil {
		return nil, fmt.Errorf("failed to parse week start %q: %w", weekStartKey, err)
	}
	if review.EvaluationDate, err = parseDateKey(evaluationKey); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation date %q: %w", evaluationKey, err)
	}
	return review, nil
}

// InsertExerciseReview writes a review; a duplicate (email, evaluation_date)
// surfaces coach.ErrConflict.
func (s *Store) InsertExerciseReview(ctx context.Context, review *coach.ExerciseReview) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO ai_exercise_reviews (email, week_start_date, evaluation_date, summary, recommendation, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		review.Email, dateKey(review.WeekStart), dateKey(review.EvaluationDate),
		review.Summary, review.Recommendation, review.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("exercise review for %s: %w", dateKey(review.EvaluationDate), coach.ErrConflict)
		}
		return fmt.Errorf("failed to insert exercise review: %w", err)
	}
	if review.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read exercise review id: %w", err)
	}
	return nil
}

// FindNutritionReview returns the review for (email, evaluationDate), or
// (nil, nil) when none exists.
func (s *Store) FindNutritionReview(ctx context.Context, email string, evaluationDate time.Time) (*coach.NutritionReview, error) {
	review := &coach.NutritionReview{Email: email}
	var weekStartKey, evaluationKey string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, week_start_date, evaluation_date, summary,
		        carbohydrate_status, protein_status, fat_status, calorie_status, created_at
		 FROM ai_nutrition_reviews
		 WHERE email = ? AND evaluation_date = ?`,
		email, dateKey(evaluationDate)).
		Scan(&review.ID, &weekStartKey, &evaluationKey, &review.Summary,
			&review.CarbohydrateStatus, &review.ProteinStatus, &review.FatStatus,
			&review.CalorieStatus, &review.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query nutrition review: %w", err)
	}
	if review.WeekStart, err = parseDateKey(weekStartKey); err != nil {
		return nil, fmt.Errorf("failed to parse week start %q: %w", weekStartKey, err)
	}
	if review.EvaluationDate, err = parseDateKey(evaluationKey); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation date %q: %w", evaluationKey, err)
	}
	return review, nil
}

// InsertNutritionReview writes a review; a duplicate (email, evaluation_date)
// surfaces coach.ErrConflict.
func (s *Store) InsertNutritionReview(ctx context.Context, review *coach.NutritionReview) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO ai_nutrition_reviews
		     (email, week_start_date, evaluation_date, summary,
		      carbohydrate_status, protein_status, fat_status, calorie_status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		review.Email, dateKey(review.WeekStart), dateKey(review.EvaluationDate), review.Summary,
		review.CarbohydrateStatus, review.ProteinStatus, review.FatStatus, review.CalorieStatus,
		review.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("nutrition review for %s: %w", dateKey(review.EvaluationDate), coach.ErrConflict)
		}
		return fmt.Errorf("failed to insert nutrition review: %w", err)
	}
	if review.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read nutrition review id: %w", err)
	}
	return nil
}
