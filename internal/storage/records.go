package storage

import (
	"context"
	"fmt"
	"time"

	"ai-health-coach/internal/records"
)

// DietRecordsByDate returns at most limit diet records logged on date, oldest
// first, with their food items attached.
func (s *Store) DietRecordsByDate(ctx context.Context, email string, date time.Time, limit int) ([]records.DietRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, meal_type, created_at
		 FROM diet_records
		 WHERE email = ? AND record_date = ?
		 ORDER BY id
		 LIMIT ?`,
		email, dateKey(date), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query diet records: %w", err)
	}
	defer rows.Close()

	day := dayOf(date)
	var recs []records.DietRecord
	for rows.Next() {
		rec := records.DietRecord{Email: email, RecordDate: day}
		if err := rows.Scan(&rec.ID, &rec.MealType, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan diet record: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range recs {
		items, err := s.dietFoods(ctx, recs[i].ID)
		if err != nil {
			return nil, err
		}
		recs[i].Items = items
	}
	return recs, nil
}

// ExerciseRecordsByDate returns at most limit exercise records logged on
// date, oldest first.
func (s *Store) ExerciseRecordsByDate(ctx context.Context, email string, date time.Time, limit int) ([]records.ExerciseRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, duration_minutes, calories, created_at
		 FROM exercise_records
		 WHERE email = ? AND record_date = ?
		 ORDER BY id
		 LIMIT ?`,
		email, dateKey(date), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query exercise records: %w", err)
	}
	defer rows.Close()

	day := dayOf(date)
	var recs []records.ExerciseRecord
	for rows.Next() {
		rec := records.ExerciseRecord{Email: email, RecordDate: day}
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.DurationMinutes, &rec.Calories, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exercise record: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// InsertDietRecord writes the record and its food items in one transaction.
func (s *Store) InsertDietRecord(ctx context.Context, rec *records.DietRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO diet_records (email, record_date, meal_type, created_at)
		 VALUES (?, ?, ?, ?)`,
		rec.Email, dateKey(rec.RecordDate), rec.MealType, rec.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert diet record: %w", err)
	}
	if rec.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read diet record id: %w", err)
	}

	for _, item := range rec.Items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO diet_foods (diet_record_id, name, carbohydrate, protein, fat, calories)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			rec.ID, item.Name, item.Carbohydrate, item.Protein, item.Fat, item.Calories)
		if err != nil {
			return fmt.Errorf("failed to insert diet food: %w", err)
		}
	}
	return tx.Commit()
}

// InsertExerciseRecord writes a single exercise record.
func (s *Store) InsertExerciseRecord(ctx context.Context, rec *records.ExerciseRecord) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO exercise_records (email, record_date, name, duration_minutes, calories, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Email, dateKey(rec.RecordDate), rec.Name, rec.DurationMinutes, rec.Calories, rec.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert exercise record: %w", err)
	}
	if rec.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read exercise record id: %w", err)
	}
	return nil
}

func (s *Store) dietFoods(ctx context.Context, recordID int64) ([]records.Food, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, carbohydrate, protein, fat, calories
		 FROM diet_foods
		 WHERE diet_record_id = ?
		 ORDER BY id`,
		recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query diet foods: %w", err)
	}
	defer rows.Close()

	var foods []records.Food
	for rows.Next() {
		var f records.Food
		if err := rows.Scan(&f.Name, &f.Carbohydrate, &f.Protein, &f.Fat, &f.Calories); err != nil {
			return nil, fmt.Errorf("failed to scan diet food: %w", err)
		}
		foods = append(foods, f)
	}
	return foods, rows.Err()
}
