package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ai-health-coach/internal/coach"
)

// FindMealPlan returns the plan and its items for (email, planDate), or
// (nil, nil, nil) when none exists.
func (s *Store) FindMealPlan(ctx context.Context, email string, planDate time.Time) (*coach.MealPlan, []coach.MealPlanItem, error) {
	plan := &coach.MealPlan{Email: email}
	var planDateKey string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, plan_date, prompt_context, raw_response, created_at
		 FROM ai_meal_plans
		 WHERE email = ? AND plan_date = ?`,
		email, dateKey(planDate)).
		Scan(&plan.ID, &planDateKey, &plan.PromptContext, &plan.RawResponse, &plan.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query meal plan: %w", err)
	}
	if plan.PlanDate, err = parseDateKey(planDateKey); err != nil {
		return nil, nil, fmt.Errorf("failed to parse plan date %q: %w", planDateKey, err)
	}

	items, err := s.mealPlanItems(ctx, plan.ID)
	if err != nil {
		return nil, nil, err
	}
	return plan, items, nil
}

// InsertMealPlan writes the plan and its items in one transaction. A
// duplicate (email, plan_date) surfaces coach.ErrConflict.
func (s *Store) InsertMealPlan(ctx context.Context, plan *coach.MealPlan, items []coach.MealPlanItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO ai_meal_plans (email, plan_date, prompt_context, raw_response, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		plan.Email, dateKey(plan.PlanDate), plan.PromptContext, plan.RawResponse, plan.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("meal plan for %s: %w", dateKey(plan.PlanDate), coach.ErrConflict)
		}
		return fmt.Errorf("failed to insert meal plan: %w", err)
	}
	planID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read meal plan id: %w", err)
	}
	plan.ID = planID

	for _, item := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO ai_meal_plan_items (plan_id, meal_time, menu_description, calories, highlight)
			 VALUES (?, ?, ?, ?, ?)`,
			planID, item.MealTime, item.Menu, item.Calories, item.Highlight)
		if err != nil {
			return fmt.Errorf("failed to insert meal plan item: %w", err)
		}
	}
	return tx.Commit()
}

func (s *Store) mealPlanItems(ctx context.Context, planID int64) ([]coach.MealPlanItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT meal_time, menu_description, calories, highlight
		 FROM ai_meal_plan_items
		 WHERE plan_id = ?
		 ORDER BY id`,
		planID)
	if err != nil {
		return nil, fmt.Errorf("failed to query meal plan items: %w", err)
	}
	defer rows.Close()

	var items []coach.MealPlanItem
	for rows.Next() {
		var item coach.MealPlanItem
		if err := rows.Scan(&item.MealTime, &item.Menu, &item.Calories, &item.Highlight); err != nil {
			return nil, fmt.Errorf("failed to scan meal plan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
