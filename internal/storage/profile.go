package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ai-health-coach/internal/coach"
	"ai-health-coach/internal/profile"
)

// HealthProfile returns the profile for email, or coach.ErrNotFound when the
// user has never saved one.
func (s *Store) HealthProfile(ctx context.Context, email string) (*profile.HealthProfile, error) {
	p := &profile.HealthProfile{Email: email}
	err := s.db.QueryRowContext(ctx,
		`SELECT height, weight, goal_weight, activity_level,
		        has_diabetes, has_hypertension, has_hyperlipidemia,
		        other_disease, goal, updated_at
		 FROM profiles
		 WHERE email = ?`,
		email).
		Scan(&p.Height, &p.Weight, &p.GoalWeight, &p.ActivityLevel,
			&p.HasDiabetes, &p.HasHypertension, &p.HasHyperlipidemia,
			&p.OtherDisease, &p.Goal, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile for %s: %w", email, coach.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}
	return p, nil
}

// UpsertHealthProfile creates or replaces the profile row keyed by email.
func (s *Store) UpsertHealthProfile(ctx context.Context, p *profile.HealthProfile) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles
		     (email, height, weight, goal_weight, activity_level,
		      has_diabetes, has_hypertension, has_hyperlipidemia,
		      other_disease, goal, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (email) DO UPDATE SET
		     height = excluded.height,
		     weight = excluded.weight,
		     goal_weight = excluded.goal_weight,
		     activity_level = excluded.activity_level,
		     has_diabetes = excluded.has_diabetes,
		     has_hypertension = excluded.has_hypertension,
		     has_hyperlipidemia = excluded.has_hyperlipidemia,
		     other_disease = excluded.other_disease,
		     goal = excluded.goal,
		     updated_at = excluded.updated_at`,
		p.Email, p.Height, p.Weight, p.GoalWeight, p.ActivityLevel,
		p.HasDiabetes, p.HasHypertension, p.HasHyperlipidemia,
		p.OtherDisease, p.Goal, p.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
