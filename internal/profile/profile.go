// Package profile holds a user's health profile, the static context every
// coaching prompt embeds.
package profile

import (
	"context"
	"strings"
	"time"
)

// HealthProfile carries the health fields of a user's profile. Optional
// fields are nil when the user never filled them in; prompt rendering
// substitutes "not provided" text.
type HealthProfile struct {
	Email              string    `json:"-"`
	Height             *float64  `json:"height,omitempty"`
	Weight             *float64  `json:"weight,omitempty"`
	GoalWeight         *float64  `json:"goalWeight,omitempty"`
	ActivityLevel      *string   `json:"activityLevel,omitempty"`
	HasDiabetes        bool      `json:"hasDiabetes"`
	HasHypertension    bool      `json:"hasHypertension"`
	HasHyperlipidemia  bool      `json:"hasHyperlipidemia"`
	OtherDisease       *string   `json:"otherDisease,omitempty"`
	Goal               *string   `json:"goal,omitempty"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Conditions lists the recorded conditions as a display string, or "none".
func (p *HealthProfile) Conditions() string {
	var out []string
	if p.HasDiabetes {
		out = append(out, "diabetes")
	}
	if p.HasHypertension {
		out = append(out, "hypertension")
	}
	if p.HasHyperlipidemia {
		out = append(out, "hyperlipidemia")
	}
	if p.OtherDisease != nil && strings.TrimSpace(*p.OtherDisease) != "" {
		out = append(out, *p.OtherDisease)
	}
	if len(out) == 0 {
		return "none"
	}
	return strings.Join(out, ", ")
}

// Store reads and writes health profiles. A missing profile is reported as
// a not-found error, never a nil row.
type Store interface {
	HealthProfile(ctx context.Context, email string) (*HealthProfile, error)
	UpsertHealthProfile(ctx context.Context, p *HealthProfile) error
}
