package domain

import "time"

// Profile represents the user's health profile as served by the backend
type Profile struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	BirthDate string    `json:"birth_date,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	HeightCM  float64   `json:"height_cm,omitempty"`
	WeightKG  float64   `json:"weight_kg,omitempty"`
	Goal      string    `json:"goal,omitempty"`
	// Picture is a data URI the backend may serve alongside the profile.
	Picture   string    `json:"picture,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// ProfileUpdate represents a partial profile edit submitted by the user.
// Zero-valued fields are omitted from the request payload.
type ProfileUpdate struct {
	Name     string  `json:"name,omitempty" validate:"omitempty,max=255"`
	Email    string  `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Gender   string  `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	HeightCM float64 `json:"height_cm,omitempty" validate:"omitempty,gt=0,lt=300"`
	WeightKG float64 `json:"weight_kg,omitempty" validate:"omitempty,gt=0,lt=700"`
	Goal     string  `json:"goal,omitempty" validate:"omitempty,max=500"`
}
