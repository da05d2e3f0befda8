package domain

import "time"

// Workout is a training session authored by a coach or admin.
type Workout struct {
	ID              string
	UserID          string
	Title           string
	Description     string
	DurationMinutes int
	Difficulty      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
