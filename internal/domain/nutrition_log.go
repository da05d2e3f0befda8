package domain

import "time"

// NutritionLog is a private meal entry.
type NutritionLog struct {
	ID        string
	UserID    string
	Meal      string
	Calories  int
	ProteinG  float64
	CarbsG    float64
	FatG      float64
	LoggedAt  time.Time
	CreatedAt time.Time
}
