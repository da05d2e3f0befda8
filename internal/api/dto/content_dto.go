package dto

import (
	"time"

	"github.com/spec-kit/fitness-service/internal/domain"
)

// WorkoutRequest payload for creating or replacing a workout.
type WorkoutRequest struct {
	Title           string `json:"title" validate:"required,max=200"`
	Description     string `json:"description" validate:"max=2000"`
	DurationMinutes int    `json:"duration_minutes" validate:"gt=0,lte=1440"`
	Difficulty      string `json:"difficulty" validate:"required,oneof=easy medium hard"`
}

// WorkoutResponse view.
type WorkoutResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	Difficulty      string    `json:"difficulty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewWorkoutResponse maps a domain workout.
func NewWorkoutResponse(w *domain.Workout) WorkoutResponse {
	return WorkoutResponse{
		ID:              w.ID,
		UserID:          w.UserID,
		Title:           w.Title,
		Description:     w.Description,
		DurationMinutes: w.DurationMinutes,
		Difficulty:      w.Difficulty,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}

// PostRequest payload for creating or editing a post.
type PostRequest struct {
	Content  string `json:"content" validate:"required,max=2000"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

// PostResponse view.
type PostResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	LikeCount int       `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPostResponse maps a domain post.
func NewPostResponse(p *domain.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		LikeCount: p.LikeCount,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// CommentRequest payload.
type CommentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// CommentResponse view.
type CommentResponse struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCommentResponse maps a domain comment.
func NewCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

// NutritionRequest payload for a meal entry.
type NutritionRequest struct {
	Meal     string     `json:"meal" validate:"required,max=100"`
	Calories int        `json:"calories" validate:"gte=0,lte=20000"`
	ProteinG float64    `json:"protein_g" validate:"gte=0,lte=2000"`
	CarbsG   float64    `json:"carbs_g" validate:"gte=0,lte=2000"`
	FatG     float64    `json:"fat_g" validate:"gte=0,lte=2000"`
	LoggedAt *time.Time `json:"logged_at"`
}

// NutritionResponse view.
type NutritionResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Meal      string    `json:"meal"`
	Calories  int       `json:"calories"`
	ProteinG  float64   `json:"protein_g"`
	CarbsG    float64   `json:"carbs_g"`
	FatG      float64   `json:"fat_g"`
	LoggedAt  time.Time `json:"logged_at"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNutritionResponse maps a domain nutrition log.
func NewNutritionResponse(l *domain.NutritionLog) NutritionResponse {
	return NutritionResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		Meal:      l.Meal,
		Calories:  l.Calories,
		ProteinG:  l.ProteinG,
		CarbsG:    l.CarbsG,
		FatG:      l.FatG,
		LoggedAt:  l.LoggedAt,
		CreatedAt: l.CreatedAt,
	}
}
