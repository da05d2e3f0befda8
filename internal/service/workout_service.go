package service

import (
	"context"

	"github.com/spec-kit/fitness-service/internal/domain"
	"github.com/spec-kit/fitness-service/internal/repository"
)

// WorkoutInput describes workout create and update payloads.
type WorkoutInput struct {
	Title           string
	Description     string
	DurationMinutes int
	Difficulty      string
}

// WorkoutService manages workouts. Callers authorize first.
type WorkoutService struct {
	workouts repository.WorkoutRepository
}

// NewWorkoutService constructs the service.
func NewWorkoutService(workouts repository.WorkoutRepository) *WorkoutService {
	return &WorkoutService{workouts: workouts}
}

// List returns a page of workouts, newest first.
func (s *WorkoutService) List(ctx context.Context, page repository.Page) ([]domain.Workout, error) {
	return s.workouts.List(ctx, page)
}

// Get returns one workout.
func (s *WorkoutService) Get(ctx context.Context, id string) (*domain.Workout, error) {
	return s.workouts.GetByID(ctx, id)
}

// Create stores a workout owned by ownerID.
func (s *WorkoutService) Create(ctx context.Context, ownerID string, input WorkoutInput) (*domain.Workout, error) {
	workout := &domain.Workout{
		UserID:          ownerID,
		Title:           input.Title,
		Description:     input.Description,
		DurationMinutes: input.DurationMinutes,
		Difficulty:      input.Difficulty,
	}
	if err := s.workouts.Create(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// Update replaces the editable fields. Ownership never changes.
func (s *WorkoutService) Update(ctx context.Context, id string, input WorkoutInput) (*domain.Workout, error) {
	workout, err := s.workouts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	workout.Title = input.Title
	workout.Description = input.Description
	workout.DurationMinutes = input.DurationMinutes
	workout.Difficulty = input.Difficulty
	if err := s.workouts.Update(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// Delete removes a workout.
func (s *WorkoutService) Delete(ctx context.Context, id string) error {
	return s.workouts.Delete(ctx, id)
}
