package service

import (
	"context"
	"time"

	"github.com/spec-kit/fitness-service/internal/domain"
	"github.com/spec-kit/fitness-service/internal/repository"
)

// NutritionInput describes a meal entry.
type NutritionInput struct {
	Meal     string
	Calories int
	ProteinG float64
	CarbsG   float64
	FatG     float64
	// LoggedAt defaults to now when zero.
	LoggedAt time.Time
}

// NutritionService manages private nutrition logs.
type NutritionService struct {
	logs repository.NutritionLogRepository
	now  func() time.Time
}

// NewNutritionService constructs the service.
func NewNutritionService(logs repository.NutritionLogRepository) *NutritionService {
	return &NutritionService{logs: logs, now: time.Now}
}

// List returns only userID's own entries.
func (s *NutritionService) List(ctx context.Context, userID string, page repository.Page) ([]domain.NutritionLog, error) {
	return s.logs.ListByUser(ctx, userID, page)
}

// Create stores an entry owned by userID.
func (s *NutritionService) Create(ctx context.Context, userID string, input NutritionInput) (*domain.NutritionLog, error) {
	log := &domain.NutritionLog{UserID: userID}
	s.apply(log, input)
	if err := s.logs.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// Update replaces an entry's fields.
func (s *NutritionService) Update(ctx context.Context, id string, input NutritionInput) (*domain.NutritionLog, error) {
	log, err := s.logs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.apply(log, input)
	if err := s.logs.Update(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// Delete removes an entry.
func (s *NutritionService) Delete(ctx context.Context, id string) error {
	return s.logs.Delete(ctx, id)
}

func (s *NutritionService) apply(log *domain.NutritionLog, input NutritionInput) {
	log.Meal = input.Meal
	log.Calories = input.Calories
	log.ProteinG = input.ProteinG
	log.CarbsG = input.CarbsG
	log.FatG = input.FatG
	log.LoggedAt = input.LoggedAt
	if log.LoggedAt.IsZero() {
		log.LoggedAt = s.now().UTC()
	}
}
