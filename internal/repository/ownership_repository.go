package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/fitness-service/internal/domain"
)

// OwnershipRepository resolves the owning user of a resource. It satisfies
// auth.OwnershipResolver.
type OwnershipRepository struct {
	pool *pgxpool.Pool
}

// NewOwnershipRepository constructs repository.
func NewOwnershipRepository(pool *pgxpool.Pool) *OwnershipRepository {
	return &OwnershipRepository{pool: pool}
}

var ownerQueries = map[domain.ResourceKind]string{
	domain.ResourceUser:         `SELECT id FROM users WHERE id=$1`,
	domain.ResourceWorkout:      `SELECT user_id FROM workouts WHERE id=$1`,
	domain.ResourcePost:         `SELECT user_id FROM posts WHERE id=$1`,
	domain.ResourceComment:      `SELECT user_id FROM comments WHERE id=$1`,
	domain.ResourceNutritionLog: `SELECT user_id FROM nutrition_logs WHERE id=$1`,
}

// OwnerOf returns the owner's user id. A missing row surfaces as pgx.ErrNoRows.
func (r *OwnershipRepository) OwnerOf(ctx context.Context, kind domain.ResourceKind, id string) (string, error) {
	query, ok := ownerQueries[kind]
	if !ok {
		return "", fmt.Errorf("no owner lookup for resource kind %q", kind)
	}
	if err := checkID(id); err != nil {
		return "", fmt.Errorf("lookup %s owner: %w", kind, err)
	}
	var owner string
	if err := r.pool.QueryRow(ctx, query, id).Scan(&owner); err != nil {
		return "", fmt.Errorf("lookup %s owner: %w", kind, err)
	}
	return owner, nil
}
