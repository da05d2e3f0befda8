package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/fitness-service/internal/domain"
)

// WorkoutRepository encapsulates workout persistence.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) error
	Update(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Workout, error)
	List(ctx context.Context, page Page) ([]domain.Workout, error)
}

type workoutRepository struct {
	pool *pgxpool.Pool
}

// NewWorkoutRepository instantiates repository.
func NewWorkoutRepository(pool *pgxpool.Pool) WorkoutRepository {
	return &workoutRepository{pool: pool}
}

const workoutColumns = `id, user_id, title, description, duration_minutes, difficulty, created_at, updated_at`

func (r *workoutRepository) Create(ctx context.Context, workout *domain.Workout) error {
	const query = `
        INSERT INTO workouts (user_id, title, description, duration_minutes, difficulty)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		workout.UserID,
		workout.Title,
		workout.Description,
		workout.DurationMinutes,
		workout.Difficulty,
	).Scan(&workout.ID, &workout.CreatedAt, &workout.UpdatedAt)
}

func (r *workoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	const query = `
        UPDATE workouts SET title=$1, description=$2, duration_minutes=$3, difficulty=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		workout.Title,
		workout.Description,
		workout.DurationMinutes,
		workout.Difficulty,
		workout.ID,
	).Scan(&workout.UpdatedAt)
}

func (r *workoutRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM workouts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *workoutRepository) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE id=$1`
	return scanWorkout(r.pool.QueryRow(ctx, query, id))
}

func (r *workoutRepository) List(ctx context.Context, page Page) ([]domain.Workout, error) {
	page = page.Normalize()
	query := `SELECT ` + workoutColumns + ` FROM workouts ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []domain.Workout
	for rows.Next() {
		workout, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *workout)
	}
	return workouts, rows.Err()
}

func scanWorkout(row pgx.Row) (*domain.Workout, error) {
	var w domain.Workout
	if err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.Title,
		&w.Description,
		&w.DurationMinutes,
		&w.Difficulty,
		&w.CreatedAt,
		&w.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &w, nil
}
