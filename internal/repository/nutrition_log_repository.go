package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/fitness-service/internal/domain"
)

// NutritionLogRepository stores private meal entries.
type NutritionLogRepository interface {
	Create(ctx context.Context, log *domain.NutritionLog) error
	Update(ctx context.Context, log *domain.NutritionLog) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.NutritionLog, error)
	ListByUser(ctx context.Context, userID string, page Page) ([]domain.NutritionLog, error)
}

type nutritionLogRepository struct {
	pool *pgxpool.Pool
}

// NewNutritionLogRepository constructs repository.
func NewNutritionLogRepository(pool *pgxpool.Pool) NutritionLogRepository {
	return &nutritionLogRepository{pool: pool}
}

const nutritionColumns = `id, user_id, meal, calories, protein_g, carbs_g, fat_g, logged_at, created_at`

func (r *nutritionLogRepository) Create(ctx context.Context, log *domain.NutritionLog) error {
	const query = `
        INSERT INTO nutrition_logs (user_id, meal, calories, protein_g, carbs_g, fat_g, logged_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		log.UserID,
		log.Meal,
		log.Calories,
		log.ProteinG,
		log.CarbsG,
		log.FatG,
		log.LoggedAt,
	).Scan(&log.ID, &log.CreatedAt)
}

func (r *nutritionLogRepository) Update(ctx context.Context, log *domain.NutritionLog) error {
	const query = `
        UPDATE nutrition_logs SET meal=$1, calories=$2, protein_g=$3, carbs_g=$4, fat_g=$5, logged_at=$6
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		log.Meal,
		log.Calories,
		log.ProteinG,
		log.CarbsG,
		log.FatG,
		log.LoggedAt,
		log.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *nutritionLogRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM nutrition_logs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *nutritionLogRepository) GetByID(ctx context.Context, id string) (*domain.NutritionLog, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	query := `SELECT ` + nutritionColumns + ` FROM nutrition_logs WHERE id=$1`
	return scanNutritionLog(r.pool.QueryRow(ctx, query, id))
}

func (r *nutritionLogRepository) ListByUser(ctx context.Context, userID string, page Page) ([]domain.NutritionLog, error) {
	page = page.Normalize()
	query := `SELECT ` + nutritionColumns + ` FROM nutrition_logs
        WHERE user_id=$1 ORDER BY logged_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.NutritionLog
	for rows.Next() {
		log, err := scanNutritionLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *log)
	}
	return logs, rows.Err()
}

func scanNutritionLog(row pgx.Row) (*domain.NutritionLog, error) {
	var l domain.NutritionLog
	if err := row.Scan(
		&l.ID,
		&l.UserID,
		&l.Meal,
		&l.Calories,
		&l.ProteinG,
		&l.CarbsG,
		&l.FatG,
		&l.LoggedAt,
		&l.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &l, nil
}
