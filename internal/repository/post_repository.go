package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/fitness-service/internal/domain"
)

// PostRepository encapsulates feed post persistence.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, page Page) ([]domain.Post, error)
}

type postRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository instantiates repository.
func NewPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postRepository{pool: pool}
}

const postColumns = `id, user_id, content, image_url, like_count, created_at, updated_at`

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	const query = `
        INSERT INTO posts (user_id, content, image_url)
        VALUES ($1,$2,$3)
        RETURNING id, like_count, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		post.UserID,
		post.Content,
		post.ImageURL,
	).Scan(&post.ID, &post.LikeCount, &post.CreatedAt, &post.UpdatedAt)
}

func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	const query = `
        UPDATE posts SET content=$1, image_url=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING like_count, updated_at`
	return r.pool.QueryRow(ctx, query,
		post.Content,
		post.ImageURL,
		post.ID,
	).Scan(&post.LikeCount, &post.UpdatedAt)
}

// Delete removes the post. Comments and likes go with it via ON DELETE CASCADE.
func (r *postRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	query := `SELECT ` + postColumns + ` FROM posts WHERE id=$1`
	return scanPost(r.pool.QueryRow(ctx, query, id))
}

func (r *postRepository) List(ctx context.Context, page Page) ([]domain.Post, error) {
	page = page.Normalize()
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var p domain.Post
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Content,
		&p.ImageURL,
		&p.LikeCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
