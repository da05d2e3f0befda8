package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LikeRepository manages post likes and the denormalized like counter.
type LikeRepository interface {
	// Toggle likes the post for userID, or unlikes it when already liked.
	Toggle(ctx context.Context, postID, userID string) (liked bool, count int, err error)
}

type likeRepository struct {
	pool *pgxpool.Pool
}

// NewLikeRepository constructs repository.
func NewLikeRepository(pool *pgxpool.Pool) LikeRepository {
	return &likeRepository{pool: pool}
}

func (r *likeRepository) Toggle(ctx context.Context, postID, userID string) (bool, int, error) {
	if err := checkID(postID); err != nil {
		return false, 0, err
	}

	var (
		liked bool
		count int
	)
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		// Lock the post row so concurrent toggles serialize on the counter.
		if err := tx.QueryRow(ctx, `SELECT like_count FROM posts WHERE id=$1 FOR UPDATE`, postID).Scan(&count); err != nil {
			return err
		}

		cmd, err := tx.Exec(ctx, `DELETE FROM likes WHERE post_id=$1 AND user_id=$2`, postID, userID)
		if err != nil {
			return err
		}
		delta := -1
		if cmd.RowsAffected() == 0 {
			if _, err := tx.Exec(ctx, `INSERT INTO likes (post_id, user_id) VALUES ($1,$2)`, postID, userID); err != nil {
				return err
			}
			delta = 1
			liked = true
		}

		return tx.QueryRow(ctx,
			`UPDATE posts SET like_count = GREATEST(like_count + $1, 0) WHERE id=$2 RETURNING like_count`,
			delta, postID,
		).Scan(&count)
	})
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}
