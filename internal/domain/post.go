package domain

import "time"

// Post is a social feed entry.
type Post struct {
	ID        string
	UserID    string
	Content   string
	ImageURL  string
	LikeCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Comment belongs to a post.
type Comment struct {
	ID        string
	PostID    string
	UserID    string
	Content   string
	CreatedAt time.Time
}

// Like records that a user liked a post.
type Like struct {
	PostID    string
	UserID    string
	CreatedAt time.Time
}
