package service

import (
	"context"

	"github.com/spec-kit/fitness-service/internal/domain"
	"github.com/spec-kit/fitness-service/internal/repository"
)

// PostInput describes post create and update payloads.
type PostInput struct {
	Content  string
	ImageURL string
}

// LikeResult reports the state after a like toggle.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// SocialService manages the feed: posts, comments and likes.
type SocialService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	likes    repository.LikeRepository
}

// SocialDependencies bundles repositories for the social service.
type SocialDependencies struct {
	PostRepo    repository.PostRepository
	CommentRepo repository.CommentRepository
	LikeRepo    repository.LikeRepository
}

// NewSocialService constructs the service.
func NewSocialService(deps SocialDependencies) *SocialService {
	return &SocialService{
		posts:    deps.PostRepo,
		comments: deps.CommentRepo,
		likes:    deps.LikeRepo,
	}
}

// ListPosts returns a page of the feed, newest first.
func (s *SocialService) ListPosts(ctx context.Context, page repository.Page) ([]domain.Post, error) {
	return s.posts.List(ctx, page)
}

// GetPost returns one post.
func (s *SocialService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// CreatePost stores a post owned by ownerID.
func (s *SocialService) CreatePost(ctx context.Context, ownerID string, input PostInput) (*domain.Post, error) {
	post := &domain.Post{UserID: ownerID, Content: input.Content, ImageURL: input.ImageURL}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost replaces a post's content.
func (s *SocialService) UpdatePost(ctx context.Context, id string, input PostInput) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Content = input.Content
	post.ImageURL = input.ImageURL
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post with its comments and likes.
func (s *SocialService) DeletePost(ctx context.Context, id string) error {
	return s.posts.Delete(ctx, id)
}

// ListComments returns a page of a post's comments, oldest first.
func (s *SocialService) ListComments(ctx context.Context, postID string, page repository.Page) ([]domain.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID, page)
}

// AddComment attaches a comment by userID to the post.
func (s *SocialService) AddComment(ctx context.Context, postID, userID, content string) (*domain.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	comment := &domain.Comment{PostID: postID, UserID: userID, Content: content}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment.
func (s *SocialService) DeleteComment(ctx context.Context, id string) error {
	return s.comments.Delete(ctx, id)
}

// ToggleLike likes or unlikes the post for userID.
func (s *SocialService) ToggleLike(ctx context.Context, postID, userID string) (LikeResult, error) {
	liked, count, err := s.likes.Toggle(ctx, postID, userID)
	if err != nil {
		return LikeResult{}, err
	}
	return LikeResult{Liked: liked, LikeCount: count}, nil
}
