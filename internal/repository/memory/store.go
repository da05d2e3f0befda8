// Package memory is an in-process implementation of the repository
// interfaces. It backs the service when no Postgres DSN is configured.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/fitness-service/internal/domain"
	"github.com/spec-kit/fitness-service/internal/repository"
)

type likeKey struct {
	postID string
	userID string
}

// Store holds every table behind one lock.
type Store struct {
	mu       sync.RWMutex
	now      func() time.Time
	users    map[string]domain.User
	workouts map[string]domain.Workout
	posts    map[string]domain.Post
	comments map[string]domain.Comment
	likes    map[likeKey]time.Time
	logs     map[string]domain.NutritionLog
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		now:      time.Now,
		users:    map[string]domain.User{},
		workouts: map[string]domain.Workout{},
		posts:    map[string]domain.Post{},
		comments: map[string]domain.Comment{},
		likes:    map[likeKey]time.Time{},
		logs:     map[string]domain.NutritionLog{},
	}
}

// OwnerOf satisfies auth.OwnershipResolver.
func (s *Store) OwnerOf(_ context.Context, kind domain.ResourceKind, id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		owner string
		ok    bool
	)
	switch kind {
	case domain.ResourceUser:
		_, ok = s.users[id]
		owner = id
	case domain.ResourceWorkout:
		var w domain.Workout
		w, ok = s.workouts[id]
		owner = w.UserID
	case domain.ResourcePost:
		var p domain.Post
		p, ok = s.posts[id]
		owner = p.UserID
	case domain.ResourceComment:
		var c domain.Comment
		c, ok = s.comments[id]
		owner = c.UserID
	case domain.ResourceNutritionLog:
		var l domain.NutritionLog
		l, ok = s.logs[id]
		owner = l.UserID
	default:
		return "", fmt.Errorf("no owner lookup for resource kind %q", kind)
	}
	if !ok {
		return "", fmt.Errorf("lookup %s owner: %w", kind, pgx.ErrNoRows)
	}
	return owner, nil
}

func (s *Store) stamp() time.Time {
	return s.now().UTC()
}

func paginate[T any](items []T, page repository.Page) []T {
	page = page.Normalize()
	if page.Offset >= len(items) {
		return nil
	}
	end := page.Offset + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[page.Offset:end]
}

// Users returns the credential store view.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = r.s.stamp()
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.ID] = *user
	return nil
}

func (r userRepo) UpdateProfile(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.users[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Name, stored.Bio, stored.AvatarURL = user.Name, user.Bio, user.AvatarURL
	stored.UpdatedAt = r.s.stamp()
	user.UpdatedAt = stored.UpdatedAt
	r.s.users[user.ID] = stored
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// Workouts returns the workout table.
func (s *Store) Workouts() repository.WorkoutRepository { return workoutRepo{s} }

type workoutRepo struct{ s *Store }

func (r workoutRepo) Create(_ context.Context, w *domain.Workout) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w.ID = uuid.NewString()
	w.CreatedAt = r.s.stamp()
	w.UpdatedAt = w.CreatedAt
	r.s.workouts[w.ID] = *w
	return nil
}

func (r workoutRepo) Update(_ context.Context, w *domain.Workout) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.workouts[w.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Title, stored.Description = w.Title, w.Description
	stored.DurationMinutes, stored.Difficulty = w.DurationMinutes, w.Difficulty
	stored.UpdatedAt = r.s.stamp()
	w.UpdatedAt = stored.UpdatedAt
	r.s.workouts[w.ID] = stored
	return nil
}

func (r workoutRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.workouts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.workouts, id)
	return nil
}

func (r workoutRepo) GetByID(_ context.Context, id string) (*domain.Workout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.workouts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &w, nil
}

func (r workoutRepo) List(_ context.Context, page repository.Page) ([]domain.Workout, error) {
	r.s.mu.RLock()
	out := make([]domain.Workout, 0, len(r.s.workouts))
	for _, w := range r.s.workouts {
		out = append(out, w)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, page), nil
}

// Posts returns the post table.
func (s *Store) Posts() repository.PostRepository { return postRepo{s} }

type postRepo struct{ s *Store }

func (r postRepo) Create(_ context.Context, p *domain.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = uuid.NewString()
	p.LikeCount = 0
	p.CreatedAt = r.s.stamp()
	p.UpdatedAt = p.CreatedAt
	r.s.posts[p.ID] = *p
	return nil
}

func (r postRepo) Update(_ context.Context, p *domain.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.posts[p.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Content, stored.ImageURL = p.Content, p.ImageURL
	stored.UpdatedAt = r.s.stamp()
	p.LikeCount, p.UpdatedAt = stored.LikeCount, stored.UpdatedAt
	r.s.posts[p.ID] = stored
	return nil
}

func (r postRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.posts, id)
	for cid, c := range r.s.comments {
		if c.PostID == id {
			delete(r.s.comments, cid)
		}
	}
	for k := range r.s.likes {
		if k.postID == id {
			delete(r.s.likes, k)
		}
	}
	return nil
}

func (r postRepo) GetByID(_ context.Context, id string) (*domain.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &p, nil
}

func (r postRepo) List(_ context.Context, page repository.Page) ([]domain.Post, error) {
	r.s.mu.RLock()
	out := make([]domain.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		out = append(out, p)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, page), nil
}

// Comments returns the comment table.
func (s *Store) Comments() repository.CommentRepository { return commentRepo{s} }

type commentRepo struct{ s *Store }

func (r commentRepo) Create(_ context.Context, c *domain.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[c.PostID]; !ok {
		return pgx.ErrNoRows
	}
	c.ID = uuid.NewString()
	c.CreatedAt = r.s.stamp()
	r.s.comments[c.ID] = *c
	return nil
}

func (r commentRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.comments, id)
	return nil
}

func (r commentRepo) ListByPost(_ context.Context, postID string, page repository.Page) ([]domain.Comment, error) {
	r.s.mu.RLock()
	var out []domain.Comment
	for _, c := range r.s.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return paginate(out, page), nil
}

// Likes returns the like table.
func (s *Store) Likes() repository.LikeRepository { return likeRepo{s} }

type likeRepo struct{ s *Store }

func (r likeRepo) Toggle(_ context.Context, postID, userID string) (bool, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	post, ok := r.s.posts[postID]
	if !ok {
		return false, 0, pgx.ErrNoRows
	}
	key := likeKey{postID: postID, userID: userID}
	liked := false
	if _, exists := r.s.likes[key]; exists {
		delete(r.s.likes, key)
		if post.LikeCount > 0 {
			post.LikeCount--
		}
	} else {
		r.s.likes[key] = r.s.stamp()
		post.LikeCount++
		liked = true
	}
	r.s.posts[postID] = post
	return liked, post.LikeCount, nil
}

// NutritionLogs returns the nutrition log table.
func (s *Store) NutritionLogs() repository.NutritionLogRepository { return nutritionRepo{s} }

type nutritionRepo struct{ s *Store }

func (r nutritionRepo) Create(_ context.Context, l *domain.NutritionLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.ID = uuid.NewString()
	l.CreatedAt = r.s.stamp()
	r.s.logs[l.ID] = *l
	return nil
}

func (r nutritionRepo) Update(_ context.Context, l *domain.NutritionLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.logs[l.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	l.UserID, l.CreatedAt = stored.UserID, stored.CreatedAt
	r.s.logs[l.ID] = *l
	return nil
}

func (r nutritionRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.logs[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.logs, id)
	return nil
}

func (r nutritionRepo) GetByID(_ context.Context, id string) (*domain.NutritionLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.logs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &l, nil
}

func (r nutritionRepo) ListByUser(_ context.Context, userID string, page repository.Page) ([]domain.NutritionLog, error) {
	r.s.mu.RLock()
	var out []domain.NutritionLog
	for _, l := range r.s.logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].LoggedAt.After(out[j].LoggedAt) })
	return paginate(out, page), nil
}
