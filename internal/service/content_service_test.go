package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/fitness-service/internal/domain"
	"github.com/spec-kit/fitness-service/internal/repository"
	"github.com/spec-kit/fitness-service/internal/repository/memory"
)

func ptr[T any](v T) *T { return &v }

func TestUpdateProfileAppliesOnlyGivenFields(t *testing.T) {
	users := memory.NewStore().Users()
	u := &domain.User{Name: "Ann", Email: "ann@fit.test", Bio: "runner", Role: domain.RoleUser}
	require.NoError(t, users.Create(context.Background(), u))
	svc := NewUserService(users)

	got, err := svc.UpdateProfile(context.Background(), u.ID, ProfileInput{AvatarURL: ptr("https://img.test/a.png")})
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)
	assert.Equal(t, "runner", got.Bio)
	assert.Equal(t, "https://img.test/a.png", got.AvatarURL)

	stored, err := svc.Profile(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, stored.Role)
	assert.Equal(t, "https://img.test/a.png", stored.AvatarURL)

	_, err = svc.UpdateProfile(context.Background(), "missing", ProfileInput{})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestWorkoutLifecycle(t *testing.T) {
	svc := NewWorkoutService(memory.NewStore().Workouts())
	ctx := context.Background()

	w, err := svc.Create(ctx, "coach-1", WorkoutInput{Title: "Intervals", DurationMinutes: 30, Difficulty: "hard"})
	require.NoError(t, err)
	assert.Equal(t, "coach-1", w.UserID)

	updated, err := svc.Update(ctx, w.ID, WorkoutInput{Title: "Long run", DurationMinutes: 90, Difficulty: "medium"})
	require.NoError(t, err)
	assert.Equal(t, "Long run", updated.Title)
	assert.Equal(t, "coach-1", updated.UserID)

	list, err := svc.List(ctx, repository.Page{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, w.ID))
	_, err = svc.Get(ctx, w.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestSocialService(t *testing.T) {
	store := memory.NewStore()
	svc := NewSocialService(SocialDependencies{
		PostRepo:    store.Posts(),
		CommentRepo: store.Comments(),
		LikeRepo:    store.Likes(),
	})
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "u1", PostInput{Content: "5k done"})
	require.NoError(t, err)

	comment, err := svc.AddComment(ctx, post.ID, "u2", "nice")
	require.NoError(t, err)
	assert.Equal(t, "u2", comment.UserID)

	_, err = svc.AddComment(ctx, "post-missing", "u2", "hello?")
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	comments, err := svc.ListComments(ctx, post.ID, repository.Page{})
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	res, err := svc.ToggleLike(ctx, post.ID, "u2")
	require.NoError(t, err)
	assert.Equal(t, LikeResult{Liked: true, LikeCount: 1}, res)
	res, err = svc.ToggleLike(ctx, post.ID, "u2")
	require.NoError(t, err)
	assert.Equal(t, LikeResult{Liked: false, LikeCount: 0}, res)

	edited, err := svc.UpdatePost(ctx, post.ID, PostInput{Content: "10k done"})
	require.NoError(t, err)
	assert.Equal(t, "10k done", edited.Content)

	require.NoError(t, svc.DeleteComment(ctx, comment.ID))
	require.NoError(t, svc.DeletePost(ctx, post.ID))
	_, err = svc.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestNutritionServiceScopesToOwner(t *testing.T) {
	svc := NewNutritionService(memory.NewStore().NutritionLogs())
	fixed := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	mine, err := svc.Create(ctx, "u1", NutritionInput{Meal: "oats", Calories: 350})
	require.NoError(t, err)
	assert.True(t, fixed.Equal(mine.LoggedAt))

	_, err = svc.Create(ctx, "u2", NutritionInput{Meal: "eggs", Calories: 200})
	require.NoError(t, err)

	list, err := svc.List(ctx, "u1", repository.Page{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "oats", list[0].Meal)

	updated, err := svc.Update(ctx, mine.ID, NutritionInput{Meal: "oats and berries", Calories: 420})
	require.NoError(t, err)
	assert.Equal(t, "u1", updated.UserID)
	assert.Equal(t, 420, updated.Calories)

	require.NoError(t, svc.Delete(ctx, mine.ID))
}
