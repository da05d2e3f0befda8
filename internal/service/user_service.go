package service

import (
	"context"
	"strings"

	"github.com/spec-kit/fitness-service/internal/domain"
	"github.com/spec-kit/fitness-service/internal/repository"
)

// ProfileInput carries optional profile changes; nil fields are left as is.
type ProfileInput struct {
	Name      *string
	Bio       *string
	AvatarURL *string
}

// UserService reads and edits user profiles. Callers authorize first.
type UserService struct {
	users repository.UserRepository
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Profile returns the user's profile.
func (s *UserService) Profile(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile applies input to the user's profile.
func (s *UserService) UpdateProfile(ctx context.Context, id string, input ProfileInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}
	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
