package service

import (
	"context"
	"errors"
	"strings"

	"krayaa-backend/internal/domain"
	"krayaa-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// EnsureUser returns the profile row for a verified identity, creating it
// on first sight with a username derived from the email local part.
func (s *userService) EnsureUser(ctx context.Context, uid, email string) (*domain.User, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	username := email
	if i := strings.Index(email, "@"); i > 0 {
		username = email[:i]
	}
	user = &domain.User{
		UID:      uid,
		Username: username,
		Email:    email,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByUID(ctx context.Context, uid string) (*domain.User, error) {
	return s.userRepo.GetByUID(ctx, uid)
}

func (s *userService) UpdateProfile(ctx context.Context, uid, username string, avatarID int32) (*domain.User, error) {
	if username == "" {
		return nil, &domain.ValidationError{Field: "username", Reason: "username is required"}
	}

	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if username != user.Username {
		taken, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		if taken != nil && taken.UID != uid {
			return nil, &domain.ValidationError{Field: "username", Reason: "username is already taken"}
		}
	}

	user.Username = username
	user.AvatarID = avatarID
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
