package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"gator/domain"
)

type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register creates a user. Names are unique and case-sensitive.
func (s *UserService) Register(ctx context.Context, name string) (domain.User, error) {
	if strings.TrimSpace(name) == "" {
		return domain.User{}, fmt.Errorf("%w: user name is required", domain.ErrUsage)
	}

	_, ok, err := s.GetByName(ctx, name)
	if err != nil {
		return domain.User{}, err
	}
	if ok {
		return domain.User{}, fmt.Errorf("%w: %s", domain.ErrUserExists, name)
	}

	user, err := s.users.InsertUser(ctx, name)
	if err != nil {
		return domain.User{}, err
	}

	log.WithFields(log.Fields{"id": user.ID, "name": user.Name}).Debug("Registered user")
	return user, nil
}

// GetByName reports ok == false when no user has the name.
func (s *UserService) GetByName(ctx context.Context, name string) (domain.User, bool, error) {
	user, err := s.users.GetUserByName(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	return user, true, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	return s.users.GetUserByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.ListUsers(ctx)
}

// Reset deletes every user together with their feeds and follows.
func (s *UserService) Reset(ctx context.Context) error {
	return s.users.DeleteAllUsers(ctx)
}
