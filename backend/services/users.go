package services

import (
	"context"
	"errors"
	"log"
	"time"

	"buddycheck/backend/models"
	"buddycheck/backend/store"

	"github.com/google/uuid"
)

// UserService provisions user rows for identities verified by the external
// OAuth provider.
type UserService struct {
	Store  store.Store
	Logger *log.Logger
}

func NewUserService(st store.Store, logger *log.Logger) *UserService {
	return &UserService{Store: st, Logger: logger}
}

// FetchOrCreateUser looks up a user by email and creates one when absent.
func (s *UserService) FetchOrCreateUser(ctx context.Context, email, name string, photoURL *string) (*models.User, error) {
	user, err := s.Store.GetUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return nil, err
	}

	if name == "" {
		name = "Unknown"
	}
	user = &models.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		PhotoURL:  photoURL,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.InsertUser(ctx, user); err != nil {
		return nil, err
	}
	s.Logger.Printf("provisioned new user: %s", user.Email)
	return user, nil
}
