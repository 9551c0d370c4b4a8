package service

import (
	"context"

	"github.com/courtside/picks-services/internal/picksvc/models"
)

// UserStore defines what the user service needs from the store layer.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type UserService struct {
	userStore UserStore
}

func NewUserService(userStore UserStore) *UserService {
	return &UserService{userStore: userStore}
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userStore.GetByID(ctx, id)
}

func (s *UserService) RegisterUser(ctx context.Context, user models.User) (*models.User, error) {
	id, err := s.userStore.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.userStore.GetByID(ctx, id)
}
