package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/alimikegami/food-rater/internal/domain"
	"github.com/alimikegami/food-rater/internal/dto"
	"github.com/alimikegami/food-rater/internal/repository"
)

type UserServiceImpl struct {
	repository repository.UserRepository
}

func CreateUserService(repository repository.UserRepository) UserService {
	return &UserServiceImpl{
		repository: repository,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req dto.UserRequest) (user dto.UserResponse, err error) {
	data := domain.User{
		UUID:     uuid.NewString(),
		Username: req.Username,
		Password: req.Password,
	}

	err = s.repository.AddUser(ctx, data)
	if err != nil {
		return
	}

	return dto.ToUserResponse(data), nil
}

func (s *UserServiceImpl) Login(ctx context.Context, username, password string) (user dto.UserResponse, err error) {
	data, err := s.repository.GetUserByCredentials(ctx, username, password)
	if err != nil {
		return
	}

	return dto.ToUserResponse(data), nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (user dto.UserResponse, err error) {
	data, err := s.repository.GetUserByID(ctx, id)
	if err != nil {
		return
	}

	return dto.ToUserResponse(data), nil
}
