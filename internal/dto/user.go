package dto

import "github.com/alimikegami/food-rater/internal/domain"

type UserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"pw" validate:"required"`
}

type UserResponse struct {
	UUID     string          `json:"uuid"`
	Username string          `json:"username"`
	Password string          `json:"pw"`
	Voting   *domain.Voting  `json:"voting,omitempty"`
	Votings  []domain.Voting `json:"votings,omitempty"`
}

func ToUserResponse(u domain.User) UserResponse {
	return UserResponse{
		UUID:     u.UUID,
		Username: u.Username,
		Password: u.Password,
		Voting:   u.Voting,
		Votings:  u.Votings,
	}
}
