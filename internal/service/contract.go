package service

import (
	"context"

	"github.com/alimikegami/food-rater/internal/domain"
	"github.com/alimikegami/food-rater/internal/dto"
	"github.com/segmentio/kafka-go"
)

type ProductService interface {
	GetProduct(ctx context.Context, id string) (product dto.ProductResponse, err error)
	ListProducts(ctx context.Context) []dto.ProductResponse
	SearchProducts(ctx context.Context, word string) (products map[string]dto.ProductResponse, err error)
	AddProduct(ctx context.Context, req dto.ProductRequest) (product dto.ProductResponse, err error)
	SubmitVoting(ctx context.Context, req dto.VotingRequest) (voting domain.Voting, err error)
	GetProductsForUser(ctx context.Context, userID string) (products map[string]dto.ProductResponse, err error)
	ApplyRating(ctx context.Context, voting domain.Voting) (err error)
	Initialize(ctx context.Context) (err error)
	RefreshCatalog(ctx context.Context) (err error)
	ConsumeEvent(ctx context.Context, reader EventReader)
}

type UserService interface {
	Register(ctx context.Context, req dto.UserRequest) (user dto.UserResponse, err error)
	Login(ctx context.Context, username, password string) (user dto.UserResponse, err error)
	GetUser(ctx context.Context, id string) (user dto.UserResponse, err error)
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, msg dto.KafkaMessage) error
}

// EventReader is satisfied by *kafka.Reader.
type EventReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}
