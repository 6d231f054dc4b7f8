package repository

import (
	"context"

	"github.com/alimikegami/food-rater/internal/domain"
)

type ProductRepository interface {
	GetProductByID(ctx context.Context, id string) (product domain.Product, err error)
	GetProducts(ctx context.Context) (data []domain.Product, err error)
	SearchProductsByName(ctx context.Context, word string) (data []domain.Product, err error)
	UpsertProduct(ctx context.Context, data domain.Product) (product domain.Product, err error)
	AddProductRating(ctx context.Context, id string, rating float64) (product domain.Product, err error)
}

type UserRepository interface {
	AddUser(ctx context.Context, data domain.User) (err error)
	SeedUser(ctx context.Context, data domain.User) (user domain.User, err error)
	GetUserByID(ctx context.Context, id string) (user domain.User, err error)
	GetUserByCredentials(ctx context.Context, username, password string) (user domain.User, err error)
	SetVoting(ctx context.Context, id string, voting domain.Voting) (err error)
}
