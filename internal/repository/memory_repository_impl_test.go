package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alimikegami/food-rater/internal/domain"
	"github.com/alimikegami/food-rater/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProducts(t *testing.T, repo *MemoryRepositoryImpl) {
	t.Helper()

	for _, p := range []domain.Product{
		{ID: "prod3568", Name: "Egg Whisk", Weight: 150},
		{ID: "prod7340", Name: "Tea Cosy", Weight: 100},
		{ID: "prod8643", Name: "Spatula", Weight: 80},
	} {
		_, err := repo.UpsertProduct(context.Background(), p)
		require.NoError(t, err)
	}
}

func TestMemorySearchProductsByName(t *testing.T) {
	repo := CreateNewMemoryRepository()
	seedProducts(t, repo)

	found, err := repo.SearchProductsByName(context.Background(), "Egg")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "prod3568", found[0].ID)

	found, err = repo.SearchProductsByName(context.Background(), "xyz")
	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Empty(t, found)

	all, err := repo.GetProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "prod3568", all[0].ID)
	assert.Equal(t, "prod8643", all[2].ID)
}

func TestMemoryUpsertKeepsRating(t *testing.T) {
	repo := CreateNewMemoryRepository()
	seedProducts(t, repo)

	_, err := repo.AddProductRating(context.Background(), "prod7340", 4)
	require.NoError(t, err)
	rated, err := repo.AddProductRating(context.Background(), "prod7340", 2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, rated.Rating)
	assert.Equal(t, int64(2), rated.Amount)

	updated, err := repo.UpsertProduct(context.Background(), domain.Product{ID: "prod7340", Name: "Tea Cosy XL", Weight: 120})
	require.NoError(t, err)
	assert.Equal(t, "Tea Cosy XL", updated.Name)
	assert.Equal(t, 3.0, updated.Rating)

	_, err = repo.AddProductRating(context.Background(), "missing", 5)
	assert.ErrorIs(t, err, errs.ErrProductNotFound)
}

func TestMemoryUsers(t *testing.T) {
	repo := CreateNewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.AddUser(ctx, domain.User{UUID: "u1", Username: "sebastian", Password: "123abc"}))
	assert.ErrorIs(t, repo.AddUser(ctx, domain.User{UUID: "u2", Username: "sebastian", Password: "x"}), errs.ErrUserAlreadyExists)

	user, err := repo.GetUserByCredentials(ctx, "sebastian", "123abc")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.UUID)

	_, err = repo.GetUserByCredentials(ctx, "sebastian", "wrong")
	assert.ErrorIs(t, err, errs.ErrUserNotFound)

	seeded, err := repo.SeedUser(ctx, domain.User{UUID: "u3", Username: "sebastian", Password: "other"})
	require.NoError(t, err)
	assert.Equal(t, "u1", seeded.UUID)

	require.NoError(t, repo.SetVoting(ctx, "u1", domain.Voting{UUID: "u1", ProdID: "prod7340", Rating: 1}))
	require.NoError(t, repo.SetVoting(ctx, "u1", domain.Voting{UUID: "u1", ProdID: "prod3568", Rating: 5}))

	user, err = repo.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, user.Voting)
	assert.Equal(t, "prod3568", user.Voting.ProdID)
	assert.Len(t, user.Votings, 2)

	assert.ErrorIs(t, repo.SetVoting(ctx, "nobody", domain.Voting{}), errs.ErrUserNotFound)
}

func TestMemoryHonoursDeadline(t *testing.T) {
	repo := CreateNewMemoryRepository()

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err := repo.GetProductByID(ctx, "prod3568")
	assert.ErrorIs(t, err, errs.ErrTimeout)
}
