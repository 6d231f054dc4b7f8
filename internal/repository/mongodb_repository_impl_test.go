package repository

import (
	"context"
	"testing"

	"github.com/alimikegami/food-rater/internal/domain"
	"github.com/alimikegami/food-rater/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func mustDecimal(t *testing.T, s string) primitive.Decimal128 {
	t.Helper()

	d, err := primitive.ParseDecimal128(s)
	require.NoError(t, err)
	return d
}

func TestMongoDBProductRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get product by id", func(mt *mtest.T) {
		repo := CreateNewMongoDBProductRepository(mt.DB)
		ns := mt.DB.Name() + "." + ProductCollection

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "prod3568"},
			{Key: "name", Value: "Egg Whisk"},
			{Key: "price", Value: mustDecimal(t, "3.99")},
			{Key: "weight", Value: 150.0},
		}))

		product, err := repo.GetProductByID(context.Background(), "prod3568")
		require.NoError(mt, err)
		assert.Equal(mt, "Egg Whisk", product.Name)
		assert.Equal(mt, "3.99", product.Price.String())
		assert.Equal(mt, 150.0, product.Weight)
	})

	mt.Run("product not found", func(mt *mtest.T) {
		repo := CreateNewMongoDBProductRepository(mt.DB)
		ns := mt.DB.Name() + "." + ProductCollection

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetProductByID(context.Background(), "prod0000")
		assert.ErrorIs(mt, err, errs.ErrProductNotFound)
	})

	mt.Run("search returns empty slice on zero matches", func(mt *mtest.T) {
		repo := CreateNewMongoDBProductRepository(mt.DB)
		ns := mt.DB.Name() + "." + ProductCollection

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		products, err := repo.SearchProductsByName(context.Background(), "xyz")
		require.NoError(mt, err)
		assert.NotNil(mt, products)
		assert.Empty(mt, products)
	})

	mt.Run("search returns matches", func(mt *mtest.T) {
		repo := CreateNewMongoDBProductRepository(mt.DB)
		ns := mt.DB.Name() + "." + ProductCollection

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "prod3568"}, {Key: "name", Value: "Egg Whisk"}},
		))

		products, err := repo.SearchProductsByName(context.Background(), "Egg")
		require.NoError(mt, err)
		require.Len(mt, products, 1)
		assert.Equal(mt, "prod3568", products[0].ID)
	})

	mt.Run("add product rating", func(mt *mtest.T) {
		repo := CreateNewMongoDBProductRepository(mt.DB)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: "prod7340"},
			{Key: "name", Value: "Tea Cosy"},
			{Key: "rating", Value: 3.0},
			{Key: "amount", Value: int64(2)},
		}}))

		product, err := repo.AddProductRating(context.Background(), "prod7340", 2)
		require.NoError(mt, err)
		assert.Equal(mt, 3.0, product.Rating)
		assert.Equal(mt, int64(2), product.Amount)
	})

	mt.Run("store failure is surfaced", func(mt *mtest.T) {
		repo := CreateNewMongoDBProductRepository(mt.DB)

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad value",
		}))

		_, err := repo.GetProducts(context.Background())
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, errs.ErrProductNotFound)
	})
}

func TestMongoDBUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("add user", func(mt *mtest.T) {
		repo := CreateNewMongoDBUserRepository(mt.DB)

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.AddUser(context.Background(), domain.User{UUID: "u1", Username: "sebastian", Password: "123abc"})
		assert.NoError(mt, err)
	})

	mt.Run("duplicate username", func(mt *mtest.T) {
		repo := CreateNewMongoDBUserRepository(mt.DB)

		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.AddUser(context.Background(), domain.User{UUID: "u2", Username: "sebastian", Password: "123abc"})
		assert.ErrorIs(mt, err, errs.ErrUserAlreadyExists)
	})

	mt.Run("login lookup", func(mt *mtest.T) {
		repo := CreateNewMongoDBUserRepository(mt.DB)
		ns := mt.DB.Name() + "." + UserCollection

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "u1"},
			{Key: "username", Value: "sebastian"},
			{Key: "pw", Value: "123abc"},
		}))

		user, err := repo.GetUserByCredentials(context.Background(), "sebastian", "123abc")
		require.NoError(mt, err)
		assert.Equal(mt, "u1", user.UUID)
	})

	mt.Run("set voting on unknown user", func(mt *mtest.T) {
		repo := CreateNewMongoDBUserRepository(mt.DB)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repo.SetVoting(context.Background(), "nobody", domain.Voting{ProdID: "prod7340"})
		assert.ErrorIs(mt, err, errs.ErrUserNotFound)
	})

	mt.Run("set voting", func(mt *mtest.T) {
		repo := CreateNewMongoDBUserRepository(mt.DB)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		err := repo.SetVoting(context.Background(), "u1", domain.Voting{ProdID: "prod7340"})
		assert.NoError(mt, err)
	})
}
