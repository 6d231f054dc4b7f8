package repository

import (
	"context"
	"errors"
	"regexp"

	"github.com/alimikegami/food-rater/internal/domain"
	"github.com/alimikegami/food-rater/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ProductCollection = "products"
	UserCollection    = "users"
)

type MongoDBProductRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBProductRepository(db *mongo.Database) ProductRepository {
	return &MongoDBProductRepositoryImpl{db: db}
}

func (r *MongoDBProductRepositoryImpl) GetProductByID(ctx context.Context, id string) (product domain.Product, err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	err = r.db.Collection(ProductCollection).FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product, errs.ErrProductNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductByID").Msg("")
		return product, translateError(err)
	}

	return product, nil
}

func (r *MongoDBProductRepositoryImpl) GetProducts(ctx context.Context) (data []domain.Product, err error) {
	return r.find(ctx, "GetProducts", bson.D{})
}

func (r *MongoDBProductRepositoryImpl) SearchProductsByName(ctx context.Context, word string) (data []domain.Product, err error) {
	filter := bson.D{{Key: "name", Value: primitive.Regex{Pattern: regexp.QuoteMeta(word)}}}

	return r.find(ctx, "SearchProductsByName", filter)
}

func (r *MongoDBProductRepositoryImpl) find(ctx context.Context, component string, filter bson.D) (data []domain.Product, err error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.db.Collection(ProductCollection).Find(ctx, filter, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	data = []domain.Product{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return nil, translateError(err)
	}

	return data, nil
}

// UpsertProduct only touches the catalogue fields so the rating aggregate of
// an existing product survives a re-seed.
func (r *MongoDBProductRepositoryImpl) UpsertProduct(ctx context.Context, data domain.Product) (product domain.Product, err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: data.Name},
		{Key: "price", Value: data.Price},
		{Key: "weight", Value: data.Weight},
	}}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	err = r.db.Collection(ProductCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&product)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpsertProduct").Msg("Failed to upsert product")
		return product, translateError(err)
	}

	return product, nil
}

// AddProductRating folds one rating into the running average in a single
// pipeline update, so concurrent votings cannot lose increments.
func (r *MongoDBProductRepositoryImpl) AddProductRating(ctx context.Context, id string, rating float64) (product domain.Product, err error) {
	filter := bson.D{{Key: "_id", Value: id}}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "rating", Value: bson.D{{Key: "$divide", Value: bson.A{
				bson.D{{Key: "$add", Value: bson.A{
					bson.D{{Key: "$multiply", Value: bson.A{ifNull("$rating"), ifNull("$amount")}}},
					rating,
				}}},
				bson.D{{Key: "$add", Value: bson.A{ifNull("$amount"), 1}}},
			}}}},
			{Key: "amount", Value: bson.D{{Key: "$add", Value: bson.A{ifNull("$amount"), 1}}}},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err = r.db.Collection(ProductCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product, errs.ErrProductNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "AddProductRating").Msg("Failed to update product rating")
		return product, translateError(err)
	}

	return product, nil
}

func ifNull(field string) bson.D {
	return bson.D{{Key: "$ifNull", Value: bson.A{field, 0}}}
}

type MongoDBUserRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBUserRepository(db *mongo.Database) UserRepository {
	return &MongoDBUserRepositoryImpl{db: db}
}

func (r *MongoDBUserRepositoryImpl) AddUser(ctx context.Context, data domain.User) (err error) {
	_, err = r.db.Collection(UserCollection).InsertOne(ctx, data)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.ErrUserAlreadyExists
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "AddUser").Msg("")
		return translateError(err)
	}

	return nil
}

// SeedUser inserts data unless a user with the same username exists and
// returns whichever document is stored.
func (r *MongoDBUserRepositoryImpl) SeedUser(ctx context.Context, data domain.User) (user domain.User, err error) {
	filter := bson.D{{Key: "username", Value: data.Username}}
	update := bson.D{{Key: "$setOnInsert", Value: bson.D{
		{Key: "_id", Value: data.UUID},
		{Key: "pw", Value: data.Password},
	}}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	err = r.db.Collection(UserCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&user)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SeedUser").Msg("")
		return user, translateError(err)
	}

	return user, nil
}

func (r *MongoDBUserRepositoryImpl) GetUserByID(ctx context.Context, id string) (user domain.User, err error) {
	return r.findOne(ctx, "GetUserByID", bson.D{{Key: "_id", Value: id}})
}

func (r *MongoDBUserRepositoryImpl) GetUserByCredentials(ctx context.Context, username, password string) (user domain.User, err error) {
	return r.findOne(ctx, "GetUserByCredentials", bson.D{
		{Key: "username", Value: username},
		{Key: "pw", Value: password},
	})
}

func (r *MongoDBUserRepositoryImpl) findOne(ctx context.Context, component string, filter bson.D) (user domain.User, err error) {
	err = r.db.Collection(UserCollection).FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user, errs.ErrUserNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return user, translateError(err)
	}

	return user, nil
}

func (r *MongoDBUserRepositoryImpl) SetVoting(ctx context.Context, id string, voting domain.Voting) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{
		{Key: "$set", Value: bson.D{{Key: "voting", Value: voting}}},
		{Key: "$push", Value: bson.D{{Key: "votings", Value: voting}}},
	}

	result, err := r.db.Collection(UserCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SetVoting").Msg("Failed to update user")
		return translateError(err)
	}

	if result.MatchedCount == 0 {
		return errs.ErrUserNotFound
	}

	return nil
}

func translateError(err error) error {
	if mongo.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return errs.ErrTimeout
	}

	return err
}
