package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/alimikegami/food-rater/internal/domain"
	"github.com/alimikegami/food-rater/internal/dto"
	"github.com/alimikegami/food-rater/internal/repository"
	"github.com/alimikegami/food-rater/pkg/errs"
)

type ProductServiceImpl struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	catalog     *Catalog
	publisher   EventPublisher
	now         func() time.Time
}

// CreateProductService wires the product operations. A nil publisher makes
// SubmitVoting apply the rating aggregation inline instead of emitting a
// voting_submitted event.
func CreateProductService(productRepo repository.ProductRepository, userRepo repository.UserRepository, catalog *Catalog, publisher EventPublisher) ProductService {
	return &ProductServiceImpl{
		productRepo: productRepo,
		userRepo:    userRepo,
		catalog:     catalog,
		publisher:   publisher,
		now:         time.Now,
	}
}

func (s *ProductServiceImpl) GetProduct(ctx context.Context, id string) (product dto.ProductResponse, err error) {
	data, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return
	}

	return dto.ToProductResponse(data), nil
}

func (s *ProductServiceImpl) ListProducts(ctx context.Context) []dto.ProductResponse {
	return s.catalog.List()
}

func (s *ProductServiceImpl) SearchProducts(ctx context.Context, word string) (products map[string]dto.ProductResponse, err error) {
	data, err := s.productRepo.SearchProductsByName(ctx, word)
	if err != nil {
		return
	}

	products = make(map[string]dto.ProductResponse, len(data))
	for _, p := range data {
		products[p.ID] = dto.ToProductResponse(p)
	}

	return products, nil
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, req dto.ProductRequest) (product dto.ProductResponse, err error) {
	data, err := req.ToDomain()
	if err != nil {
		return product, fmt.Errorf("%w: %v", errs.ErrClient, err)
	}

	data, err = s.productRepo.UpsertProduct(ctx, data)
	if err != nil {
		return
	}

	s.catalog.Put(data)

	return dto.ToProductResponse(data), nil
}

func (s *ProductServiceImpl) SubmitVoting(ctx context.Context, req dto.VotingRequest) (voting domain.Voting, err error) {
	voting = req.ToDomain(s.now().UTC())

	err = s.userRepo.SetVoting(ctx, voting.UUID, voting)
	if err != nil {
		return domain.Voting{}, err
	}

	if strings.TrimSpace(voting.ProdID) == "" {
		return voting, nil
	}

	if s.publisher == nil {
		if err := s.ApplyRating(ctx, voting); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "SubmitVoting").Msg("")
		}
		return voting, nil
	}

	msg := dto.KafkaMessage{
		EventID:   ulid.Make().String(),
		EventType: dto.EventVotingSubmitted,
		Data:      voting,
	}

	if err := s.publisher.Publish(ctx, voting.ProdID, msg); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SubmitVoting").Str("event_id", msg.EventID).Msg("failed to publish voting")
	}

	return voting, nil
}

// ApplyRating folds the voting into the product's running average. A voting
// that references an unknown product is ignored.
func (s *ProductServiceImpl) ApplyRating(ctx context.Context, voting domain.Voting) (err error) {
	product, err := s.productRepo.AddProductRating(ctx, voting.ProdID, voting.Rating)
	if errors.Is(err, errs.ErrProductNotFound) {
		log.Ctx(ctx).Debug().Str("component", "ApplyRating").Str("product_id", voting.ProdID).Msg("voting references unknown product")
		return nil
	}
	if err != nil {
		return
	}

	s.catalog.Put(product)

	return nil
}

func (s *ProductServiceImpl) GetProductsForUser(ctx context.Context, userID string) (products map[string]dto.ProductResponse, err error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return
	}

	refs := user.ProductRefs()
	found := make([]*domain.Product, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range refs {
		g.Go(func() error {
			product, err := s.productRepo.GetProductByID(gctx, id)
			if errors.Is(err, errs.ErrProductNotFound) {
				return nil
			}
			if err != nil {
				return err
			}

			found[i] = &product
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return nil, err
	}

	products = make(map[string]dto.ProductResponse, len(refs))
	for _, p := range found {
		if p == nil {
			continue
		}
		products[p.ID] = dto.ToProductResponse(*p)
	}

	return products, nil
}

func (s *ProductServiceImpl) Initialize(ctx context.Context) (err error) {
	for _, req := range seedProducts() {
		data, err := req.ToDomain()
		if err != nil {
			return err
		}

		data, err = s.productRepo.UpsertProduct(ctx, data)
		if err != nil {
			return err
		}

		s.catalog.Put(data)
	}

	_, err = s.userRepo.SeedUser(ctx, domain.User{
		UUID:     uuid.NewString(),
		Username: "Sebastian",
		Password: "123abc",
	})

	return err
}

func (s *ProductServiceImpl) RefreshCatalog(ctx context.Context) (err error) {
	since := s.catalog.Generation()

	products, err := s.productRepo.GetProducts(ctx)
	if err != nil {
		return
	}

	s.catalog.Replace(products, since)

	return nil
}

// ConsumeEvent reads voting_submitted events until ctx is cancelled.
func (s *ProductServiceImpl) ConsumeEvent(ctx context.Context, reader EventReader) {
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
			continue
		}

		if err := s.handleEvent(ctx, msg.Value); err != nil {
			log.Error().Err(err).Str("component", "ConsumeEvent").Str("key", string(msg.Key)).Msg("")
		}
	}
}

func (s *ProductServiceImpl) handleEvent(ctx context.Context, value []byte) error {
	var receivedMsg dto.KafkaMessage
	if err := json.Unmarshal(value, &receivedMsg); err != nil {
		return err
	}

	switch receivedMsg.EventType {
	case dto.EventVotingSubmitted:
		dataBytes, err := json.Marshal(receivedMsg.Data)
		if err != nil {
			return err
		}

		var voting domain.Voting
		if err := json.Unmarshal(dataBytes, &voting); err != nil {
			return err
		}

		return s.ApplyRating(ctx, voting)
	default:
		log.Warn().Str("component", "ConsumeEvent").Str("event_type", receivedMsg.EventType).Msg("unknown event type")
	}

	return nil
}

func seedProducts() []dto.ProductRequest {
	return []dto.ProductRequest{
		{ID: "prod3568", Name: "Egg Whisk", Price: decimal.RequireFromString("3.99"), Weight: 150},
		{ID: "prod7340", Name: "Tea Cosy", Price: decimal.RequireFromString("5.99"), Weight: 100},
		{ID: "prod8643", Name: "Spatula", Price: decimal.RequireFromString("1.00"), Weight: 80},
	}
}
