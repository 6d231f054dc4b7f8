package repository

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/alimikegami/food-rater/internal/domain"
	"github.com/alimikegami/food-rater/pkg/errs"
)

// MemoryRepositoryImpl keeps products and users in process memory. It backs
// STORE_BACKEND=memory and satisfies both ProductRepository and UserRepository.
type MemoryRepositoryImpl struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	users    map[string]domain.User
}

func CreateNewMemoryRepository() *MemoryRepositoryImpl {
	return &MemoryRepositoryImpl{
		products: make(map[string]domain.Product),
		users:    make(map[string]domain.User),
	}
}

func (r *MemoryRepositoryImpl) GetProductByID(ctx context.Context, id string) (product domain.Product, err error) {
	if err = ctxError(ctx); err != nil {
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return product, errs.ErrProductNotFound
	}

	return product, nil
}

func (r *MemoryRepositoryImpl) GetProducts(ctx context.Context) (data []domain.Product, err error) {
	return r.filterProducts(ctx, func(domain.Product) bool { return true })
}

func (r *MemoryRepositoryImpl) SearchProductsByName(ctx context.Context, word string) (data []domain.Product, err error) {
	return r.filterProducts(ctx, func(p domain.Product) bool { return strings.Contains(p.Name, word) })
}

func (r *MemoryRepositoryImpl) filterProducts(ctx context.Context, match func(domain.Product) bool) (data []domain.Product, err error) {
	if err = ctxError(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data = []domain.Product{}
	for _, p := range r.products {
		if match(p) {
			data = append(data, p)
		}
	}
	sort.Slice(data, func(i, j int) bool { return data[i].ID < data[j].ID })

	return data, nil
}

func (r *MemoryRepositoryImpl) UpsertProduct(ctx context.Context, data domain.Product) (product domain.Product, err error) {
	if err = ctxError(ctx); err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product = r.products[data.ID]
	product.ID = data.ID
	product.Name = data.Name
	product.Price = data.Price
	product.Weight = data.Weight
	r.products[data.ID] = product

	return product, nil
}

func (r *MemoryRepositoryImpl) AddProductRating(ctx context.Context, id string, rating float64) (product domain.Product, err error) {
	if err = ctxError(ctx); err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return product, errs.ErrProductNotFound
	}

	product.Rating = (product.Rating*float64(product.Amount) + rating) / float64(product.Amount+1)
	product.Amount++
	r.products[id] = product

	return product, nil
}

func (r *MemoryRepositoryImpl) AddUser(ctx context.Context, data domain.User) (err error) {
	if err = ctxError(ctx); err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[data.UUID]; ok {
		return errs.ErrUserAlreadyExists
	}
	if _, ok := r.userByUsername(data.Username); ok {
		return errs.ErrUserAlreadyExists
	}

	r.users[data.UUID] = copyUser(data)

	return nil
}

func (r *MemoryRepositoryImpl) SeedUser(ctx context.Context, data domain.User) (user domain.User, err error) {
	if err = ctxError(ctx); err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.userByUsername(data.Username); ok {
		return copyUser(existing), nil
	}

	r.users[data.UUID] = copyUser(data)

	return copyUser(data), nil
}

func (r *MemoryRepositoryImpl) GetUserByID(ctx context.Context, id string) (user domain.User, err error) {
	if err = ctxError(ctx); err != nil {
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return user, errs.ErrUserNotFound
	}

	return copyUser(user), nil
}

func (r *MemoryRepositoryImpl) GetUserByCredentials(ctx context.Context, username, password string) (user domain.User, err error) {
	if err = ctxError(ctx); err != nil {
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.userByUsername(username)
	if !ok || user.Password != password {
		return domain.User{}, errs.ErrUserNotFound
	}

	return copyUser(user), nil
}

func (r *MemoryRepositoryImpl) SetVoting(ctx context.Context, id string, voting domain.Voting) (err error) {
	if err = ctxError(ctx); err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return errs.ErrUserNotFound
	}

	latest := voting
	user.Voting = &latest
	user.Votings = append(user.Votings, voting)
	r.users[id] = user

	return nil
}

// userByUsername expects r.mu to be held.
func (r *MemoryRepositoryImpl) userByUsername(username string) (domain.User, bool) {
	for _, u := range r.users {
		if u.Username == username {
			return u, true
		}
	}

	return domain.User{}, false
}

func copyUser(u domain.User) domain.User {
	if u.Voting != nil {
		v := *u.Voting
		u.Voting = &v
	}
	u.Votings = append([]domain.Voting(nil), u.Votings...)

	return u
}

func ctxError(ctx context.Context) error {
	err := ctx.Err()
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.ErrTimeout
	}

	return err
}
