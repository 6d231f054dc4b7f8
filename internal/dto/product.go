package dto

import (
	"fmt"

	"github.com/alimikegami/food-rater/internal/domain"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductRequest struct {
	ID     string          `json:"id" validate:"required"`
	Name   string          `json:"name" validate:"required"`
	Price  decimal.Decimal `json:"price"`
	Weight float64         `json:"weight"`
}

type ProductResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Price  Price   `json:"price"`
	Weight float64 `json:"weight"`
	Rating float64 `json:"rating,omitempty"`
	Amount int64   `json:"amount,omitempty"`
}

const priceMinPlaces = 2

// Price is rendered with at least two decimal places, "1.00" rather than "1".
type Price struct {
	decimal.Decimal
}

func (p Price) String() string {
	places := -p.Exponent()
	if places < priceMinPlaces {
		places = priceMinPlaces
	}

	return p.StringFixed(places)
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

func (r ProductRequest) ToDomain() (domain.Product, error) {
	price, err := primitive.ParseDecimal128(Price{r.Price}.String())
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid price %s: %w", r.Price, err)
	}

	return domain.Product{
		ID:     r.ID,
		Name:   r.Name,
		Price:  price,
		Weight: r.Weight,
	}, nil
}

func ToProductResponse(p domain.Product) ProductResponse {
	price, err := decimal.NewFromString(p.Price.String())
	if err != nil {
		price = decimal.Zero
	}

	return ProductResponse{
		ID:     p.ID,
		Name:   p.Name,
		Price:  Price{price},
		Weight: p.Weight,
		Rating: p.Rating,
		Amount: p.Amount,
	}
}
