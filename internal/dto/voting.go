package dto

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alimikegami/food-rater/internal/domain"
)

// Number decodes from a JSON number or a quoted numeric string; mobile
// clients post coordinates and ratings as strings.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid number %q: not finite", s)
	}

	*n = Number(f)
	return nil
}

type VotingRequest struct {
	UUID      string `json:"uuid" validate:"required"`
	ProdID    string `json:"prodID"`
	Rating    Number `json:"rating"`
	Lat       Number `json:"lat"`
	Lng       Number `json:"lng"`
	StoreName string `json:"storeName"`
}

func (r VotingRequest) ToDomain(submittedAt time.Time) domain.Voting {
	return domain.Voting{
		UUID:        r.UUID,
		ProdID:      r.ProdID,
		Rating:      float64(r.Rating),
		Lat:         float64(r.Lat),
		Lng:         float64(r.Lng),
		StoreName:   r.StoreName,
		SubmittedAt: submittedAt,
	}
}
