package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductRefs(t *testing.T) {
	user := User{
		UUID:   "u1",
		Voting: &Voting{ProdID: "prod7340"},
		Votings: []Voting{
			{ProdID: "prod3568"},
			{ProdID: "prod7340"},
			{ProdID: ""},
			{ProdID: "prod8643"},
		},
	}

	assert.Equal(t, []string{"prod7340", "prod3568", "prod8643"}, user.ProductRefs())
	assert.Empty(t, User{UUID: "u2"}.ProductRefs())
}
