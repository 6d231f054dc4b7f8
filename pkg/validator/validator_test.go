package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registration struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"pw" validate:"required"`
}

func TestValidate(t *testing.T) {
	cv := NewCustomValidator()

	require.NoError(t, cv.Validate(registration{Username: "sebastian", Password: "123abc"}))

	err := cv.Validate(registration{Username: "sebastian"})
	require.Error(t, err)

	details := Details(err)
	require.Len(t, details, 1)
	assert.Equal(t, "Password", details[0].Field)
	assert.Equal(t, "required", details[0].Tag)
}

func TestDetailsIgnoresForeignErrors(t *testing.T) {
	assert.Nil(t, Details(errors.New("boom")))
}
