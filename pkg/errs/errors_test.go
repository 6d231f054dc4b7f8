package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetErrorStatusCode(t *testing.T) {
	testCases := []struct {
		Name     string
		Err      error
		Expected int
	}{
		{Name: "client error", Err: ErrClient, Expected: http.StatusBadRequest},
		{Name: "not found", Err: ErrNotFound, Expected: http.StatusNotFound},
		{Name: "user not found", Err: ErrUserNotFound, Expected: http.StatusNotFound},
		{Name: "wrapped not found", Err: fmt.Errorf("lookup prod1: %w", ErrProductNotFound), Expected: http.StatusNotFound},
		{Name: "conflict", Err: ErrUserAlreadyExists, Expected: http.StatusConflict},
		{Name: "store timeout", Err: ErrTimeout, Expected: http.StatusGatewayTimeout},
		{Name: "context deadline", Err: fmt.Errorf("find: %w", context.DeadlineExceeded), Expected: http.StatusGatewayTimeout},
		{Name: "unknown error", Err: errors.New("connection reset"), Expected: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, GetErrorStatusCode(tc.Err))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrProductNotFound))
	assert.False(t, IsNotFound(ErrClient))
}
