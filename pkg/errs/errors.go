package errs

import (
	"context"
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusConflict       = http.StatusConflict
	ErrStatusTimeout        = http.StatusGatewayTimeout
)

var (
	ErrInternalServer    = errors.New("Internal server error")
	ErrClient            = errors.New("Bad request")
	ErrNotFound          = errors.New("Resource not found")
	ErrUserNotFound      = errors.New("User not found")
	ErrProductNotFound   = errors.New("Product not found")
	ErrUserAlreadyExists = errors.New("User already exists")
	ErrTimeout           = errors.New("Store did not answer in time")
)

// errorMap is walked with errors.Is so wrapped sentinels keep their status.
var errorMap = []struct {
	err    error
	status int
}{
	{ErrClient, ErrStatusClient},
	{ErrNotFound, ErrStatusNotFound},
	{ErrUserNotFound, ErrStatusNotFound},
	{ErrProductNotFound, ErrStatusNotFound},
	{ErrUserAlreadyExists, ErrStatusConflict},
	{ErrTimeout, ErrStatusTimeout},
	{context.DeadlineExceeded, ErrStatusTimeout},
	{ErrInternalServer, ErrStatusInternalServer},
}

func GetErrorStatusCode(err error) int {
	for _, e := range errorMap {
		if errors.Is(err, e.err) {
			return e.status
		}
	}

	return ErrStatusInternalServer
}

func IsNotFound(err error) bool {
	return GetErrorStatusCode(err) == ErrStatusNotFound
}
