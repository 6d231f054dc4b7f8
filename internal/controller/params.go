package controller

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/alimikegami/food-rater/pkg/errs"
	"github.com/alimikegami/food-rater/pkg/response"
	"github.com/alimikegami/food-rater/pkg/validator"
)

// pathParam returns the trimmed path parameter, or ErrClient when it is blank.
func pathParam(e echo.Context, name string) (string, error) {
	value := strings.TrimSpace(e.Param(name))
	if value == "" {
		return "", fmt.Errorf("%w: missing %s", errs.ErrClient, name)
	}

	return value, nil
}

// bindAndValidate decodes the JSON body into payload and runs the presence
// checks. The returned error has already been written to the client.
func bindAndValidate(e echo.Context, payload interface{}) (bool, error) {
	if err := e.Bind(payload); err != nil {
		return false, response.WriteErrorResponse(e, fmt.Errorf("%w: malformed body", errs.ErrClient), nil)
	}

	if err := e.Validate(payload); err != nil {
		return false, response.WriteErrorResponse(e, fmt.Errorf("%w: missing fields", errs.ErrClient), validator.Details(err))
	}

	return true, nil
}
