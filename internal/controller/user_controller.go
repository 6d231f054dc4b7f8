package controller

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/alimikegami/food-rater/internal/dto"
	"github.com/alimikegami/food-rater/internal/service"
	"github.com/alimikegami/food-rater/pkg/errs"
	"github.com/alimikegami/food-rater/pkg/response"
)

const minPasswordLength = 4

type UserController struct {
	service service.UserService
}

func CreateUserController(g *echo.Group, service service.UserService) {
	uc := UserController{
		service: service,
	}
	g.PUT("/user/register", uc.Register)
	g.GET("/user/login/:username/:pw", uc.Login)
	g.GET("/user/:userID", uc.GetUser)
	g.GET("/users/:userID", uc.GetUser)
}

func (c *UserController) Register(e echo.Context) error {
	payload := dto.UserRequest{}
	if ok, err := bindAndValidate(e, &payload); !ok {
		return err
	}

	user, err := c.service.Register(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteJSON(e, user)
}

func (c *UserController) Login(e echo.Context) error {
	username, err := pathParam(e, "username")
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	pw := e.Param("pw")
	if len(pw) < minPasswordLength {
		return response.WriteErrorResponse(e, fmt.Errorf("%w: pw must have at least %d characters", errs.ErrClient, minPasswordLength), nil)
	}

	user, err := c.service.Login(e.Request().Context(), username, pw)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteJSON(e, user)
}

func (c *UserController) GetUser(e echo.Context) error {
	id, err := pathParam(e, "userID")
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	user, err := c.service.GetUser(e.Request().Context(), id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteJSON(e, user)
}
