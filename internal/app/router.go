package app

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/alimikegami/food-rater/config"
	"github.com/alimikegami/food-rater/internal/controller"
	localmiddleware "github.com/alimikegami/food-rater/internal/middleware"
	"github.com/alimikegami/food-rater/internal/service"
	"github.com/alimikegami/food-rater/pkg/response"
	"github.com/alimikegami/food-rater/pkg/validator"
)

func NewRouter(config *config.Config, productSvc service.ProductService, userSvc service.UserService) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.NewCustomValidator()

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{
			echo.HeaderAuthorization,
			echo.HeaderContentType,
			echo.HeaderAccessControlAllowOrigin,
			echo.HeaderAccessControlAllowHeaders,
		},
	}))
	e.Use(localmiddleware.Logger)
	e.Use(localmiddleware.Timeout(config.RequestTimeout))

	g := e.Group("")
	controller.CreateProductController(g, productSvc)
	controller.CreateUserController(g, userSvc)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "pong", nil)
	})

	return e
}
