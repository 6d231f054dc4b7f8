package controller

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/alimikegami/food-rater/internal/dto"
	"github.com/alimikegami/food-rater/internal/service"
	"github.com/alimikegami/food-rater/pkg/errs"
	"github.com/alimikegami/food-rater/pkg/response"
)

type ProductController struct {
	service service.ProductService
}

func CreateProductController(g *echo.Group, service service.ProductService) {
	c := ProductController{
		service: service,
	}
	g.GET("/products", c.GetProducts)
	g.POST("/products", c.AddProduct)
	g.GET("/products/search/:word", c.SearchProducts)
	g.GET("/products/:productID", c.GetProduct)
	g.PUT("/products/:productID", c.SubmitVoting)
	g.GET("/myproducts/:uuid", c.GetProductsForUser)
	g.GET("/initialize", c.Initialize)
}

func (c *ProductController) GetProduct(e echo.Context) error {
	id, err := pathParam(e, "productID")
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	product, err := c.service.GetProduct(e.Request().Context(), id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteJSON(e, product)
}

func (c *ProductController) GetProducts(e echo.Context) error {
	return response.WriteJSON(e, c.service.ListProducts(e.Request().Context()))
}

func (c *ProductController) SearchProducts(e echo.Context) error {
	word, err := pathParam(e, "word")
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	products, err := c.service.SearchProducts(e.Request().Context(), word)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteJSON(e, products)
}

func (c *ProductController) AddProduct(e echo.Context) error {
	payload := dto.ProductRequest{}
	if ok, err := bindAndValidate(e, &payload); !ok {
		return err
	}

	product, err := c.service.AddProduct(e.Request().Context(), payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddProduct").Msg("")
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteJSON(e, product)
}

func (c *ProductController) SubmitVoting(e echo.Context) error {
	id, err := pathParam(e, "productID")
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.VotingRequest{}
	if ok, err := bindAndValidate(e, &payload); !ok {
		return err
	}

	switch payload.ProdID {
	case "":
		payload.ProdID = id
	case id:
	default:
		return response.WriteErrorResponse(e, fmt.Errorf("%w: prodID %q does not match path %q", errs.ErrClient, payload.ProdID, id), nil)
	}

	voting, err := c.service.SubmitVoting(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteJSON(e, voting)
}

func (c *ProductController) GetProductsForUser(e echo.Context) error {
	id, err := pathParam(e, "uuid")
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	products, err := c.service.GetProductsForUser(e.Request().Context(), id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteJSON(e, products)
}

func (c *ProductController) Initialize(e echo.Context) error {
	err := c.service.Initialize(e.Request().Context())
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "Initialize").Msg("")
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "initialized", nil)
}
