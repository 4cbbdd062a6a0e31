package controller

import (
	"github.com/gofiber/fiber/v2"

	"sdch/internal/dto"
	"sdch/internal/pkg/serverutils"
	"sdch/internal/service"
)

type IQueryController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
}

type queryController struct {
	queryService service.IQueryService
}

func NewQueryController(queryService service.IQueryService) IQueryController {
	return &queryController{queryService: queryService}
}

func (c *queryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/query")
	h.Post("/", c.Query)
}

func (c *queryController) Query(ctx *fiber.Ctx) error {
	var req dto.QueryDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewAppError(400, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.queryService.Query(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("query assembled", res))
}
