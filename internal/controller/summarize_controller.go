package controller

import (
	"keepwise-be/internal/dto"
	"keepwise-be/internal/pkg/serverutils"
	"keepwise-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISummarizeController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Summarize(ctx *fiber.Ctx) error
}

type summarizeController struct {
	summarizeService service.ISummarizeService
}

func NewSummarizeController(summarizeService service.ISummarizeService) ISummarizeController {
	return &summarizeController{
		summarizeService: summarizeService,
	}
}

func (c *summarizeController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/summarize")
	h.Use(auth)
	h.Post("", c.Summarize)
}

func (c *summarizeController) Summarize(ctx *fiber.Ctx) error {
	var req dto.SummarizeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields: text")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.summarizeService.Summarize(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{"summary": res.Summary}))
}
