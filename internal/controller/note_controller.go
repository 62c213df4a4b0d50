package controller

import (
	"keepwise-be/internal/dto"
	"keepwise-be/internal/entity"
	"keepwise-be/internal/pkg/serverutils"
	"keepwise-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/notes")
	h.Use(auth)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	user := serverutils.AuthUser(ctx)

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields: url, highlighted_text, summary")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.Context(), user.Uid, &req)
	if err != nil {
		return serverutils.StoreError(err, "Failed to save note")
	}

	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{
		"id":      res.Id,
		"message": "Note saved successfully",
	}))
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	user := serverutils.AuthUser(ctx)

	notes, err := c.noteService.List(ctx.Context(), user.Uid)
	if err != nil {
		return serverutils.StoreError(err, "Failed to fetch notes")
	}

	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{"notes": notes}))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	user := serverutils.AuthUser(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		// A malformed id can never match a stored note.
		return entity.ErrNoteNotFound
	}

	note, err := c.noteService.Show(ctx.Context(), user.Uid, id)
	if err != nil {
		return serverutils.StoreError(err, "Failed to fetch note")
	}

	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{"note": note}))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	user := serverutils.AuthUser(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return entity.ErrNoteNotFound
	}

	if err := c.noteService.Delete(ctx.Context(), user.Uid, id); err != nil {
		return serverutils.StoreError(err, "Failed to delete note")
	}

	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{
		"message": "Note deleted successfully",
	}))
}
