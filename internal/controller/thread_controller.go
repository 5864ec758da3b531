package controller

import (
	"strconv"

	"ai-schemadesign-be/internal/dto"
	"ai-schemadesign-be/internal/pkg/serverutils"
	"ai-schemadesign-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IThreadController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	GetAllThreads(ctx *fiber.Ctx) error
	LoadThread(ctx *fiber.Ctx) error
	DeleteThread(ctx *fiber.Ctx) error
	SearchThreads(ctx *fiber.Ctx) error
}

type threadController struct {
	chatService service.ISchemaChatService
}

func NewThreadController(chatService service.ISchemaChatService) IThreadController {
	return &threadController{
		chatService: chatService,
	}
}

func (c *threadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("message", c.SendMessage)
	h.Get("threads", c.GetAllThreads)
	h.Get("threads/search", c.SearchThreads)
	h.Get("threads/:id", c.LoadThread)
	h.Delete("threads/:id", c.DeleteThread)
}

func (c *threadController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendMessage(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Message processed", res))
}

func (c *threadController) GetAllThreads(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetAllThreads(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Threads", res))
}

func (c *threadController) LoadThread(ctx *fiber.Ctx) error {
	res, err := c.chatService.LoadThread(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Thread loaded", res))
}

func (c *threadController) DeleteThread(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid thread id")
	}

	if err := c.chatService.DeleteThread(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Thread deleted", nil))
}

func (c *threadController) SearchThreads(ctx *fiber.Ctx) error {
	query := ctx.Query("query")
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "query parameter is required")
	}

	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))

	res, err := c.chatService.SearchThreads(ctx.Context(), query, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Search results", res))
}
