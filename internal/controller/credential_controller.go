package controller

import (
	"ai-schemadesign-be/internal/dto"
	"ai-schemadesign-be/internal/pkg/serverutils"
	"ai-schemadesign-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICredentialController interface {
	RegisterRoutes(r fiber.Router)
	StoreApiKey(ctx *fiber.Ctx) error
	ApiKeyStatus(ctx *fiber.Ctx) error
	DeleteApiKey(ctx *fiber.Ctx) error
}

type credentialController struct {
	credentialService service.ICredentialService
}

func NewCredentialController(credentialService service.ICredentialService) ICredentialController {
	return &credentialController{
		credentialService: credentialService,
	}
}

func (c *credentialController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/credential/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Put("api-key", c.StoreApiKey)
	h.Get("api-key", c.ApiKeyStatus)
	h.Delete("api-key", c.DeleteApiKey)
}

func (c *credentialController) StoreApiKey(ctx *fiber.Ctx) error {
	var req dto.StoreApiKeyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.credentialService.StoreApiKey(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("API key stored", nil))
}

func (c *credentialController) ApiKeyStatus(ctx *fiber.Ctx) error {
	res, err := c.credentialService.ApiKeyStatus(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("API key status", res))
}

func (c *credentialController) DeleteApiKey(ctx *fiber.Ctx) error {
	if err := c.credentialService.DeleteApiKey(ctx.Context()); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("API key removed", nil))
}
