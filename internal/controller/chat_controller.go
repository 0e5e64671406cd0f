package controller

import (
	"github.com/gofiber/fiber/v2"

	"finbot-be/internal/dto"
	"finbot-be/internal/pkg/serverutils"
	"finbot-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
}

type chatController struct {
	answers service.IAnswerService
}

func NewChatController(answers service.IAnswerService) IChatController {
	return &chatController{answers: answers}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Post("/query", c.Query)
}

func (c *chatController) Query(ctx *fiber.Ctx) error {
	sessionId := serverutils.SessionID(ctx)

	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.answers.Answer(ctx.Context(), sessionId, req.Question, req.ApiKey, req.MaxResults)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Query answered", res))
}
