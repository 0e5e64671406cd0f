package controller

import (
	"github.com/gofiber/fiber/v2"

	"finbot-be/internal/dto"
	"finbot-be/internal/pkg/serverutils"
	"finbot-be/internal/service"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type sessionController struct {
	rag service.IRagService
}

func NewSessionController(rag service.IRagService) ISessionController {
	return &sessionController{rag: rag}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Get("", c.List)
	h.Delete("", c.Clear)
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get sessions", dto.ListSessionsResponse{
		SessionIds: c.rag.ListSessions(),
	}))
}

func (c *sessionController) Clear(ctx *fiber.Ctx) error {
	sessionId := serverutils.SessionID(ctx)
	c.rag.ClearSession(sessionId)

	return ctx.JSON(serverutils.SuccessResponse("Session cleared", dto.ClearSessionResponse{
		SessionId: sessionId,
		Cleared:   true,
	}))
}
