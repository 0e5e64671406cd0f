package serverutils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"finbot-be/internal/constant"
)

// SessionMiddleware resolves the caller's session identifier from the session
// header. A missing or blank header mints a fresh identifier; either way the
// id lands in locals and is echoed back on the response so the client can
// keep reusing it.
func SessionMiddleware(ctx *fiber.Ctx) error {
	sessionId := strings.TrimSpace(ctx.Get(constant.SessionHeader))
	if sessionId == "" {
		sessionId = uuid.NewString()
	}

	ctx.Locals("session_id", sessionId)
	ctx.Set(constant.SessionHeader, sessionId)
	return ctx.Next()
}

// SessionID reads the identifier placed by SessionMiddleware.
func SessionID(ctx *fiber.Ctx) string {
	if id, ok := ctx.Locals("session_id").(string); ok {
		return id
	}
	return ""
}
