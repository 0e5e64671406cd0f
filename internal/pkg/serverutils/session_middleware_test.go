package serverutils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finbot-be/internal/constant"
)

func newSessionApp() *fiber.App {
	app := fiber.New()
	app.Use(SessionMiddleware)
	app.Get("/probe", func(ctx *fiber.Ctx) error {
		return ctx.SendString(SessionID(ctx))
	})
	return app
}

func TestSessionMiddlewareMintsIdentifier(t *testing.T) {
	app := newSessionApp()

	req := httptest.NewRequest("GET", "/probe", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	minted := resp.Header.Get(constant.SessionHeader)
	require.NotEmpty(t, minted)
	_, err = uuid.Parse(minted)
	assert.NoError(t, err, "minted session id should be a uuid")
}

func TestSessionMiddlewareEchoesExistingIdentifier(t *testing.T) {
	app := newSessionApp()

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set(constant.SessionHeader, "client-chosen-id")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "client-chosen-id", resp.Header.Get(constant.SessionHeader))
}

func TestSessionMiddlewareIgnoresBlankHeader(t *testing.T) {
	app := newSessionApp()

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set(constant.SessionHeader, "   ")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.NotEqual(t, "   ", resp.Header.Get(constant.SessionHeader))
	assert.NotEmpty(t, resp.Header.Get(constant.SessionHeader))
}
