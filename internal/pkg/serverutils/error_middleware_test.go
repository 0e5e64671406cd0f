package serverutils

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finbot-be/internal/apperror"
)

func TestErrorHandlerMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid input", err: apperror.Invalid("bad url"), wantStatus: 400},
		{name: "no meaningful content", err: apperror.ErrNoMeaningfulContent, wantStatus: 400},
		{name: "invalid credentials", err: apperror.ErrInvalidCredentials, wantStatus: 400},
		{name: "no model available", err: fmt.Errorf("%w: tried 3", apperror.ErrNoModelAvailable), wantStatus: 400},
		{name: "session not found", err: apperror.ErrSessionNotFound, wantStatus: 404},
		{name: "upstream timeout", err: apperror.ErrUpstreamTimeout, wantStatus: 504},
		{name: "upstream rate limited", err: apperror.ErrUpstreamRateLimited, wantStatus: 429},
		{name: "unclassified", err: errors.New("disk on fire"), wantStatus: 500},
		{name: "fiber error passes through", err: fiber.NewError(fiber.StatusUnprocessableEntity, "nope"), wantStatus: 422},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ErrorHandlerMiddleware())
			app.Get("/boom", func(*fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
