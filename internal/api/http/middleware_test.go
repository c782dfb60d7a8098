package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/invenpulse/internal/observability"
	apperrors "github.com/spec-kit/invenpulse/pkg/util"
)

func TestRequestTimeout_DeadlineReachesHandlerContext(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)

	var deadline time.Time
	var hasDeadline bool
	app.Get("/deadline", func(c *fiber.Ctx) error {
		deadline, hasDeadline = c.UserContext().Deadline()
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/deadline", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.True(t, hasDeadline)
	require.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
}

func TestRequestTimeout_DisabledWhenZero(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)

	var hasDeadline bool
	app.Get("/deadline", func(c *fiber.Ctx) error {
		_, hasDeadline = c.UserContext().Deadline()
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/deadline", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.False(t, hasDeadline)
}

func TestErrorHandling_PanicBecomesInternalError(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("unexpected")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestErrorHandling_DomainErrorEnvelope(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("product", nil)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
