package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/invenpulse/internal/api/dto"
	"github.com/spec-kit/invenpulse/internal/auth"
	"github.com/spec-kit/invenpulse/internal/domain"
	"github.com/spec-kit/invenpulse/internal/service"
	apperrors "github.com/spec-kit/invenpulse/pkg/util"
)

// UsersHandler exposes admin account management.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}

	summaries := make([]dto.IdentitySummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, dto.SummaryFromUser(&users[i]))
	}
	return c.JSON(fiber.Map{"data": summaries})
}

// SetRole handles PUT /api/users/:id/role.
func (h *UsersHandler) SetRole(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewNoToken()
	}

	var req dto.SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.SetRole(c.UserContext(), c.Params("id"), domain.Role(req.Role), actor.UserID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.SummaryFromUser(user)})
}
