package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/invenpulse/internal/api/dto"
	"github.com/spec-kit/invenpulse/internal/auth"
	"github.com/spec-kit/invenpulse/internal/service"
	apperrors "github.com/spec-kit/invenpulse/pkg/util"
)

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	user, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return mapAuthError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.SummaryFromUser(user),
		},
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return mapAuthError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.SummaryFromUser(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// ChangePassword handles POST /api/auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewNoToken()
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("current and new password required", nil)
	}

	if err := h.auth.ChangePassword(c.UserContext(), identity.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return mapAuthError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Me handles GET /api/me, echoing the identity the gate attached.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewNoToken()
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"id":    identity.UserID,
			"email": identity.Email,
			"role":  identity.Role,
		},
	})
}

// mapAuthError translates auth-core sentinels into boundary responses.
func mapAuthError(err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return apperrors.NewInvalidCredentials()
	case errors.Is(err, auth.ErrDuplicateIdentity):
		return apperrors.NewDuplicateIdentity(nil)
	case errors.Is(err, auth.ErrTooManyAttempts):
		return apperrors.NewRateLimited()
	case errors.Is(err, auth.ErrStoreUnavailable):
		return apperrors.NewStoreUnavailable(err)
	default:
		return apperrors.MapError(err)
	}
}
