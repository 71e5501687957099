package http

import (
	"errors"

	"knights/internal/core"
	"knights/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LoginHandler exchanges the admin password for a JWT
func (h *HTTPHandler) LoginHandler(c *fiber.Ctx) error {
	var req core.LoginRequest
	if resp, ok := parseAndValidate(c, &req); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}

	token, expiresAt, err := h.svc.AuthenticateAdmin(req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAdminDisabled) {
			return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
				Error: "admin login disabled",
				Code:  core.ErrCodeUnauthorized,
			})
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(core.ErrorResponse{
				Error: "invalid credentials",
				Code:  core.ErrCodeUnauthorized,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "failed to generate token",
			Code:  core.ErrCodeInternalError,
		})
	}

	return c.JSON(core.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}
