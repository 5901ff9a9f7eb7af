package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-portal/internal/application/dto"
	"github.com/jhoicas/inventario-portal/internal/domain"
	"github.com/jhoicas/inventario-portal/pkg/logger"
)

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Invalid request body"})
}

func validation(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}

// writeError traduce los errores de dominio a código HTTP + ErrorResponse.
// Lo que no es un error conocido se registra y sale como 500 sin detalles.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, body := fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "Internal server error"}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, body = fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "Invalid input"}
	case errors.Is(err, domain.ErrUnauthorized):
		status, body = fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid email or password"}
	case errors.Is(err, domain.ErrUserNotFound):
		status, body = fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "User no longer exists"}
	case errors.Is(err, domain.ErrForbidden):
		status, body = fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "You do not have permission for this action"}
	case errors.Is(err, domain.ErrNotFound):
		status, body = fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "Resource not found"}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		status, body = fiber.StatusConflict, dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "Email is already registered"}
	case errors.Is(err, domain.ErrInsufficientStock):
		status, body = fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "Not enough stock to approve this request"}
	case errors.Is(err, domain.ErrDuplicate):
		status, body = fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: "Resource already exists"}
	case errors.Is(err, domain.ErrConflict):
		status, body = fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: "Operation not allowed in the current state"}
	default:
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("http: error interno")
	}
	return c.Status(status).JSON(body)
}
