package handlers

import (
	"errors"
	"log/slog"

	"github.com/Cyl94700/P9-Op-Cl/internal/dto"
	"github.com/Cyl94700/P9-Op-Cl/internal/services"
	"github.com/Cyl94700/P9-Op-Cl/internal/validation"
	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error onto the HTTP surface: validation
// failures carry field messages at 422, ownership failures 403, missing
// records 404, anything else a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
			Error:   true,
			Message: "Validation failed",
			Fields:  verrs,
		})
	}
	if errors.Is(err, services.ErrForbidden) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "You are not allowed to do this",
		})
	}
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Not found",
		})
	}

	slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
