package handler

import (
	"errors"

	"go-saristore-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actorFrom reads the authenticated actor set by the auth middleware
func actorFrom(c *fiber.Ctx) service.Actor {
	actor := service.Actor{Name: "Unknown"}
	if id, ok := c.Locals("user_id").(string); ok {
		if parsed, err := uuid.Parse(id); err == nil {
			actor.ID = parsed
		}
	}
	if name, ok := c.Locals("user_name").(string); ok {
		actor.Name = name
	}
	if role, ok := c.Locals("user_role").(string); ok {
		actor.Role = role
	}
	return actor
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// respondError maps business errors onto status codes: not-found to 404,
// the rest of the taxonomy to 400, anything unexpected to a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	if service.IsNotFound(err) {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}

	var validationErr *service.ValidationError
	var stockErr *service.InsufficientStockError
	var creditErr *service.CreditLimitError
	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &stockErr),
		errors.As(err, &creditErr),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrDebtAlreadyPaid),
		errors.Is(err, service.ErrEmailTaken):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredential),
		errors.Is(err, service.ErrAccountDisabled):
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
}
