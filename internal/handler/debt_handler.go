package handler

import (
	"go-saristore-pos/internal/model"
	"go-saristore-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DebtHandler struct {
	service service.DebtService
}

func NewDebtHandler(s service.DebtService) *DebtHandler {
	return &DebtHandler{service: s}
}

func (h *DebtHandler) GetDebts(c *fiber.Ctx) error {
	filter := model.DebtFilter{
		Status: c.Query("status"),
		Aging:  c.Query("aging"),
		Search: c.Query("search"),
	}
	if raw := c.Query("customer"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.CustomerID = &id
		}
	}

	debts, err := h.service.GetDebts(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(debts)
}

func (h *DebtHandler) GetMyDebts(c *fiber.Ctx) error {
	detail, err := h.service.GetCustomerDebts(actorFrom(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

func (h *DebtHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.service.Summary()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

func (h *DebtHandler) GetCustomerDebts(c *fiber.Ctx) error {
	customerID, err := parseUUIDParam(c, "customerId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	// Customers can only view their own utang
	actor := actorFrom(c)
	if actor.Role == model.RoleCustomer && actor.ID != customerID {
		return c.Status(403).JSON(fiber.Map{"error": "Not authorized"})
	}

	detail, err := h.service.GetCustomerDebts(customerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

func (h *DebtHandler) CreateDebt(c *fiber.Ctx) error {
	var req model.DebtRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	debt, err := h.service.CreateManual(&req, actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(debt)
}

func (h *DebtHandler) RecordPayment(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid debt ID"})
	}
	var req model.PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	debt, err := h.service.RecordPayment(id, &req, actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(debt)
}

func (h *DebtHandler) DeleteDebt(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid debt ID"})
	}
	if err := h.service.Delete(id, actorFrom(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Debt record removed"})
}
