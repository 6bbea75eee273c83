package handler

import (
	"time"

	"go-saristore-pos/internal/model"
	"go-saristore-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TransactionHandler struct {
	service service.SaleService
}

func NewTransactionHandler(s service.SaleService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// CreateSale handles POST /transactions: the whole cart either commits
// (transaction + stock deduction + optional utang) or nothing is written.
func (h *TransactionHandler) CreateSale(c *fiber.Ctx) error {
	var req model.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transaction, err := h.service.CreateSale(&req, actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(transaction)
}

func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	filter := model.TransactionFilter{
		Receipt:       c.Query("receipt"),
		PaymentMethod: c.Query("payment_method"),
	}
	if raw := c.Query("date"); raw != "" {
		if d, err := time.Parse("2006-01-02", raw); err == nil {
			filter.Date = &d
		}
	}
	if rawStart, rawEnd := c.Query("start_date"), c.Query("end_date"); rawStart != "" && rawEnd != "" {
		start, errStart := time.Parse("2006-01-02", rawStart)
		end, errEnd := time.Parse("2006-01-02", rawEnd)
		if errStart == nil && errEnd == nil {
			filter.StartDate = &start
			filter.EndDate = &end
		}
	}
	if raw := c.Query("staff"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.StaffID = &id
		}
	}

	transactions, err := h.service.GetTransactions(filter, actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transactions)
}

func (h *TransactionHandler) GetMyTransactions(c *fiber.Ctx) error {
	transactions, err := h.service.GetCustomerTransactions(actorFrom(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transactions)
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}
	transaction, err := h.service.GetTransaction(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transaction)
}
