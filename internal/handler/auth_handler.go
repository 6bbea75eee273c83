package handler

import (
	"go-saristore-pos/internal/model"
	"go-saristore-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req model.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	token, user, err := h.service.Login(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"token": token, "user": user})
}

func (h *AuthHandler) Heartbeat(c *fiber.Ctx) error {
	if err := h.service.Heartbeat(actorFrom(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ok"})
}
