package handler

import (
	"github.com/gofiber/fiber/v2"

	"northstar-student/internal/domain"
	"northstar-student/internal/middleware"
	"northstar-student/internal/service/permit"
)

type PermitHandler struct {
	permitService permit.Service
}

func NewPermitHandler(permitService permit.Service) *PermitHandler {
	return &PermitHandler{permitService: permitService}
}

func (h *PermitHandler) Upsert(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.UpsertPermitInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	view, err := h.permitService.Upsert(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(view)
}

func (h *PermitHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	view, err := h.permitService.Get(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(view)
}
