package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"northstar-student/internal/domain"
	"northstar-student/internal/middleware"
	"northstar-student/internal/service/compliance"
)

type ComplianceHandler struct {
	complianceService compliance.Service
}

func NewComplianceHandler(complianceService compliance.Service) *ComplianceHandler {
	return &ComplianceHandler{complianceService: complianceService}
}

func (h *ComplianceHandler) GetChecklist(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	checklist, err := h.complianceService.GetChecklist(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(checklist)
}

func (h *ComplianceHandler) UpdateItem(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return middleware.BadRequest("Invalid item ID")
	}

	var input domain.UpdateComplianceItemInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	item, err := h.complianceService.UpdateItem(c.Context(), userID, itemID, input)
	if err != nil {
		switch {
		case errors.Is(err, compliance.ErrItemNotFound):
			return middleware.NotFound("Compliance item not found")
		case errors.Is(err, compliance.ErrDocumentNotFound):
			return middleware.NotFound("Document not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"item": item})
}

func (h *ComplianceHandler) Initialize(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	count, err := h.complianceService.Initialize(c.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, compliance.ErrAlreadyInitialized):
			return middleware.Conflict("Checklist already initialized")
		case errors.Is(err, compliance.ErrNoRules):
			return middleware.NotFound("No compliance rules found. Please contact admin.")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Compliance checklist initialized",
		"count":   count,
	})
}

func (h *ComplianceHandler) ListRules(c *fiber.Ctx) error {
	rules, err := h.complianceService.ListRules(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"rules": rules})
}
