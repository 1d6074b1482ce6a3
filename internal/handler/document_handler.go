package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"northstar-student/internal/domain"
	"northstar-student/internal/middleware"
	"northstar-student/internal/service/document"
)

type DocumentHandler struct {
	documentService document.Service
}

func NewDocumentHandler(documentService document.Service) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (h *DocumentHandler) RequestUpload(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.RequestUploadInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	ticket, err := h.documentService.RequestUpload(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(ticket)
}

func (h *DocumentHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var docType *domain.DocumentType
	if t := c.Query("type"); t != "" {
		dt := domain.DocumentType(t)
		docType = &dt
	}

	docs, err := h.documentService.List(c.Context(), userID, docType)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"documents": docs})
}

func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid document ID")
	}

	ticket, err := h.documentService.GetDownloadURL(c.Context(), userID, id)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			return middleware.NotFound("Document not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(ticket)
}

func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid document ID")
	}

	if err := h.documentService.Delete(c.Context(), userID, id); err != nil {
		if errors.Is(err, document.ErrNotFound) {
			return middleware.NotFound("Document not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Document deleted"})
}
