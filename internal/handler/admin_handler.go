package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zoobzio/clockz"

	"northstar-student/internal/jobs"
	"northstar-student/internal/service/catalog"
)

type AdminHandler struct {
	sweep          *jobs.DeadlineSweep
	catalogService catalog.Service
	clock          clockz.Clock
}

func NewAdminHandler(sweep *jobs.DeadlineSweep, catalogService catalog.Service, clock clockz.Clock) *AdminHandler {
	return &AdminHandler{sweep: sweep, catalogService: catalogService, clock: clock}
}

// RunSweep runs the deadline sweep immediately and returns its report.
func (h *AdminHandler) RunSweep(c *fiber.Ctx) error {
	report := h.sweep.Run(c.Context(), h.clock.Now())
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"report": report})
}

func (h *AdminHandler) InvalidateCatalog(c *fiber.Ctx) error {
	if err := h.catalogService.Invalidate(c.Context()); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Rule catalog cache cleared"})
}
