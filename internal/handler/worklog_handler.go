package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"northstar-student/internal/domain"
	"northstar-student/internal/middleware"
	"northstar-student/internal/service/worklog"
)

type WorkLogHandler struct {
	workLogService worklog.Service
	loc            *time.Location
}

func NewWorkLogHandler(workLogService worklog.Service, loc *time.Location) *WorkLogHandler {
	return &WorkLogHandler{workLogService: workLogService, loc: loc}
}

func (h *WorkLogHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.CreateWorkLogInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.workLogService.Create(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *WorkLogHandler) Week(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	date, err := domain.ParseDate(c.Params("date"), h.loc)
	if err != nil {
		return middleware.BadRequest("Valid date required")
	}

	summary, err := h.workLogService.WeekOf(c.Context(), userID, date)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}

func (h *WorkLogHandler) History(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	history, err := h.workLogService.History(c.Context(), userID, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(history)
}

func (h *WorkLogHandler) Dashboard(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	dashboard, err := h.workLogService.Dashboard(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(dashboard)
}

func (h *WorkLogHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid work log ID")
	}

	if err := h.workLogService.Delete(c.Context(), userID, id); err != nil {
		if errors.Is(err, worklog.ErrEntryNotFound) {
			return middleware.NotFound("Work log not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Work log deleted"})
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if limit := c.QueryInt("limit", 20); limit > 0 {
		params.Limit = limit
	}

	params.Validate()
	return params
}
