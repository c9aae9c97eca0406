package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/quickbite/loyalty/api/models"
	"github.com/quickbite/loyalty/api/utils"
	"github.com/quickbite/loyalty/loyalty/database/repositories"
	"github.com/quickbite/loyalty/loyalty/services"
)

// AddPoints appends a point event for a user. Internal services call this
// from the order, review and referral pipelines.
func (a *App) AddPoints(c *fiber.Ctx) error {
	id, _ := utils.Identity(c)

	var req models.AddPointsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendBadRequest(c, "Invalid request body", nil)
	}

	result, err := a.Points.AddPoints(c.Context(), id, services.AddPointsInput{
		UserID:      req.UserID,
		Delta:       req.Points,
		Category:    req.Category,
		Description: req.Description,
		OrderID:     req.OrderID,
	})
	if err != nil {
		return utils.SendServiceError(c, err)
	}

	return utils.SendCreated(c, result, "Points added")
}

// GetPoints returns the user's current totals and level detail.
func (a *App) GetPoints(c *fiber.Ctx) error {
	id, _ := utils.Identity(c)
	userID, ok := pathID(c, "userID")
	if !ok {
		return utils.SendBadRequest(c, "Invalid user ID", nil)
	}

	result, err := a.Points.GetPoints(c.Context(), id, userID)
	if err != nil {
		return utils.SendServiceError(c, err)
	}

	return utils.SendSuccess(c, result, "")
}

// GetHistory returns a page of the user's point events, newest first.
func (a *App) GetHistory(c *fiber.Ctx) error {
	id, _ := utils.Identity(c)
	userID, ok := pathID(c, "userID")
	if !ok {
		return utils.SendBadRequest(c, "Invalid user ID", nil)
	}

	filters := repositories.HistoryFilters{
		Category: c.Query("category"),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 0),
	}
	if raw := c.Query("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return utils.SendBadRequest(c, "Invalid since timestamp", nil)
		}
		filters.Since = since
	}
	if raw := c.Query("until"); raw != "" {
		until, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return utils.SendBadRequest(c, "Invalid until timestamp", nil)
		}
		filters.Until = until
	}
	filters.Normalize()

	events, total, err := a.Points.GetHistory(c.Context(), id, userID, filters)
	if err != nil {
		return utils.SendServiceError(c, err)
	}

	pagination := models.NewPaginationInfo(filters.Page, filters.Limit, int64(total))
	return utils.SendPaginated(c, events, pagination, "")
}

// ListLevels returns the static level table.
func (a *App) ListLevels(c *fiber.Ctx) error {
	levels, err := a.Points.ListLevels(c.Context())
	if err != nil {
		return utils.SendServiceError(c, err)
	}

	return utils.SendSuccess(c, levels, "")
}

// GetUserLevel returns the user's level with progress toward the next one.
func (a *App) GetUserLevel(c *fiber.Ctx) error {
	id, _ := utils.Identity(c)
	userID, ok := pathID(c, "userID")
	if !ok {
		return utils.SendBadRequest(c, "Invalid user ID", nil)
	}

	result, err := a.Points.GetUserLevel(c.Context(), id, userID)
	if err != nil {
		return utils.SendServiceError(c, err)
	}

	return utils.SendSuccess(c, result, "")
}
