package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quickbite/loyalty/api/models"
	"github.com/quickbite/loyalty/api/utils"
	"github.com/quickbite/loyalty/loyalty/database/repositories"
)

// ListBadges returns active badges. ?earned=true/false narrows to badges the
// target user has or has not earned.
func (a *App) ListBadges(c *fiber.Ctx) error {
	id, _ := utils.Identity(c)

	filters := repositories.BadgeFilters{Category: c.Query("category")}
	if raw := c.Query("earned"); raw != "" {
		earned := raw == "true"
		filters.Earned = &earned
		if userID := c.QueryInt("user_id", 0); userID > 0 {
			filters.UserID = int64(userID)
		}
	}

	badges, err := a.Badges.ListBadges(c.Context(), id, filters)
	if err != nil {
		return utils.SendServiceError(c, err)
	}

	return utils.SendSuccess(c, badges, "")
}

// ListEarnedBadges returns the user's badge grants, newest first.
func (a *App) ListEarnedBadges(c *fiber.Ctx) error {
	id, _ := utils.Identity(c)
	userID, ok := pathID(c, "userID")
	if !ok {
		return utils.SendBadRequest(c, "Invalid user ID", nil)
	}

	earned, err := a.Badges.ListEarned(c.Context(), id, userID)
	if err != nil {
		return utils.SendServiceError(c, err)
	}

	return utils.SendSuccess(c, earned, "")
}

// GrantBadge awards a badge to a user. Internal only; repeated grants are
// conflicts.
func (a *App) GrantBadge(c *fiber.Ctx) error {
	id, _ := utils.Identity(c)

	var req models.GrantBadgeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendBadRequest(c, "Invalid request body", nil)
	}

	result, err := a.Badges.GrantBadge(c.Context(), id, req.UserID, req.BadgeID, req.Reason)
	if err != nil {
		return utils.SendServiceError(c, err)
	}

	return utils.SendCreated(c, result, "Badge granted")
}
