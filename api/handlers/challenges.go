package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quickbite/loyalty/api/models"
	"github.com/quickbite/loyalty/api/utils"
)

// ListChallenges returns active challenges inside their window, optionally
// narrowed by ?type=.
func (a *App) ListChallenges(c *fiber.Ctx) error {
	challenges, err := a.Challenges.ListActive(c.Context(), c.Query("type"))
	if err != nil {
		return utils.SendServiceError(c, err)
	}

	return utils.SendSuccess(c, challenges, "")
}

// ListChallengeProgress returns the user's progress across all challenges
// they have started.
func (a *App) ListChallengeProgress(c *fiber.Ctx) error {
	id, _ := utils.Identity(c)
	userID, ok := pathID(c, "userID")
	if !ok {
		return utils.SendBadRequest(c, "Invalid user ID", nil)
	}

	views, err := a.Challenges.ListProgress(c.Context(), id, userID)
	if err != nil {
		return utils.SendServiceError(c, err)
	}

	return utils.SendSuccess(c, views, "")
}

// GetChallengeProgress returns the derived state of one challenge for one
// user.
func (a *App) GetChallengeProgress(c *fiber.Ctx) error {
	id, _ := utils.Identity(c)
	challengeID, ok := pathID(c, "challengeID")
	if !ok {
		return utils.SendBadRequest(c, "Invalid challenge ID", nil)
	}
	userID, ok := pathID(c, "userID")
	if !ok {
		return utils.SendBadRequest(c, "Invalid user ID", nil)
	}

	view, err := a.Challenges.GetProgress(c.Context(), id, userID, challengeID)
	if err != nil {
		return utils.SendServiceError(c, err)
	}

	return utils.SendSuccess(c, view, "")
}

// StartChallenge creates the caller's progress row for a challenge.
func (a *App) StartChallenge(c *fiber.Ctx) error {
	id, _ := utils.Identity(c)
	challengeID, ok := pathID(c, "challengeID")
	if !ok {
		return utils.SendBadRequest(c, "Invalid challenge ID", nil)
	}

	var req struct {
		UserID int64 `json:"user_id"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
	}
	userID := req.UserID
	if userID == 0 {
		userID = id.UserID
	}
	if userID <= 0 {
		return utils.SendBadRequest(c, "Missing user ID", nil)
	}

	view, err := a.Challenges.Start(c.Context(), id, userID, challengeID)
	if err != nil {
		return utils.SendServiceError(c, err)
	}

	return utils.SendCreated(c, view, "Challenge started")
}

// IncrementChallengeProgress advances a user's progress. Internal only;
// event pipelines report progress as orders, reviews and referrals land.
func (a *App) IncrementChallengeProgress(c *fiber.Ctx) error {
	id, _ := utils.Identity(c)
	challengeID, ok := pathID(c, "challengeID")
	if !ok {
		return utils.SendBadRequest(c, "Invalid challenge ID", nil)
	}

	var req models.IncrementProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendBadRequest(c, "Invalid request body", nil)
	}
	if req.UserID <= 0 {
		return utils.SendBadRequest(c, "Missing user ID", nil)
	}

	view, err := a.Challenges.Increment(c.Context(), id, req.UserID, challengeID, req.Amount)
	if err != nil {
		return utils.SendServiceError(c, err)
	}

	return utils.SendSuccess(c, view, "Progress updated")
}

// CompleteChallenge finalizes a challenge and deposits its reward. Force is
// reserved for internal callers.
func (a *App) CompleteChallenge(c *fiber.Ctx) error {
	id, _ := utils.Identity(c)
	challengeID, ok := pathID(c, "challengeID")
	if !ok {
		return utils.SendBadRequest(c, "Invalid challenge ID", nil)
	}

	var req models.CompleteChallengeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
	}
	userID := req.UserID
	if userID == 0 {
		userID = id.UserID
	}
	if userID <= 0 {
		return utils.SendBadRequest(c, "Missing user ID", nil)
	}

	result, err := a.Challenges.Complete(c.Context(), id, userID, challengeID, req.Force)
	if err != nil {
		return utils.SendServiceError(c, err)
	}

	return utils.SendSuccess(c, result, "Challenge completed")
}
