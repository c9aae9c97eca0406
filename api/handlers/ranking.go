package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quickbite/loyalty/api/utils"
	"github.com/quickbite/loyalty/loyalty/services"
)

// GetRanking returns a leaderboard slice for the requested window. Customers
// always get their own position highlighted; internal callers can ask for
// any user via ?user_id=.
func (a *App) GetRanking(c *fiber.Ctx) error {
	id, _ := utils.Identity(c)

	opts := services.RankingOptions{
		Window: c.Query("window"),
		SortBy: c.Query("sort_by"),
		Limit:  c.QueryInt("limit", 0),
	}

	if id.Internal {
		opts.HighlightUserID = int64(c.QueryInt("user_id", 0))
	} else {
		opts.HighlightUserID = id.UserID
	}

	ranking, err := a.Ranking.GetRanking(c.Context(), opts)
	if err != nil {
		return utils.SendServiceError(c, err)
	}

	return utils.SendSuccess(c, ranking, "")
}
