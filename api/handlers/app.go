package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/quickbite/loyalty/api/middleware"
	"github.com/quickbite/loyalty/loyalty"
	"github.com/quickbite/loyalty/loyalty/database"
	"github.com/quickbite/loyalty/loyalty/services"
)

// App bundles everything the HTTP layer needs.
type App struct {
	Config     *loyalty.Config
	DB         *database.DB
	Points     *services.PointsService
	Badges     *services.BadgeService
	Challenges *services.ChallengeService
	Ranking    *services.RankingService
	Version    string
}

// RegisterRoutes mounts every route on the Fiber app. Everything under
// /api/v1 requires authentication; mutation endpoints driven by other
// services additionally require the internal API key.
func (a *App) RegisterRoutes(app *fiber.App) {
	app.Get("/health", a.Health)

	v1 := app.Group("/api/v1", middleware.Auth(a.Config.Server))

	v1.Post("/points", a.AddPoints)
	v1.Get("/points/:userID", a.GetPoints)
	v1.Get("/points/:userID/history", a.GetHistory)

	v1.Get("/levels", a.ListLevels)
	v1.Get("/levels/user/:userID", a.GetUserLevel)

	v1.Get("/badges", a.ListBadges)
	v1.Get("/badges/user/:userID", a.ListEarnedBadges)
	v1.Post("/badges/grant", middleware.InternalOnly(), a.GrantBadge)

	v1.Get("/challenges", a.ListChallenges)
	v1.Get("/challenges/user/:userID", a.ListChallengeProgress)
	v1.Get("/challenges/:challengeID/progress/:userID", a.GetChallengeProgress)
	v1.Post("/challenges/:challengeID/start", a.StartChallenge)
	v1.Post("/challenges/:challengeID/progress", middleware.InternalOnly(), a.IncrementChallengeProgress)
	v1.Post("/challenges/:challengeID/complete", a.CompleteChallenge)

	v1.Get("/ranking", a.GetRanking)
}

// parseInt64 is a utility function to parse int64 from string
func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func pathID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := parseInt64(c.Params(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
