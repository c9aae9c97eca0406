package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quickbite/loyalty/api/models"
	"github.com/quickbite/loyalty/api/utils"
)

// Health reports service and database health.
func (a *App) Health(c *fiber.Ctx) error {
	health := models.NewHealthCheck(a.Version)

	if err := a.DB.Ping(c.Context()); err != nil {
		health.AddComponent("database", "unhealthy", err.Error())
	} else {
		health.AddComponent("database", "healthy", "")
	}

	status := fiber.StatusOK
	if health.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return utils.SendJSON(c, status, health)
}
