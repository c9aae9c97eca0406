package middleware

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/quickbite/loyalty/api/utils"
	"github.com/quickbite/loyalty/loyalty"
	"github.com/quickbite/loyalty/loyalty/services"
)

// Auth resolves the caller identity and stores it in the request context.
// Internal services authenticate with the shared API key; customers carry a
// bearer token whose subject is their user ID. Every route behind this
// middleware requires one of the two.
func Auth(cfg loyalty.ServerConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key := c.Get("X-API-Key"); key != "" {
			if cfg.InternalAPIKey == "" || key != cfg.InternalAPIKey {
				slog.Warn("Rejected internal API key",
					slog.String("ip", utils.GetIPAddress(c)),
					slog.String("path", c.Path()))
				return utils.SendUnauthorized(c, "Invalid API key")
			}
			c.Locals("identity", services.Identity{Internal: true})
			return c.Next()
		}

		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return utils.SendUnauthorized(c, "Missing credentials")
		}

		userID, err := parseToken(strings.TrimPrefix(header, "Bearer "), cfg.JWTSecret)
		if err != nil {
			slog.Debug("Rejected bearer token", slog.String("error", err.Error()))
			return utils.SendUnauthorized(c, "Invalid token")
		}

		c.Locals("identity", services.Identity{UserID: userID})
		return c.Next()
	}
}

// InternalOnly restricts a route to internal service callers.
func InternalOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := utils.Identity(c)
		if !ok || !id.Internal {
			return utils.SendForbidden(c, "Internal access required")
		}
		return c.Next()
	}
}

func parseToken(raw, secret string) (int64, error) {
	if secret == "" {
		return 0, fmt.Errorf("token auth is not configured")
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return 0, err
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("invalid subject %q", subject)
	}

	return userID, nil
}
