package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/quickbite/loyalty/api/utils"
)

// Logging logs every HTTP request in a structured format and tags it with a
// request ID for correlation.
func Logging() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals("request_id", requestID)
		c.Set("X-Request-ID", requestID)

		err := c.Next()

		statusCode := c.Response().StatusCode()
		logLevel := slog.LevelInfo
		if statusCode >= 400 && statusCode < 500 {
			logLevel = slog.LevelWarn
		} else if statusCode >= 500 {
			logLevel = slog.LevelError
		}

		logger := slog.With(
			slog.String("request_id", requestID),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", statusCode),
			slog.Duration("duration", time.Since(start)),
			slog.String("ip", utils.GetIPAddress(c)),
			slog.Int("size", len(c.Response().Body())),
		)

		if id, ok := utils.Identity(c); ok && !id.Internal {
			logger = logger.With(slog.Int64("user_id", id.UserID))
		}

		if err != nil {
			logger = logger.With(slog.String("error", err.Error()))
		}

		logger.Log(c.Context(), logLevel, "HTTP request")
		return err
	}
}

// CustomErrorHandler converts unhandled Fiber errors into the standard
// response envelope.
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if code >= 500 {
		slog.Error("Unhandled request error",
			slog.String("path", c.Path()),
			slog.Int("status", code),
			slog.String("error", err.Error()))
	}

	return utils.SendError(c, code, "REQUEST_FAILED", message, nil)
}
