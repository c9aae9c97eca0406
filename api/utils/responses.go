package utils

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/quickbite/loyalty/api/models"
	"github.com/quickbite/loyalty/loyalty/database/repositories"
	"github.com/quickbite/loyalty/loyalty/services"
)

// SendJSON sends a JSON response using Fiber
func SendJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(data)
}

// SendSuccess sends a successful JSON response
func SendSuccess(c *fiber.Ctx, data interface{}, message string) error {
	response := models.NewSuccessResponse(data, message)
	return SendJSON(c, http.StatusOK, response)
}

// SendCreated sends a created resource JSON response
func SendCreated(c *fiber.Ctx, data interface{}, message string) error {
	response := models.NewSuccessResponse(data, message)
	return SendJSON(c, http.StatusCreated, response)
}

// SendError sends an error JSON response
func SendError(c *fiber.Ctx, statusCode int, code, message string, details map[string]string) error {
	response := models.NewErrorResponse(code, message, details)
	return SendJSON(c, statusCode, response)
}

// SendBadRequest sends a bad request error response
func SendBadRequest(c *fiber.Ctx, message string, details map[string]string) error {
	return SendError(c, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

// SendUnauthorized sends an unauthorized error response
func SendUnauthorized(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

// SendForbidden sends a forbidden error response
func SendForbidden(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusForbidden, "FORBIDDEN", message, nil)
}

// SendNotFound sends a not found error response
func SendNotFound(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusNotFound, "NOT_FOUND", message, nil)
}

// SendConflict sends a conflict error response
func SendConflict(c *fiber.Ctx, message string, details map[string]string) error {
	return SendError(c, http.StatusConflict, "CONFLICT", message, details)
}

// SendInternalServerError sends an internal server error response
func SendInternalServerError(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message, nil)
}

// SendPaginated sends a paginated JSON response
func SendPaginated(c *fiber.Ctx, data interface{}, pagination *models.PaginationInfo, message string) error {
	response := models.NewPaginatedResponse(data, pagination, message)
	return SendJSON(c, http.StatusOK, response)
}

// SendServiceError maps domain errors onto HTTP responses. Unknown errors
// are reported as internal without leaking their message.
func SendServiceError(c *fiber.Ctx, err error) error {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		details := map[string]string{validation.Field: validation.Message}
		return SendBadRequest(c, "Validation failed", details)
	}

	var authz *services.AuthorizationError
	if errors.As(err, &authz) {
		return SendForbidden(c, authz.Message)
	}

	var notFound *repositories.NotFoundError
	if errors.As(err, &notFound) {
		return SendNotFound(c, notFound.Error())
	}

	var conflict *repositories.ConflictError
	if errors.As(err, &conflict) {
		return SendConflict(c, conflict.Error(), nil)
	}

	return SendInternalServerError(c, "Internal server error")
}

// Identity extracts the caller identity placed by the auth middleware.
func Identity(c *fiber.Ctx) (services.Identity, bool) {
	id, ok := c.Locals("identity").(services.Identity)
	return id, ok
}

// GetIPAddress extracts the client IP address
func GetIPAddress(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := c.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.IP()
}
