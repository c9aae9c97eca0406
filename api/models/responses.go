package models

import (
	"time"
)

// APIResponse represents a standard API response structure
type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// APIError represents an API error response
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// PaginatedResponse represents a paginated API response
type PaginatedResponse struct {
	APIResponse
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}

// PaginationInfo contains pagination metadata
type PaginationInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewSuccessResponse creates a successful API response
func NewSuccessResponse(data interface{}, message string) *APIResponse {
	return &APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewErrorResponse creates an error API response
func NewErrorResponse(code, message string, details map[string]string) *APIResponse {
	return &APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now(),
	}
}

// NewPaginatedResponse creates a paginated API response
func NewPaginatedResponse(data interface{}, pagination *PaginationInfo, message string) *PaginatedResponse {
	return &PaginatedResponse{
		APIResponse: APIResponse{
			Success:   true,
			Message:   message,
			Data:      data,
			Timestamp: time.Now(),
		},
		Pagination: pagination,
	}
}

// NewPaginationInfo creates pagination info
func NewPaginationInfo(page, limit int, total int64) *PaginationInfo {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &PaginationInfo{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// HealthCheck represents a health check response
type HealthCheck struct {
	Status     string                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Version    string                     `json:"version"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents health status of a component
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthCheck creates a new health check response
func NewHealthCheck(version string) *HealthCheck {
	return &HealthCheck{
		Status:     "healthy",
		Timestamp:  time.Now(),
		Version:    version,
		Components: make(map[string]ComponentHealth),
	}
}

// AddComponent adds a component health status
func (h *HealthCheck) AddComponent(name, status, message string) {
	h.Components[name] = ComponentHealth{
		Status:  status,
		Message: message,
	}

	if status != "healthy" && h.Status == "healthy" {
		h.Status = "unhealthy"
	}
}

// AddPointsRequest is the body for POST /api/v1/points.
type AddPointsRequest struct {
	UserID      int64  `json:"user_id"`
	Points      int64  `json:"points"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	OrderID     *int64 `json:"order_id,omitempty"`
}

// GrantBadgeRequest is the body for POST /api/v1/badges/grant.
type GrantBadgeRequest struct {
	UserID  int64  `json:"user_id"`
	BadgeID int64  `json:"badge_id"`
	Reason  string `json:"reason,omitempty"`
}

// IncrementProgressRequest is the body for challenge progress reports.
type IncrementProgressRequest struct {
	UserID int64 `json:"user_id"`
	Amount int   `json:"amount"`
}

// CompleteChallengeRequest is the body for challenge completion.
type CompleteChallengeRequest struct {
	UserID int64 `json:"user_id"`
	Force  bool  `json:"force,omitempty"`
}
