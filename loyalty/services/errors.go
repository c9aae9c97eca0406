package services

import "fmt"

// ValidationError rejects bad or missing fields before any mutation happens.
type ValidationError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", ve.Field, ve.Message)
}

// AuthorizationError rejects cross-user access without internal privilege.
type AuthorizationError struct {
	Message string
}

func (ae *AuthorizationError) Error() string {
	return ae.Message
}
