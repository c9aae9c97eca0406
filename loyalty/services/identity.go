package services

// Identity is the resolved caller identity handed in by the API layer.
// Internal callers (platform services, admins) may act on arbitrary users;
// everyone else may only act on themselves.
type Identity struct {
	Internal bool
	UserID   int64
}

// CanActOn reports whether the identity may operate on userID's data.
func (id Identity) CanActOn(userID int64) bool {
	return id.Internal || (id.UserID > 0 && id.UserID == userID)
}
