package models

import (
	"time"

	"github.com/uptrace/bun"
)

// PointEvent is a single append-only entry in the points ledger. Events are
// never updated or deleted; the user_points aggregate is derived from them.
type PointEvent struct {
	bun.BaseModel `bun:"table:points_history,alias:ph"`

	ID           int64     `bun:"id,pk,autoincrement"`
	UserID       int64     `bun:"user_id,notnull"`
	PointsEarned int64     `bun:"points_earned,notnull"`
	Category     string    `bun:"points_type,notnull"`
	Description  string    `bun:"description,notnull"`
	OrderID      *int64    `bun:"order_id"`
	CreatedAt    time.Time `bun:"created_at,notnull"`
}

// Point event categories
const (
	CategoryOrder     = "order"
	CategoryBadge     = "badge"
	CategoryChallenge = "challenge"
	CategoryReferral  = "referral"
	CategoryReview    = "review"
	CategoryBonus     = "bonus"
)

var pointCategories = map[string]bool{
	CategoryOrder:     true,
	CategoryBadge:     true,
	CategoryChallenge: true,
	CategoryReferral:  true,
	CategoryReview:    true,
	CategoryBonus:     true,
}

// ValidPointCategory reports whether category names a known event source.
func ValidPointCategory(category string) bool {
	return pointCategories[category]
}
