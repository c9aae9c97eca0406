package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Badge is a grantable achievement. Criteria documents how the badge is
// earned; the engine itself only enforces active/uniqueness, awarding is
// triggered by callers (order pipeline, challenge completion, admins).
type Badge struct {
	bun.BaseModel `bun:"table:badges,alias:b"`

	ID           int64         `bun:"id,pk,autoincrement"`
	Name         string        `bun:"name,notnull"`
	Description  string        `bun:"description,notnull"`
	Category     string        `bun:"category,notnull"`
	Criteria     BadgeCriteria `bun:"criteria,type:jsonb"`
	PointsReward int64         `bun:"points_reward,notnull,default:0"`
	Active       bool          `bun:"active,notnull,default:true"`
	CreatedAt    time.Time     `bun:"created_at,notnull"`
	UpdatedAt    time.Time     `bun:"updated_at,notnull"`
}

// BadgeCriteria is the typed form of the badge criteria blob.
type BadgeCriteria struct {
	Kind   string `json:"kind"`
	Count  int    `json:"count,omitempty"`
	Source string `json:"source,omitempty"`
}

// Badge categories
const (
	BadgeCategoryOrders    = "orders"
	BadgeCategoryLoyalty   = "loyalty"
	BadgeCategorySocial    = "social"
	BadgeCategoryChallenge = "challenge"
	BadgeCategorySpecial   = "special"
)

// Badge criteria kinds
const (
	BadgeCriteriaOrderCount     = "order_count"
	BadgeCriteriaPointsTotal    = "points_total"
	BadgeCriteriaReviewCount    = "review_count"
	BadgeCriteriaReferralCount  = "referral_count"
	BadgeCriteriaChallengeCount = "challenge_count"
	BadgeCriteriaManual         = "manual"
)
