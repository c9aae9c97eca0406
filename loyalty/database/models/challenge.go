package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Challenge is a time-boxed goal a user can work toward. Completion deposits
// PointsReward through the ledger and optionally grants BadgeRewardID.
type Challenge struct {
	bun.BaseModel `bun:"table:challenges,alias:c"`

	ID            int64             `bun:"id,pk,autoincrement"`
	Name          string            `bun:"name,notnull"`
	Description   string            `bun:"description,notnull"`
	Type          string            `bun:"type,notnull"`
	Criteria      ChallengeCriteria `bun:"criteria,type:jsonb"`
	PointsReward  int64             `bun:"points_reward,notnull,default:0"`
	BadgeRewardID *int64            `bun:"badge_reward_id"`
	StartDate     time.Time         `bun:"start_date,notnull"`
	EndDate       *time.Time        `bun:"end_date"`
	Active        bool              `bun:"active,notnull,default:true"`
	CreatedAt     time.Time         `bun:"created_at,notnull"`
	UpdatedAt     time.Time         `bun:"updated_at,notnull"`
}

// ChallengeCriteria is the typed form of the challenge criteria blob. Target
// is copied onto the progress row when a user starts the challenge.
type ChallengeCriteria struct {
	Kind   string `json:"kind"`
	Target int    `json:"target"`
	Source string `json:"source,omitempty"`
}

// Challenge types
const (
	ChallengeTypeDaily   = "daily"
	ChallengeTypeWeekly  = "weekly"
	ChallengeTypeMonthly = "monthly"
	ChallengeTypeSpecial = "special"
)

var challengeTypes = map[string]bool{
	ChallengeTypeDaily:   true,
	ChallengeTypeWeekly:  true,
	ChallengeTypeMonthly: true,
	ChallengeTypeSpecial: true,
}

// ValidChallengeType reports whether t names a known challenge type.
func ValidChallengeType(t string) bool {
	return challengeTypes[t]
}

// Challenge criteria kinds
const (
	ChallengeCriteriaOrderCount    = "order_count"
	ChallengeCriteriaOrderTotal    = "order_total"
	ChallengeCriteriaPointsEarned  = "points_earned"
	ChallengeCriteriaReviewCount   = "review_count"
	ChallengeCriteriaReferralCount = "referral_count"
)

// IsOpenAt reports whether the challenge window contains now. Challenges
// without an end date stay open indefinitely.
func (c *Challenge) IsOpenAt(now time.Time) bool {
	if now.Before(c.StartDate) {
		return false
	}
	if c.EndDate != nil && now.After(*c.EndDate) {
		return false
	}
	return true
}

// StatusAt derives the read-time status of the challenge itself. Expiry is
// never persisted; it is always computed from the current clock.
func (c *Challenge) StatusAt(now time.Time) string {
	switch {
	case !c.Active:
		return ChallengeStatusInactive
	case now.Before(c.StartDate):
		return ChallengeStatusUpcoming
	case c.EndDate != nil && now.After(*c.EndDate):
		return ChallengeStatusExpired
	default:
		return ChallengeStatusActive
	}
}

// Derived challenge statuses
const (
	ChallengeStatusActive   = "active"
	ChallengeStatusUpcoming = "upcoming"
	ChallengeStatusExpired  = "expired"
	ChallengeStatusInactive = "inactive"
)
