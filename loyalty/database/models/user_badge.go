package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserBadge is the append-only grant record. The unique constraint on
// (user_id, badge_id) is the sole source of truth for "already granted".
type UserBadge struct {
	bun.BaseModel `bun:"table:user_badges,alias:ub"`

	ID       int64     `bun:"id,pk,autoincrement"`
	UserID   int64     `bun:"user_id,notnull,unique:user_badges_user_badge_key"`
	BadgeID  int64     `bun:"badge_id,notnull,unique:user_badges_user_badge_key"`
	EarnedAt time.Time `bun:"earned_at,notnull"`

	Badge *Badge `bun:"rel:has-one,join:badge_id=id"`
}
