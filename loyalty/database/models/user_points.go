package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserPoints is the per-user aggregate kept strictly consistent with the
// points_history ledger. It is only ever mutated through atomic store-level
// increments tied to a ledger append.
type UserPoints struct {
	bun.BaseModel `bun:"table:user_points,alias:up"`

	UserID       int64     `bun:"user_id,pk"`
	TotalPoints  int64     `bun:"total_points,notnull,default:0"`
	CurrentLevel int       `bun:"current_level,notnull,default:1"`
	UpdatedAt    time.Time `bun:"updated_at,notnull"`
}
