package models

import (
	"github.com/uptrace/bun"
)

// Level is one row of the static level table, ordered ascending by
// PointsRequired. Level 1 always has PointsRequired = 0.
type Level struct {
	bun.BaseModel `bun:"table:levels,alias:l"`

	LevelNumber    int           `bun:"level_number,pk"`
	Name           string        `bun:"name,notnull"`
	PointsRequired int64         `bun:"points_required,notnull"`
	Benefits       LevelBenefits `bun:"benefits,type:jsonb"`
}

// LevelBenefits describes what a level unlocks for the customer.
type LevelBenefits struct {
	FreeDeliveries  int     `json:"free_deliveries"`
	DiscountPercent float64 `json:"discount_percent"`
	CashbackPercent float64 `json:"cashback_percent"`
	PrioritySupport bool    `json:"priority_support"`
}

// LevelForPoints returns the highest level whose threshold does not exceed
// total, together with the points still missing to the next level (0 when
// total already reaches the top level). levels must be ordered ascending by
// PointsRequired.
func LevelForPoints(levels []Level, total int64) (Level, int64) {
	var current Level
	if len(levels) == 0 {
		return current, 0
	}

	current = levels[0]
	for _, l := range levels {
		if l.PointsRequired > total {
			return current, l.PointsRequired - total
		}
		current = l
	}
	return current, 0
}
