package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserChallengeProgress tracks one user's progress toward one challenge.
// Completed is monotonic: it only ever transitions false -> true.
type UserChallengeProgress struct {
	bun.BaseModel `bun:"table:user_challenge_progress,alias:ucp"`

	ID          int64      `bun:"id,pk,autoincrement"`
	UserID      int64      `bun:"user_id,notnull,unique:user_challenge_progress_user_challenge_key"`
	ChallengeID int64      `bun:"challenge_id,notnull,unique:user_challenge_progress_user_challenge_key"`
	Progress    int        `bun:"progress,notnull,default:0"`
	Target      int        `bun:"target,notnull"`
	Completed   bool       `bun:"completed,notnull,default:false"`
	CompletedAt *time.Time `bun:"completed_at"`
	CreatedAt   time.Time  `bun:"created_at,notnull"`
	UpdatedAt   time.Time  `bun:"updated_at,notnull"`

	Challenge *Challenge `bun:"rel:has-one,join:challenge_id=id"`
}

// Progress states (not_started means no row exists)
const (
	ProgressStatusNotStarted = "not_started"
	ProgressStatusActive     = "active"
	ProgressStatusCompleted  = "completed"
	ProgressStatusExpired    = "expired"
)

// StatusAt derives the read-time state of the progress row. Completed is the
// only persisted terminal state; expired is computed from the challenge
// window and the current clock.
func (p *UserChallengeProgress) StatusAt(now time.Time) string {
	if p.Completed {
		return ProgressStatusCompleted
	}
	if p.Challenge != nil && p.Challenge.StatusAt(now) != ChallengeStatusActive {
		return ProgressStatusExpired
	}
	return ProgressStatusActive
}

// ProgressPercent returns completion as a percentage, capped at 100.
func (p *UserChallengeProgress) ProgressPercent() float64 {
	if p.Target <= 0 {
		return 0
	}
	pct := float64(p.Progress) / float64(p.Target) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}
