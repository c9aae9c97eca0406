package repositories

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/quickbite/loyalty/loyalty/config"
)

// RankingRow is one unranked leaderboard candidate. Points holds the window
// sum (or the all-time total); the remaining columns feed sort keys and
// tie-breaks.
type RankingRow struct {
	UserID              int64 `bun:"user_id"`
	Points              int64 `bun:"points"`
	TotalPoints         int64 `bun:"total_points"`
	CurrentLevel        int   `bun:"current_level"`
	BadgeCount          int   `bun:"badge_count"`
	ChallengesCompleted int   `bun:"challenges_completed"`
}

// RankingRepository is strictly read-only; ordering and rank assignment
// happen in the service layer so positions are reproducible. WindowRows
// treats from as inclusive and to as exclusive.
type RankingRepository interface {
	AllTimeRows(ctx context.Context) ([]RankingRow, error)
	WindowRows(ctx context.Context, from, to time.Time) ([]RankingRow, error)
}

type rankingRepository struct {
	*BaseRepository
	db *bun.DB
}

func NewRankingRepository(db *bun.DB) RankingRepository {
	return &rankingRepository{
		BaseRepository: NewBaseRepository(db),
		db:             db,
	}
}

const (
	badgeCountJoin = `LEFT JOIN (
		SELECT user_id, COUNT(*) AS badge_count
		FROM user_badges
		GROUP BY user_id
	) AS bc ON bc.user_id = up.user_id`

	challengeCountJoin = `LEFT JOIN (
		SELECT user_id, COUNT(*) AS challenges_completed
		FROM user_challenge_progress
		WHERE completed = true
		GROUP BY user_id
	) AS cc ON cc.user_id = up.user_id`
)

func (r *rankingRepository) AllTimeRows(ctx context.Context) ([]RankingRow, error) {
	timeoutCtx, cancel := r.WithCustomTimeout(ctx, config.RankingQueryTimeout)
	defer cancel()

	var rows []RankingRow
	err := r.db.NewSelect().
		TableExpr("user_points AS up").
		ColumnExpr("up.user_id").
		ColumnExpr("up.total_points AS points").
		ColumnExpr("up.total_points").
		ColumnExpr("up.current_level").
		ColumnExpr("COALESCE(bc.badge_count, 0) AS badge_count").
		ColumnExpr("COALESCE(cc.challenges_completed, 0) AS challenges_completed").
		Join(badgeCountJoin).
		Join(challengeCountJoin).
		Where("up.total_points > 0").
		Scan(timeoutCtx, &rows)
	if err != nil {
		return nil, r.HandleError("all_time_rows", "ranking", err)
	}

	return rows, nil
}

func (r *rankingRepository) WindowRows(ctx context.Context, from, to time.Time) ([]RankingRow, error) {
	timeoutCtx, cancel := r.WithCustomTimeout(ctx, config.RankingQueryTimeout)
	defer cancel()

	var rows []RankingRow
	err := r.db.NewSelect().
		TableExpr(`(
			SELECT user_id, SUM(points_earned) AS points
			FROM points_history
			WHERE created_at >= ? AND created_at < ?
			GROUP BY user_id
		) AS w`, from, to).
		ColumnExpr("w.user_id").
		ColumnExpr("w.points").
		ColumnExpr("up.total_points").
		ColumnExpr("up.current_level").
		ColumnExpr("COALESCE(bc.badge_count, 0) AS badge_count").
		ColumnExpr("COALESCE(cc.challenges_completed, 0) AS challenges_completed").
		Join("JOIN user_points AS up ON up.user_id = w.user_id").
		Join(badgeCountJoin).
		Join(challengeCountJoin).
		Where("w.points > 0").
		Scan(timeoutCtx, &rows)
	if err != nil {
		return nil, r.HandleError("window_rows", "ranking", err)
	}

	return rows, nil
}
