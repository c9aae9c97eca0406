package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/quickbite/loyalty/loyalty/database/models"
)

// InitializeLevelData upserts the static level table. Thresholds are
// configuration, not runtime state, so re-running is always safe.
func (db *DB) InitializeLevelData(ctx context.Context) error {
	levels := []models.Level{
		{LevelNumber: 1, Name: "Bronze", PointsRequired: 0, Benefits: models.LevelBenefits{}},
		{LevelNumber: 2, Name: "Silver", PointsRequired: 500, Benefits: models.LevelBenefits{DiscountPercent: 2}},
		{LevelNumber: 3, Name: "Gold", PointsRequired: 1500, Benefits: models.LevelBenefits{DiscountPercent: 5, FreeDeliveries: 2}},
		{LevelNumber: 4, Name: "Platinum", PointsRequired: 4000, Benefits: models.LevelBenefits{DiscountPercent: 7, FreeDeliveries: 5, CashbackPercent: 1}},
		{LevelNumber: 5, Name: "Diamond", PointsRequired: 10000, Benefits: models.LevelBenefits{DiscountPercent: 10, FreeDeliveries: 10, CashbackPercent: 2, PrioritySupport: true}},
		{LevelNumber: 6, Name: "Legend", PointsRequired: 25000, Benefits: models.LevelBenefits{DiscountPercent: 15, FreeDeliveries: 20, CashbackPercent: 3, PrioritySupport: true}},
	}

	insertSQL := `
		INSERT INTO levels (level_number, name, points_required, benefits)
		VALUES ($1, $2, $3, $4::jsonb)
		ON CONFLICT (level_number) DO UPDATE SET
			name = EXCLUDED.name,
			points_required = EXCLUDED.points_required,
			benefits = EXCLUDED.benefits;
	`

	for _, l := range levels {
		benefits, err := json.Marshal(l.Benefits)
		if err != nil {
			return fmt.Errorf("failed to marshal benefits for level %d: %w", l.LevelNumber, err)
		}
		if _, err := db.ExecWithLog(ctx, insertSQL, l.LevelNumber, l.Name, l.PointsRequired, string(benefits)); err != nil {
			return fmt.Errorf("failed to upsert level %d: %w", l.LevelNumber, err)
		}
	}

	slog.Info("Level table initialized", slog.Int("count", len(levels)))
	return nil
}

// InitializeBadgeData inserts the default badge catalog if missing.
func (db *DB) InitializeBadgeData(ctx context.Context) error {
	badgeCount, err := db.seedCount(ctx, "SELECT COUNT(*) FROM badges")
	if err == nil && badgeCount > 0 {
		slog.Info("Badge data already initialized, skipping",
			slog.Int("existing_badges", badgeCount))
		return nil
	}

	badges := []models.Badge{
		{
			Name:         "First Bite",
			Description:  "Place your first order",
			Category:     models.BadgeCategoryOrders,
			Criteria:     models.BadgeCriteria{Kind: models.BadgeCriteriaOrderCount, Count: 1},
			PointsReward: 50,
			Active:       true,
		},
		{
			Name:         "Regular",
			Description:  "Place 25 orders",
			Category:     models.BadgeCategoryOrders,
			Criteria:     models.BadgeCriteria{Kind: models.BadgeCriteriaOrderCount, Count: 25},
			PointsReward: 250,
			Active:       true,
		},
		{
			Name:         "Gourmand",
			Description:  "Place 100 orders",
			Category:     models.BadgeCategoryOrders,
			Criteria:     models.BadgeCriteria{Kind: models.BadgeCriteriaOrderCount, Count: 100},
			PointsReward: 1000,
			Active:       true,
		},
		{
			Name:         "Critic",
			Description:  "Write 10 reviews",
			Category:     models.BadgeCategorySocial,
			Criteria:     models.BadgeCriteria{Kind: models.BadgeCriteriaReviewCount, Count: 10},
			PointsReward: 150,
			Active:       true,
		},
		{
			Name:         "Ambassador",
			Description:  "Refer 5 friends",
			Category:     models.BadgeCategorySocial,
			Criteria:     models.BadgeCriteria{Kind: models.BadgeCriteriaReferralCount, Count: 5},
			PointsReward: 500,
			Active:       true,
		},
		{
			Name:         "Point Collector",
			Description:  "Earn 10000 lifetime points",
			Category:     models.BadgeCategoryLoyalty,
			Criteria:     models.BadgeCriteria{Kind: models.BadgeCriteriaPointsTotal, Count: 10000},
			PointsReward: 500,
			Active:       true,
		},
		{
			Name:         "Challenger",
			Description:  "Complete 10 challenges",
			Category:     models.BadgeCategoryChallenge,
			Criteria:     models.BadgeCriteria{Kind: models.BadgeCriteriaChallengeCount, Count: 10},
			PointsReward: 300,
			Active:       true,
		},
	}

	insertSQL := `
		INSERT INTO badges (name, description, category, criteria, points_reward, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4::jsonb, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`

	for _, b := range badges {
		criteria, err := json.Marshal(b.Criteria)
		if err != nil {
			return fmt.Errorf("failed to marshal criteria for badge %q: %w", b.Name, err)
		}
		if _, err := db.ExecWithLog(ctx, insertSQL,
			b.Name, b.Description, b.Category, string(criteria), b.PointsReward, b.Active,
		); err != nil {
			return fmt.Errorf("failed to insert badge %q: %w", b.Name, err)
		}
	}

	slog.Info("Badge catalog initialized", slog.Int("count", len(badges)))
	return nil
}

// InitializeChallengeData inserts a starter set of challenges if missing.
// Recurring challenge windows are anchored to the current day/week/month.
func (db *DB) InitializeChallengeData(ctx context.Context) error {
	challengeCount, err := db.seedCount(ctx, "SELECT COUNT(*) FROM challenges")
	if err == nil && challengeCount > 0 {
		slog.Info("Challenge data already initialized, skipping",
			slog.Int("existing_challenges", challengeCount))
		return nil
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Second)

	weekStart := dayStart.AddDate(0, 0, -mondayOffset(dayStart.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 7).Add(-time.Second)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

	challenges := []models.Challenge{
		{
			Name:         "Lunch Rush",
			Description:  "Place 2 orders today",
			Type:         models.ChallengeTypeDaily,
			Criteria:     models.ChallengeCriteria{Kind: models.ChallengeCriteriaOrderCount, Target: 2},
			PointsReward: 100,
			StartDate:    dayStart,
			EndDate:      &dayEnd,
			Active:       true,
		},
		{
			Name:         "Weekly Feast",
			Description:  "Place 5 orders this week",
			Type:         models.ChallengeTypeWeekly,
			Criteria:     models.ChallengeCriteria{Kind: models.ChallengeCriteriaOrderCount, Target: 5},
			PointsReward: 350,
			StartDate:    weekStart,
			EndDate:      &weekEnd,
			Active:       true,
		},
		{
			Name:         "Review Spree",
			Description:  "Write 3 reviews this week",
			Type:         models.ChallengeTypeWeekly,
			Criteria:     models.ChallengeCriteria{Kind: models.ChallengeCriteriaReviewCount, Target: 3},
			PointsReward: 200,
			StartDate:    weekStart,
			EndDate:      &weekEnd,
			Active:       true,
		},
		{
			Name:         "Monthly Marathon",
			Description:  "Place 20 orders this month",
			Type:         models.ChallengeTypeMonthly,
			Criteria:     models.ChallengeCriteria{Kind: models.ChallengeCriteriaOrderCount, Target: 20},
			PointsReward: 1500,
			StartDate:    monthStart,
			EndDate:      &monthEnd,
			Active:       true,
		},
		{
			Name:         "Point Hunter",
			Description:  "Earn 2000 points this month",
			Type:         models.ChallengeTypeMonthly,
			Criteria:     models.ChallengeCriteria{Kind: models.ChallengeCriteriaPointsEarned, Target: 2000},
			PointsReward: 800,
			StartDate:    monthStart,
			EndDate:      &monthEnd,
			Active:       true,
		},
	}

	insertSQL := `
		INSERT INTO challenges (name, description, type, criteria, points_reward, badge_reward_id, start_date, end_date, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4::jsonb, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`

	for _, c := range challenges {
		criteria, err := json.Marshal(c.Criteria)
		if err != nil {
			return fmt.Errorf("failed to marshal criteria for challenge %q: %w", c.Name, err)
		}
		if _, err := db.ExecWithLog(ctx, insertSQL,
			c.Name, c.Description, c.Type, string(criteria), c.PointsReward,
			c.BadgeRewardID, c.StartDate, c.EndDate, c.Active,
		); err != nil {
			return fmt.Errorf("failed to insert challenge %q: %w", c.Name, err)
		}
	}

	slog.Info("Challenge set initialized", slog.Int("count", len(challenges)))
	return nil
}

func (db *DB) seedCount(ctx context.Context, query string) (int, error) {
	rows, err := db.QueryWithLog(ctx, query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, err
		}
	}
	return count, rows.Err()
}

// mondayOffset returns how many days back the ISO week started.
func mondayOffset(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}
