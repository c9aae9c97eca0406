package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/quickbite/loyalty/loyalty/config"
	"github.com/quickbite/loyalty/loyalty/database/models"
	"github.com/quickbite/loyalty/loyalty/database/repositories"
)

// BadgeService grants badges exactly once and reports what the grant
// unlocked.
type BadgeService struct {
	badgeRepo     repositories.BadgeRepository
	challengeRepo repositories.ChallengeRepository
	points        *PointsService
}

func NewBadgeService(badgeRepo repositories.BadgeRepository, challengeRepo repositories.ChallengeRepository, points *PointsService) *BadgeService {
	return &BadgeService{
		badgeRepo:     badgeRepo,
		challengeRepo: challengeRepo,
		points:        points,
	}
}

// GrantResult reports a successful badge grant and the read-only unlocked
// content computed from the fresh totals.
type GrantResult struct {
	BadgeID            int64               `json:"badge_id"`
	PointsAwarded      int64               `json:"points_awarded"`
	TotalPoints        int64               `json:"total_points"`
	LevelUp            bool                `json:"level_up"`
	Level              int                 `json:"level"`
	UnlockedChallenges []*models.Challenge `json:"unlocked_challenges"`
}

// ListBadges returns active badges, optionally filtered by category and by
// whether the target user has earned them.
func (s *BadgeService) ListBadges(ctx context.Context, id Identity, filters repositories.BadgeFilters) ([]*models.Badge, error) {
	if filters.Earned != nil {
		if filters.UserID == 0 {
			filters.UserID = id.UserID
		}
		if !id.CanActOn(filters.UserID) {
			return nil, &AuthorizationError{Message: "cannot filter by another user's earned badges"}
		}
	}

	return s.badgeRepo.List(ctx, filters)
}

// ListEarned returns the user's grant records, newest first.
func (s *BadgeService) ListEarned(ctx context.Context, id Identity, userID int64) ([]*models.UserBadge, error) {
	if !id.CanActOn(userID) {
		return nil, &AuthorizationError{Message: "cannot view another user's badges"}
	}

	return s.badgeRepo.ListEarned(ctx, userID)
}

// GrantBadge awards a badge and its point reward exactly once. The
// (user, badge) uniqueness constraint decides duplicates; a repeated grant
// surfaces as a conflict and awards nothing.
func (s *BadgeService) GrantBadge(ctx context.Context, id Identity, userID, badgeID int64, reason string) (*GrantResult, error) {
	if !id.Internal {
		return nil, &AuthorizationError{Message: "only internal callers may grant badges"}
	}
	if userID <= 0 {
		return nil, &ValidationError{Field: "user_id", Message: "must be positive"}
	}

	badge, err := s.badgeRepo.GetByID(ctx, badgeID)
	if err != nil {
		return nil, err
	}
	if !badge.Active {
		return nil, &ValidationError{Field: "badge_id", Message: "badge is not active"}
	}

	levels, err := s.points.LevelTable(ctx)
	if err != nil {
		return nil, err
	}

	if reason == "" {
		reason = "Badge earned: " + badge.Name
	}

	outcome, err := s.badgeRepo.Grant(ctx, userID, badgeID, badge.PointsReward, reason, levels)
	if err != nil {
		return nil, err
	}
	if !outcome.Granted {
		return nil, &repositories.ConflictError{Entity: "badge", Reason: "already granted"}
	}

	slog.Info("Badge granted",
		slog.Int64("user_id", userID),
		slog.Int64("badge_id", badgeID),
		slog.Int64("points_reward", badge.PointsReward))

	result := &GrantResult{BadgeID: badgeID, PointsAwarded: badge.PointsReward}
	if outcome.Append != nil {
		result.TotalPoints = outcome.Append.TotalPoints
		result.Level = outcome.Append.Level.LevelNumber
		result.LevelUp = outcome.Append.LevelChanged && outcome.Append.Level.LevelNumber > outcome.Append.PreviousLevel
	}

	// Unlocked content is a read-only extra: failing to compute it must not
	// fail the grant itself.
	unstarted, err := s.challengeRepo.ListUnstarted(ctx, userID, time.Now(), config.UnlockedChallengeLimit)
	if err != nil {
		slog.Warn("Failed to list unlocked challenges after grant",
			slog.Int64("user_id", userID),
			slog.Any("error", err))
	} else {
		result.UnlockedChallenges = unstarted
	}

	return result, nil
}
