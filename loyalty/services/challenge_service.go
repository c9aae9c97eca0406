package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/quickbite/loyalty/loyalty/database/models"
	"github.com/quickbite/loyalty/loyalty/database/repositories"
)

// ChallengeService drives the per-user challenge state machine:
// not_started (no row) -> active -> completed (terminal). Expiry is derived
// at read time from the challenge window, never persisted.
type ChallengeService struct {
	challengeRepo repositories.ChallengeRepository
	badges        *BadgeService
	points        *PointsService

	now func() time.Time
}

func NewChallengeService(challengeRepo repositories.ChallengeRepository, badges *BadgeService, points *PointsService) *ChallengeService {
	return &ChallengeService{
		challengeRepo: challengeRepo,
		badges:        badges,
		points:        points,
		now:           time.Now,
	}
}

// ProgressView is the read-time projection of one user/challenge pair.
type ProgressView struct {
	ChallengeID int64      `json:"challenge_id"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	Target      int        `json:"target"`
	Percent     float64    `json:"percent"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CompletionResult reports a finalized challenge. BadgeGrantFailed flags the
// one tolerated partial failure: the completion and point deposit stand even
// when the bonus badge grant did not.
type CompletionResult struct {
	ChallengeID      int64 `json:"challenge_id"`
	PointsAwarded    int64 `json:"points_awarded"`
	TotalPoints      int64 `json:"total_points"`
	Level            int   `json:"level"`
	LevelUp          bool  `json:"level_up"`
	BadgeGranted     bool  `json:"badge_granted"`
	BadgeGrantFailed bool  `json:"badge_grant_failed"`
}

// ListActive returns active challenges currently inside their window.
func (s *ChallengeService) ListActive(ctx context.Context, challengeType string) ([]*models.Challenge, error) {
	if challengeType != "" && !models.ValidChallengeType(challengeType) {
		return nil, &ValidationError{Field: "type", Message: fmt.Sprintf("unknown challenge type %q", challengeType)}
	}

	return s.challengeRepo.ListActive(ctx, challengeType, s.now())
}

// GetProgress returns the derived state for one user/challenge pair. A
// missing row is reported as not_started, with the target taken from the
// challenge criteria.
func (s *ChallengeService) GetProgress(ctx context.Context, id Identity, userID, challengeID int64) (*ProgressView, error) {
	if !id.CanActOn(userID) {
		return nil, &AuthorizationError{Message: "cannot view another user's challenge progress"}
	}

	challenge, err := s.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	progress, err := s.challengeRepo.GetProgress(ctx, userID, challengeID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		return &ProgressView{
			ChallengeID: challengeID,
			Status:      models.ProgressStatusNotStarted,
			Target:      challenge.Criteria.Target,
		}, nil
	}

	if progress.Challenge == nil {
		progress.Challenge = challenge
	}

	return &ProgressView{
		ChallengeID: challengeID,
		Status:      progress.StatusAt(s.now()),
		Progress:    progress.Progress,
		Target:      progress.Target,
		Percent:     progress.ProgressPercent(),
		CompletedAt: progress.CompletedAt,
	}, nil
}

// ListProgress returns the derived state of every challenge the user has
// started.
func (s *ChallengeService) ListProgress(ctx context.Context, id Identity, userID int64) ([]*ProgressView, error) {
	if !id.CanActOn(userID) {
		return nil, &AuthorizationError{Message: "cannot view another user's challenge progress"}
	}

	rows, err := s.challengeRepo.ListProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]*ProgressView, 0, len(rows))
	for _, p := range rows {
		views = append(views, &ProgressView{
			ChallengeID: p.ChallengeID,
			Status:      p.StatusAt(now),
			Progress:    p.Progress,
			Target:      p.Target,
			Percent:     p.ProgressPercent(),
			CompletedAt: p.CompletedAt,
		})
	}

	return views, nil
}

// Start creates the progress row for an open, active challenge.
func (s *ChallengeService) Start(ctx context.Context, id Identity, userID, challengeID int64) (*ProgressView, error) {
	if !id.CanActOn(userID) {
		return nil, &AuthorizationError{Message: "cannot start a challenge for another user"}
	}

	challenge, err := s.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !challenge.Active || !challenge.IsOpenAt(now) {
		return nil, &repositories.ConflictError{Entity: "challenge", Reason: "not currently active"}
	}
	if challenge.Criteria.Target <= 0 {
		return nil, &ValidationError{Field: "challenge_id", Message: "challenge has no target"}
	}

	progress := &models.UserChallengeProgress{
		UserID:      userID,
		ChallengeID: challengeID,
		Target:      challenge.Criteria.Target,
	}

	started, err := s.challengeRepo.StartProgress(ctx, progress)
	if err != nil {
		return nil, err
	}
	if !started {
		return nil, &repositories.ConflictError{Entity: "challenge", Reason: "already started"}
	}

	slog.Info("Challenge started",
		slog.Int64("user_id", userID),
		slog.Int64("challenge_id", challengeID),
		slog.Int("target", progress.Target))

	return &ProgressView{
		ChallengeID: challengeID,
		Status:      models.ProgressStatusActive,
		Target:      progress.Target,
	}, nil
}

// Increment advances progress toward the target. Completed rows are never
// touched; progress is capped at the target.
func (s *ChallengeService) Increment(ctx context.Context, id Identity, userID, challengeID int64, amount int) (*ProgressView, error) {
	if !id.Internal {
		return nil, &AuthorizationError{Message: "only internal callers may report challenge progress"}
	}
	if amount <= 0 {
		return nil, &ValidationError{Field: "amount", Message: "must be positive"}
	}

	challenge, err := s.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if !challenge.Active || !challenge.IsOpenAt(s.now()) {
		return nil, &repositories.ConflictError{Entity: "challenge", Reason: "not currently active"}
	}

	progress, err := s.challengeRepo.IncrementProgress(ctx, userID, challengeID, amount)
	if err != nil {
		return nil, err
	}

	return &ProgressView{
		ChallengeID: challengeID,
		Status:      models.ProgressStatusActive,
		Progress:    progress.Progress,
		Target:      progress.Target,
		Percent:     progress.ProgressPercent(),
	}, nil
}

// Complete finalizes a challenge: the terminal flip and the point deposit
// are one transaction; a configured badge reward is granted best-effort
// afterwards and must never undo the committed completion.
func (s *ChallengeService) Complete(ctx context.Context, id Identity, userID, challengeID int64, allowForce bool) (*CompletionResult, error) {
	if !id.CanActOn(userID) {
		return nil, &AuthorizationError{Message: "cannot complete a challenge for another user"}
	}
	if allowForce && !id.Internal {
		return nil, &AuthorizationError{Message: "only internal callers may force-complete challenges"}
	}

	challenge, err := s.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	progress, err := s.challengeRepo.GetProgress(ctx, userID, challengeID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		return nil, &repositories.NotFoundError{Entity: "challenge progress", ID: challengeID}
	}
	if progress.Completed {
		return nil, &repositories.ConflictError{Entity: "challenge", Reason: "already completed"}
	}

	now := s.now()
	if !challenge.Active || !challenge.IsOpenAt(now) {
		return nil, &repositories.ConflictError{Entity: "challenge", Reason: "outside its active window"}
	}
	if progress.Progress < progress.Target && !allowForce {
		return nil, &repositories.ConflictError{
			Entity: "challenge",
			Reason: fmt.Sprintf("target not met (%d/%d)", progress.Progress, progress.Target),
		}
	}

	levels, err := s.points.LevelTable(ctx)
	if err != nil {
		return nil, err
	}

	description := "Challenge completed: " + challenge.Name
	deposit, err := s.challengeRepo.Complete(ctx, userID, challengeID, challenge.PointsReward, description, levels)
	if err != nil {
		return nil, err
	}

	result := &CompletionResult{
		ChallengeID:   challengeID,
		PointsAwarded: challenge.PointsReward,
	}
	if deposit != nil {
		result.TotalPoints = deposit.TotalPoints
		result.Level = deposit.Level.LevelNumber
		result.LevelUp = deposit.LevelChanged && deposit.Level.LevelNumber > deposit.PreviousLevel
	} else {
		// Zero-reward challenge: nothing was deposited, so report the
		// user's current aggregate instead of zero values.
		var total int64
		if current, err := s.points.GetPoints(ctx, Identity{Internal: true}, userID); err == nil {
			total = current.TotalPoints
		} else if !isNotFound(err) {
			slog.Warn("Aggregate lookup failed after challenge completion",
				slog.Int64("user_id", userID),
				slog.Int64("challenge_id", challengeID),
				slog.Any("error", err))
		}
		level, _ := models.LevelForPoints(levels, total)
		result.TotalPoints = total
		result.Level = level.LevelNumber
	}

	slog.Info("Challenge completed",
		slog.Int64("user_id", userID),
		slog.Int64("challenge_id", challengeID),
		slog.Int64("points_awarded", challenge.PointsReward),
		slog.Bool("forced", allowForce))

	// Badge reward is best-effort: the completion and deposit above are
	// already committed and must not be rolled back by a grant failure.
	if challenge.BadgeRewardID != nil {
		internal := Identity{Internal: true}
		_, grantErr := s.badges.GrantBadge(ctx, internal, userID, *challenge.BadgeRewardID, "Challenge reward: "+challenge.Name)
		switch {
		case grantErr == nil:
			result.BadgeGranted = true
		case isConflict(grantErr):
			// Already owned the badge; not a failure.
		default:
			result.BadgeGrantFailed = true
			slog.Error("Badge reward grant failed after challenge completion",
				slog.Int64("user_id", userID),
				slog.Int64("challenge_id", challengeID),
				slog.Int64("badge_id", *challenge.BadgeRewardID),
				slog.Any("error", grantErr))
		}
	}

	return result, nil
}

func isConflict(err error) bool {
	var conflict *repositories.ConflictError
	return errors.As(err, &conflict)
}

func isNotFound(err error) bool {
	var notFound *repositories.NotFoundError
	return errors.As(err, &notFound)
}
