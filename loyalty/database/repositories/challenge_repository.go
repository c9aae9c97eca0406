package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/quickbite/loyalty/loyalty/database/models"
)

type ChallengeRepository interface {
	GetByID(ctx context.Context, challengeID int64) (*models.Challenge, error)
	// ListActive returns active challenges whose window contains now,
	// optionally narrowed to one type.
	ListActive(ctx context.Context, challengeType string, now time.Time) ([]*models.Challenge, error)
	// ListUnstarted returns up to limit active, open challenges the user has
	// no progress row for.
	ListUnstarted(ctx context.Context, userID int64, now time.Time, limit int) ([]*models.Challenge, error)
	GetProgress(ctx context.Context, userID, challengeID int64) (*models.UserChallengeProgress, error)
	ListProgress(ctx context.Context, userID int64) ([]*models.UserChallengeProgress, error)
	// StartProgress creates the progress row. A conflicting insert affects
	// zero rows and reports started=false.
	StartProgress(ctx context.Context, progress *models.UserChallengeProgress) (bool, error)
	// IncrementProgress atomically advances progress toward the target,
	// capped at the target and guarded on completed=false.
	IncrementProgress(ctx context.Context, userID, challengeID int64, amount int) (*models.UserChallengeProgress, error)
	// Complete flips the terminal flag with a completed=false guard and
	// deposits the reward through the ledger in the same transaction.
	Complete(ctx context.Context, userID, challengeID, pointsReward int64, description string, levels []models.Level) (*AppendResult, error)
}

type challengeRepository struct {
	*BaseRepository
	db         *bun.DB
	pointsRepo PointsRepository
}

func NewChallengeRepository(db *bun.DB, pointsRepo PointsRepository) ChallengeRepository {
	return &challengeRepository{
		BaseRepository: NewBaseRepository(db),
		db:             db,
		pointsRepo:     pointsRepo,
	}
}

func (r *challengeRepository) GetByID(ctx context.Context, challengeID int64) (*models.Challenge, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	challenge := new(models.Challenge)
	err := r.db.NewSelect().
		Model(challenge).
		Where("id = ?", challengeID).
		Scan(timeoutCtx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "challenge", ID: challengeID}
		}
		return nil, r.HandleErrorWithID("get_by_id", "challenges", challengeID, err)
	}

	return challenge, nil
}

func (r *challengeRepository) ListActive(ctx context.Context, challengeType string, now time.Time) ([]*models.Challenge, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var challenges []*models.Challenge
	q := r.db.NewSelect().
		Model(&challenges).
		Where("active = ?", true).
		Where("start_date <= ?", now).
		Where("end_date IS NULL OR end_date >= ?", now)

	if challengeType != "" {
		q = q.Where("type = ?", challengeType)
	}

	err := q.Order("start_date ASC", "id ASC").Scan(timeoutCtx)
	if err != nil {
		return nil, r.HandleError("list_active", "challenges", err)
	}

	return challenges, nil
}

func (r *challengeRepository) ListUnstarted(ctx context.Context, userID int64, now time.Time, limit int) ([]*models.Challenge, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var challenges []*models.Challenge
	err := r.db.NewSelect().
		Model(&challenges).
		Where("active = ?", true).
		Where("start_date <= ?", now).
		Where("end_date IS NULL OR end_date >= ?", now).
		Where("NOT EXISTS (SELECT 1 FROM user_challenge_progress ucp WHERE ucp.challenge_id = c.id AND ucp.user_id = ?)", userID).
		Order("start_date ASC", "id ASC").
		Limit(limit).
		Scan(timeoutCtx)
	if err != nil {
		return nil, r.HandleErrorWithID("list_unstarted", "challenges", userID, err)
	}

	return challenges, nil
}

func (r *challengeRepository) GetProgress(ctx context.Context, userID, challengeID int64) (*models.UserChallengeProgress, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	progress := new(models.UserChallengeProgress)
	err := r.db.NewSelect().
		Model(progress).
		Relation("Challenge").
		Where("ucp.user_id = ? AND ucp.challenge_id = ?", userID, challengeID).
		Scan(timeoutCtx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, r.HandleErrorWithID("get_progress", "user_challenge_progress", challengeID, err)
	}

	return progress, nil
}

func (r *challengeRepository) ListProgress(ctx context.Context, userID int64) ([]*models.UserChallengeProgress, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var progress []*models.UserChallengeProgress
	err := r.db.NewSelect().
		Model(&progress).
		Relation("Challenge").
		Where("ucp.user_id = ?", userID).
		Order("ucp.created_at DESC").
		Scan(timeoutCtx)
	if err != nil {
		return nil, r.HandleErrorWithID("list_progress", "user_challenge_progress", userID, err)
	}

	return progress, nil
}

func (r *challengeRepository) StartProgress(ctx context.Context, progress *models.UserChallengeProgress) (bool, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	progress.CreatedAt = now
	progress.UpdatedAt = now

	res, err := r.db.NewInsert().
		Model(progress).
		On("CONFLICT (user_id, challenge_id) DO NOTHING").
		Exec(timeoutCtx)
	if err != nil {
		return false, r.HandleErrorWithID("start_progress", "user_challenge_progress", progress.ChallengeID, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, r.HandleErrorWithID("start_progress", "user_challenge_progress", progress.ChallengeID, err)
	}

	return rows > 0, nil
}

func (r *challengeRepository) IncrementProgress(ctx context.Context, userID, challengeID int64, amount int) (*models.UserChallengeProgress, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	progress := new(models.UserChallengeProgress)
	res, err := r.db.NewUpdate().
		Model(progress).
		Set("progress = LEAST(progress + ?, target)", amount).
		Set("updated_at = ?", time.Now()).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Where("completed = ?", false).
		Returning("*").
		Exec(timeoutCtx)
	if err != nil {
		return nil, r.HandleErrorWithID("increment_progress", "user_challenge_progress", challengeID, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, r.HandleErrorWithID("increment_progress", "user_challenge_progress", challengeID, err)
	}
	if rows == 0 {
		existing, err := r.GetProgress(ctx, userID, challengeID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, &NotFoundError{Entity: "challenge progress", ID: challengeID}
		}
		return nil, &ConflictError{Entity: "challenge progress", Reason: "already completed"}
	}

	return progress, nil
}

func (r *challengeRepository) Complete(ctx context.Context, userID, challengeID, pointsReward int64, description string, levels []models.Level) (*AppendResult, error) {
	var result *AppendResult

	err := r.Transaction(ctx, func(txCtx context.Context, tx bun.Tx) error {
		now := time.Now()

		res, err := tx.NewUpdate().
			Model((*models.UserChallengeProgress)(nil)).
			Set("completed = ?", true).
			Set("completed_at = ?", now).
			Set("updated_at = ?", now).
			Where("user_id = ? AND challenge_id = ?", userID, challengeID).
			Where("completed = ?", false).
			Exec(txCtx)
		if err != nil {
			return r.HandleErrorWithID("complete", "user_challenge_progress", challengeID, err)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return r.HandleErrorWithID("complete", "user_challenge_progress", challengeID, err)
		}
		if rows == 0 {
			// Lost the race against a concurrent completion; the terminal
			// transition happens at most once.
			return &ConflictError{Entity: "challenge", Reason: "already completed"}
		}

		if pointsReward > 0 {
			result, err = r.pointsRepo.AppendPointsTx(txCtx, tx, userID, pointsReward, models.CategoryChallenge, description, nil, levels)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
