package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/quickbite/loyalty/loyalty/database/models"
)

// BadgeFilters narrows badge listings. When Earned is set, UserID selects
// whose grant records decide earned/not-earned.
type BadgeFilters struct {
	Category string
	Earned   *bool
	UserID   int64
}

// GrantOutcome reports one grant attempt. Granted=false means the uniqueness
// constraint observed a prior grant and the attempt was an idempotent no-op.
type GrantOutcome struct {
	Granted bool
	Badge   *models.UserBadge
	Append  *AppendResult
}

type BadgeRepository interface {
	GetByID(ctx context.Context, badgeID int64) (*models.Badge, error)
	List(ctx context.Context, filters BadgeFilters) ([]*models.Badge, error)
	ListEarned(ctx context.Context, userID int64) ([]*models.UserBadge, error)
	// Grant inserts the grant record and deposits the badge's point reward in
	// one transaction. The (user_id, badge_id) uniqueness constraint is the
	// sole source of truth for duplicates; a conflicting insert affects zero
	// rows and nothing else is mutated.
	Grant(ctx context.Context, userID, badgeID, pointsReward int64, reason string, levels []models.Level) (*GrantOutcome, error)
}

type badgeRepository struct {
	*BaseRepository
	db         *bun.DB
	pointsRepo PointsRepository
}

func NewBadgeRepository(db *bun.DB, pointsRepo PointsRepository) BadgeRepository {
	return &badgeRepository{
		BaseRepository: NewBaseRepository(db),
		db:             db,
		pointsRepo:     pointsRepo,
	}
}

func (r *badgeRepository) GetByID(ctx context.Context, badgeID int64) (*models.Badge, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	badge := new(models.Badge)
	err := r.db.NewSelect().
		Model(badge).
		Where("id = ?", badgeID).
		Scan(timeoutCtx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "badge", ID: badgeID}
		}
		return nil, r.HandleErrorWithID("get_by_id", "badges", badgeID, err)
	}

	return badge, nil
}

func (r *badgeRepository) List(ctx context.Context, filters BadgeFilters) ([]*models.Badge, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var badges []*models.Badge
	q := r.db.NewSelect().
		Model(&badges).
		Where("active = ?", true)

	if filters.Category != "" {
		q = q.Where("category = ?", filters.Category)
	}
	if filters.Earned != nil && filters.UserID > 0 {
		sub := "EXISTS (SELECT 1 FROM user_badges ub WHERE ub.badge_id = b.id AND ub.user_id = ?)"
		if *filters.Earned {
			q = q.Where(sub, filters.UserID)
		} else {
			q = q.Where("NOT "+sub, filters.UserID)
		}
	}

	err := q.Order("category ASC", "id ASC").Scan(timeoutCtx)
	if err != nil {
		return nil, r.HandleError("list", "badges", err)
	}

	return badges, nil
}

func (r *badgeRepository) ListEarned(ctx context.Context, userID int64) ([]*models.UserBadge, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var earned []*models.UserBadge
	err := r.db.NewSelect().
		Model(&earned).
		Relation("Badge").
		Where("ub.user_id = ?", userID).
		Order("ub.earned_at DESC").
		Scan(timeoutCtx)
	if err != nil {
		return nil, r.HandleErrorWithID("list_earned", "user_badges", userID, err)
	}

	return earned, nil
}

func (r *badgeRepository) Grant(ctx context.Context, userID, badgeID, pointsReward int64, reason string, levels []models.Level) (*GrantOutcome, error) {
	outcome := &GrantOutcome{}

	err := r.Transaction(ctx, func(txCtx context.Context, tx bun.Tx) error {
		userBadge := &models.UserBadge{
			UserID:   userID,
			BadgeID:  badgeID,
			EarnedAt: time.Now(),
		}

		res, err := tx.NewInsert().
			Model(userBadge).
			On("CONFLICT (user_id, badge_id) DO NOTHING").
			Exec(txCtx)
		if err != nil {
			return r.HandleErrorWithID("grant", "user_badges", badgeID, err)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return r.HandleErrorWithID("grant", "user_badges", badgeID, err)
		}
		if rows == 0 {
			// Already granted; nothing else may be mutated.
			return nil
		}

		outcome.Granted = true
		outcome.Badge = userBadge

		if pointsReward > 0 {
			deposit, err := r.pointsRepo.AppendPointsTx(txCtx, tx, userID, pointsReward, models.CategoryBadge, reason, nil, levels)
			if err != nil {
				return err
			}
			outcome.Append = deposit
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return outcome, nil
}
