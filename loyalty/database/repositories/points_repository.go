package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	"github.com/quickbite/loyalty/loyalty/database/models"
)

// AppendResult reports the aggregate state right after a ledger append. All
// values come from the freshly committed row, never from a cached total.
type AppendResult struct {
	Event         *models.PointEvent
	TotalPoints   int64
	Level         models.Level
	PointsToNext  int64
	PreviousLevel int
	LevelChanged  bool
}

type PointsRepository interface {
	// AppendPoints writes a ledger event and bumps the aggregate in one
	// transaction. The increment is a store-level addition; the level is
	// recomputed from the returned total inside the same transaction.
	AppendPoints(ctx context.Context, userID, delta int64, category, description string, orderID *int64, levels []models.Level) (*AppendResult, error)
	// AppendPointsTx is the same operation running inside a caller-owned
	// transaction, for compound reward flows (badge grants, challenge
	// completions).
	AppendPointsTx(ctx context.Context, tx bun.Tx, userID, delta int64, category, description string, orderID *int64, levels []models.Level) (*AppendResult, error)
	GetProgress(ctx context.Context, userID int64) (*models.UserPoints, error)
	GetHistory(ctx context.Context, userID int64, filters HistoryFilters) ([]*models.PointEvent, int, error)
}

type pointsRepository struct {
	*BaseRepository
	db *bun.DB
}

func NewPointsRepository(db *bun.DB) PointsRepository {
	return &pointsRepository{
		BaseRepository: NewBaseRepository(db),
		db:             db,
	}
}

func (r *pointsRepository) AppendPoints(ctx context.Context, userID, delta int64, category, description string, orderID *int64, levels []models.Level) (*AppendResult, error) {
	var result *AppendResult
	err := r.Transaction(ctx, func(txCtx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = r.AppendPointsTx(txCtx, tx, userID, delta, category, description, orderID, levels)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *pointsRepository) AppendPointsTx(ctx context.Context, tx bun.Tx, userID, delta int64, category, description string, orderID *int64, levels []models.Level) (*AppendResult, error) {
	if delta <= 0 {
		return nil, fmt.Errorf("point delta must be positive, got %d", delta)
	}

	now := time.Now()

	event := &models.PointEvent{
		UserID:       userID,
		PointsEarned: delta,
		Category:     category,
		Description:  description,
		OrderID:      orderID,
		CreatedAt:    now,
	}
	if _, err := tx.NewInsert().Model(event).Exec(ctx); err != nil {
		return nil, r.HandleErrorWithID("append_event", "point_event", userID, err)
	}

	// Atomic store-level increment. The aggregate row is provisioned on the
	// first append; the RETURNING clause hands back the committed total and
	// the level as stored before this recomputation.
	aggregate := &models.UserPoints{
		UserID:       userID,
		TotalPoints:  delta,
		CurrentLevel: 1,
		UpdatedAt:    now,
	}
	err := tx.NewInsert().
		Model(aggregate).
		On("CONFLICT (user_id) DO UPDATE").
		Set("total_points = user_points.total_points + EXCLUDED.total_points").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("total_points, current_level").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("increment_total", "user_points", userID, err)
	}

	previousLevel := aggregate.CurrentLevel
	level, toNext := models.LevelForPoints(levels, aggregate.TotalPoints)

	if level.LevelNumber != previousLevel {
		_, err = tx.NewUpdate().
			Model((*models.UserPoints)(nil)).
			Set("current_level = ?", level.LevelNumber).
			Where("user_id = ?", userID).
			Exec(ctx)
		if err != nil {
			return nil, r.HandleErrorWithID("update_level", "user_points", userID, err)
		}

		slog.Info("User level changed",
			slog.String("type", "db"),
			slog.Int64("user_id", userID),
			slog.Int("from", previousLevel),
			slog.Int("to", level.LevelNumber),
			slog.Int64("total_points", aggregate.TotalPoints))
	}

	return &AppendResult{
		Event:         event,
		TotalPoints:   aggregate.TotalPoints,
		Level:         level,
		PointsToNext:  toNext,
		PreviousLevel: previousLevel,
		LevelChanged:  level.LevelNumber != previousLevel,
	}, nil
}

func (r *pointsRepository) GetProgress(ctx context.Context, userID int64) (*models.UserPoints, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	progress := new(models.UserPoints)
	err := r.db.NewSelect().
		Model(progress).
		Where("user_id = ?", userID).
		Scan(timeoutCtx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "user progress", ID: userID}
		}
		return nil, r.HandleErrorWithID("get_progress", "user_points", userID, err)
	}

	return progress, nil
}

func (r *pointsRepository) GetHistory(ctx context.Context, userID int64, filters HistoryFilters) ([]*models.PointEvent, int, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	filters.Normalize()

	var events []*models.PointEvent
	q := r.db.NewSelect().
		Model(&events).
		Where("user_id = ?", userID)
	q = filters.Apply(q)

	total, err := q.
		Order("created_at DESC").
		Limit(filters.Limit).
		Offset(filters.Offset()).
		ScanAndCount(timeoutCtx)
	if err != nil {
		return nil, 0, r.HandleErrorWithID("get_history", "points_history", userID, err)
	}

	return events, total, nil
}
