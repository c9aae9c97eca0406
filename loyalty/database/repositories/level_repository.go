package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/quickbite/loyalty/loyalty/database/models"
)

type LevelRepository interface {
	// GetAll returns the level table ordered ascending by threshold.
	GetAll(ctx context.Context) ([]models.Level, error)
	GetByNumber(ctx context.Context, levelNumber int) (*models.Level, error)
}

type levelRepository struct {
	*BaseRepository
	db *bun.DB
}

func NewLevelRepository(db *bun.DB) LevelRepository {
	return &levelRepository{
		BaseRepository: NewBaseRepository(db),
		db:             db,
	}
}

func (r *levelRepository) GetAll(ctx context.Context) ([]models.Level, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var levels []models.Level
	err := r.db.NewSelect().
		Model(&levels).
		Order("points_required ASC").
		Scan(timeoutCtx)
	if err != nil {
		return nil, r.HandleError("get_all", "levels", err)
	}

	return levels, nil
}

func (r *levelRepository) GetByNumber(ctx context.Context, levelNumber int) (*models.Level, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	level := new(models.Level)
	err := r.db.NewSelect().
		Model(level).
		Where("level_number = ?", levelNumber).
		Scan(timeoutCtx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "level", ID: levelNumber}
		}
		return nil, r.HandleErrorWithID("get_by_number", "levels", levelNumber, err)
	}

	return level, nil
}
