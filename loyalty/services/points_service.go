package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/quickbite/loyalty/loyalty/database/models"
	"github.com/quickbite/loyalty/loyalty/database/repositories"
)

// PointsService owns the ledger-facing operations: appending point events,
// reading aggregates and history, and everything level related. The level
// table is static configuration and is cached after the first load.
type PointsService struct {
	pointsRepo repositories.PointsRepository
	levelRepo  repositories.LevelRepository

	mu     sync.Mutex
	levels []models.Level
}

func NewPointsService(pointsRepo repositories.PointsRepository, levelRepo repositories.LevelRepository) *PointsService {
	return &PointsService{
		pointsRepo: pointsRepo,
		levelRepo:  levelRepo,
	}
}

// AddPointsInput is the pre-validated, typed request body for AddPoints.
type AddPointsInput struct {
	UserID      int64
	Delta       int64
	Category    string
	Description string
	OrderID     *int64
}

// PointsResult reports the aggregate state after an append.
type PointsResult struct {
	TotalPoints  int64                `json:"total_points"`
	Level        int                  `json:"level"`
	LevelName    string               `json:"level_name"`
	PointsToNext int64                `json:"points_to_next_level"`
	LevelUp      bool                 `json:"level_up"`
	Benefits     models.LevelBenefits `json:"benefits"`
}

// AddPoints appends one ledger event and returns the fresh aggregate state.
// The event write, the total increment and the level recomputation are one
// atomic unit in the repository.
func (s *PointsService) AddPoints(ctx context.Context, id Identity, in AddPointsInput) (*PointsResult, error) {
	if !id.CanActOn(in.UserID) {
		return nil, &AuthorizationError{Message: "cannot add points for another user"}
	}
	if in.UserID <= 0 {
		return nil, &ValidationError{Field: "user_id", Message: "must be positive"}
	}
	if in.Delta <= 0 {
		return nil, &ValidationError{Field: "points", Message: "must be positive"}
	}
	if !models.ValidPointCategory(in.Category) {
		return nil, &ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", in.Category)}
	}

	levels, err := s.levelTable(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.pointsRepo.AppendPoints(ctx, in.UserID, in.Delta, in.Category, in.Description, in.OrderID, levels)
	if err != nil {
		return nil, err
	}

	slog.Info("Points appended",
		slog.Int64("user_id", in.UserID),
		slog.Int64("delta", in.Delta),
		slog.String("category", in.Category),
		slog.Int64("total_points", res.TotalPoints))

	return resultFromAppend(res), nil
}

// GetPoints returns the user's aggregate together with level details.
func (s *PointsService) GetPoints(ctx context.Context, id Identity, userID int64) (*PointsResult, error) {
	if !id.CanActOn(userID) {
		return nil, &AuthorizationError{Message: "cannot view another user's points"}
	}

	progress, err := s.pointsRepo.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	levels, err := s.levelTable(ctx)
	if err != nil {
		return nil, err
	}

	level, toNext := models.LevelForPoints(levels, progress.TotalPoints)
	return &PointsResult{
		TotalPoints:  progress.TotalPoints,
		Level:        level.LevelNumber,
		LevelName:    level.Name,
		PointsToNext: toNext,
		Benefits:     level.Benefits,
	}, nil
}

// GetHistory returns a page of the user's ledger, newest first.
func (s *PointsService) GetHistory(ctx context.Context, id Identity, userID int64, filters repositories.HistoryFilters) ([]*models.PointEvent, int, error) {
	if !id.CanActOn(userID) {
		return nil, 0, &AuthorizationError{Message: "cannot view another user's history"}
	}
	if filters.Category != "" && !models.ValidPointCategory(filters.Category) {
		return nil, 0, &ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", filters.Category)}
	}

	return s.pointsRepo.GetHistory(ctx, userID, filters)
}

// ListLevels returns the static level table.
func (s *PointsService) ListLevels(ctx context.Context) ([]models.Level, error) {
	return s.levelTable(ctx)
}

// GetUserLevel returns the user's current level with progress detail.
func (s *PointsService) GetUserLevel(ctx context.Context, id Identity, userID int64) (*PointsResult, error) {
	return s.GetPoints(ctx, id, userID)
}

// LevelTable exposes the cached table to sibling services that deposit
// rewards through the ledger.
func (s *PointsService) LevelTable(ctx context.Context) ([]models.Level, error) {
	return s.levelTable(ctx)
}

func (s *PointsService) levelTable(ctx context.Context) ([]models.Level, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.levels != nil {
		return s.levels, nil
	}

	levels, err := s.levelRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("level table is empty")
	}

	s.levels = levels
	return levels, nil
}

func resultFromAppend(res *repositories.AppendResult) *PointsResult {
	return &PointsResult{
		TotalPoints:  res.TotalPoints,
		Level:        res.Level.LevelNumber,
		LevelName:    res.Level.Name,
		PointsToNext: res.PointsToNext,
		LevelUp:      res.LevelChanged && res.Level.LevelNumber > res.PreviousLevel,
		Benefits:     res.Level.Benefits,
	}
}
