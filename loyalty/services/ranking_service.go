package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"

	"github.com/quickbite/loyalty/loyalty/config"
	"github.com/quickbite/loyalty/loyalty/database/repositories"
)

// Ranking windows
const (
	WindowAllTime = "all_time"
	WindowWeekly  = "weekly"
	WindowMonthly = "monthly"
)

// Ranking sort keys (primary key only; tie-breaks are fixed)
const (
	SortByPoints     = "points"
	SortByLevel      = "level"
	SortByBadges     = "badges"
	SortByChallenges = "challenges"
)

// RankingOptions select one leaderboard view.
type RankingOptions struct {
	Window          string
	SortBy          string
	Limit           int
	HighlightUserID int64
}

// RankedEntry is one leaderboard position.
type RankedEntry struct {
	Position            int   `json:"position"`
	UserID              int64 `json:"user_id"`
	Points              int64 `json:"points"`
	TotalPoints         int64 `json:"total_points"`
	Level               int   `json:"level"`
	BadgeCount          int   `json:"badge_count"`
	ChallengesCompleted int   `json:"challenges_completed"`
}

// Ranking is a bounded leaderboard slice plus the optional highlighted
// user's true position, which is computed from the full ordering even when
// they fall outside the returned slice.
type Ranking struct {
	Window    string        `json:"window"`
	SortBy    string        `json:"sort_by"`
	Entries   []RankedEntry `json:"entries"`
	Total     int           `json:"total"`
	Highlight *RankedEntry  `json:"highlight,omitempty"`
}

// RankingService derives leaderboards from the ledger and aggregates. It is
// strictly read-only; window snapshots are cached briefly and concurrent
// recomputations of the same window are collapsed.
type RankingService struct {
	rankingRepo repositories.RankingRepository
	cache       *lru.Cache
	cacheTTL    time.Duration
	group       singleflight.Group
	now         func() time.Time
}

type cachedRows struct {
	rows      []repositories.RankingRow
	fetchedAt time.Time
}

func NewRankingService(rankingRepo repositories.RankingRepository, cacheSize int, cacheTTL time.Duration) *RankingService {
	if cacheSize <= 0 {
		cacheSize = config.RankingCacheSize
	}
	if cacheTTL <= 0 {
		cacheTTL = config.RankingCacheTTL
	}
	cache, _ := lru.New(cacheSize)
	return &RankingService{
		rankingRepo: rankingRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		now:         time.Now,
	}
}

// GetRanking returns the ordered leaderboard for the requested window.
func (s *RankingService) GetRanking(ctx context.Context, opts RankingOptions) (*Ranking, error) {
	if err := normalizeOptions(&opts); err != nil {
		return nil, err
	}

	rows, err := s.windowRows(ctx, opts.Window)
	if err != nil {
		return nil, err
	}

	ordered := make([]repositories.RankingRow, len(rows))
	copy(ordered, rows)
	sortRows(ordered, opts.SortBy)

	ranking := &Ranking{
		Window: opts.Window,
		SortBy: opts.SortBy,
		Total:  len(ordered),
	}

	for i, row := range ordered {
		entry := entryAt(i+1, row)
		if i < opts.Limit {
			ranking.Entries = append(ranking.Entries, entry)
		}
		if opts.HighlightUserID > 0 && row.UserID == opts.HighlightUserID {
			highlighted := entry
			ranking.Highlight = &highlighted
		}
	}

	return ranking, nil
}

func normalizeOptions(opts *RankingOptions) error {
	if opts.Window == "" {
		opts.Window = WindowAllTime
	}
	switch opts.Window {
	case WindowAllTime, WindowWeekly, WindowMonthly:
	default:
		return &ValidationError{Field: "window", Message: fmt.Sprintf("unknown window %q", opts.Window)}
	}

	if opts.SortBy == "" {
		opts.SortBy = SortByPoints
	}
	switch opts.SortBy {
	case SortByPoints, SortByLevel, SortByBadges, SortByChallenges:
	default:
		return &ValidationError{Field: "sort_by", Message: fmt.Sprintf("unknown sort key %q", opts.SortBy)}
	}

	if opts.Limit <= 0 {
		opts.Limit = config.DefaultRankingLimit
	}
	if opts.Limit > config.MaxRankingLimit {
		return &ValidationError{Field: "limit", Message: fmt.Sprintf("must not exceed %d", config.MaxRankingLimit)}
	}

	return nil
}

func (s *RankingService) windowRows(ctx context.Context, window string) ([]repositories.RankingRow, error) {
	if cached, ok := s.cache.Get(window); ok {
		entry := cached.(cachedRows)
		if s.now().Sub(entry.fetchedAt) < s.cacheTTL {
			return entry.rows, nil
		}
	}

	v, err, _ := s.group.Do(window, func() (interface{}, error) {
		rows, err := s.fetchRows(ctx, window)
		if err != nil {
			return nil, err
		}
		s.cache.Add(window, cachedRows{rows: rows, fetchedAt: s.now()})
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]repositories.RankingRow), nil
}

func (s *RankingService) fetchRows(ctx context.Context, window string) ([]repositories.RankingRow, error) {
	switch window {
	case WindowWeekly:
		from, to := WeekWindow(s.now())
		return s.rankingRepo.WindowRows(ctx, from, to)
	case WindowMonthly:
		from, to := MonthWindow(s.now())
		return s.rankingRepo.WindowRows(ctx, from, to)
	default:
		return s.rankingRepo.AllTimeRows(ctx)
	}
}

// sortRows applies the total order: the configured key descending, then
// total points descending, then user ID ascending. The order is total, so
// positions are reproducible across calls.
func sortRows(rows []repositories.RankingRow, sortBy string) {
	key := func(r repositories.RankingRow) int64 {
		switch sortBy {
		case SortByLevel:
			return int64(r.CurrentLevel)
		case SortByBadges:
			return int64(r.BadgeCount)
		case SortByChallenges:
			return int64(r.ChallengesCompleted)
		default:
			return r.Points
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		ki, kj := key(rows[i]), key(rows[j])
		if ki != kj {
			return ki > kj
		}
		if rows[i].TotalPoints != rows[j].TotalPoints {
			return rows[i].TotalPoints > rows[j].TotalPoints
		}
		return rows[i].UserID < rows[j].UserID
	})
}

func entryAt(position int, row repositories.RankingRow) RankedEntry {
	return RankedEntry{
		Position:            position,
		UserID:              row.UserID,
		Points:              row.Points,
		TotalPoints:         row.TotalPoints,
		Level:               row.CurrentLevel,
		BadgeCount:          row.BadgeCount,
		ChallengesCompleted: row.ChallengesCompleted,
	}
}

// WeekWindow returns the ISO week containing now: Monday 00:00:00 of that
// week and Monday 00:00:00 of the next, in now's location. The upper bound is
// exclusive so sub-second timestamps inside the final second still land in
// exactly one window.
func WeekWindow(now time.Time) (time.Time, time.Time) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	offset := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		offset = 6
	}
	from := dayStart.AddDate(0, 0, -offset)
	return from, from.AddDate(0, 0, 7)
}

// MonthWindow returns the calendar month containing now; the upper bound is
// the first instant of the next month, exclusive.
func MonthWindow(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 1, 0)
}
