package services

import (
	"context"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/quickbite/loyalty/loyalty/database/repositories"
	"github.com/quickbite/loyalty/loyalty/services/mock"
)

func rankingFixture(t *testing.T) (*RankingService, *mock.MockRankingRepository) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRankingRepository(ctrl)
	return NewRankingService(repo, 8, time.Minute), repo
}

func TestRankingService_GetRanking(t *testing.T) {
	rows := []repositories.RankingRow{
		{UserID: 5, Points: 1000, TotalPoints: 1000, CurrentLevel: 2, BadgeCount: 1},
		{UserID: 2, Points: 1000, TotalPoints: 1000, CurrentLevel: 2, BadgeCount: 4},
		{UserID: 9, Points: 1500, TotalPoints: 1500, CurrentLevel: 3, BadgeCount: 2},
		{UserID: 1, Points: 200, TotalPoints: 200, CurrentLevel: 1, BadgeCount: 7},
	}

	t.Run("orders by points with deterministic tie-break", func(t *testing.T) {
		s, repo := rankingFixture(t)
		repo.EXPECT().AllTimeRows(gomock.Any()).Return(rows, nil)

		got, err := s.GetRanking(context.Background(), RankingOptions{})
		if err != nil {
			t.Fatalf("GetRanking() error = %v", err)
		}
		wantOrder := []int64{9, 2, 5, 1}
		if len(got.Entries) != len(wantOrder) {
			t.Fatalf("got %d entries, want %d", len(got.Entries), len(wantOrder))
		}
		for i, want := range wantOrder {
			if got.Entries[i].UserID != want {
				t.Errorf("position %d = user %d, want %d", i+1, got.Entries[i].UserID, want)
			}
			if got.Entries[i].Position != i+1 {
				t.Errorf("entry %d position = %d, want %d", i, got.Entries[i].Position, i+1)
			}
		}
	})

	t.Run("sort by badges uses its own key", func(t *testing.T) {
		s, repo := rankingFixture(t)
		repo.EXPECT().AllTimeRows(gomock.Any()).Return(rows, nil)

		got, err := s.GetRanking(context.Background(), RankingOptions{SortBy: SortByBadges})
		if err != nil {
			t.Fatalf("GetRanking() error = %v", err)
		}
		if got.Entries[0].UserID != 1 || got.Entries[0].BadgeCount != 7 {
			t.Errorf("top entry = user %d with %d badges, want user 1 with 7", got.Entries[0].UserID, got.Entries[0].BadgeCount)
		}
	})

	t.Run("highlight user outside the returned slice keeps their true position", func(t *testing.T) {
		s, repo := rankingFixture(t)
		repo.EXPECT().AllTimeRows(gomock.Any()).Return(rows, nil)

		got, err := s.GetRanking(context.Background(), RankingOptions{Limit: 2, HighlightUserID: 1})
		if err != nil {
			t.Fatalf("GetRanking() error = %v", err)
		}
		if len(got.Entries) != 2 {
			t.Fatalf("got %d entries, want 2", len(got.Entries))
		}
		if got.Highlight == nil {
			t.Fatal("Highlight = nil, want user 1")
		}
		if got.Highlight.UserID != 1 || got.Highlight.Position != 4 {
			t.Errorf("Highlight = user %d at position %d, want user 1 at 4", got.Highlight.UserID, got.Highlight.Position)
		}
		if got.Total != 4 {
			t.Errorf("Total = %d, want 4", got.Total)
		}
	})

	t.Run("window rows fetched for weekly", func(t *testing.T) {
		s, repo := rankingFixture(t)
		repo.EXPECT().WindowRows(gomock.Any(), gomock.Any(), gomock.Any()).Return(rows[:1], nil)

		got, err := s.GetRanking(context.Background(), RankingOptions{Window: WindowWeekly})
		if err != nil {
			t.Fatalf("GetRanking() error = %v", err)
		}
		if got.Window != WindowWeekly || len(got.Entries) != 1 {
			t.Errorf("got window %q with %d entries, want weekly with 1", got.Window, len(got.Entries))
		}
	})

	t.Run("snapshot reused within the cache TTL", func(t *testing.T) {
		s, repo := rankingFixture(t)
		repo.EXPECT().AllTimeRows(gomock.Any()).Return(rows, nil).Times(1)

		for i := 0; i < 3; i++ {
			if _, err := s.GetRanking(context.Background(), RankingOptions{}); err != nil {
				t.Fatalf("GetRanking() call %d error = %v", i, err)
			}
		}
	})

	t.Run("invalid options rejected", func(t *testing.T) {
		s, _ := rankingFixture(t)

		cases := []RankingOptions{
			{Window: "yearly"},
			{SortBy: "karma"},
			{Limit: 500},
		}
		for _, opts := range cases {
			if _, err := s.GetRanking(context.Background(), opts); !errorMatches(err, &ValidationError{}) {
				t.Errorf("GetRanking(%+v) error = %v, want ValidationError", opts, err)
			}
		}
	})
}

func TestWeekWindow(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		wantFrom time.Time
		wantTo   time.Time
	}{
		{
			name:     "midweek",
			now:      time.Date(2025, 6, 18, 15, 30, 0, 0, time.UTC), // Wednesday
			wantFrom: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "monday maps to itself",
			now:      time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
			wantFrom: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "sunday belongs to the preceding monday",
			now:      time.Date(2025, 6, 22, 23, 0, 0, 0, time.UTC),
			wantFrom: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := WeekWindow(tt.now)
			if !from.Equal(tt.wantFrom) {
				t.Errorf("from = %v, want %v", from, tt.wantFrom)
			}
			if !to.Equal(tt.wantTo) {
				t.Errorf("to = %v, want %v", to, tt.wantTo)
			}
		})
	}
}

// Every instant, including sub-second timestamps in the last second of a
// week, must fall inside exactly one window.
func TestWeekWindowCoversSubSecondBoundary(t *testing.T) {
	event := time.Date(2025, 6, 22, 23, 59, 59, 500_000_000, time.UTC) // Sunday 23:59:59.5

	from, to := WeekWindow(event)
	if event.Before(from) || !event.Before(to) {
		t.Errorf("event %v not in [%v, %v)", event, from, to)
	}

	nextFrom, _ := WeekWindow(to)
	if !nextFrom.Equal(to) {
		t.Errorf("next window starts at %v, want %v", nextFrom, to)
	}
}

func TestMonthWindow(t *testing.T) {
	from, to := MonthWindow(time.Date(2025, 2, 14, 9, 0, 0, 0, time.UTC))
	if !from.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("from = %v, want Feb 1", from)
	}
	if !to.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("to = %v, want Mar 1", to)
	}

	lastInstant := time.Date(2025, 2, 28, 23, 59, 59, 750_000_000, time.UTC)
	if lastInstant.Before(from) || !lastInstant.Before(to) {
		t.Errorf("event %v not in [%v, %v)", lastInstant, from, to)
	}
}
