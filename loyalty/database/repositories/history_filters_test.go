package repositories

import (
	"testing"
	"time"

	"github.com/quickbite/loyalty/loyalty/config"
)

func TestHistoryFiltersNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        HistoryFilters
		wantPage  int
		wantLimit int
	}{
		{name: "defaults", in: HistoryFilters{}, wantPage: 1, wantLimit: config.DefaultPageSize},
		{name: "negative page", in: HistoryFilters{Page: -3, Limit: 10}, wantPage: 1, wantLimit: 10},
		{name: "limit over max", in: HistoryFilters{Page: 2, Limit: 500}, wantPage: 2, wantLimit: config.MaxPageSize},
		{name: "in bounds untouched", in: HistoryFilters{Page: 3, Limit: 25}, wantPage: 3, wantLimit: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			if tt.in.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", tt.in.Page, tt.wantPage)
			}
			if tt.in.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", tt.in.Limit, tt.wantLimit)
			}
		})
	}
}

func TestHistoryFiltersOffset(t *testing.T) {
	f := HistoryFilters{Page: 3, Limit: 20}
	if got := f.Offset(); got != 40 {
		t.Errorf("Offset() = %d, want 40", got)
	}
}

func TestHistoryFiltersConditionsOrder(t *testing.T) {
	since := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		in        HistoryFilters
		wantExprs []string
	}{
		{
			name:      "no filters",
			in:        HistoryFilters{},
			wantExprs: nil,
		},
		{
			name:      "category only",
			in:        HistoryFilters{Category: "order"},
			wantExprs: []string{"points_type = ?"},
		},
		{
			name:      "all filters in fixed order",
			in:        HistoryFilters{Category: "badge", Since: since, Until: until},
			wantExprs: []string{"points_type = ?", "created_at >= ?", "created_at <= ?"},
		},
		{
			name:      "time range only",
			in:        HistoryFilters{Since: since, Until: until},
			wantExprs: []string{"created_at >= ?", "created_at <= ?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conds := tt.in.Conditions()
			if len(conds) != len(tt.wantExprs) {
				t.Fatalf("got %d conditions, want %d", len(conds), len(tt.wantExprs))
			}
			for i, c := range conds {
				if c.Expr != tt.wantExprs[i] {
					t.Errorf("condition %d = %q, want %q", i, c.Expr, tt.wantExprs[i])
				}
			}
		})
	}
}
