package models

import "testing"

func TestLevelForPoints(t *testing.T) {
	levels := []Level{
		{LevelNumber: 1, Name: "Bronze", PointsRequired: 0},
		{LevelNumber: 2, Name: "Silver", PointsRequired: 100},
		{LevelNumber: 3, Name: "Gold", PointsRequired: 300},
	}

	tests := []struct {
		name       string
		total      int64
		wantLevel  int
		wantToNext int64
	}{
		{name: "zero points", total: 0, wantLevel: 1, wantToNext: 100},
		{name: "just below threshold", total: 99, wantLevel: 1, wantToNext: 1},
		{name: "exactly at threshold", total: 100, wantLevel: 2, wantToNext: 200},
		{name: "between thresholds", total: 250, wantLevel: 2, wantToNext: 50},
		{name: "at top level", total: 300, wantLevel: 3, wantToNext: 0},
		{name: "beyond top level", total: 9999, wantLevel: 3, wantToNext: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, toNext := LevelForPoints(levels, tt.total)
			if level.LevelNumber != tt.wantLevel {
				t.Errorf("LevelForPoints(%d) level = %d, want %d", tt.total, level.LevelNumber, tt.wantLevel)
			}
			if toNext != tt.wantToNext {
				t.Errorf("LevelForPoints(%d) toNext = %d, want %d", tt.total, toNext, tt.wantToNext)
			}
		})
	}
}

func TestLevelForPointsEmptyTable(t *testing.T) {
	level, toNext := LevelForPoints(nil, 500)
	if level.LevelNumber != 0 || toNext != 0 {
		t.Errorf("LevelForPoints(nil, 500) = (%d, %d), want (0, 0)", level.LevelNumber, toNext)
	}
}
