package models

import (
	"testing"
	"time"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestChallengeStatusAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		challenge Challenge
		want      string
	}{
		{
			name: "inside window",
			challenge: Challenge{
				Active:    true,
				StartDate: now.AddDate(0, 0, -1),
				EndDate:   timePtr(now.AddDate(0, 0, 1)),
			},
			want: ChallengeStatusActive,
		},
		{
			name: "no end date stays open",
			challenge: Challenge{
				Active:    true,
				StartDate: now.AddDate(-1, 0, 0),
			},
			want: ChallengeStatusActive,
		},
		{
			name: "before start",
			challenge: Challenge{
				Active:    true,
				StartDate: now.AddDate(0, 0, 1),
			},
			want: ChallengeStatusUpcoming,
		},
		{
			name: "after end",
			challenge: Challenge{
				Active:    true,
				StartDate: now.AddDate(0, 0, -7),
				EndDate:   timePtr(now.AddDate(0, 0, -1)),
			},
			want: ChallengeStatusExpired,
		},
		{
			name: "inactive wins over window",
			challenge: Challenge{
				Active:    false,
				StartDate: now.AddDate(0, 0, -1),
				EndDate:   timePtr(now.AddDate(0, 0, 1)),
			},
			want: ChallengeStatusInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.challenge.StatusAt(now); got != tt.want {
				t.Errorf("StatusAt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserChallengeProgressStatusAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	open := &Challenge{Active: true, StartDate: now.AddDate(0, 0, -1)}
	closed := &Challenge{Active: true, StartDate: now.AddDate(0, 0, -7), EndDate: timePtr(now.AddDate(0, 0, -1))}

	tests := []struct {
		name     string
		progress UserChallengeProgress
		want     string
	}{
		{
			name:     "completed is terminal",
			progress: UserChallengeProgress{Completed: true, Challenge: closed},
			want:     ProgressStatusCompleted,
		},
		{
			name:     "open window",
			progress: UserChallengeProgress{Challenge: open},
			want:     ProgressStatusActive,
		},
		{
			name:     "window closed without completion",
			progress: UserChallengeProgress{Challenge: closed},
			want:     ProgressStatusExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.progress.StatusAt(now); got != tt.want {
				t.Errorf("StatusAt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name     string
		progress UserChallengeProgress
		want     float64
	}{
		{name: "halfway", progress: UserChallengeProgress{Progress: 5, Target: 10}, want: 50},
		{name: "capped at 100", progress: UserChallengeProgress{Progress: 15, Target: 10}, want: 100},
		{name: "zero target", progress: UserChallengeProgress{Progress: 3, Target: 0}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.progress.ProgressPercent(); got != tt.want {
				t.Errorf("ProgressPercent() = %v, want %v", got, tt.want)
			}
		})
	}
}
