package services

import (
	"context"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/quickbite/loyalty/loyalty/database/models"
	"github.com/quickbite/loyalty/loyalty/database/repositories"
	"github.com/quickbite/loyalty/loyalty/services/mock"
)

func badgeServiceMocks(t *testing.T) (*BadgeService, *mock.MockBadgeRepository, *mock.MockChallengeRepository, *mock.MockLevelRepository) {
	ctrl := gomock.NewController(t)
	badgeRepo := mock.NewMockBadgeRepository(ctrl)
	challengeRepo := mock.NewMockChallengeRepository(ctrl)
	levelRepo := mock.NewMockLevelRepository(ctrl)
	points := NewPointsService(mock.NewMockPointsRepository(ctrl), levelRepo)
	return NewBadgeService(badgeRepo, challengeRepo, points), badgeRepo, challengeRepo, levelRepo
}

func TestBadgeService_GrantBadge(t *testing.T) {
	activeBadge := &models.Badge{ID: 3, Name: "First Order", PointsReward: 50, Active: true}

	t.Run("successful grant reports unlocked challenges", func(t *testing.T) {
		s, badgeRepo, challengeRepo, levelRepo := badgeServiceMocks(t)

		badgeRepo.EXPECT().GetByID(gomock.Any(), int64(3)).Return(activeBadge, nil)
		levelRepo.EXPECT().GetAll(gomock.Any()).Return(testLevels, nil)
		badgeRepo.EXPECT().
			Grant(gomock.Any(), int64(42), int64(3), int64(50), "congrats", testLevels).
			Return(&repositories.GrantOutcome{
				Granted: true,
				Append: &repositories.AppendResult{
					TotalPoints:   150,
					Level:         testLevels[1],
					PreviousLevel: 1,
					LevelChanged:  true,
				},
			}, nil)
		challengeRepo.EXPECT().
			ListUnstarted(gomock.Any(), int64(42), gomock.Any(), gomock.Any()).
			Return([]*models.Challenge{{ID: 9, Name: "Weekend Warrior"}}, nil)

		got, err := s.GrantBadge(context.Background(), Identity{Internal: true}, 42, 3, "congrats")
		if err != nil {
			t.Fatalf("GrantBadge() error = %v", err)
		}
		if got.PointsAwarded != 50 || got.TotalPoints != 150 || !got.LevelUp {
			t.Errorf("GrantBadge() = %+v, want 50 awarded, 150 total, level up", got)
		}
		if len(got.UnlockedChallenges) != 1 {
			t.Errorf("UnlockedChallenges = %d entries, want 1", len(got.UnlockedChallenges))
		}
	})

	t.Run("duplicate grant is a conflict and awards nothing", func(t *testing.T) {
		s, badgeRepo, _, levelRepo := badgeServiceMocks(t)

		badgeRepo.EXPECT().GetByID(gomock.Any(), int64(3)).Return(activeBadge, nil)
		levelRepo.EXPECT().GetAll(gomock.Any()).Return(testLevels, nil)
		badgeRepo.EXPECT().
			Grant(gomock.Any(), int64(42), int64(3), int64(50), gomock.Any(), testLevels).
			Return(&repositories.GrantOutcome{Granted: false}, nil)

		_, err := s.GrantBadge(context.Background(), Identity{Internal: true}, 42, 3, "")
		if !errorMatches(err, &repositories.ConflictError{}) {
			t.Errorf("GrantBadge() error = %v, want ConflictError", err)
		}
	})

	t.Run("external callers cannot grant", func(t *testing.T) {
		s, _, _, _ := badgeServiceMocks(t)

		_, err := s.GrantBadge(context.Background(), Identity{UserID: 42}, 42, 3, "")
		if !errorMatches(err, &AuthorizationError{}) {
			t.Errorf("GrantBadge() error = %v, want AuthorizationError", err)
		}
	})

	t.Run("inactive badge rejected", func(t *testing.T) {
		s, badgeRepo, _, _ := badgeServiceMocks(t)

		badgeRepo.EXPECT().
			GetByID(gomock.Any(), int64(4)).
			Return(&models.Badge{ID: 4, Name: "Retired", Active: false}, nil)

		_, err := s.GrantBadge(context.Background(), Identity{Internal: true}, 42, 4, "")
		if !errorMatches(err, &ValidationError{}) {
			t.Errorf("GrantBadge() error = %v, want ValidationError", err)
		}
	})
}

func TestBadgeService_ListBadgesAuthz(t *testing.T) {
	earned := true

	t.Run("earned filter defaults to caller", func(t *testing.T) {
		s, badgeRepo, _, _ := badgeServiceMocks(t)

		badgeRepo.EXPECT().
			List(gomock.Any(), repositories.BadgeFilters{Earned: &earned, UserID: 42}).
			Return([]*models.Badge{}, nil)

		_, err := s.ListBadges(context.Background(), Identity{UserID: 42}, repositories.BadgeFilters{Earned: &earned})
		if err != nil {
			t.Fatalf("ListBadges() error = %v", err)
		}
	})

	t.Run("earned filter for another user rejected", func(t *testing.T) {
		s, _, _, _ := badgeServiceMocks(t)

		_, err := s.ListBadges(context.Background(), Identity{UserID: 7}, repositories.BadgeFilters{Earned: &earned, UserID: 42})
		if !errorMatches(err, &AuthorizationError{}) {
			t.Errorf("ListBadges() error = %v, want AuthorizationError", err)
		}
	})
}
