package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/quickbite/loyalty/loyalty/database/models"
	"github.com/quickbite/loyalty/loyalty/database/repositories"
	"github.com/quickbite/loyalty/loyalty/services/mock"
)

type challengeFixture struct {
	service       *ChallengeService
	challengeRepo *mock.MockChallengeRepository
	badgeRepo     *mock.MockBadgeRepository
	levelRepo     *mock.MockLevelRepository
	pointsRepo    *mock.MockPointsRepository
	now           time.Time
}

func newChallengeFixture(t *testing.T) *challengeFixture {
	ctrl := gomock.NewController(t)
	challengeRepo := mock.NewMockChallengeRepository(ctrl)
	badgeRepo := mock.NewMockBadgeRepository(ctrl)
	levelRepo := mock.NewMockLevelRepository(ctrl)
	pointsRepo := mock.NewMockPointsRepository(ctrl)
	points := NewPointsService(pointsRepo, levelRepo)
	badges := NewBadgeService(badgeRepo, challengeRepo, points)

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	s := NewChallengeService(challengeRepo, badges, points)
	s.now = func() time.Time { return now }

	return &challengeFixture{
		service:       s,
		challengeRepo: challengeRepo,
		badgeRepo:     badgeRepo,
		levelRepo:     levelRepo,
		pointsRepo:    pointsRepo,
		now:           now,
	}
}

func (f *challengeFixture) openChallenge() *models.Challenge {
	end := f.now.AddDate(0, 0, 7)
	return &models.Challenge{
		ID:           11,
		Name:         "Order Streak",
		Type:         models.ChallengeTypeWeekly,
		Criteria:     models.ChallengeCriteria{Kind: models.ChallengeCriteriaOrderCount, Target: 5},
		PointsReward: 200,
		StartDate:    f.now.AddDate(0, 0, -1),
		EndDate:      &end,
		Active:       true,
	}
}

func TestChallengeService_Start(t *testing.T) {
	t.Run("creates the progress row", func(t *testing.T) {
		f := newChallengeFixture(t)
		f.challengeRepo.EXPECT().GetByID(gomock.Any(), int64(11)).Return(f.openChallenge(), nil)
		f.challengeRepo.EXPECT().StartProgress(gomock.Any(), gomock.Any()).Return(true, nil)

		got, err := f.service.Start(context.Background(), Identity{UserID: 42}, 42, 11)
		if err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		if got.Status != models.ProgressStatusActive || got.Target != 5 {
			t.Errorf("Start() = %+v, want active with target 5", got)
		}
	})

	t.Run("second start is a conflict", func(t *testing.T) {
		f := newChallengeFixture(t)
		f.challengeRepo.EXPECT().GetByID(gomock.Any(), int64(11)).Return(f.openChallenge(), nil)
		f.challengeRepo.EXPECT().StartProgress(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.service.Start(context.Background(), Identity{UserID: 42}, 42, 11)
		if !errorMatches(err, &repositories.ConflictError{}) {
			t.Errorf("Start() error = %v, want ConflictError", err)
		}
	})

	t.Run("closed window is a conflict", func(t *testing.T) {
		f := newChallengeFixture(t)
		expired := f.openChallenge()
		end := f.now.AddDate(0, 0, -1)
		expired.StartDate = f.now.AddDate(0, 0, -7)
		expired.EndDate = &end
		f.challengeRepo.EXPECT().GetByID(gomock.Any(), int64(11)).Return(expired, nil)

		_, err := f.service.Start(context.Background(), Identity{UserID: 42}, 42, 11)
		if !errorMatches(err, &repositories.ConflictError{}) {
			t.Errorf("Start() error = %v, want ConflictError", err)
		}
	})
}

func TestChallengeService_GetProgress(t *testing.T) {
	t.Run("missing row reads as not_started", func(t *testing.T) {
		f := newChallengeFixture(t)
		f.challengeRepo.EXPECT().GetByID(gomock.Any(), int64(11)).Return(f.openChallenge(), nil)
		f.challengeRepo.EXPECT().GetProgress(gomock.Any(), int64(42), int64(11)).Return(nil, nil)

		got, err := f.service.GetProgress(context.Background(), Identity{UserID: 42}, 42, 11)
		if err != nil {
			t.Fatalf("GetProgress() error = %v", err)
		}
		if got.Status != models.ProgressStatusNotStarted || got.Target != 5 {
			t.Errorf("GetProgress() = %+v, want not_started with target 5", got)
		}
	})

	t.Run("expired window derived at read time", func(t *testing.T) {
		f := newChallengeFixture(t)
		expired := f.openChallenge()
		end := f.now.AddDate(0, 0, -1)
		expired.StartDate = f.now.AddDate(0, 0, -7)
		expired.EndDate = &end
		f.challengeRepo.EXPECT().GetByID(gomock.Any(), int64(11)).Return(expired, nil)
		f.challengeRepo.EXPECT().
			GetProgress(gomock.Any(), int64(42), int64(11)).
			Return(&models.UserChallengeProgress{UserID: 42, ChallengeID: 11, Progress: 3, Target: 5}, nil)

		got, err := f.service.GetProgress(context.Background(), Identity{UserID: 42}, 42, 11)
		if err != nil {
			t.Fatalf("GetProgress() error = %v", err)
		}
		if got.Status != models.ProgressStatusExpired {
			t.Errorf("Status = %q, want expired", got.Status)
		}
	})
}

func TestChallengeService_Increment(t *testing.T) {
	t.Run("external callers rejected", func(t *testing.T) {
		f := newChallengeFixture(t)

		_, err := f.service.Increment(context.Background(), Identity{UserID: 42}, 42, 11, 1)
		if !errorMatches(err, &AuthorizationError{}) {
			t.Errorf("Increment() error = %v, want AuthorizationError", err)
		}
	})

	t.Run("advances and caps at target", func(t *testing.T) {
		f := newChallengeFixture(t)
		f.challengeRepo.EXPECT().GetByID(gomock.Any(), int64(11)).Return(f.openChallenge(), nil)
		f.challengeRepo.EXPECT().
			IncrementProgress(gomock.Any(), int64(42), int64(11), 3).
			Return(&models.UserChallengeProgress{UserID: 42, ChallengeID: 11, Progress: 5, Target: 5}, nil)

		got, err := f.service.Increment(context.Background(), Identity{Internal: true}, 42, 11, 3)
		if err != nil {
			t.Fatalf("Increment() error = %v", err)
		}
		if got.Progress != 5 || got.Percent != 100 {
			t.Errorf("Increment() = %+v, want progress 5 at 100%%", got)
		}
	})
}

func TestChallengeService_Complete(t *testing.T) {
	met := func() *models.UserChallengeProgress {
		return &models.UserChallengeProgress{UserID: 42, ChallengeID: 11, Progress: 5, Target: 5}
	}
	deposit := &repositories.AppendResult{
		TotalPoints:   350,
		Level:         testLevels[2],
		PreviousLevel: 2,
		LevelChanged:  true,
	}

	t.Run("deposits reward and reports level up", func(t *testing.T) {
		f := newChallengeFixture(t)
		f.challengeRepo.EXPECT().GetByID(gomock.Any(), int64(11)).Return(f.openChallenge(), nil)
		f.challengeRepo.EXPECT().GetProgress(gomock.Any(), int64(42), int64(11)).Return(met(), nil)
		f.levelRepo.EXPECT().GetAll(gomock.Any()).Return(testLevels, nil)
		f.challengeRepo.EXPECT().
			Complete(gomock.Any(), int64(42), int64(11), int64(200), "Challenge completed: Order Streak", testLevels).
			Return(deposit, nil)

		got, err := f.service.Complete(context.Background(), Identity{UserID: 42}, 42, 11, false)
		if err != nil {
			t.Fatalf("Complete() error = %v", err)
		}
		if got.PointsAwarded != 200 || got.TotalPoints != 350 || !got.LevelUp {
			t.Errorf("Complete() = %+v, want 200 awarded, 350 total, level up", got)
		}
		if got.BadgeGranted || got.BadgeGrantFailed {
			t.Errorf("no badge configured, got granted=%v failed=%v", got.BadgeGranted, got.BadgeGrantFailed)
		}
	})

	t.Run("zero reward reports the current aggregate", func(t *testing.T) {
		f := newChallengeFixture(t)
		free := f.openChallenge()
		free.PointsReward = 0

		f.challengeRepo.EXPECT().GetByID(gomock.Any(), int64(11)).Return(free, nil)
		f.challengeRepo.EXPECT().GetProgress(gomock.Any(), int64(42), int64(11)).Return(met(), nil)
		f.levelRepo.EXPECT().GetAll(gomock.Any()).Return(testLevels, nil)
		f.challengeRepo.EXPECT().
			Complete(gomock.Any(), int64(42), int64(11), int64(0), "Challenge completed: Order Streak", testLevels).
			Return(nil, nil)
		f.pointsRepo.EXPECT().
			GetProgress(gomock.Any(), int64(42)).
			Return(&models.UserPoints{UserID: 42, TotalPoints: 250}, nil)

		got, err := f.service.Complete(context.Background(), Identity{UserID: 42}, 42, 11, false)
		if err != nil {
			t.Fatalf("Complete() error = %v", err)
		}
		if got.PointsAwarded != 0 {
			t.Errorf("PointsAwarded = %d, want 0", got.PointsAwarded)
		}
		if got.TotalPoints != 250 || got.Level != 2 {
			t.Errorf("Complete() = %+v, want the unchanged aggregate (250 points, level 2)", got)
		}
		if got.LevelUp {
			t.Error("LevelUp = true, want false for a zero deposit")
		}
	})

	t.Run("double completion is a conflict", func(t *testing.T) {
		f := newChallengeFixture(t)
		done := met()
		done.Completed = true
		f.challengeRepo.EXPECT().GetByID(gomock.Any(), int64(11)).Return(f.openChallenge(), nil)
		f.challengeRepo.EXPECT().GetProgress(gomock.Any(), int64(42), int64(11)).Return(done, nil)

		_, err := f.service.Complete(context.Background(), Identity{UserID: 42}, 42, 11, false)
		if !errorMatches(err, &repositories.ConflictError{}) {
			t.Errorf("Complete() error = %v, want ConflictError", err)
		}
	})

	t.Run("unmet target without force is a conflict", func(t *testing.T) {
		f := newChallengeFixture(t)
		short := met()
		short.Progress = 3
		f.challengeRepo.EXPECT().GetByID(gomock.Any(), int64(11)).Return(f.openChallenge(), nil)
		f.challengeRepo.EXPECT().GetProgress(gomock.Any(), int64(42), int64(11)).Return(short, nil)

		_, err := f.service.Complete(context.Background(), Identity{UserID: 42}, 42, 11, false)
		if !errorMatches(err, &repositories.ConflictError{}) {
			t.Errorf("Complete() error = %v, want ConflictError", err)
		}
	})

	t.Run("force requires an internal caller", func(t *testing.T) {
		f := newChallengeFixture(t)

		_, err := f.service.Complete(context.Background(), Identity{UserID: 42}, 42, 11, true)
		if !errorMatches(err, &AuthorizationError{}) {
			t.Errorf("Complete() error = %v, want AuthorizationError", err)
		}
	})

	t.Run("outside window is a conflict", func(t *testing.T) {
		f := newChallengeFixture(t)
		expired := f.openChallenge()
		end := f.now.AddDate(0, 0, -1)
		expired.StartDate = f.now.AddDate(0, 0, -7)
		expired.EndDate = &end
		f.challengeRepo.EXPECT().GetByID(gomock.Any(), int64(11)).Return(expired, nil)
		f.challengeRepo.EXPECT().GetProgress(gomock.Any(), int64(42), int64(11)).Return(met(), nil)

		_, err := f.service.Complete(context.Background(), Identity{UserID: 42}, 42, 11, false)
		if !errorMatches(err, &repositories.ConflictError{}) {
			t.Errorf("Complete() error = %v, want ConflictError", err)
		}
	})

	t.Run("badge grant failure never undoes the completion", func(t *testing.T) {
		f := newChallengeFixture(t)
		badgeID := int64(3)
		withBadge := f.openChallenge()
		withBadge.BadgeRewardID = &badgeID

		f.challengeRepo.EXPECT().GetByID(gomock.Any(), int64(11)).Return(withBadge, nil)
		f.challengeRepo.EXPECT().GetProgress(gomock.Any(), int64(42), int64(11)).Return(met(), nil)
		f.levelRepo.EXPECT().GetAll(gomock.Any()).Return(testLevels, nil)
		f.challengeRepo.EXPECT().
			Complete(gomock.Any(), int64(42), int64(11), int64(200), gomock.Any(), testLevels).
			Return(deposit, nil)
		f.badgeRepo.EXPECT().
			GetByID(gomock.Any(), badgeID).
			Return(nil, errors.New("connection reset"))

		got, err := f.service.Complete(context.Background(), Identity{UserID: 42}, 42, 11, false)
		if err != nil {
			t.Fatalf("Complete() error = %v", err)
		}
		if !got.BadgeGrantFailed || got.BadgeGranted {
			t.Errorf("got granted=%v failed=%v, want the failure flagged", got.BadgeGranted, got.BadgeGrantFailed)
		}
		if got.TotalPoints != 350 {
			t.Errorf("TotalPoints = %d, completion must stand", got.TotalPoints)
		}
	})

	t.Run("already owned badge is not a failure", func(t *testing.T) {
		f := newChallengeFixture(t)
		badgeID := int64(3)
		withBadge := f.openChallenge()
		withBadge.BadgeRewardID = &badgeID

		f.challengeRepo.EXPECT().GetByID(gomock.Any(), int64(11)).Return(withBadge, nil)
		f.challengeRepo.EXPECT().GetProgress(gomock.Any(), int64(42), int64(11)).Return(met(), nil)
		f.levelRepo.EXPECT().GetAll(gomock.Any()).Return(testLevels, nil)
		f.challengeRepo.EXPECT().
			Complete(gomock.Any(), int64(42), int64(11), int64(200), gomock.Any(), testLevels).
			Return(deposit, nil)
		f.badgeRepo.EXPECT().
			GetByID(gomock.Any(), badgeID).
			Return(&models.Badge{ID: badgeID, Name: "Finisher", PointsReward: 25, Active: true}, nil)
		f.badgeRepo.EXPECT().
			Grant(gomock.Any(), int64(42), badgeID, int64(25), gomock.Any(), testLevels).
			Return(&repositories.GrantOutcome{Granted: false}, nil)

		got, err := f.service.Complete(context.Background(), Identity{UserID: 42}, 42, 11, false)
		if err != nil {
			t.Fatalf("Complete() error = %v", err)
		}
		if got.BadgeGranted || got.BadgeGrantFailed {
			t.Errorf("got granted=%v failed=%v, want neither flag set", got.BadgeGranted, got.BadgeGrantFailed)
		}
	})
}
