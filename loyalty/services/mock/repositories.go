package mock

import (
	context "context"
	reflect "reflect"
	time "time"

	bun "github.com/uptrace/bun"
	gomock "go.uber.org/mock/gomock"

	models "github.com/quickbite/loyalty/loyalty/database/models"
	repositories "github.com/quickbite/loyalty/loyalty/database/repositories"
)

// MockPointsRepository is a mock of PointsRepository interface.
type MockPointsRepository struct {
	ctrl     *gomock.Controller
	recorder *MockPointsRepositoryMockRecorder
	isgomock struct{}
}

// MockPointsRepositoryMockRecorder is the mock recorder for MockPointsRepository.
type MockPointsRepositoryMockRecorder struct {
	mock *MockPointsRepository
}

// NewMockPointsRepository creates a new mock instance.
func NewMockPointsRepository(ctrl *gomock.Controller) *MockPointsRepository {
	mock := &MockPointsRepository{ctrl: ctrl}
	mock.recorder = &MockPointsRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPointsRepository) EXPECT() *MockPointsRepositoryMockRecorder {
	return m.recorder
}

// AppendPoints mocks base method.
func (m *MockPointsRepository) AppendPoints(ctx context.Context, userID, delta int64, category, description string, orderID *int64, levels []models.Level) (*repositories.AppendResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AppendPoints", ctx, userID, delta, category, description, orderID, levels)
	ret0, _ := ret[0].(*repositories.AppendResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// AppendPoints indicates an expected call of AppendPoints.
func (mr *MockPointsRepositoryMockRecorder) AppendPoints(ctx, userID, delta, category, description, orderID, levels any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AppendPoints", reflect.TypeOf((*MockPointsRepository)(nil).AppendPoints), ctx, userID, delta, category, description, orderID, levels)
}

// AppendPointsTx mocks base method.
func (m *MockPointsRepository) AppendPointsTx(ctx context.Context, tx bun.Tx, userID, delta int64, category, description string, orderID *int64, levels []models.Level) (*repositories.AppendResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AppendPointsTx", ctx, tx, userID, delta, category, description, orderID, levels)
	ret0, _ := ret[0].(*repositories.AppendResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// AppendPointsTx indicates an expected call of AppendPointsTx.
func (mr *MockPointsRepositoryMockRecorder) AppendPointsTx(ctx, tx, userID, delta, category, description, orderID, levels any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AppendPointsTx", reflect.TypeOf((*MockPointsRepository)(nil).AppendPointsTx), ctx, tx, userID, delta, category, description, orderID, levels)
}

// GetProgress mocks base method.
func (m *MockPointsRepository) GetProgress(ctx context.Context, userID int64) (*models.UserPoints, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetProgress", ctx, userID)
	ret0, _ := ret[0].(*models.UserPoints)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetProgress indicates an expected call of GetProgress.
func (mr *MockPointsRepositoryMockRecorder) GetProgress(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetProgress", reflect.TypeOf((*MockPointsRepository)(nil).GetProgress), ctx, userID)
}

// GetHistory mocks base method.
func (m *MockPointsRepository) GetHistory(ctx context.Context, userID int64, filters repositories.HistoryFilters) ([]*models.PointEvent, int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetHistory", ctx, userID, filters)
	ret0, _ := ret[0].([]*models.PointEvent)
	ret1, _ := ret[1].(int)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetHistory indicates an expected call of GetHistory.
func (mr *MockPointsRepositoryMockRecorder) GetHistory(ctx, userID, filters any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetHistory", reflect.TypeOf((*MockPointsRepository)(nil).GetHistory), ctx, userID, filters)
}

// MockLevelRepository is a mock of LevelRepository interface.
type MockLevelRepository struct {
	ctrl     *gomock.Controller
	recorder *MockLevelRepositoryMockRecorder
	isgomock struct{}
}

// MockLevelRepositoryMockRecorder is the mock recorder for MockLevelRepository.
type MockLevelRepositoryMockRecorder struct {
	mock *MockLevelRepository
}

// NewMockLevelRepository creates a new mock instance.
func NewMockLevelRepository(ctrl *gomock.Controller) *MockLevelRepository {
	mock := &MockLevelRepository{ctrl: ctrl}
	mock.recorder = &MockLevelRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockLevelRepository) EXPECT() *MockLevelRepositoryMockRecorder {
	return m.recorder
}

// GetAll mocks base method.
func (m *MockLevelRepository) GetAll(ctx context.Context) ([]models.Level, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetAll", ctx)
	ret0, _ := ret[0].([]models.Level)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetAll indicates an expected call of GetAll.
func (mr *MockLevelRepositoryMockRecorder) GetAll(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAll", reflect.TypeOf((*MockLevelRepository)(nil).GetAll), ctx)
}

// GetByNumber mocks base method.
func (m *MockLevelRepository) GetByNumber(ctx context.Context, levelNumber int) (*models.Level, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByNumber", ctx, levelNumber)
	ret0, _ := ret[0].(*models.Level)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByNumber indicates an expected call of GetByNumber.
func (mr *MockLevelRepositoryMockRecorder) GetByNumber(ctx, levelNumber any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByNumber", reflect.TypeOf((*MockLevelRepository)(nil).GetByNumber), ctx, levelNumber)
}

// MockBadgeRepository is a mock of BadgeRepository interface.
type MockBadgeRepository struct {
	ctrl     *gomock.Controller
	recorder *MockBadgeRepositoryMockRecorder
	isgomock struct{}
}

// MockBadgeRepositoryMockRecorder is the mock recorder for MockBadgeRepository.
type MockBadgeRepositoryMockRecorder struct {
	mock *MockBadgeRepository
}

// NewMockBadgeRepository creates a new mock instance.
func NewMockBadgeRepository(ctrl *gomock.Controller) *MockBadgeRepository {
	mock := &MockBadgeRepository{ctrl: ctrl}
	mock.recorder = &MockBadgeRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockBadgeRepository) EXPECT() *MockBadgeRepositoryMockRecorder {
	return m.recorder
}

// GetByID mocks base method.
func (m *MockBadgeRepository) GetByID(ctx context.Context, badgeID int64) (*models.Badge, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, badgeID)
	ret0, _ := ret[0].(*models.Badge)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockBadgeRepositoryMockRecorder) GetByID(ctx, badgeID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockBadgeRepository)(nil).GetByID), ctx, badgeID)
}

// List mocks base method.
func (m *MockBadgeRepository) List(ctx context.Context, filters repositories.BadgeFilters) ([]*models.Badge, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, filters)
	ret0, _ := ret[0].([]*models.Badge)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List.
func (mr *MockBadgeRepositoryMockRecorder) List(ctx, filters any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockBadgeRepository)(nil).List), ctx, filters)
}

// ListEarned mocks base method.
func (m *MockBadgeRepository) ListEarned(ctx context.Context, userID int64) ([]*models.UserBadge, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListEarned", ctx, userID)
	ret0, _ := ret[0].([]*models.UserBadge)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListEarned indicates an expected call of ListEarned.
func (mr *MockBadgeRepositoryMockRecorder) ListEarned(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListEarned", reflect.TypeOf((*MockBadgeRepository)(nil).ListEarned), ctx, userID)
}

// Grant mocks base method.
func (m *MockBadgeRepository) Grant(ctx context.Context, userID, badgeID, pointsReward int64, reason string, levels []models.Level) (*repositories.GrantOutcome, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Grant", ctx, userID, badgeID, pointsReward, reason, levels)
	ret0, _ := ret[0].(*repositories.GrantOutcome)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Grant indicates an expected call of Grant.
func (mr *MockBadgeRepositoryMockRecorder) Grant(ctx, userID, badgeID, pointsReward, reason, levels any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Grant", reflect.TypeOf((*MockBadgeRepository)(nil).Grant), ctx, userID, badgeID, pointsReward, reason, levels)
}

// MockChallengeRepository is a mock of ChallengeRepository interface.
type MockChallengeRepository struct {
	ctrl     *gomock.Controller
	recorder *MockChallengeRepositoryMockRecorder
	isgomock struct{}
}

// MockChallengeRepositoryMockRecorder is the mock recorder for MockChallengeRepository.
type MockChallengeRepositoryMockRecorder struct {
	mock *MockChallengeRepository
}

// NewMockChallengeRepository creates a new mock instance.
func NewMockChallengeRepository(ctrl *gomock.Controller) *MockChallengeRepository {
	mock := &MockChallengeRepository{ctrl: ctrl}
	mock.recorder = &MockChallengeRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockChallengeRepository) EXPECT() *MockChallengeRepositoryMockRecorder {
	return m.recorder
}

// GetByID mocks base method.
func (m *MockChallengeRepository) GetByID(ctx context.Context, challengeID int64) (*models.Challenge, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, challengeID)
	ret0, _ := ret[0].(*models.Challenge)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockChallengeRepositoryMockRecorder) GetByID(ctx, challengeID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockChallengeRepository)(nil).GetByID), ctx, challengeID)
}

// ListActive mocks base method.
func (m *MockChallengeRepository) ListActive(ctx context.Context, challengeType string, now time.Time) ([]*models.Challenge, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListActive", ctx, challengeType, now)
	ret0, _ := ret[0].([]*models.Challenge)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListActive indicates an expected call of ListActive.
func (mr *MockChallengeRepositoryMockRecorder) ListActive(ctx, challengeType, now any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListActive", reflect.TypeOf((*MockChallengeRepository)(nil).ListActive), ctx, challengeType, now)
}

// ListUnstarted mocks base method.
func (m *MockChallengeRepository) ListUnstarted(ctx context.Context, userID int64, now time.Time, limit int) ([]*models.Challenge, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListUnstarted", ctx, userID, now, limit)
	ret0, _ := ret[0].([]*models.Challenge)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListUnstarted indicates an expected call of ListUnstarted.
func (mr *MockChallengeRepositoryMockRecorder) ListUnstarted(ctx, userID, now, limit any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListUnstarted", reflect.TypeOf((*MockChallengeRepository)(nil).ListUnstarted), ctx, userID, now, limit)
}

// GetProgress mocks base method.
func (m *MockChallengeRepository) GetProgress(ctx context.Context, userID, challengeID int64) (*models.UserChallengeProgress, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetProgress", ctx, userID, challengeID)
	ret0, _ := ret[0].(*models.UserChallengeProgress)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetProgress indicates an expected call of GetProgress.
func (mr *MockChallengeRepositoryMockRecorder) GetProgress(ctx, userID, challengeID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetProgress", reflect.TypeOf((*MockChallengeRepository)(nil).GetProgress), ctx, userID, challengeID)
}

// ListProgress mocks base method.
func (m *MockChallengeRepository) ListProgress(ctx context.Context, userID int64) ([]*models.UserChallengeProgress, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListProgress", ctx, userID)
	ret0, _ := ret[0].([]*models.UserChallengeProgress)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListProgress indicates an expected call of ListProgress.
func (mr *MockChallengeRepositoryMockRecorder) ListProgress(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListProgress", reflect.TypeOf((*MockChallengeRepository)(nil).ListProgress), ctx, userID)
}

// StartProgress mocks base method.
func (m *MockChallengeRepository) StartProgress(ctx context.Context, progress *models.UserChallengeProgress) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "StartProgress", ctx, progress)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// StartProgress indicates an expected call of StartProgress.
func (mr *MockChallengeRepositoryMockRecorder) StartProgress(ctx, progress any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StartProgress", reflect.TypeOf((*MockChallengeRepository)(nil).StartProgress), ctx, progress)
}

// IncrementProgress mocks base method.
func (m *MockChallengeRepository) IncrementProgress(ctx context.Context, userID, challengeID int64, amount int) (*models.UserChallengeProgress, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IncrementProgress", ctx, userID, challengeID, amount)
	ret0, _ := ret[0].(*models.UserChallengeProgress)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// IncrementProgress indicates an expected call of IncrementProgress.
func (mr *MockChallengeRepositoryMockRecorder) IncrementProgress(ctx, userID, challengeID, amount any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IncrementProgress", reflect.TypeOf((*MockChallengeRepository)(nil).IncrementProgress), ctx, userID, challengeID, amount)
}

// Complete mocks base method.
func (m *MockChallengeRepository) Complete(ctx context.Context, userID, challengeID, pointsReward int64, description string, levels []models.Level) (*repositories.AppendResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Complete", ctx, userID, challengeID, pointsReward, description, levels)
	ret0, _ := ret[0].(*repositories.AppendResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Complete indicates an expected call of Complete.
func (mr *MockChallengeRepositoryMockRecorder) Complete(ctx, userID, challengeID, pointsReward, description, levels any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Complete", reflect.TypeOf((*MockChallengeRepository)(nil).Complete), ctx, userID, challengeID, pointsReward, description, levels)
}

// MockRankingRepository is a mock of RankingRepository interface.
type MockRankingRepository struct {
	ctrl     *gomock.Controller
	recorder *MockRankingRepositoryMockRecorder
	isgomock struct{}
}

// MockRankingRepositoryMockRecorder is the mock recorder for MockRankingRepository.
type MockRankingRepositoryMockRecorder struct {
	mock *MockRankingRepository
}

// NewMockRankingRepository creates a new mock instance.
func NewMockRankingRepository(ctrl *gomock.Controller) *MockRankingRepository {
	mock := &MockRankingRepository{ctrl: ctrl}
	mock.recorder = &MockRankingRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRankingRepository) EXPECT() *MockRankingRepositoryMockRecorder {
	return m.recorder
}

// AllTimeRows mocks base method.
func (m *MockRankingRepository) AllTimeRows(ctx context.Context) ([]repositories.RankingRow, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AllTimeRows", ctx)
	ret0, _ := ret[0].([]repositories.RankingRow)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// AllTimeRows indicates an expected call of AllTimeRows.
func (mr *MockRankingRepositoryMockRecorder) AllTimeRows(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AllTimeRows", reflect.TypeOf((*MockRankingRepository)(nil).AllTimeRows), ctx)
}

// WindowRows mocks base method.
func (m *MockRankingRepository) WindowRows(ctx context.Context, from, to time.Time) ([]repositories.RankingRow, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "WindowRows", ctx, from, to)
	ret0, _ := ret[0].([]repositories.RankingRow)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// WindowRows indicates an expected call of WindowRows.
func (mr *MockRankingRepositoryMockRecorder) WindowRows(ctx, from, to any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WindowRows", reflect.TypeOf((*MockRankingRepository)(nil).WindowRows), ctx, from, to)
}
