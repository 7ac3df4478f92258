package service

import (
	"context"
	"time"

	"badgetrack/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByBadgeCode(ctx context.Context, badgeCode string) (*domain.User, error) {
	args := m.Called(ctx, badgeCode)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*domain.User)
	return users, args.Error(1)
}

func (m *MockUserRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) BadgeCodeTaken(ctx context.Context, badgeCode string, excludeID int64) (bool, error) {
	args := m.Called(ctx, badgeCode, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ApplyPatch(ctx context.Context, id int64, patch *domain.UpdateUserRequest, now time.Time) (*domain.User, error) {
	args := m.Called(ctx, id, patch, now)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) SetCheckedIn(ctx context.Context, id int64, checkedIn bool, now time.Time) (*domain.User, error) {
	args := m.Called(ctx, id, checkedIn, now)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) Touch(ctx context.Context, id int64, now time.Time) error {
	args := m.Called(ctx, id, now)
	return args.Error(0)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, name, category string) (*domain.Activity, error) {
	args := m.Called(ctx, name, category)
	activity, _ := args.Get(0).(*domain.Activity)
	return activity, args.Error(1)
}

func (m *MockActivityRepository) List(ctx context.Context) ([]*domain.Activity, error) {
	args := m.Called(ctx)
	activities, _ := args.Get(0).([]*domain.Activity)
	return activities, args.Error(1)
}

func (m *MockActivityRepository) GetByID(ctx context.Context, id int64) (*domain.Activity, error) {
	args := m.Called(ctx, id)
	activity, _ := args.Get(0).(*domain.Activity)
	return activity, args.Error(1)
}

func (m *MockActivityRepository) GetByName(ctx context.Context, name string) (*domain.Activity, error) {
	args := m.Called(ctx, name)
	activity, _ := args.Get(0).(*domain.Activity)
	return activity, args.Error(1)
}

func (m *MockActivityRepository) GetByNameInsensitive(ctx context.Context, name string) (*domain.Activity, error) {
	args := m.Called(ctx, name)
	activity, _ := args.Get(0).(*domain.Activity)
	return activity, args.Error(1)
}

func (m *MockActivityRepository) SetOneScanOnly(ctx context.Context, name string, oneScanOnly bool) (*domain.Activity, error) {
	args := m.Called(ctx, name, oneScanOnly)
	activity, _ := args.Get(0).(*domain.Activity)
	return activity, args.Error(1)
}

func (m *MockActivityRepository) IDsByCategory(ctx context.Context, category string) ([]int64, error) {
	args := m.Called(ctx, category)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

type MockScanRepository struct {
	mock.Mock
}

func (m *MockScanRepository) Create(ctx context.Context, userID, activityID int64, scannedAt time.Time) (*domain.Scan, error) {
	args := m.Called(ctx, userID, activityID, scannedAt)
	scan, _ := args.Get(0).(*domain.Scan)
	return scan, args.Error(1)
}

func (m *MockScanRepository) LastScan(ctx context.Context, userID, activityID int64) (*domain.Scan, error) {
	args := m.Called(ctx, userID, activityID)
	scan, _ := args.Get(0).(*domain.Scan)
	return scan, args.Error(1)
}

func (m *MockScanRepository) Exists(ctx context.Context, userID, activityID int64) (bool, error) {
	args := m.Called(ctx, userID, activityID)
	return args.Bool(0), args.Error(1)
}

func (m *MockScanRepository) ListByUser(ctx context.Context, userID int64) ([]domain.ScanWithActivity, error) {
	args := m.Called(ctx, userID)
	scans, _ := args.Get(0).([]domain.ScanWithActivity)
	return scans, args.Error(1)
}

func (m *MockScanRepository) ListByActivity(ctx context.Context, activityID int64) ([]domain.Scan, error) {
	args := m.Called(ctx, activityID)
	scans, _ := args.Get(0).([]domain.Scan)
	return scans, args.Error(1)
}

func (m *MockScanRepository) CountsByActivity(ctx context.Context, activityIDs []int64) ([]domain.ActivityCount, error) {
	args := m.Called(ctx, activityIDs)
	counts, _ := args.Get(0).([]domain.ActivityCount)
	return counts, args.Error(1)
}

func (m *MockScanRepository) TimeBuckets(ctx context.Context, activityID int64, interval string, start *time.Time, end time.Time) ([]domain.TimeBucketRow, error) {
	args := m.Called(ctx, activityID, interval, start, end)
	rows, _ := args.Get(0).([]domain.TimeBucketRow)
	return rows, args.Error(1)
}

type MockFriendScanRepository struct {
	mock.Mock
}

func (m *MockFriendScanRepository) Create(ctx context.Context, scannerID, scannedID int64, scannedAt time.Time) (*domain.FriendScan, error) {
	args := m.Called(ctx, scannerID, scannedID, scannedAt)
	fs, _ := args.Get(0).(*domain.FriendScan)
	return fs, args.Error(1)
}

func (m *MockFriendScanRepository) PairExists(ctx context.Context, a, b int64) (bool, error) {
	args := m.Called(ctx, a, b)
	return args.Bool(0), args.Error(1)
}

func (m *MockFriendScanRepository) ListScanned(ctx context.Context, scannerID int64) ([]domain.ScannedFriendRow, error) {
	args := m.Called(ctx, scannerID)
	rows, _ := args.Get(0).([]domain.ScannedFriendRow)
	return rows, args.Error(1)
}
