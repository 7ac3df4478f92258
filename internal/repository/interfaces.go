package repository

import (
	"context"
	"time"

	"badgetrack/internal/domain"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// GetByEmail retrieves a user by email, nil when absent
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByBadgeCode retrieves a user by badge code, nil when absent
	GetByBadgeCode(ctx context.Context, badgeCode string) (*domain.User, error)

	// List retrieves all users
	List(ctx context.Context) ([]*domain.User, error)

	// EmailTaken reports whether another user already owns the email
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)

	// BadgeCodeTaken reports whether another user already owns the badge code
	BadgeCodeTaken(ctx context.Context, badgeCode string, excludeID int64) (bool, error)

	// ApplyPatch writes the validated patch fields plus updated_at in one
	// update and returns the updated user
	ApplyPatch(ctx context.Context, id int64, patch *domain.UpdateUserRequest, now time.Time) (*domain.User, error)

	// SetCheckedIn flips the check-in flag and bumps updated_at
	SetCheckedIn(ctx context.Context, id int64, checkedIn bool, now time.Time) (*domain.User, error)

	// Touch bumps updated_at
	Touch(ctx context.Context, id int64, now time.Time) error
}

// ActivityRepository defines the interface for activity data operations
type ActivityRepository interface {
	// Create creates a new activity
	Create(ctx context.Context, name, category string) (*domain.Activity, error)

	// List retrieves all activities
	List(ctx context.Context) ([]*domain.Activity, error)

	// GetByID retrieves an activity by id, nil when absent
	GetByID(ctx context.Context, id int64) (*domain.Activity, error)

	// GetByName retrieves an activity by exact name, nil when absent
	GetByName(ctx context.Context, name string) (*domain.Activity, error)

	// GetByNameInsensitive retrieves an activity matching the name
	// case-insensitively, nil when absent
	GetByNameInsensitive(ctx context.Context, name string) (*domain.Activity, error)

	// SetOneScanOnly updates the one-scan policy flag by exact name
	SetOneScanOnly(ctx context.Context, name string, oneScanOnly bool) (*domain.Activity, error)

	// IDsByCategory resolves a category to the ids of its activities
	IDsByCategory(ctx context.Context, category string) ([]int64, error)
}

// ScanRepository defines the interface for scan data operations
type ScanRepository interface {
	// Create records a scan
	Create(ctx context.Context, userID, activityID int64, scannedAt time.Time) (*domain.Scan, error)

	// LastScan retrieves the most recent scan for a (user, activity)
	// pair, nil when none exists
	LastScan(ctx context.Context, userID, activityID int64) (*domain.Scan, error)

	// Exists reports whether any scan exists for a (user, activity) pair
	Exists(ctx context.Context, userID, activityID int64) (bool, error)

	// ListByUser retrieves a user's scans joined to their activities
	ListByUser(ctx context.Context, userID int64) ([]domain.ScanWithActivity, error)

	// ListByActivity retrieves all scans of an activity
	ListByActivity(ctx context.Context, activityID int64) ([]domain.Scan, error)

	// CountsByActivity groups scans by activity with counts, descending
	// by count. A nil id set means no category restriction.
	CountsByActivity(ctx context.Context, activityIDs []int64) ([]domain.ActivityCount, error)

	// TimeBuckets groups an activity's scans into truncated time
	// buckets, ascending by bucket start
	TimeBuckets(ctx context.Context, activityID int64, interval string, start *time.Time, end time.Time) ([]domain.TimeBucketRow, error)
}

// FriendScanRepository defines the interface for friend-scan data operations
type FriendScanRepository interface {
	// Create records a friend scan
	Create(ctx context.Context, scannerID, scannedID int64, scannedAt time.Time) (*domain.FriendScan, error)

	// PairExists reports whether a friend scan exists for the unordered
	// (a, b) user pair
	PairExists(ctx context.Context, a, b int64) (bool, error)

	// ListScanned retrieves the users a scanner has scanned, most
	// recent first
	ListScanned(ctx context.Context, scannerID int64) ([]domain.ScannedFriendRow, error)
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	User       UserRepository
	Activity   ActivityRepository
	Scan       ScanRepository
	FriendScan FriendScanRepository
}
