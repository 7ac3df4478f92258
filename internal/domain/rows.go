package domain

import "time"

// ScanWithActivity is a scan row joined to its activity, as read from
// the store before response shaping.
type ScanWithActivity struct {
	ActivityName     string
	ActivityCategory string
	ScannedAt        time.Time
}

// TimeBucketRow is a raw timeline row before timestamp formatting.
type TimeBucketRow struct {
	Time  time.Time
	Count int64
}

// ScannedFriendRow is a friend-scan row joined to the scanned user.
type ScannedFriendRow struct {
	Name      string
	Email     string
	Phone     string
	BadgeCode *string
	ScannedAt time.Time
}
