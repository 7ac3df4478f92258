package domain

import "time"

// Scan links a user to an activity at a point in time
type Scan struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	ActivityID int64     `json:"activity_id"`
	ScannedAt  time.Time `json:"scanned_at"`
}

// ScanRequest is the body of POST /scan/{badge_code}.
type ScanRequest struct {
	ActivityName     string `json:"activity_name"`
	ActivityCategory string `json:"activity_category"`
}

// ScanResponse is the success body of a recorded scan.
type ScanResponse struct {
	Message          string `json:"message"`
	ActivityName     string `json:"activity_name"`
	ActivityCategory string `json:"activity_category"`
	ScannedAt        string `json:"scanned_at"`
}

// ActivityFrequency is one row of the grouped scan counts.
type ActivityFrequency struct {
	ActivityName     string `json:"activity_name"`
	ActivityCategory string `json:"activity_category"`
	Frequency        int64  `json:"frequency"`
}

// ActivityCount pairs an activity id with its scan count before the
// join back to activity names.
type ActivityCount struct {
	ActivityID int64
	Count      int64
}

// TimeBucket is one truncated-interval row of the scan timeline.
type TimeBucket struct {
	Time      string `json:"time"`
	ScanCount int64  `json:"scan_count"`
}

// ScanDataQuery holds the parsed filters of GET /scan.
type ScanDataQuery struct {
	MinFrequency     int64
	MaxFrequency     int64
	ActivityCategory string
}

// TimelineQuery holds the parsed filters of GET /scan/timeline.
type TimelineQuery struct {
	ActivityName string
	Interval     string
	StartTime    *time.Time
	EndTime      time.Time
}
