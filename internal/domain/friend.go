package domain

import "time"

// FriendScan records one user scanning another's badge. The pair is
// symmetric: A scanning B and B scanning A are the same relationship.
type FriendScan struct {
	ID        int64     `json:"id"`
	ScannerID int64     `json:"scanner_id"`
	ScannedID int64     `json:"scanned_id"`
	ScannedAt time.Time `json:"scanned_at"`
}

// FriendScanRequest is the body of POST /friends/scan/{badge_code}.
type FriendScanRequest struct {
	FriendBadgeCode string `json:"friend_badge_code"`
}

// FriendScanResponse is the success body of a recorded friend scan.
type FriendScanResponse struct {
	Message   string `json:"message"`
	ScannedAt string `json:"scanned_at"`
}

// ScannedFriend is one entry of GET /friends/{badge_code}.
type ScannedFriend struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	BadgeCode *string `json:"badge_code"`
	ScannedAt string  `json:"scanned_at"`
}
