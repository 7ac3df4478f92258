package domain

// Activity represents a named, categorized event session
type Activity struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	OneScanOnly bool   `json:"one_scan_only"`
}

// CreateActivityRequest is the body of POST /activities.
type CreateActivityRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// OneScanRequest is the body of PUT /activities/{activity_name}/one-scan.
// A pointer distinguishes a missing flag from an explicit false.
type OneScanRequest struct {
	OneScanOnly *bool `json:"one_scan_only"`
}

// OneScanResponse echoes the updated policy.
type OneScanResponse struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	OneScanOnly bool   `json:"one_scan_only"`
}

// ActivityScan is a raw scan row shaped for the activity detail response.
type ActivityScan struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	ScannedAt string `json:"scanned_at"`
}

// ActivityDetail is an activity with its scan history.
type ActivityDetail struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	OneScanOnly bool           `json:"one_scan_only"`
	Scans       []ActivityScan `json:"scans"`
}
