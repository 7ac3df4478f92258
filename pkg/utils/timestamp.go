package utils

import "time"

// timestampLayout is ISO-8601 with millisecond precision and no zone
// designator. Every timestamp in a response body goes through this.
const timestampLayout = "2006-01-02T15:04:05.000"

// FormatTimestamp normalizes a stored timestamp for response bodies.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
