package domain

import (
	"encoding/json"
	"time"
)

// User represents an attendee
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	BadgeCode *string   `json:"badge_code"`
	CheckedIn bool      `json:"checked_in"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserScan is a scan reshaped for user-facing responses.
type UserScan struct {
	ActivityName     string `json:"activity_name"`
	ActivityCategory string `json:"activity_category"`
	ScannedAt        string `json:"scanned_at"`
}

// UserResponse is a user with formatted timestamps and reshaped scans.
type UserResponse struct {
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	BadgeCode *string    `json:"badge_code"`
	UpdatedAt string     `json:"updated_at"`
	Scans     []UserScan `json:"scans"`
}

// CheckStateResponse is returned by check-in and check-out.
type CheckStateResponse struct {
	Message   string `json:"message"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	CheckedIn bool   `json:"checked_in"`
	UpdatedAt string `json:"updated_at"`
}

// UpdateUserRequest is a partial user patch. BadgeCodeSet distinguishes
// an absent badge_code from an explicit null, which is rejected because
// a badge code cannot be cleared once assigned.
type UpdateUserRequest struct {
	Name         *string
	Email        *string
	Phone        *string
	BadgeCode    *string
	BadgeCodeSet bool
}

func (r *UpdateUserRequest) UnmarshalJSON(data []byte) error {
	var fields struct {
		Name      *string `json:"name"`
		Email     *string `json:"email"`
		Phone     *string `json:"phone"`
		BadgeCode *string `json:"badge_code"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Name = fields.Name
	r.Email = fields.Email
	r.Phone = fields.Phone
	r.BadgeCode = fields.BadgeCode
	_, r.BadgeCodeSet = raw["badge_code"]
	return nil
}

// HasUpdates reports whether the patch carries at least one field.
func (r *UpdateUserRequest) HasUpdates() bool {
	return r.Name != nil || r.Email != nil || r.Phone != nil || r.BadgeCodeSet
}
