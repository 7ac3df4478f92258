package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"badgetrack/internal/domain"
	"badgetrack/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBadge = "give-seven-food-trade"

func scanFixtures() *repository.Repositories {
	badge := testBadge
	user := &domain.User{ID: 1, Name: "Ada Lovelace", Email: "ada@example.com", BadgeCode: &badge, CheckedIn: true}
	activity := &domain.Activity{ID: 3, Name: "Rust 101", Category: "workshop"}

	return &repository.Repositories{
		User: &fakeUserRepo{
			getByBadgeCode: func(ctx context.Context, badgeCode string) (*domain.User, error) {
				if badgeCode == testBadge {
					return user, nil
				}
				return nil, nil
			},
		},
		Activity: &fakeActivityRepo{
			getByNameInsensitive: func(ctx context.Context, name string) (*domain.Activity, error) {
				if strings.EqualFold(name, activity.Name) {
					return activity, nil
				}
				return nil, nil
			},
		},
		Scan:       &fakeScanRepo{},
		FriendScan: &fakeFriendRepo{},
	}
}

func TestRecordScanEndpoint(t *testing.T) {
	router := newTestRouter(scanFixtures())

	body := `{"activity_name": "rust 101", "activity_category": "workshop"}`
	req := httptest.NewRequest(http.MethodPost, "/scan/"+testBadge, strings.NewReader(body))
	rec := doRequest(router, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.ScanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Scan successfully recorded.", resp.Message)
	assert.Equal(t, "Rust 101", resp.ActivityName)
	assert.Equal(t, "workshop", resp.ActivityCategory)
	assert.NotEmpty(t, resp.ScannedAt)
}

func TestRecordScanEndpoint_InvalidBody(t *testing.T) {
	router := newTestRouter(scanFixtures())

	req := httptest.NewRequest(http.MethodPost, "/scan/"+testBadge, strings.NewReader("not json"))
	rec := doRequest(router, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid request body", body["error"])
}

func TestRecordScanEndpoint_RateLimited(t *testing.T) {
	repos := scanFixtures()
	repos.Scan = &fakeScanRepo{
		lastScan: func(ctx context.Context, userID, activityID int64) (*domain.Scan, error) {
			return &domain.Scan{ID: 9, UserID: userID, ActivityID: activityID, ScannedAt: time.Now().Add(-2 * time.Second)}, nil
		},
	}
	router := newTestRouter(repos)

	body := `{"activity_name": "Rust 101", "activity_category": "workshop"}`
	req := httptest.NewRequest(http.MethodPost, "/scan/"+testBadge, strings.NewReader(body))
	rec := doRequest(router, req)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "You are scanning too fast. Please wait a few seconds.", resp["error"])
}

func TestRecordScanEndpoint_CheckedOut(t *testing.T) {
	repos := scanFixtures()
	badge := testBadge
	repos.User = &fakeUserRepo{
		getByBadgeCode: func(ctx context.Context, badgeCode string) (*domain.User, error) {
			return &domain.User{ID: 1, Name: "Ada Lovelace", BadgeCode: &badge, CheckedIn: false}, nil
		},
	}
	router := newTestRouter(repos)

	body := `{"activity_name": "Rust 101", "activity_category": "workshop"}`
	req := httptest.NewRequest(http.MethodPost, "/scan/"+testBadge, strings.NewReader(body))
	rec := doRequest(router, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetScanDataEndpoint(t *testing.T) {
	repos := scanFixtures()
	repos.Scan = &fakeScanRepo{
		countsByActivity: func(ctx context.Context, activityIDs []int64) ([]domain.ActivityCount, error) {
			return []domain.ActivityCount{{ActivityID: 3, Count: 12}}, nil
		},
	}
	repos.Activity = &fakeActivityRepo{
		getByID: func(ctx context.Context, id int64) (*domain.Activity, error) {
			return &domain.Activity{ID: 3, Name: "Rust 101", Category: "workshop"}, nil
		},
	}
	router := newTestRouter(repos)

	req := httptest.NewRequest(http.MethodGet, "/scan?min_frequency=5", nil)
	rec := doRequest(router, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var results []domain.ActivityFrequency
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, int64(12), results[0].Frequency)
}

func TestGetScanDataEndpoint_BadNumbers(t *testing.T) {
	router := newTestRouter(scanFixtures())

	req := httptest.NewRequest(http.MethodGet, "/scan?min_frequency=abc", nil)
	rec := doRequest(router, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "min_frequency and max_frequency must be valid numbers.", body["error"])
}

func TestGetScanDataEndpoint_NoMatches(t *testing.T) {
	repos := scanFixtures()
	repos.Scan = &fakeScanRepo{
		countsByActivity: func(ctx context.Context, activityIDs []int64) ([]domain.ActivityCount, error) {
			return nil, nil
		},
	}
	router := newTestRouter(repos)

	req := httptest.NewRequest(http.MethodGet, "/scan", nil)
	rec := doRequest(router, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "No scans found matching the criteria.", body["error"])
}

func TestGetScanTimelineEndpoint(t *testing.T) {
	repos := scanFixtures()
	repos.Scan = &fakeScanRepo{
		timeBuckets: func(ctx context.Context, activityID int64, interval string, start *time.Time, end time.Time) ([]domain.TimeBucketRow, error) {
			assert.Equal(t, "hour", interval)
			return []domain.TimeBucketRow{
				{Time: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC), Count: 4},
			}, nil
		},
	}
	router := newTestRouter(repos)

	req := httptest.NewRequest(http.MethodGet, "/scan/timeline?activity_name=Rust+101", nil)
	rec := doRequest(router, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var buckets []domain.TimeBucket
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &buckets))
	require.Len(t, buckets, 1)
	assert.Equal(t, "2025-01-15T10:00:00.000", buckets[0].Time)
	assert.Equal(t, int64(4), buckets[0].ScanCount)
}

func TestGetScanTimelineEndpoint_NoData(t *testing.T) {
	router := newTestRouter(scanFixtures())

	req := httptest.NewRequest(http.MethodGet, "/scan/timeline?activity_name=Rust+101", nil)
	rec := doRequest(router, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	// Informational message body, not an error body.
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "No scan data found for this activity within the given time range.", body["message"])
	assert.Empty(t, body["error"])
}

func TestGetScanTimelineEndpoint_BadDate(t *testing.T) {
	router := newTestRouter(scanFixtures())

	req := httptest.NewRequest(http.MethodGet, "/scan/timeline?activity_name=Rust+101&start_time=yesterday", nil)
	rec := doRequest(router, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid date format for start_time or end_time.", body["error"])
}

func TestGetScanTimelineEndpoint_BadInterval(t *testing.T) {
	router := newTestRouter(scanFixtures())

	req := httptest.NewRequest(http.MethodGet, "/scan/timeline?activity_name=Rust+101&interval=week", nil)
	rec := doRequest(router, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
