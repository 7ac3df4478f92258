package repository

import (
	"context"
	"fmt"
	"time"

	"badgetrack/internal/domain"
	"badgetrack/pkg/database"

	"github.com/jackc/pgx/v5"
)

type PostgresScanRepository struct {
	db *database.PostgresDB
}

func NewScanRepository(db *database.PostgresDB) *PostgresScanRepository {
	return &PostgresScanRepository{db: db}
}

// Create records a scan
func (r *PostgresScanRepository) Create(ctx context.Context, userID, activityID int64, scannedAt time.Time) (*domain.Scan, error) {
	query := `
		INSERT INTO scans (user_id, activity_id, scanned_at)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, activity_id, scanned_at
	`

	var scan domain.Scan
	err := r.db.Pool.QueryRow(ctx, query, userID, activityID, scannedAt).Scan(
		&scan.ID,
		&scan.UserID,
		&scan.ActivityID,
		&scan.ScannedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scan: %w", err)
	}
	return &scan, nil
}

// LastScan retrieves the most recent scan for a (user, activity) pair
func (r *PostgresScanRepository) LastScan(ctx context.Context, userID, activityID int64) (*domain.Scan, error) {
	query := `
		SELECT id, user_id, activity_id, scanned_at
		FROM scans
		WHERE user_id = $1 AND activity_id = $2
		ORDER BY scanned_at DESC
		LIMIT 1
	`

	var scan domain.Scan
	err := r.db.Pool.QueryRow(ctx, query, userID, activityID).Scan(
		&scan.ID,
		&scan.UserID,
		&scan.ActivityID,
		&scan.ScannedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last scan: %w", err)
	}
	return &scan, nil
}

// Exists reports whether any scan exists for a (user, activity) pair
func (r *PostgresScanRepository) Exists(ctx context.Context, userID, activityID int64) (bool, error) {
	query := "SELECT EXISTS (SELECT 1 FROM scans WHERE user_id = $1 AND activity_id = $2)"

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, userID, activityID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check scan existence: %w", err)
	}
	return exists, nil
}

// ListByUser retrieves a user's scans joined to their activities
func (r *PostgresScanRepository) ListByUser(ctx context.Context, userID int64) ([]domain.ScanWithActivity, error) {
	query := `
		SELECT a.name, a.category, s.scanned_at
		FROM scans s
		JOIN activities a ON a.id = s.activity_id
		WHERE s.user_id = $1
		ORDER BY s.scanned_at
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user scans: %w", err)
	}
	defer rows.Close()

	scans := []domain.ScanWithActivity{}
	for rows.Next() {
		var s domain.ScanWithActivity
		if err := rows.Scan(&s.ActivityName, &s.ActivityCategory, &s.ScannedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user scan row: %w", err)
		}
		scans = append(scans, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user scans: %w", err)
	}

	return scans, nil
}

// ListByActivity retrieves all scans of an activity
func (r *PostgresScanRepository) ListByActivity(ctx context.Context, activityID int64) ([]domain.Scan, error) {
	query := `
		SELECT id, user_id, activity_id, scanned_at
		FROM scans
		WHERE activity_id = $1
		ORDER BY scanned_at
	`

	rows, err := r.db.Pool.Query(ctx, query, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity scans: %w", err)
	}
	defer rows.Close()

	scans := []domain.Scan{}
	for rows.Next() {
		var s domain.Scan
		if err := rows.Scan(&s.ID, &s.UserID, &s.ActivityID, &s.ScannedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity scan row: %w", err)
		}
		scans = append(scans, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity scans: %w", err)
	}

	return scans, nil
}

// CountsByActivity groups scans by activity with counts, descending by count
func (r *PostgresScanRepository) CountsByActivity(ctx context.Context, activityIDs []int64) ([]domain.ActivityCount, error) {
	query := `
		SELECT activity_id, COUNT(*) AS scan_count
		FROM scans
		WHERE $1::bigint[] IS NULL OR activity_id = ANY($1)
		GROUP BY activity_id
		ORDER BY scan_count DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, activityIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to group scans: %w", err)
	}
	defer rows.Close()

	counts := []domain.ActivityCount{}
	for rows.Next() {
		var c domain.ActivityCount
		if err := rows.Scan(&c.ActivityID, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scan counts: %w", err)
	}

	return counts, nil
}

// TimeBuckets groups an activity's scans into truncated time buckets.
// The interval is passed as a bind parameter; date_trunc accepts the
// unit as text, so no SQL is ever assembled from request input.
func (r *PostgresScanRepository) TimeBuckets(ctx context.Context, activityID int64, interval string, start *time.Time, end time.Time) ([]domain.TimeBucketRow, error) {
	query := `
		SELECT DATE_TRUNC($1, scanned_at) AS bucket, COUNT(*) AS scan_count
		FROM scans
		WHERE activity_id = $2
		  AND ($3::timestamptz IS NULL OR scanned_at >= $3)
		  AND scanned_at <= $4
		GROUP BY bucket
		ORDER BY bucket
	`

	rows, err := r.db.Pool.Query(ctx, query, interval, activityID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to bucket scans: %w", err)
	}
	defer rows.Close()

	buckets := []domain.TimeBucketRow{}
	for rows.Next() {
		var b domain.TimeBucketRow
		if err := rows.Scan(&b.Time, &b.Count); err != nil {
			return nil, fmt.Errorf("failed to scan bucket row: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scan buckets: %w", err)
	}

	return buckets, nil
}
