package repository

import (
	"context"
	"fmt"
	"time"

	"badgetrack/internal/domain"
	"badgetrack/pkg/database"
)

type PostgresFriendScanRepository struct {
	db *database.PostgresDB
}

func NewFriendScanRepository(db *database.PostgresDB) *PostgresFriendScanRepository {
	return &PostgresFriendScanRepository{db: db}
}

// Create records a friend scan
func (r *PostgresFriendScanRepository) Create(ctx context.Context, scannerID, scannedID int64, scannedAt time.Time) (*domain.FriendScan, error) {
	query := `
		INSERT INTO friend_scans (scanner_id, scanned_id, scanned_at)
		VALUES ($1, $2, $3)
		RETURNING id, scanner_id, scanned_id, scanned_at
	`

	var fs domain.FriendScan
	err := r.db.Pool.QueryRow(ctx, query, scannerID, scannedID, scannedAt).Scan(
		&fs.ID,
		&fs.ScannerID,
		&fs.ScannedID,
		&fs.ScannedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create friend scan: %w", err)
	}
	return &fs, nil
}

// PairExists reports whether a friend scan exists in either direction
// for the (a, b) user pair
func (r *PostgresFriendScanRepository) PairExists(ctx context.Context, a, b int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM friend_scans
			WHERE (scanner_id = $1 AND scanned_id = $2)
			   OR (scanner_id = $2 AND scanned_id = $1)
		)
	`

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, a, b).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check friend scan pair: %w", err)
	}
	return exists, nil
}

// ListScanned retrieves the users a scanner has scanned, most recent first
func (r *PostgresFriendScanRepository) ListScanned(ctx context.Context, scannerID int64) ([]domain.ScannedFriendRow, error) {
	query := `
		SELECT u.name, u.email, u.phone, u.badge_code, fs.scanned_at
		FROM friend_scans fs
		JOIN users u ON u.id = fs.scanned_id
		WHERE fs.scanner_id = $1
		ORDER BY fs.scanned_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, scannerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scanned friends: %w", err)
	}
	defer rows.Close()

	friends := []domain.ScannedFriendRow{}
	for rows.Next() {
		var f domain.ScannedFriendRow
		if err := rows.Scan(&f.Name, &f.Email, &f.Phone, &f.BadgeCode, &f.ScannedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friend row: %w", err)
		}
		friends = append(friends, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scanned friends: %w", err)
	}

	return friends, nil
}
