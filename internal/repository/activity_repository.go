package repository

import (
	"context"
	"fmt"

	"badgetrack/internal/domain"
	"badgetrack/pkg/database"

	"github.com/jackc/pgx/v5"
)

const activityColumns = "id, name, category, one_scan_only"

type PostgresActivityRepository struct {
	db *database.PostgresDB
}

func NewActivityRepository(db *database.PostgresDB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

func scanActivity(row pgx.Row) (*domain.Activity, error) {
	var activity domain.Activity
	err := row.Scan(
		&activity.ID,
		&activity.Name,
		&activity.Category,
		&activity.OneScanOnly,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan activity row: %w", err)
	}
	return &activity, nil
}

// Create creates a new activity
func (r *PostgresActivityRepository) Create(ctx context.Context, name, category string) (*domain.Activity, error) {
	query := fmt.Sprintf(
		"INSERT INTO activities (name, category) VALUES ($1, $2) RETURNING %s",
		activityColumns,
	)

	var activity domain.Activity
	err := r.db.Pool.QueryRow(ctx, query, name, category).Scan(
		&activity.ID,
		&activity.Name,
		&activity.Category,
		&activity.OneScanOnly,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	return &activity, nil
}

// List retrieves all activities
func (r *PostgresActivityRepository) List(ctx context.Context) ([]*domain.Activity, error) {
	query := fmt.Sprintf("SELECT %s FROM activities ORDER BY id", activityColumns)

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*domain.Activity
	for rows.Next() {
		var activity domain.Activity
		if err := rows.Scan(
			&activity.ID,
			&activity.Name,
			&activity.Category,
			&activity.OneScanOnly,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		activities = append(activities, &activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activities: %w", err)
	}

	return activities, nil
}

// GetByID retrieves an activity by id
func (r *PostgresActivityRepository) GetByID(ctx context.Context, id int64) (*domain.Activity, error) {
	query := fmt.Sprintf("SELECT %s FROM activities WHERE id = $1", activityColumns)
	return scanActivity(r.db.Pool.QueryRow(ctx, query, id))
}

// GetByName retrieves an activity by exact name
func (r *PostgresActivityRepository) GetByName(ctx context.Context, name string) (*domain.Activity, error) {
	query := fmt.Sprintf("SELECT %s FROM activities WHERE name = $1", activityColumns)
	return scanActivity(r.db.Pool.QueryRow(ctx, query, name))
}

// GetByNameInsensitive retrieves an activity matching the name
// case-insensitively. Explicit lower-casing keeps the behavior portable
// across storage engines instead of leaning on collation.
func (r *PostgresActivityRepository) GetByNameInsensitive(ctx context.Context, name string) (*domain.Activity, error) {
	query := fmt.Sprintf("SELECT %s FROM activities WHERE LOWER(name) = LOWER($1)", activityColumns)
	return scanActivity(r.db.Pool.QueryRow(ctx, query, name))
}

// SetOneScanOnly updates the one-scan policy flag by exact name
func (r *PostgresActivityRepository) SetOneScanOnly(ctx context.Context, name string, oneScanOnly bool) (*domain.Activity, error) {
	query := fmt.Sprintf(
		"UPDATE activities SET one_scan_only = $1 WHERE name = $2 RETURNING %s",
		activityColumns,
	)

	activity, err := scanActivity(r.db.Pool.QueryRow(ctx, query, oneScanOnly, name))
	if err != nil {
		return nil, fmt.Errorf("failed to update one_scan_only: %w", err)
	}
	return activity, nil
}

// IDsByCategory resolves a category to the ids of its activities
func (r *PostgresActivityRepository) IDsByCategory(ctx context.Context, category string) ([]int64, error) {
	rows, err := r.db.Pool.Query(ctx, "SELECT id FROM activities WHERE category = $1", category)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan activity id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity ids: %w", err)
	}

	return ids, nil
}
