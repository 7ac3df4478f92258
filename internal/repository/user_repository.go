package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"badgetrack/internal/domain"
	"badgetrack/pkg/database"

	"github.com/jackc/pgx/v5"
)

const userColumns = "id, name, email, phone, badge_code, checked_in, updated_at"

type PostgresUserRepository struct {
	db *database.PostgresDB
}

func NewUserRepository(db *database.PostgresDB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.BadgeCode,
		&user.CheckedIn,
		&user.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = $1", userColumns)
	return scanUser(r.db.Pool.QueryRow(ctx, query, email))
}

// GetByBadgeCode retrieves a user by badge code
func (r *PostgresUserRepository) GetByBadgeCode(ctx context.Context, badgeCode string) (*domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE badge_code = $1", userColumns)
	return scanUser(r.db.Pool.QueryRow(ctx, query, badgeCode))
}

// List retrieves all users
func (r *PostgresUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users ORDER BY id", userColumns)

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Phone,
			&user.BadgeCode,
			&user.CheckedIn,
			&user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return users, nil
}

// EmailTaken reports whether another user already owns the email
func (r *PostgresUserRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := "SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)"

	var taken bool
	if err := r.db.Pool.QueryRow(ctx, query, email, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return taken, nil
}

// BadgeCodeTaken reports whether another user already owns the badge code
func (r *PostgresUserRepository) BadgeCodeTaken(ctx context.Context, badgeCode string, excludeID int64) (bool, error) {
	query := "SELECT EXISTS (SELECT 1 FROM users WHERE badge_code = $1 AND id <> $2)"

	var taken bool
	if err := r.db.Pool.QueryRow(ctx, query, badgeCode, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("failed to check badge code: %w", err)
	}
	return taken, nil
}

// ApplyPatch writes the validated patch fields plus updated_at in one update
func (r *PostgresUserRepository) ApplyPatch(ctx context.Context, id int64, patch *domain.UpdateUserRequest, now time.Time) (*domain.User, error) {
	setClauses := []string{}
	args := []interface{}{}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.Email != nil {
		addSet("email", *patch.Email)
	}
	if patch.Phone != nil {
		addSet("phone", *patch.Phone)
	}
	if patch.BadgeCodeSet && patch.BadgeCode != nil {
		addSet("badge_code", *patch.BadgeCode)
	}
	addSet("updated_at", now)

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), len(args), userColumns,
	)

	user, err := scanUser(r.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// SetCheckedIn flips the check-in flag and bumps updated_at
func (r *PostgresUserRepository) SetCheckedIn(ctx context.Context, id int64, checkedIn bool, now time.Time) (*domain.User, error) {
	query := fmt.Sprintf(
		"UPDATE users SET checked_in = $1, updated_at = $2 WHERE id = $3 RETURNING %s",
		userColumns,
	)

	user, err := scanUser(r.db.Pool.QueryRow(ctx, query, checkedIn, now, id))
	if err != nil {
		return nil, fmt.Errorf("failed to update check-in state: %w", err)
	}
	return user, nil
}

// Touch bumps updated_at
func (r *PostgresUserRepository) Touch(ctx context.Context, id int64, now time.Time) error {
	if _, err := r.db.Pool.Exec(ctx, "UPDATE users SET updated_at = $1 WHERE id = $2", now, id); err != nil {
		return fmt.Errorf("failed to touch user: %w", err)
	}
	return nil
}
