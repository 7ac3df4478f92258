package service

import (
	"context"
	"fmt"
	"time"

	"badgetrack/internal/domain"
	"badgetrack/internal/repository"
	"badgetrack/pkg/apperrors"
	"badgetrack/pkg/utils"

	"go.uber.org/zap"
)

type UserService struct {
	users  repository.UserRepository
	scans  repository.ScanRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewUserService(repos *repository.Repositories, logger *zap.Logger) *UserService {
	return &UserService{
		users:  repos.User,
		scans:  repos.Scan,
		logger: logger,
		now:    time.Now,
	}
}

// List returns all users with their scan history.
func (s *UserService) List(ctx context.Context) ([]domain.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]domain.UserResponse, 0, len(users))
	for _, user := range users {
		resp, err := s.shapeUser(ctx, user)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// Get returns one user by email with their scan history.
func (s *UserService) Get(ctx context.Context, email string) (*domain.UserResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("User not found")
	}
	return s.shapeUser(ctx, user)
}

// CheckIn flips a checked-out user to checked in. The user must own a
// badge, and checking in twice is rejected with the current state
// echoed back.
func (s *UserService) CheckIn(ctx context.Context, email string) (*domain.CheckStateResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("User not found")
	}

	if user.BadgeCode == nil {
		return nil, apperrors.NewValidationError("You must have a valid badge to check in.")
	}

	if user.CheckedIn {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s is already checked in.", user.Name)).
			WithDetails(map[string]interface{}{
				"name":       user.Name,
				"checked_in": user.CheckedIn,
				"updated_at": utils.FormatTimestamp(user.UpdatedAt),
			})
	}

	updated, err := s.users.SetCheckedIn(ctx, user.ID, true, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to check in user: %w", err)
	}

	return &domain.CheckStateResponse{
		Message:   fmt.Sprintf("%s has successfully checked in.", updated.Name),
		Name:      updated.Name,
		CheckedIn: updated.CheckedIn,
		UpdatedAt: utils.FormatTimestamp(updated.UpdatedAt),
	}, nil
}

// CheckOut is the mirror of CheckIn.
func (s *UserService) CheckOut(ctx context.Context, email string) (*domain.CheckStateResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("User not found")
	}

	if !user.CheckedIn {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s is already checked out.", user.Name)).
			WithDetails(map[string]interface{}{
				"name":       user.Name,
				"email":      user.Email,
				"checked_in": user.CheckedIn,
				"updated_at": utils.FormatTimestamp(user.UpdatedAt),
			})
	}

	updated, err := s.users.SetCheckedIn(ctx, user.ID, false, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to check out user: %w", err)
	}

	return &domain.CheckStateResponse{
		Message:   fmt.Sprintf("%s has successfully checked out.", updated.Name),
		Name:      updated.Name,
		Email:     updated.Email,
		CheckedIn: updated.CheckedIn,
		UpdatedAt: utils.FormatTimestamp(updated.UpdatedAt),
	}, nil
}

// Update applies a partial patch to a user. Badge codes can never be
// cleared, must keep the four-word shape, and both badge codes and
// emails must stay unique.
func (s *UserService) Update(ctx context.Context, email string, patch *domain.UpdateUserRequest) (*domain.UserResponse, error) {
	if !patch.HasUpdates() {
		return nil, apperrors.NewValidationError("No fields provided to update.")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("User not found.")
	}

	if patch.BadgeCodeSet {
		if patch.BadgeCode == nil {
			return nil, apperrors.NewValidationError("Badge code cannot be removed once assigned.")
		}
		if !utils.ValidateBadgeCode(*patch.BadgeCode) {
			return nil, apperrors.NewValidationError("Invalid badge_code format.")
		}
		taken, err := s.users.BadgeCodeTaken(ctx, *patch.BadgeCode, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check badge code: %w", err)
		}
		if taken {
			return nil, apperrors.NewConflictError("Badge code is already taken.")
		}
	}

	if patch.Email != nil && *patch.Email != user.Email {
		taken, err := s.users.EmailTaken(ctx, *patch.Email, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return nil, apperrors.NewConflictError("Email is already taken by another user.")
		}
	}

	updated, err := s.users.ApplyPatch(ctx, user.ID, patch, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return s.shapeUser(ctx, updated)
}

func (s *UserService) shapeUser(ctx context.Context, user *domain.User) (*domain.UserResponse, error) {
	scans, err := s.scans.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user scans: %w", err)
	}

	shaped := make([]domain.UserScan, 0, len(scans))
	for _, scan := range scans {
		shaped = append(shaped, domain.UserScan{
			ActivityName:     scan.ActivityName,
			ActivityCategory: scan.ActivityCategory,
			ScannedAt:        utils.FormatTimestamp(scan.ScannedAt),
		})
	}

	return &domain.UserResponse{
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		BadgeCode: user.BadgeCode,
		UpdatedAt: utils.FormatTimestamp(user.UpdatedAt),
		Scans:     shaped,
	}, nil
}
