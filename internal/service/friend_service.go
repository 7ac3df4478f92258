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

type FriendService struct {
	users   repository.UserRepository
	friends repository.FriendScanRepository
	logger  *zap.Logger
	now     func() time.Time
}

func NewFriendService(repos *repository.Repositories, logger *zap.Logger) *FriendService {
	return &FriendService{
		users:   repos.User,
		friends: repos.FriendScan,
		logger:  logger,
		now:     time.Now,
	}
}

// ScanFriend validates and commits a peer badge scan. A pair of users
// can only ever be linked once, regardless of who scanned whom.
func (s *FriendService) ScanFriend(ctx context.Context, badgeCode string, req *domain.FriendScanRequest) (*domain.FriendScanResponse, error) {
	if req.FriendBadgeCode == "" {
		return nil, apperrors.NewValidationError("Invalid or missing friend_badge_code.")
	}

	if badgeCode == req.FriendBadgeCode {
		return nil, apperrors.NewValidationError("You cannot scan your own badge.")
	}

	scanner, err := s.users.GetByBadgeCode(ctx, badgeCode)
	if err != nil {
		return nil, fmt.Errorf("failed to look up scanner: %w", err)
	}
	scanned, err := s.users.GetByBadgeCode(ctx, req.FriendBadgeCode)
	if err != nil {
		return nil, fmt.Errorf("failed to look up scanned user: %w", err)
	}
	if scanner == nil || scanned == nil {
		return nil, apperrors.NewNotFoundError("One or both users not found.")
	}

	if !scanner.CheckedIn || !scanned.CheckedIn {
		return nil, apperrors.NewForbiddenError("Both users must be checked in to scan friends.")
	}

	exists, err := s.friends.PairExists(ctx, scanner.ID, scanned.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing friend scan: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("You have already scanned this friend.")
	}

	now := s.now()

	friendScan, err := s.friends.Create(ctx, scanner.ID, scanned.ID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to record friend scan: %w", err)
	}

	if err := s.users.Touch(ctx, scanner.ID, now); err != nil {
		return nil, fmt.Errorf("failed to update scanner timestamp: %w", err)
	}

	return &domain.FriendScanResponse{
		Message:   fmt.Sprintf("Successfully scanned %s's badge.", scanned.Name),
		ScannedAt: utils.FormatTimestamp(friendScan.ScannedAt),
	}, nil
}

// ListScanned returns the users a scanner has scanned, most recent first.
func (s *FriendService) ListScanned(ctx context.Context, badgeCode string) ([]domain.ScannedFriend, error) {
	user, err := s.users.GetByBadgeCode(ctx, badgeCode)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("User not found.")
	}

	rows, err := s.friends.ListScanned(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scanned friends: %w", err)
	}

	friends := make([]domain.ScannedFriend, 0, len(rows))
	for _, row := range rows {
		friends = append(friends, domain.ScannedFriend{
			Name:      row.Name,
			Email:     row.Email,
			Phone:     row.Phone,
			BadgeCode: row.BadgeCode,
			ScannedAt: utils.FormatTimestamp(row.ScannedAt),
		})
	}

	return friends, nil
}
