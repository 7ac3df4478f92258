package service

import (
	"context"
	"fmt"
	"strings"

	"badgetrack/internal/domain"
	"badgetrack/internal/repository"
	"badgetrack/pkg/apperrors"
	"badgetrack/pkg/redis"
	"badgetrack/pkg/utils"

	"go.uber.org/zap"
)

type ActivityService struct {
	activities repository.ActivityRepository
	scans      repository.ScanRepository
	redis      *redis.Client
	logger     *zap.Logger
}

func NewActivityService(repos *repository.Repositories, redisClient *redis.Client, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		activities: repos.Activity,
		scans:      repos.Scan,
		redis:      redisClient,
		logger:     logger,
	}
}

// Create registers a new activity.
func (s *ActivityService) Create(ctx context.Context, req *domain.CreateActivityRequest) (*domain.Activity, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Category) == "" {
		return nil, apperrors.NewValidationError("Failed to create activity")
	}

	activity, err := s.activities.Create(ctx, req.Name, req.Category)
	if err != nil {
		// Covers the duplicate-name unique violation as well.
		s.logger.Warn("activity creation failed", zap.Error(err))
		return nil, apperrors.NewValidationError("Failed to create activity")
	}
	return activity, nil
}

// List returns all activities.
func (s *ActivityService) List(ctx context.Context) ([]*domain.Activity, error) {
	activities, err := s.activities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	return activities, nil
}

// GetByID returns one activity with its scan history.
func (s *ActivityService) GetByID(ctx context.Context, id int64) (*domain.ActivityDetail, error) {
	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity: %w", err)
	}
	if activity == nil {
		return nil, apperrors.NewNotFoundError("Activity not found")
	}

	scans, err := s.scans.ListByActivity(ctx, activity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity scans: %w", err)
	}

	shaped := make([]domain.ActivityScan, 0, len(scans))
	for _, scan := range scans {
		shaped = append(shaped, domain.ActivityScan{
			ID:        scan.ID,
			UserID:    scan.UserID,
			ScannedAt: utils.FormatTimestamp(scan.ScannedAt),
		})
	}

	return &domain.ActivityDetail{
		ID:          activity.ID,
		Name:        activity.Name,
		Category:    activity.Category,
		OneScanOnly: activity.OneScanOnly,
		Scans:       shaped,
	}, nil
}

// SetOneScanOnly updates an activity's one-scan policy flag.
func (s *ActivityService) SetOneScanOnly(ctx context.Context, name string, req *domain.OneScanRequest) (*domain.OneScanResponse, error) {
	if req.OneScanOnly == nil {
		return nil, apperrors.NewValidationError("one_scan_only must be a boolean value.")
	}

	activity, err := s.activities.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up activity: %w", err)
	}
	if activity == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("Activity '%s' not found.", name))
	}

	updated, err := s.activities.SetOneScanOnly(ctx, name, *req.OneScanOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}

	// Drop the cached entry so the scan pipeline sees the new policy
	// immediately instead of after the cache TTL.
	if s.redis != nil {
		key := s.redis.KeyBuilder.KeyActivityByName(updated.Name)
		if err := s.redis.Delete(ctx, key); err != nil {
			s.logger.Debug("failed to invalidate activity cache", zap.String("key", key), zap.Error(err))
		}
	}

	return &domain.OneScanResponse{
		Name:        updated.Name,
		Category:    updated.Category,
		OneScanOnly: updated.OneScanOnly,
	}, nil
}
