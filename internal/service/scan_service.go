package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"badgetrack/internal/domain"
	"badgetrack/internal/repository"
	"badgetrack/pkg/apperrors"
	"badgetrack/pkg/redis"
	"badgetrack/pkg/utils"

	"go.uber.org/zap"
)

// ScanCooldown is the minimum wait between consecutive scans of the
// same activity by the same user.
const ScanCooldown = 5 * time.Second

var validIntervals = map[string]bool{
	"minute": true,
	"hour":   true,
	"day":    true,
}

type ScanService struct {
	users      repository.UserRepository
	activities repository.ActivityRepository
	scans      repository.ScanRepository
	redis      *redis.Client
	logger     *zap.Logger
	now        func() time.Time
}

func NewScanService(repos *repository.Repositories, redisClient *redis.Client, logger *zap.Logger) *ScanService {
	return &ScanService{
		users:      repos.User,
		activities: repos.Activity,
		scans:      repos.Scan,
		redis:      redisClient,
		logger:     logger,
		now:        time.Now,
	}
}

// RecordScan validates and commits a single scan event. Checks run in
// strict order and the first failure wins; nothing is written on any
// rejection path.
func (s *ScanService) RecordScan(ctx context.Context, badgeCode string, req *domain.ScanRequest) (*domain.ScanResponse, error) {
	if req.ActivityName == "" {
		return nil, apperrors.NewValidationError("Invalid activity_name provided.")
	}
	if strings.TrimSpace(req.ActivityCategory) == "" {
		return nil, apperrors.NewValidationError("Invalid activity_category provided.")
	}

	user, err := s.users.GetByBadgeCode(ctx, badgeCode)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("User not found")
	}

	if !user.CheckedIn {
		return nil, apperrors.NewForbiddenError("User is checked out. Please check in before scanning.")
	}

	activity, err := s.activityByName(ctx, req.ActivityName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up activity: %w", err)
	}
	if activity == nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Activity '%s' does not exist.", req.ActivityName))
	}

	if !strings.EqualFold(activity.Category, req.ActivityCategory) {
		return nil, apperrors.NewValidationError(fmt.Sprintf(
			"Invalid event type: '%s' belongs to category '%s', not '%s'.",
			req.ActivityName, activity.Category, req.ActivityCategory,
		))
	}

	if activity.OneScanOnly {
		exists, err := s.scans.Exists(ctx, user.ID, activity.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing scan: %w", err)
		}
		if exists {
			return nil, apperrors.NewConflictError(fmt.Sprintf("You are only allowed one scan for '%s'.", req.ActivityName))
		}
	}

	limited, err := s.inCooldown(ctx, user.ID, activity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check cooldown: %w", err)
	}
	if limited {
		return nil, apperrors.NewRateLimitError("You are scanning too fast. Please wait a few seconds.")
	}

	now := s.now()

	scan, err := s.scans.Create(ctx, user.ID, activity.ID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to record scan: %w", err)
	}

	if err := s.users.Touch(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to update user timestamp: %w", err)
	}

	s.markCooldown(user.ID, activity.ID)

	return &domain.ScanResponse{
		Message:          "Scan successfully recorded.",
		ActivityName:     activity.Name,
		ActivityCategory: activity.Category,
		ScannedAt:        utils.FormatTimestamp(scan.ScannedAt),
	}, nil
}

// GetScanData returns grouped scan counts filtered by frequency bounds
// and an optional activity category.
func (s *ScanService) GetScanData(ctx context.Context, q *domain.ScanDataQuery) ([]domain.ActivityFrequency, error) {
	var activityIDs []int64
	if q.ActivityCategory != "" {
		ids, err := s.activities.IDsByCategory(ctx, q.ActivityCategory)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve category: %w", err)
		}
		activityIDs = ids
	}

	counts, err := s.scans.CountsByActivity(ctx, activityIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to group scans: %w", err)
	}

	results := []domain.ActivityFrequency{}
	for _, c := range counts {
		if c.Count < q.MinFrequency || c.Count > q.MaxFrequency {
			continue
		}
		activity, err := s.activities.GetByID(ctx, c.ActivityID)
		if err != nil {
			return nil, fmt.Errorf("failed to load activity: %w", err)
		}
		if activity == nil {
			continue
		}
		results = append(results, domain.ActivityFrequency{
			ActivityName:     activity.Name,
			ActivityCategory: activity.Category,
			Frequency:        c.Count,
		})
	}

	if len(results) == 0 {
		return nil, apperrors.NewNotFoundError("No scans found matching the criteria.")
	}

	return results, nil
}

// GetScanTimeline returns time-bucketed scan counts for one activity.
// An empty slice with a nil error means "no data in range", which the
// handler reports as an informational message rather than an error.
func (s *ScanService) GetScanTimeline(ctx context.Context, q *domain.TimelineQuery) ([]domain.TimeBucket, error) {
	if strings.TrimSpace(q.ActivityName) == "" {
		return nil, apperrors.NewValidationError("Valid activity_name is required.")
	}
	if !validIntervals[q.Interval] {
		return nil, apperrors.NewValidationError("Invalid interval. Use 'hour', 'minute', or 'day'.")
	}

	activity, err := s.activities.GetByNameInsensitive(ctx, q.ActivityName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up activity: %w", err)
	}
	if activity == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("Activity '%s' not found.", q.ActivityName))
	}

	rows, err := s.scans.TimeBuckets(ctx, activity.ID, q.Interval, q.StartTime, q.EndTime)
	if err != nil {
		return nil, fmt.Errorf("failed to bucket scans: %w", err)
	}

	buckets := make([]domain.TimeBucket, 0, len(rows))
	for _, row := range rows {
		buckets = append(buckets, domain.TimeBucket{
			Time:      utils.FormatTimestamp(row.Time),
			ScanCount: row.Count,
		})
	}

	return buckets, nil
}

// activityByName resolves an activity case-insensitively with a
// cache-aside fast path. The database stays authoritative; any redis
// failure falls through to the repository.
func (s *ScanService) activityByName(ctx context.Context, name string) (*domain.Activity, error) {
	if s.redis != nil {
		key := s.redis.KeyBuilder.KeyActivityByName(name)
		cached, err := s.redis.Get(ctx, key)
		if err == nil && cached != "" {
			var activity domain.Activity
			if jsonErr := json.Unmarshal([]byte(cached), &activity); jsonErr == nil {
				return &activity, nil
			}
			s.logger.Warn("corrupted activity cache entry", zap.String("key", key))
		}
	}

	activity, err := s.activities.GetByNameInsensitive(ctx, name)
	if err != nil || activity == nil {
		return activity, err
	}

	if s.redis != nil {
		go s.cacheActivity(name, activity)
	}

	return activity, nil
}

func (s *ScanService) cacheActivity(name string, activity *domain.Activity) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := json.Marshal(activity)
	if err != nil {
		return
	}
	key := s.redis.KeyBuilder.KeyActivityByName(name)
	if err := s.redis.Set(ctx, key, string(data), redis.TTLActivity); err != nil {
		s.logger.Debug("failed to cache activity", zap.String("key", key), zap.Error(err))
	}
}

// inCooldown checks the cooldown window. The redis marker is a fast
// path: it is only ever set after a successful scan with a TTL equal to
// the window, so its presence alone justifies a rejection. On a miss
// the last stored scan decides.
func (s *ScanService) inCooldown(ctx context.Context, userID, activityID int64) (bool, error) {
	if s.redis != nil {
		key := s.redis.KeyBuilder.KeyScanCooldown(userID, activityID)
		if n, err := s.redis.Exists(ctx, key); err == nil && n > 0 {
			return true, nil
		}
	}

	last, err := s.scans.LastScan(ctx, userID, activityID)
	if err != nil {
		return false, err
	}
	return last != nil && s.now().Sub(last.ScannedAt) < ScanCooldown, nil
}

func (s *ScanService) markCooldown(userID, activityID int64) {
	if s.redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := s.redis.KeyBuilder.KeyScanCooldown(userID, activityID)
	if err := s.redis.Set(ctx, key, "1", ScanCooldown); err != nil {
		s.logger.Debug("failed to set cooldown marker", zap.String("key", key), zap.Error(err))
	}
}
