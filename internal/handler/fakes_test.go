package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"badgetrack/internal/domain"
	"badgetrack/internal/repository"
	"badgetrack/internal/service"
	"badgetrack/pkg/logger"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Function-field fakes keep each test focused on the paths it actually
// exercises; unset fields return zero values.

type fakeUserRepo struct {
	getByEmail     func(ctx context.Context, email string) (*domain.User, error)
	getByBadgeCode func(ctx context.Context, badgeCode string) (*domain.User, error)
	list           func(ctx context.Context) ([]*domain.User, error)
	emailTaken     func(ctx context.Context, email string, excludeID int64) (bool, error)
	badgeCodeTaken func(ctx context.Context, badgeCode string, excludeID int64) (bool, error)
	applyPatch     func(ctx context.Context, id int64, patch *domain.UpdateUserRequest, now time.Time) (*domain.User, error)
	setCheckedIn   func(ctx context.Context, id int64, checkedIn bool, now time.Time) (*domain.User, error)
	touch          func(ctx context.Context, id int64, now time.Time) error
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.getByEmail == nil {
		return nil, nil
	}
	return f.getByEmail(ctx, email)
}

func (f *fakeUserRepo) GetByBadgeCode(ctx context.Context, badgeCode string) (*domain.User, error) {
	if f.getByBadgeCode == nil {
		return nil, nil
	}
	return f.getByBadgeCode(ctx, badgeCode)
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	if f.list == nil {
		return nil, nil
	}
	return f.list(ctx)
}

func (f *fakeUserRepo) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	if f.emailTaken == nil {
		return false, nil
	}
	return f.emailTaken(ctx, email, excludeID)
}

func (f *fakeUserRepo) BadgeCodeTaken(ctx context.Context, badgeCode string, excludeID int64) (bool, error) {
	if f.badgeCodeTaken == nil {
		return false, nil
	}
	return f.badgeCodeTaken(ctx, badgeCode, excludeID)
}

func (f *fakeUserRepo) ApplyPatch(ctx context.Context, id int64, patch *domain.UpdateUserRequest, now time.Time) (*domain.User, error) {
	if f.applyPatch == nil {
		return nil, nil
	}
	return f.applyPatch(ctx, id, patch, now)
}

func (f *fakeUserRepo) SetCheckedIn(ctx context.Context, id int64, checkedIn bool, now time.Time) (*domain.User, error) {
	if f.setCheckedIn == nil {
		return nil, nil
	}
	return f.setCheckedIn(ctx, id, checkedIn, now)
}

func (f *fakeUserRepo) Touch(ctx context.Context, id int64, now time.Time) error {
	if f.touch == nil {
		return nil
	}
	return f.touch(ctx, id, now)
}

type fakeActivityRepo struct {
	create               func(ctx context.Context, name, category string) (*domain.Activity, error)
	list                 func(ctx context.Context) ([]*domain.Activity, error)
	getByID              func(ctx context.Context, id int64) (*domain.Activity, error)
	getByName            func(ctx context.Context, name string) (*domain.Activity, error)
	getByNameInsensitive func(ctx context.Context, name string) (*domain.Activity, error)
	setOneScanOnly       func(ctx context.Context, name string, oneScanOnly bool) (*domain.Activity, error)
	idsByCategory        func(ctx context.Context, category string) ([]int64, error)
}

func (f *fakeActivityRepo) Create(ctx context.Context, name, category string) (*domain.Activity, error) {
	if f.create == nil {
		return nil, nil
	}
	return f.create(ctx, name, category)
}

func (f *fakeActivityRepo) List(ctx context.Context) ([]*domain.Activity, error) {
	if f.list == nil {
		return nil, nil
	}
	return f.list(ctx)
}

func (f *fakeActivityRepo) GetByID(ctx context.Context, id int64) (*domain.Activity, error) {
	if f.getByID == nil {
		return nil, nil
	}
	return f.getByID(ctx, id)
}

func (f *fakeActivityRepo) GetByName(ctx context.Context, name string) (*domain.Activity, error) {
	if f.getByName == nil {
		return nil, nil
	}
	return f.getByName(ctx, name)
}

func (f *fakeActivityRepo) GetByNameInsensitive(ctx context.Context, name string) (*domain.Activity, error) {
	if f.getByNameInsensitive == nil {
		return nil, nil
	}
	return f.getByNameInsensitive(ctx, name)
}

func (f *fakeActivityRepo) SetOneScanOnly(ctx context.Context, name string, oneScanOnly bool) (*domain.Activity, error) {
	if f.setOneScanOnly == nil {
		return nil, nil
	}
	return f.setOneScanOnly(ctx, name, oneScanOnly)
}

func (f *fakeActivityRepo) IDsByCategory(ctx context.Context, category string) ([]int64, error) {
	if f.idsByCategory == nil {
		return nil, nil
	}
	return f.idsByCategory(ctx, category)
}

type fakeScanRepo struct {
	create           func(ctx context.Context, userID, activityID int64, scannedAt time.Time) (*domain.Scan, error)
	lastScan         func(ctx context.Context, userID, activityID int64) (*domain.Scan, error)
	exists           func(ctx context.Context, userID, activityID int64) (bool, error)
	listByUser       func(ctx context.Context, userID int64) ([]domain.ScanWithActivity, error)
	listByActivity   func(ctx context.Context, activityID int64) ([]domain.Scan, error)
	countsByActivity func(ctx context.Context, activityIDs []int64) ([]domain.ActivityCount, error)
	timeBuckets      func(ctx context.Context, activityID int64, interval string, start *time.Time, end time.Time) ([]domain.TimeBucketRow, error)
}

func (f *fakeScanRepo) Create(ctx context.Context, userID, activityID int64, scannedAt time.Time) (*domain.Scan, error) {
	if f.create == nil {
		return &domain.Scan{UserID: userID, ActivityID: activityID, ScannedAt: scannedAt}, nil
	}
	return f.create(ctx, userID, activityID, scannedAt)
}

func (f *fakeScanRepo) LastScan(ctx context.Context, userID, activityID int64) (*domain.Scan, error) {
	if f.lastScan == nil {
		return nil, nil
	}
	return f.lastScan(ctx, userID, activityID)
}

func (f *fakeScanRepo) Exists(ctx context.Context, userID, activityID int64) (bool, error) {
	if f.exists == nil {
		return false, nil
	}
	return f.exists(ctx, userID, activityID)
}

func (f *fakeScanRepo) ListByUser(ctx context.Context, userID int64) ([]domain.ScanWithActivity, error) {
	if f.listByUser == nil {
		return nil, nil
	}
	return f.listByUser(ctx, userID)
}

func (f *fakeScanRepo) ListByActivity(ctx context.Context, activityID int64) ([]domain.Scan, error) {
	if f.listByActivity == nil {
		return nil, nil
	}
	return f.listByActivity(ctx, activityID)
}

func (f *fakeScanRepo) CountsByActivity(ctx context.Context, activityIDs []int64) ([]domain.ActivityCount, error) {
	if f.countsByActivity == nil {
		return nil, nil
	}
	return f.countsByActivity(ctx, activityIDs)
}

func (f *fakeScanRepo) TimeBuckets(ctx context.Context, activityID int64, interval string, start *time.Time, end time.Time) ([]domain.TimeBucketRow, error) {
	if f.timeBuckets == nil {
		return nil, nil
	}
	return f.timeBuckets(ctx, activityID, interval, start, end)
}

type fakeFriendRepo struct {
	create      func(ctx context.Context, scannerID, scannedID int64, scannedAt time.Time) (*domain.FriendScan, error)
	pairExists  func(ctx context.Context, a, b int64) (bool, error)
	listScanned func(ctx context.Context, scannerID int64) ([]domain.ScannedFriendRow, error)
}

func (f *fakeFriendRepo) Create(ctx context.Context, scannerID, scannedID int64, scannedAt time.Time) (*domain.FriendScan, error) {
	if f.create == nil {
		return &domain.FriendScan{ScannerID: scannerID, ScannedID: scannedID, ScannedAt: scannedAt}, nil
	}
	return f.create(ctx, scannerID, scannedID, scannedAt)
}

func (f *fakeFriendRepo) PairExists(ctx context.Context, a, b int64) (bool, error) {
	if f.pairExists == nil {
		return false, nil
	}
	return f.pairExists(ctx, a, b)
}

func (f *fakeFriendRepo) ListScanned(ctx context.Context, scannerID int64) ([]domain.ScannedFriendRow, error) {
	if f.listScanned == nil {
		return nil, nil
	}
	return f.listScanned(ctx, scannerID)
}

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

// newTestRouter mounts all handlers on the same route patterns the
// server uses.
func newTestRouter(repos *repository.Repositories) *chi.Mux {
	log := testLogger()
	zlog := zap.NewNop()

	userHandler := NewUserHandler(service.NewUserService(repos, zlog), log)
	activityHandler := NewActivityHandler(service.NewActivityService(repos, nil, zlog), log)
	scanHandler := NewScanHandler(service.NewScanService(repos, nil, zlog), log)
	friendHandler := NewFriendHandler(service.NewFriendService(repos, zlog), log)

	r := chi.NewRouter()
	r.Route("/activities", func(r chi.Router) {
		r.Post("/", activityHandler.Create)
		r.Get("/", activityHandler.List)
		r.Get("/{id}", activityHandler.GetByID)
		r.Put("/{activity_name}/one-scan", activityHandler.SetOneScanOnly)
	})
	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Get("/{email}", userHandler.Get)
		r.Put("/{email}", userHandler.Update)
		r.Post("/{email}/check-in", userHandler.CheckIn)
		r.Post("/{email}/check-out", userHandler.CheckOut)
	})
	r.Route("/scan", func(r chi.Router) {
		r.Get("/", scanHandler.GetScanData)
		r.Get("/timeline", scanHandler.GetScanTimeline)
		r.Post("/{badge_code}", scanHandler.RecordScan)
	})
	r.Route("/friends", func(r chi.Router) {
		r.Post("/scan/{badge_code}", friendHandler.ScanFriend)
		r.Get("/{badge_code}", friendHandler.ListScanned)
	})
	return r
}

func doRequest(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
