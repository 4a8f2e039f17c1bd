package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shayzimm/yallambee-booking-app-backend/internal/bookings/validator"
	"github.com/shayzimm/yallambee-booking-app-backend/internal/notifications"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/config"
	mongotx "github.com/shayzimm/yallambee-booking-app-backend/pkg/db/mongo"
	apperrors "github.com/shayzimm/yallambee-booking-app-backend/pkg/errors"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/logger"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/model"
)

const (
	testUserID     = "64f1b2a3c4d5e6f7a8b9c0d1"
	testPropertyID = "64f1b2a3c4d5e6f7a8b9c0d2"
	testBookingID  = "64f1b2a3c4d5e6f7a8b9c0d3"
	otherBookingID = "64f1b2a3c4d5e6f7a8b9c0d4"
)

// Mock repositories for testing

type mockBookingRepository struct {
	createFunc          func(ctx context.Context, booking *model.Booking) error
	findByIDFunc        func(ctx context.Context, id string) (*model.Booking, error)
	findAllFunc         func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	findByUserFunc      func(ctx context.Context, userID string) ([]*model.Booking, error)
	findByPropertyFunc  func(ctx context.Context, propertyID string) ([]*model.Booking, error)
	findOverlappingFunc func(ctx context.Context, propertyID string, start, end time.Time, excludeID string, excludeCancelled bool) ([]*model.Booking, error)
	updateFunc          func(ctx context.Context, id string, booking *model.Booking) error
	deleteFunc          func(ctx context.Context, id string) error
	countFunc           func(ctx context.Context) (int64, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	booking.ID = testBookingID
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	if m.findByUserFunc != nil {
		return m.findByUserFunc(ctx, userID)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindByProperty(ctx context.Context, propertyID string) ([]*model.Booking, error) {
	if m.findByPropertyFunc != nil {
		return m.findByPropertyFunc(ctx, propertyID)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindOverlapping(ctx context.Context, propertyID string, start, end time.Time, excludeID string, excludeCancelled bool) ([]*model.Booking, error) {
	if m.findOverlappingFunc != nil {
		return m.findOverlappingFunc(ctx, propertyID, start, end, excludeID, excludeCancelled)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) Update(ctx context.Context, id string, booking *model.Booking) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, booking)
	}
	return nil
}

func (m *mockBookingRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockBookingRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockSlotLockRepository struct {
	createFunc func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error)
	deleteFunc func(ctx context.Context, lockID string) error
	created    []string
	deleted    []string
}

func (m *mockSlotLockRepository) Create(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
	m.created = append(m.created, lock.ID)
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	return lock, nil
}

func (m *mockSlotLockRepository) Delete(ctx context.Context, lockID string) error {
	m.deleted = append(m.deleted, lockID)
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, lockID)
	}
	return nil
}

type mockPublisher struct {
	bookingEvents []string
	userEvents    []string
	err           error
}

func (m *mockPublisher) PublishBookingEvent(ctx context.Context, eventType string, event notifications.BookingEvent) error {
	m.bookingEvents = append(m.bookingEvents, eventType)
	return m.err
}

func (m *mockPublisher) PublishUserEvent(ctx context.Context, eventType string, event notifications.UserEvent) error {
	m.userEvents = append(m.userEvents, eventType)
	return m.err
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  "json",
			Service: "test",
		}),
		SlotLockTTL:  10 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func newTestService(repo *mockBookingRepository, locks *mockSlotLockRepository, pub *mockPublisher, cfg *config.Config) *bookingService {
	if cfg == nil {
		cfg = testConfig()
	}
	return &bookingService{
		repo:      repo,
		lockRepo:  locks,
		validator: validator.NewBookingValidator(cfg.Log),
		publisher: pub,
		cfg:       cfg,
	}
}

func day(yyyy int, mm time.Month, dd int) time.Time {
	return time.Date(yyyy, mm, dd, 0, 0, 0, 0, time.UTC)
}

func validBooking() *model.Booking {
	return &model.Booking{
		UserID:     testUserID,
		PropertyID: testPropertyID,
		StartDate:  day(2026, 10, 1),
		EndDate:    day(2026, 10, 3),
	}
}

func TestCreate_Success(t *testing.T) {
	repo := &mockBookingRepository{}
	locks := &mockSlotLockRepository{}
	pub := &mockPublisher{}
	svc := newTestService(repo, locks, pub, nil)

	booking := validBooking()
	if err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.Status != model.StatusPending {
		t.Errorf("expected default status %q, got %q", model.StatusPending, booking.Status)
	}
	if booking.ID != testBookingID {
		t.Errorf("expected ID to be set from repository, got %q", booking.ID)
	}
	if len(locks.created) != 1 || locks.created[0] != "property_lock_"+testPropertyID {
		t.Errorf("expected one property lock acquisition, got %v", locks.created)
	}
	if len(locks.deleted) != 1 || locks.deleted[0] != locks.created[0] {
		t.Errorf("expected the acquired lock to be released, got %v", locks.deleted)
	}
	if len(pub.bookingEvents) != 1 || pub.bookingEvents[0] != notifications.EventBookingCreated {
		t.Errorf("expected booking.created event, got %v", pub.bookingEvents)
	}
}

func TestCreate_MinimumStayRejected(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"same instant", day(2026, 10, 1), day(2026, 10, 1)},
		{"twelve hours", day(2026, 10, 1), day(2026, 10, 1).Add(12 * time.Hour)},
		{"inverted range", day(2026, 10, 3), day(2026, 10, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBookingRepository{
				createFunc: func(ctx context.Context, booking *model.Booking) error {
					t.Fatal("Create should not reach the repository")
					return nil
				},
			}
			svc := newTestService(repo, &mockSlotLockRepository{}, &mockPublisher{}, nil)

			booking := validBooking()
			booking.StartDate = tt.start
			booking.EndDate = tt.end

			err := svc.Create(context.Background(), booking)
			if err == nil {
				t.Fatal("expected validation error")
			}
			appErr := apperrors.AsAppError(err)
			if appErr.Code != apperrors.CodeValidation {
				t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
			}
			if !strings.Contains(appErr.Error(), "end date for booking must be at least one day after the start date") {
				t.Errorf("expected minimum stay message, got %q", appErr.Error())
			}
		})
	}
}

func TestCreate_ExactOneDayStayAllowed(t *testing.T) {
	repo := &mockBookingRepository{}
	svc := newTestService(repo, &mockSlotLockRepository{}, &mockPublisher{}, nil)

	booking := validBooking()
	booking.StartDate = day(2026, 10, 1)
	booking.EndDate = day(2026, 10, 2)

	if err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreate_NormalizesDatesToUTCMidnight(t *testing.T) {
	var gotStart, gotEnd time.Time
	repo := &mockBookingRepository{
		findOverlappingFunc: func(ctx context.Context, propertyID string, start, end time.Time, excludeID string, excludeCancelled bool) ([]*model.Booking, error) {
			gotStart, gotEnd = start, end
			return nil, nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{}, &mockPublisher{}, nil)

	sydney := time.FixedZone("AEST", 10*3600)
	booking := validBooking()
	booking.StartDate = time.Date(2026, 10, 1, 15, 30, 0, 0, sydney)
	booking.EndDate = time.Date(2026, 10, 3, 9, 45, 0, 0, sydney)

	if err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !gotStart.Equal(day(2026, 10, 1)) {
		t.Errorf("expected start pinned to UTC midnight, got %v", gotStart)
	}
	if !gotEnd.Equal(day(2026, 10, 2)) {
		t.Errorf("expected end pinned to UTC midnight, got %v", gotEnd)
	}
}

func TestCreate_Conflict(t *testing.T) {
	createCalled := false
	repo := &mockBookingRepository{
		findOverlappingFunc: func(ctx context.Context, propertyID string, start, end time.Time, excludeID string, excludeCancelled bool) ([]*model.Booking, error) {
			return []*model.Booking{{ID: otherBookingID}}, nil
		},
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			createCalled = true
			return nil
		},
	}
	locks := &mockSlotLockRepository{}
	pub := &mockPublisher{}
	svc := newTestService(repo, locks, pub, nil)

	err := svc.Create(context.Background(), validBooking())
	if err == nil {
		t.Fatal("expected conflict error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, appErr.Code)
	}
	if appErr.Message != "The property is already booked for the selected dates." {
		t.Errorf("unexpected conflict message: %q", appErr.Message)
	}
	if createCalled {
		t.Error("Create should not be called after a conflict")
	}
	if len(locks.deleted) != 1 {
		t.Errorf("expected lock release even on conflict, got %v", locks.deleted)
	}
	if len(pub.bookingEvents) != 0 {
		t.Errorf("no event should be published on conflict, got %v", pub.bookingEvents)
	}
}

func TestCreate_LockHeldByAnotherRequest(t *testing.T) {
	locks := &mockSlotLockRepository{
		createFunc: func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
			return nil, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		},
	}
	svc := newTestService(&mockBookingRepository{}, locks, &mockPublisher{}, nil)

	err := svc.Create(context.Background(), validBooking())
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, appErr.Code)
	}
	if len(locks.deleted) != 0 {
		t.Errorf("lock held by someone else must not be released, got %v", locks.deleted)
	}
}

func TestCreate_CancelledBookingsBlockByDefault(t *testing.T) {
	var gotExcludeCancelled bool
	repo := &mockBookingRepository{
		findOverlappingFunc: func(ctx context.Context, propertyID string, start, end time.Time, excludeID string, excludeCancelled bool) ([]*model.Booking, error) {
			gotExcludeCancelled = excludeCancelled
			return nil, nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{}, &mockPublisher{}, nil)

	if err := svc.Create(context.Background(), validBooking()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotExcludeCancelled {
		t.Error("cancelled bookings must block dates by default")
	}
}

func TestCreate_IgnoreCancelledWhenConfigured(t *testing.T) {
	var gotExcludeCancelled bool
	repo := &mockBookingRepository{
		findOverlappingFunc: func(ctx context.Context, propertyID string, start, end time.Time, excludeID string, excludeCancelled bool) ([]*model.Booking, error) {
			gotExcludeCancelled = excludeCancelled
			return nil, nil
		},
	}
	cfg := testConfig()
	cfg.ConflictIgnoreCancelled = true
	svc := newTestService(repo, &mockSlotLockRepository{}, &mockPublisher{}, cfg)

	if err := svc.Create(context.Background(), validBooking()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gotExcludeCancelled {
		t.Error("expected conflict check to skip cancelled bookings")
	}
}

func TestCreate_PublishFailureDoesNotFailBooking(t *testing.T) {
	pub := &mockPublisher{err: context.DeadlineExceeded}
	svc := newTestService(&mockBookingRepository{}, &mockSlotLockRepository{}, pub, nil)

	if err := svc.Create(context.Background(), validBooking()); err != nil {
		t.Fatalf("publish failure must not fail the booking, got: %v", err)
	}
}

func TestUpdate_ExcludesOwnBooking(t *testing.T) {
	existing := validBooking()
	existing.ID = testBookingID
	existing.Status = model.StatusPending

	var gotExcludeID string
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			b := *existing
			return &b, nil
		},
		findOverlappingFunc: func(ctx context.Context, propertyID string, start, end time.Time, excludeID string, excludeCancelled bool) ([]*model.Booking, error) {
			gotExcludeID = excludeID
			return nil, nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{}, &mockPublisher{}, nil)

	newEnd := day(2026, 10, 5)
	updated, err := svc.Update(context.Background(), testBookingID, &model.BookingUpdate{EndDate: &newEnd})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotExcludeID != testBookingID {
		t.Errorf("conflict check must exclude the booking being updated, got %q", gotExcludeID)
	}
	if !updated.EndDate.Equal(newEnd) {
		t.Errorf("expected merged end date %v, got %v", newEnd, updated.EndDate)
	}
	if !updated.StartDate.Equal(existing.StartDate) {
		t.Errorf("untouched start date must survive the merge, got %v", updated.StartDate)
	}
}

func TestUpdate_StatusOnlySkipsConflictCheck(t *testing.T) {
	existing := validBooking()
	existing.ID = testBookingID
	existing.Status = model.StatusPending

	overlapCalled := false
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			b := *existing
			return &b, nil
		},
		findOverlappingFunc: func(ctx context.Context, propertyID string, start, end time.Time, excludeID string, excludeCancelled bool) ([]*model.Booking, error) {
			overlapCalled = true
			return nil, nil
		},
	}
	locks := &mockSlotLockRepository{}
	pub := &mockPublisher{}
	svc := newTestService(repo, locks, pub, nil)

	updated, err := svc.Update(context.Background(), testBookingID, &model.BookingUpdate{Status: model.StatusConfirmed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overlapCalled {
		t.Error("status-only update must not run a conflict check")
	}
	if len(locks.created) != 0 {
		t.Errorf("status-only update must not take the slot lock, got %v", locks.created)
	}
	if updated.Status != model.StatusConfirmed {
		t.Errorf("expected status %q, got %q", model.StatusConfirmed, updated.Status)
	}
	if len(pub.bookingEvents) != 1 || pub.bookingEvents[0] != notifications.EventBookingUpdated {
		t.Errorf("expected booking.updated event, got %v", pub.bookingEvents)
	}
}

func TestUpdate_ConflictWithOtherBooking(t *testing.T) {
	existing := validBooking()
	existing.ID = testBookingID
	existing.Status = model.StatusPending

	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			b := *existing
			return &b, nil
		},
		findOverlappingFunc: func(ctx context.Context, propertyID string, start, end time.Time, excludeID string, excludeCancelled bool) ([]*model.Booking, error) {
			return []*model.Booking{{ID: otherBookingID}}, nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{}, &mockPublisher{}, nil)

	newStart := day(2026, 10, 10)
	newEnd := day(2026, 10, 12)
	_, err := svc.Update(context.Background(), testBookingID, &model.BookingUpdate{StartDate: &newStart, EndDate: &newEnd})
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, appErr.Code)
	}
}

func TestUnavailableDates_EnumeratesInclusiveDays(t *testing.T) {
	repo := &mockBookingRepository{
		findByPropertyFunc: func(ctx context.Context, propertyID string) ([]*model.Booking, error) {
			return []*model.Booking{
				{StartDate: day(2026, 10, 1), EndDate: day(2026, 10, 3), Status: model.StatusConfirmed},
				{StartDate: day(2026, 10, 2), EndDate: day(2026, 10, 4), Status: model.StatusPending},
			}, nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{}, &mockPublisher{}, nil)

	dates, err := svc.UnavailableDates(context.Background(), testPropertyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Time{
		day(2026, 10, 1), day(2026, 10, 2), day(2026, 10, 3),
		day(2026, 10, 2), day(2026, 10, 3), day(2026, 10, 4),
	}
	if len(dates) != len(want) {
		t.Fatalf("expected %d dates (overlapping days repeated), got %d", len(want), len(dates))
	}
	for i, w := range want {
		if !dates[i].Equal(w) {
			t.Errorf("date %d: expected %v, got %v", i, w, dates[i])
		}
	}
}

func TestUnavailableDates_RepeatedReadsMatch(t *testing.T) {
	repo := &mockBookingRepository{
		findByPropertyFunc: func(ctx context.Context, propertyID string) ([]*model.Booking, error) {
			return []*model.Booking{
				{StartDate: day(2026, 10, 1), EndDate: day(2026, 10, 3), Status: model.StatusConfirmed},
				{StartDate: day(2026, 10, 2), EndDate: day(2026, 10, 4), Status: model.StatusPending},
			}, nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{}, &mockPublisher{}, nil)

	first, err := svc.UnavailableDates(context.Background(), testPropertyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.UnavailableDates(context.Background(), testPropertyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("expected identical sequences, got %d then %d dates", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Errorf("date %d: first read %v, second read %v", i, first[i], second[i])
		}
	}
}

func TestUnavailableDates_SkipsCancelledWhenConfigured(t *testing.T) {
	repo := &mockBookingRepository{
		findByPropertyFunc: func(ctx context.Context, propertyID string) ([]*model.Booking, error) {
			return []*model.Booking{
				{StartDate: day(2026, 10, 1), EndDate: day(2026, 10, 2), Status: model.StatusCancelled},
				{StartDate: day(2026, 10, 5), EndDate: day(2026, 10, 6), Status: model.StatusConfirmed},
			}, nil
		},
	}
	cfg := testConfig()
	cfg.ConflictIgnoreCancelled = true
	svc := newTestService(repo, &mockSlotLockRepository{}, &mockPublisher{}, cfg)

	dates, err := svc.UnavailableDates(context.Background(), testPropertyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 2 {
		t.Fatalf("expected cancelled booking to be skipped, got %d dates", len(dates))
	}
	if !dates[0].Equal(day(2026, 10, 5)) || !dates[1].Equal(day(2026, 10, 6)) {
		t.Errorf("unexpected dates: %v", dates)
	}
}

func TestUnavailableDates_EmptyProperty(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, &mockSlotLockRepository{}, &mockPublisher{}, nil)

	dates, err := svc.UnavailableDates(context.Background(), testPropertyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dates == nil || len(dates) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", dates)
	}
}

func TestGetByID_Validation(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, &mockSlotLockRepository{}, &mockPublisher{}, nil)

	_, err := svc.GetByID(context.Background(), "")
	if err == nil {
		t.Fatal("expected error for empty ID")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, appErr.Code)
	}
}
