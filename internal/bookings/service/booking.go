package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "github.com/shayzimm/yallambee-booking-app-backend/internal/bookings/errors"
	"github.com/shayzimm/yallambee-booking-app-backend/internal/bookings/repository"
	"github.com/shayzimm/yallambee-booking-app-backend/internal/bookings/validator"
	"github.com/shayzimm/yallambee-booking-app-backend/internal/notifications"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/config"
	apperrors "github.com/shayzimm/yallambee-booking-app-backend/pkg/errors"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/model"
)

const conflictMessage = "The property is already booked for the selected dates."

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	GetByUser(ctx context.Context, userID string) ([]*model.Booking, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
	UnavailableDates(ctx context.Context, propertyID string) ([]time.Time, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.SlotLockRepository
	validator *validator.BookingValidator
	publisher notifications.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.SlotLockRepository,
	validator *validator.BookingValidator,
	publisher notifications.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.applyDefaults(booking)
	s.normalizeDates(booking)
	if err := s.validate(booking); err != nil {
		return err
	}

	// One writer per property at a time. The conflict check and insert
	// below still run inside a transaction; the lock keeps two requests
	// for the same property from both passing the check.
	lockID, err := s.acquireSlotLock(ctx, booking.PropertyID)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoConflict(sessCtx, booking, ""); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"user", booking.UserID,
		"property", booking.PropertyID,
		"start_date", booking.StartDate,
		"end_date", booking.EndDate,
	)
	s.publishEvent(ctx, notifications.EventBookingCreated, booking)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) GetByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	bookings, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings for user", "user", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to check booking existence", err)
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeBookingUpdates(existing, updates)
	s.normalizeDates(merged)
	if err := s.validate(merged); err != nil {
		return nil, err
	}

	if !updates.TouchesSchedule() {
		// Status-only patch cannot create a conflict.
		if err := s.repo.Update(ctx, id, merged); err != nil {
			s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
			return nil, apperrors.Internal("Failed to update booking", err)
		}
		s.cfg.Log.Info("Booking updated successfully", "id", id)
		s.publishEvent(ctx, notifications.EventBookingUpdated, merged)
		return merged, nil
	}

	lockID, err := s.acquireSlotLock(ctx, merged.PropertyID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoConflict(sessCtx, merged, id); err != nil {
			return err
		}
		if err := s.repo.Update(sessCtx, id, merged); err != nil {
			return apperrors.Internal("Failed to update booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Booking updated successfully", "id", id)
	s.publishEvent(ctx, notifications.EventBookingUpdated, merged)
	return merged, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		return apperrors.Internal("Failed to delete booking", err)
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	return nil
}

// UnavailableDates enumerates every booked calendar day on the property,
// both endpoints included. Days covered by more than one booking appear
// once per booking; callers that need a set must dedupe themselves.
func (s *bookingService) UnavailableDates(ctx context.Context, propertyID string) ([]time.Time, error) {
	if propertyID == "" {
		return nil, apperrors.InvalidInput("Property ID cannot be empty")
	}

	bookings, err := s.repo.FindByProperty(ctx, propertyID)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings for property", "property", propertyID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve unavailable dates", err)
	}

	dates := []time.Time{}
	for _, b := range bookings {
		if s.cfg.ConflictIgnoreCancelled && b.Status == model.StatusCancelled {
			continue
		}
		for d := b.StartDate; !d.After(b.EndDate); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}
	}
	return dates, nil
}

// --- Helpers ---

func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.Status == "" {
		b.Status = model.StatusPending
	}
}

// normalizeDates pins both endpoints to UTC midnight so that ranges sent
// with a time-of-day component compare day against day.
func (s *bookingService) normalizeDates(b *model.Booking) {
	b.StartDate = truncateToDay(b.StartDate)
	b.EndDate = truncateToDay(b.EndDate)
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *bookingService) mergeBookingUpdates(existing *model.Booking, updates *model.BookingUpdate) *model.Booking {
	merged := *existing

	if updates.PropertyID != "" {
		merged.PropertyID = updates.PropertyID
	}
	if updates.StartDate != nil {
		merged.StartDate = *updates.StartDate
	}
	if updates.EndDate != nil {
		merged.EndDate = *updates.EndDate
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}

	return &merged
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// verifyNoConflict rejects the booking when its range overlaps any other
// booking on the same property. Ranges that merely share an endpoint do
// not count as overlapping. excludeID skips the booking being updated.
func (s *bookingService) verifyNoConflict(ctx context.Context, booking *model.Booking, excludeID string) error {
	existing, err := s.repo.FindOverlapping(ctx, booking.PropertyID, booking.StartDate, booking.EndDate, excludeID, s.cfg.ConflictIgnoreCancelled)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}
	if len(existing) > 0 {
		return apperrors.Conflict(conflictMessage)
	}
	return nil
}

func (s *bookingService) publishEvent(ctx context.Context, eventType string, b *model.Booking) {
	event := notifications.BookingEvent{
		BookingID:  b.ID,
		UserID:     b.UserID,
		PropertyID: b.PropertyID,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		Status:     b.Status,
	}
	if err := s.publisher.PublishBookingEvent(ctx, eventType, event); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", b.ID,
			"error", err,
		)
	}
}

// acquireSlotLock takes the advisory lock for the property. A duplicate
// key error means another request holds it.
func (s *bookingService) acquireSlotLock(ctx context.Context, propertyID string) (string, error) {
	lockID := fmt.Sprintf("property_lock_%s", propertyID)

	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
	}

	if _, err := s.lockRepo.Create(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This property is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
