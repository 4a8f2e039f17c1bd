package validator

import (
	"strings"
	"testing"
	"time"

	"github.com/shayzimm/yallambee-booking-app-backend/pkg/logger"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json", Service: "test"})
}

func date(yyyy int, mm time.Month, dd int) time.Time {
	return time.Date(yyyy, mm, dd, 0, 0, 0, 0, time.UTC)
}

func TestValidateDateRange(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{"exactly one day", date(2026, 3, 1), date(2026, 3, 2), false},
		{"multi day", date(2026, 3, 1), date(2026, 3, 10), false},
		{"same day", date(2026, 3, 1), date(2026, 3, 1), true},
		{"under a day", date(2026, 3, 1), date(2026, 3, 1).Add(23 * time.Hour), true},
		{"inverted", date(2026, 3, 5), date(2026, 3, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDateRange(tt.start, tt.end)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil && !strings.Contains(err.Error(), "end date for booking must be at least one day after the start date") {
				t.Errorf("unexpected message: %q", err.Error())
			}
		})
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	v := NewBookingValidator(testLogger())

	booking := &model.Booking{
		StartDate: date(2026, 3, 1),
		EndDate:   date(2026, 3, 2),
		Status:    model.StatusPending,
	}

	err := v.Validate(booking)
	if err == nil {
		t.Fatal("expected error for missing user and property")
	}
	msg := err.Error()
	if !strings.Contains(msg, "UserID") || !strings.Contains(msg, "PropertyID") {
		t.Errorf("expected both missing fields reported, got %q", msg)
	}
}

func TestValidate_BadObjectID(t *testing.T) {
	v := NewBookingValidator(testLogger())

	booking := &model.Booking{
		UserID:     "not-an-object-id",
		PropertyID: "64f1b2a3c4d5e6f7a8b9c0d2",
		StartDate:  date(2026, 3, 1),
		EndDate:    date(2026, 3, 2),
		Status:     model.StatusPending,
	}

	err := v.Validate(booking)
	if err == nil {
		t.Fatal("expected error for malformed ObjectID")
	}
	if !strings.Contains(err.Error(), "valid MongoDB ObjectID") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestValidate_UnknownStatus(t *testing.T) {
	v := NewBookingValidator(testLogger())

	booking := &model.Booking{
		UserID:     "64f1b2a3c4d5e6f7a8b9c0d1",
		PropertyID: "64f1b2a3c4d5e6f7a8b9c0d2",
		StartDate:  date(2026, 3, 1),
		EndDate:    date(2026, 3, 2),
		Status:     "Archived",
	}

	err := v.Validate(booking)
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
	if !strings.Contains(err.Error(), "must be one of") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestValidateUpdate_PartialDates(t *testing.T) {
	v := NewBookingValidator(testLogger())

	// A single endpoint cannot be range-checked until it is merged with
	// the stored booking, so it passes here.
	start := date(2026, 3, 1)
	if err := v.ValidateUpdate(&model.BookingUpdate{StartDate: &start}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	end := start.Add(6 * time.Hour)
	err := v.ValidateUpdate(&model.BookingUpdate{StartDate: &start, EndDate: &end})
	if err == nil {
		t.Fatal("expected error for sub-day range")
	}
}
