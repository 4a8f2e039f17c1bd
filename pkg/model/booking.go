package model

import "time"

// Booking status values. Cancelled bookings still occupy their dates in
// conflict checks unless the deployment opts out (see config).
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
)

// Booking holds a stay on a property. Dates are day-granular and stored
// as UTC midnight; the range is inclusive of both endpoints.
type Booking struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID     string    `json:"user" bson:"user" validate:"required,mongodb"`
	PropertyID string    `json:"property" bson:"property" validate:"required,mongodb"`
	StartDate  time.Time `json:"startDate" bson:"start_date" validate:"required"`
	EndDate    time.Time `json:"endDate" bson:"end_date" validate:"required,gtfield=StartDate"`
	Status     string    `json:"status" bson:"status" validate:"required,oneof=Pending Confirmed Cancelled"`
	CreatedAt  time.Time `json:"createdAt,omitempty" bson:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty" bson:"updated_at"`
}

// BookingUpdate is a partial patch. UserID is deliberately absent: the
// owner is fixed at creation time.
type BookingUpdate struct {
	PropertyID string     `json:"property,omitempty" validate:"omitempty,mongodb"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	Status     string     `json:"status,omitempty" validate:"omitempty,oneof=Pending Confirmed Cancelled"`
}

// TouchesSchedule reports whether applying the patch can change the
// outcome of a conflict check.
func (u *BookingUpdate) TouchesSchedule() bool {
	return u.PropertyID != "" || u.StartDate != nil || u.EndDate != nil
}
