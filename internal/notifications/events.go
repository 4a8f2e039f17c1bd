// Package notifications carries domain events from the request path to
// the email notifier. Publishing is fire-and-forget: a failed publish
// is logged and never rolls back the write that produced it.
package notifications

import "time"

const (
	EventBookingCreated = "booking.created"
	EventBookingUpdated = "booking.updated"
	EventUserRegistered = "user.registered"
)

type BookingEvent struct {
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	PropertyID string    `json:"property_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Status     string    `json:"status"`
}

type UserEvent struct {
	UserID string `json:"user_id"`
}
