package notifications

import (
	"context"
	"fmt"

	"github.com/shayzimm/yallambee-booking-app-backend/pkg/kafka"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/logger"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/mail"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/model"
)

const emailDateFormat = "02 Jan 2006"

// UserDirectory resolves event user IDs to accounts so the notifier
// knows where to send mail.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// Emailer turns consumed domain events into transactional emails.
type Emailer struct {
	users  UserDirectory
	mailer mail.Mailer
	log    *logger.Logger
}

func NewEmailer(users UserDirectory, mailer mail.Mailer, log *logger.Logger) *Emailer {
	return &Emailer{
		users:  users,
		mailer: mailer,
		log:    log,
	}
}

// Handle implements kafka.Handler.
func (e *Emailer) Handle(ctx context.Context, msg kafka.Message) error {
	switch msg.EventType() {
	case EventBookingCreated, EventBookingUpdated:
		return e.handleBookingEvent(ctx, msg)
	case EventUserRegistered:
		return e.handleUserEvent(ctx, msg)
	default:
		e.log.Warn("Skipping unknown event type",
			"event_id", msg.EventID(),
			"event_type", msg.EventType(),
		)
		return nil
	}
}

func (e *Emailer) handleBookingEvent(ctx context.Context, msg kafka.Message) error {
	var event BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		return fmt.Errorf("failed to decode booking event: %w", err)
	}

	user, err := e.users.GetByID(ctx, event.UserID)
	if err != nil {
		return fmt.Errorf("failed to resolve user %s: %w", event.UserID, err)
	}

	template := mail.TemplateBookingReceived
	if msg.EventType() == EventBookingUpdated {
		// Status transitions decide the tone: a confirmation deserves
		// its own email, anything else is a generic update notice.
		if event.Status == model.StatusConfirmed {
			template = mail.TemplateBookingConfirmation
		} else {
			template = mail.TemplateBookingUpdated
		}
	}

	values := map[string]string{
		"name":      displayName(user),
		"bookingId": event.BookingID,
		"startDate": event.StartDate.Format(emailDateFormat),
		"endDate":   event.EndDate.Format(emailDateFormat),
	}

	if err := e.mailer.Send(ctx, user.Email, template, values); err != nil {
		return err
	}

	e.log.Info("Booking email sent",
		"template", template,
		"booking_id", event.BookingID,
		"to", user.Email,
	)
	return nil
}

func (e *Emailer) handleUserEvent(ctx context.Context, msg kafka.Message) error {
	var event UserEvent
	if err := msg.DecodeValue(&event); err != nil {
		return fmt.Errorf("failed to decode user event: %w", err)
	}

	user, err := e.users.GetByID(ctx, event.UserID)
	if err != nil {
		return fmt.Errorf("failed to resolve user %s: %w", event.UserID, err)
	}

	values := map[string]string{
		"name": displayName(user),
	}
	if err := e.mailer.Send(ctx, user.Email, mail.TemplateWelcome, values); err != nil {
		return err
	}

	e.log.Info("Welcome email sent", "user_id", user.ID, "to", user.Email)
	return nil
}

func displayName(user *model.User) string {
	if user.FirstName != "" {
		return user.FirstName
	}
	return user.Username
}
