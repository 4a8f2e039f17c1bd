package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/shayzimm/yallambee-booking-app-backend/internal/bookings/service"
	apperrors "github.com/shayzimm/yallambee-booking-app-backend/pkg/errors"
	httputil "github.com/shayzimm/yallambee-booking-app-backend/pkg/http"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/logger"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/middleware"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/model"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/token"
)

type BookingHandler struct {
	service service.BookingService
	tokens  *token.Manager
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, tokens *token.Manager, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		tokens:  tokens,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Not authorized, no token")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	// The owner is always the authenticated caller, whatever the body
	// claims.
	booking.UserID = caller.UserID

	if err := h.service.Create(r.Context(), &booking); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	booking, err := h.authorizedBooking(r, id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if _, err := h.authorizedBooking(r, id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	var updates model.BookingUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Update(r.Context(), id, &updates)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

// UnavailableDates is public: the booking calendar renders it before any
// login.
func (h *BookingHandler) UnavailableDates(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	propertyID := ps.ByName("id")

	dates, err := h.service.UnavailableDates(r.Context(), propertyID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UnavailableDates", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, dates); err != nil {
		h.log.Error("failed to write success response", "handler", "UnavailableDates", "operation", "WriteSuccess", "error", err)
	}
}

// authorizedBooking loads the booking and checks that the caller owns it
// or is an admin. Non-owners get a 404 rather than a 403 so booking IDs
// are not probeable.
func (h *BookingHandler) authorizedBooking(r *http.Request, id string) (*model.Booking, error) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		return nil, apperrors.Unauthorized("Not authorized, no token")
	}

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin && booking.UserID != caller.UserID {
		return nil, apperrors.NotFoundWithID("Booking", id)
	}
	return booking, nil
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", middleware.Protect(h.tokens, h.Create))
	router.GET("/api/v1/bookings", middleware.Protect(h.tokens, middleware.AdminOnly(h.GetAll)))
	router.GET("/api/v1/bookings/:id", middleware.Protect(h.tokens, h.GetByID))
	router.PATCH("/api/v1/bookings/:id", middleware.Protect(h.tokens, h.Update))
	router.DELETE("/api/v1/bookings/:id", middleware.Protect(h.tokens, middleware.AdminOnly(h.Delete)))
	router.GET("/api/v1/properties/:id/unavailable-dates", h.UnavailableDates)
}
