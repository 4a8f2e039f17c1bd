package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	bookingservice "github.com/shayzimm/yallambee-booking-app-backend/internal/bookings/service"
	"github.com/shayzimm/yallambee-booking-app-backend/internal/users/service"
	apperrors "github.com/shayzimm/yallambee-booking-app-backend/pkg/errors"
	httputil "github.com/shayzimm/yallambee-booking-app-backend/pkg/http"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/logger"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/middleware"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/model"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/token"
)

type UserHandler struct {
	service  service.UserService
	bookings bookingservice.BookingService
	tokens   *token.Manager
	log      *logger.Logger
}

func NewUserHandler(service service.UserService, bookings bookingservice.BookingService, tokens *token.Manager, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service:  service,
		bookings: bookings,
		tokens:   tokens,
		log:      log,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Register", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	// Only an authenticated admin can mint another admin. Anonymous
	// registrations always come out as regular users.
	if req.IsAdmin {
		caller, ok := middleware.CallerFrom(r.Context())
		if !ok || !caller.IsAdmin {
			req.IsAdmin = false
		}
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Register", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, result); err != nil {
		h.log.Error("failed to write created response", "handler", "Register", "operation", "WriteCreated", "error", err)
	}
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Login", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Login", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	users, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, users, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.authorizeSelfOrAdmin(r, id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) GetBookings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.authorizeSelfOrAdmin(r, id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetBookings", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings, err := h.bookings.GetByUser(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetBookings", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "GetBookings", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.authorizeSelfOrAdmin(r, id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	var updates model.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	// Privilege escalation guard: only admins may touch the admin flag.
	if updates.IsAdmin != nil {
		caller, _ := middleware.CallerFrom(r.Context())
		if !caller.IsAdmin {
			if writeErr := httputil.WriteError(w, apperrors.Forbidden("Access denied. You do not have permission.")); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
			}
			return
		}
	}

	user, err := h.service.Update(r.Context(), id, &updates)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *UserHandler) authorizeSelfOrAdmin(r *http.Request, id string) error {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		return apperrors.Unauthorized("Not authorized, no token")
	}
	if !caller.IsAdmin && caller.UserID != id {
		return apperrors.Forbidden("Access denied. You do not have permission.")
	}
	return nil
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/users", h.Register)
	router.POST("/api/v1/users/login", h.Login)
	router.GET("/api/v1/users", middleware.Protect(h.tokens, middleware.AdminOnly(h.GetAll)))
	router.GET("/api/v1/users/:id", middleware.Protect(h.tokens, h.GetByID))
	router.GET("/api/v1/users/:id/bookings", middleware.Protect(h.tokens, h.GetBookings))
	router.PATCH("/api/v1/users/:id", middleware.Protect(h.tokens, h.Update))
	router.DELETE("/api/v1/users/:id", middleware.Protect(h.tokens, middleware.AdminOnly(h.Delete)))
}
