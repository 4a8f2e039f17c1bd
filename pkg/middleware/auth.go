package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	apperrors "github.com/shayzimm/yallambee-booking-app-backend/pkg/errors"
	httputil "github.com/shayzimm/yallambee-booking-app-backend/pkg/http"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/token"
)

const identityKey contextKey = "identity"

// Identity is the authenticated caller attached to the request context
// by Protect. Services trust it without re-verifying credentials.
type Identity struct {
	UserID  string
	IsAdmin bool
}

// CallerFrom returns the authenticated identity, if any.
func CallerFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// ContextWithCaller is exported for handler tests.
func ContextWithCaller(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Protect wraps a route with bearer-token authentication. These gates
// compose per route, outside the services they guard.
func Protect(tokens *token.Manager, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			_ = httputil.WriteError(w, apperrors.Unauthorized("Not authorized, no token"))
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			_ = httputil.WriteError(w, err)
			return
		}

		id := Identity{UserID: claims.Subject, IsAdmin: claims.IsAdmin}
		next(w, r.WithContext(ContextWithCaller(r.Context(), id)), ps)
	}
}

// AdminOnly denies callers without the admin flag. Must run inside
// Protect so an identity is present.
func AdminOnly(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		caller, ok := CallerFrom(r.Context())
		if !ok {
			_ = httputil.WriteError(w, apperrors.Unauthorized("Not authorized, no token"))
			return
		}
		if !caller.IsAdmin {
			_ = httputil.WriteError(w, apperrors.Forbidden("Access denied. You do not have permission."))
			return
		}
		next(w, r, ps)
	}
}
