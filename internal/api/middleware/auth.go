package middleware

import (
	"context"
	"errors"
	"net/http"

	"olw_backend/internal/app/service"
	"olw_backend/internal/common"
	"olw_backend/internal/common/security"
	"olw_backend/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const userCtxKey contextKey = "authUser"

// AuthMiddleware resolves bearer tokens to users. Token verification itself
// runs in jwtauth.Verifier at the router level; this layer interprets the
// result and looks the user up so deleted accounts are rejected immediately.
type AuthMiddleware struct {
	authService *service.AuthService
}

func NewAuthMiddleware(authService *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticator blocks requests without a valid token or resolvable user.
func (m *AuthMiddleware) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.resolveUser(r)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// OptionalAuthenticator attaches the user when a valid token is present and
// proceeds as unauthenticated otherwise. It never blocks.
func (m *AuthMiddleware) OptionalAuthenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, err := m.resolveUser(r); err == nil {
			r = r.WithContext(WithUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

// AdminOnly requires a resolved user with the ADMIN role.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			common.RespondWithError(w, http.StatusForbidden, "Authentication required.")
			return
		}
		if user.Role != model.RoleAdmin {
			common.RespondWithError(w, http.StatusForbidden, "Admin access required.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) resolveUser(r *http.Request) (*model.User, error) {
	token, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, jwtauth.ErrNoTokenFound):
			return nil, common.E(common.ErrUnauthorized, "Access denied. No token provided.")
		case errors.Is(err, jwtauth.ErrExpired):
			return nil, common.E(common.ErrUnauthorized, "Token has expired.")
		default:
			return nil, common.E(common.ErrUnauthorized, "Invalid token.")
		}
	}
	if token == nil {
		return nil, common.E(common.ErrUnauthorized, "Access denied. No token provided.")
	}

	userID, err := security.GetUserIDFromClaims(claims)
	if err != nil {
		return nil, common.E(common.ErrUnauthorized, "Invalid token.")
	}

	user, err := m.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		return nil, common.E(common.ErrUnauthorized, "User not found. Token may be invalid.")
	}
	return user, nil
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}

func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userCtxKey).(*model.User)
	return user, ok && user != nil
}
