package middleware

import (
	"context"
	"net/http"
	"strings"

	"repair-backend/internal/auth"
	"repair-backend/internal/repositories"
)

type contextKey string

const UserIDKey contextKey = "user_id"
const UsernameKey contextKey = "username"
const IsAdminKey contextKey = "is_admin"

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	userRepo   *repositories.UserRepository
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, userRepo *repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		userRepo:   userRepo,
	}
}

// authenticate validates the bearer token and loads the current user from
// the database so deactivations take effect immediately, not at token expiry.
func (m *AuthMiddleware) authenticate(w http.ResponseWriter, r *http.Request) (*http.Request, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		http.Error(w, "Authorization header required", http.StatusUnauthorized)
		return nil, false
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
		return nil, false
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return nil, false
	}

	user, err := m.userRepo.Get(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "User not found", http.StatusUnauthorized)
		return nil, false
	}

	if !user.IsActive {
		http.Error(w, "Account suspended. Please contact administrator.", http.StatusForbidden)
		return nil, false
	}

	ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
	ctx = context.WithValue(ctx, UsernameKey, user.Username)
	ctx = context.WithValue(ctx, IsAdminKey, user.IsAdmin)
	return r.WithContext(ctx), true
}

// Authenticate is a middleware that validates JWT tokens
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r2, ok := m.authenticate(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r2)
	})
}

// RequireAdmin is a middleware that ensures the user has the admin flag
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r2, ok := m.authenticate(w, r)
		if !ok {
			return
		}
		if isAdmin, _ := r2.Context().Value(IsAdminKey).(bool); !isAdmin {
			http.Error(w, "Forbidden: Insufficient permissions", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r2)
	})
}

// GetUserIDFromContext extracts user ID from request context
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

// GetUsernameFromContext extracts the username from request context
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

// IsAdminFromContext reports whether the authenticated user is an admin
func IsAdminFromContext(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(IsAdminKey).(bool)
	return isAdmin
}
