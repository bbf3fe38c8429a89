package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"campuswordle/internal/models"
	"campuswordle/internal/security"
	"campuswordle/internal/service"
	"campuswordle/internal/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	UserContextKey   ContextKey = "user"
	ClaimsContextKey ContextKey = "claims"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	tokens      *token.Manager
	limiter     *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, tokens *token.Manager, limiter *security.RateLimiter) *Middleware {
	return &Middleware{authService: authService, tokens: tokens, limiter: limiter}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// RequireUser validates the bearer token and checks the user still exists.
// The user is stored on the request context for the handler.
func (m *Middleware) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			respondError(w, http.StatusUnauthorized, "Authentication required", "", nil)
			return
		}
		claims, err := m.tokens.VerifyRole(tokenString, token.RoleUser)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid or expired token", "", nil)
			return
		}
		user, err := m.authService.GetUser(claims.UserID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Something went wrong", "Failed to load user", err)
			return
		}
		if user == nil {
			respondError(w, http.StatusUnauthorized, "Account no longer exists", "", nil)
			return
		}
		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin validates the bearer token against the admin role
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			respondError(w, http.StatusUnauthorized, "Authentication required", "", nil)
			return
		}
		claims, err := m.tokens.VerifyRole(tokenString, token.RoleAdmin)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid or expired token", "", nil)
			return
		}
		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit rejects clients that exceed the request budget
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.limiter.Allow(ip) {
			respondError(w, http.StatusTooManyRequests, "Too many requests, slow down", "", nil)
			return
		}
		next(w, r)
	}
}

// Logging logs each request with its duration
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetUserFromContext retrieves the authenticated user from the context
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserContextKey).(*models.User)
	return user
}

// GetClaimsFromContext retrieves the verified token claims from the context
func GetClaimsFromContext(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(ClaimsContextKey).(*token.Claims)
	return claims
}
