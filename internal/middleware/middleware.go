package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	handlers "autoClassifieds/internal/handler"
	"autoClassifieds/internal/models"
	"autoClassifieds/internal/service"
)

type Middleware func(http.Handler) http.Handler

// TokenVerifier turns a bearer token into a caller identity.
type TokenVerifier interface {
	Verify(token string) (models.Identity, error)
}

// OptionalAuth resolves the caller from the Authorization header. Requests
// without a usable token continue as anonymous; the token failure is kept so
// RequireAuth can report it on routes that need a caller.
func OptionalAuth(tokens TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := authenticate(tokens, r.Header.Get("Authorization"))
			ctx := r.Context()
			if err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("bearer token rejected, continuing as anonymous")
				ctx = context.WithValue(ctx, authErrorKey{}, err)
			}

			if state := stateFromContext(ctx); state != nil {
				state.identity = identity
			}

			next.ServeHTTP(w, r.WithContext(service.WithIdentity(ctx, identity)))
		})
	}
}

func authenticate(tokens TokenVerifier, authHeader string) (models.Identity, error) {
	if authHeader == "" {
		return models.AnonymousIdentity(), nil
	}

	// Checking the "Bearer <token>" format
	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return models.AnonymousIdentity(), fmt.Errorf("authorization header must be \"Bearer <token>\": %w", models.ErrTokenMalformed)
	}

	identity, err := tokens.Verify(strings.TrimSpace(token))
	if err != nil {
		return models.AnonymousIdentity(), err
	}
	return identity, nil
}

type authErrorKey struct{}

// RequireAuth rejects anonymous callers with the token failure recorded by
// OptionalAuth, or a plain unauthorized error when no token was sent.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !service.IdentityFromContext(r.Context()).Authenticated() {
			if err, ok := r.Context().Value(authErrorKey{}).(error); ok {
				handlers.WriteError(w, err)
				return
			}
			handlers.WriteError(w, fmt.Errorf("authentication required: %w", models.ErrUnauthorized))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects anonymous callers with 401 and non-administrators with 403.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := service.RequireAdmin(service.IdentityFromContext(r.Context())); err != nil {
			handlers.WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// Chain wraps h so that the first middleware is the outermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
