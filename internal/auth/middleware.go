package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/hundreddays-io/hundreddays/internal/apperrors"
	"github.com/hundreddays-io/hundreddays/internal/models"
)

type contextKey string

const (
	userContextKey    contextKey = "user"
	sessionContextKey contextKey = "session"
)

// UserFromContext retrieves the authenticated user from the context.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

// SessionFromContext retrieves the authenticated session from the context.
func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(*models.Session)
	return session, ok
}

// BearerToken extracts the token from an Authorization header. An empty
// string means the header was absent or not in Bearer form.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Middleware wraps handlers so they only run with a resolved, valid user in
// the request context. CORS preflight requests pass through unauthenticated
// with a fixed 204 before any credential check.
func Middleware(authenticator *Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			user, session, err := authenticator.Authenticate(BearerToken(r))
			if err != nil {
				app := apperrors.From(err)
				w.Header().Set("Content-Type", "application/json")
				if app.Code != apperrors.CodeUnauthenticated {
					// store failure, not a bad credential
					logger.Error("authentication store failure",
						zap.String("path", r.URL.Path),
						zap.Error(err),
					)
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
						"code":  string(apperrors.CodeInternal),
					})
					return
				}
				logger.Debug("request rejected",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				w.WriteHeader(app.Code.HTTPStatus())
				json.NewEncoder(w).Encode(map[string]string{
					"error": "Unauthorized: " + app.Message,
					"code":  string(app.Code),
				})
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			ctx = context.WithValue(ctx, sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
