package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/luthfir/posts-api/internal/token"
	"go.uber.org/zap"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal identifies the authenticated caller and the token that
// authenticated this request.
type Principal struct {
	UserID  uuid.UUID
	TokenID uuid.UUID
}

// Auth gates a route behind a valid bearer token. On success the
// resolved Principal is attached to the request context.
func Auth(tokens *token.Store, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			secret, ok := bearerSecret(r)
			if !ok {
				unauthenticated(w)
				return
			}

			record, err := tokens.Authenticate(r.Context(), secret)
			if err != nil {
				logger.Error("token authentication failed", zap.Error(err))
				unauthenticated(w)
				return
			}
			if record == nil {
				unauthenticated(w)
				return
			}

			principal := Principal{UserID: record.UserID, TokenID: record.ID}
			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPrincipal returns the authenticated principal for the request.
func GetPrincipal(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalKey).(Principal)
	return principal, ok
}

func bearerSecret(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"Unauthenticated"}`))
}
