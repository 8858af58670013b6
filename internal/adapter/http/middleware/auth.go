package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
	wrap "github.com/Temutjin2k/fare-estimator/pkg/logger/wrapper"
)

// browsers cannot set headers on a WebSocket handshake
const tokenQueryParam = "access_token"

var errAuthHeaderFormat = errors.New("invalid Authorization header format")

// Auth verifies the bearer token and injects the user into the context.
// Requests without a token continue as anonymous, invalid tokens get 401.
func (m *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, err := tokenFromRequest(r)
		if err != nil {
			errorResponse(w, http.StatusUnauthorized, err.Error())
			return
		}
		if token == "" {
			next.ServeHTTP(w, r.WithContext(models.WithUser(ctx, models.AnonymousUser())))
			return
		}

		user, err := m.auth.RoleCheck(ctx, token)
		if err != nil || user == nil {
			if err == nil {
				err = types.ErrInvalidToken
			}
			m.log.Warn(ctx, "failed to authenticate user", "error", err.Error())

			msg := "invalid credentials"
			if errors.Is(err, types.ErrExpToken) {
				msg = types.ErrExpToken.Error()
			}
			errorResponse(w, http.StatusUnauthorized, msg)
			return
		}

		ctx = wrap.WithUserID(models.WithUser(ctx, user), user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles allows only authenticated users with one of the given roles.
// Usage: mux.Handle("GET /admin/estimates", m.RequireRoles(h.ListEstimates, types.RoleAdmin))
func (m *Middleware) RequireRoles(next http.HandlerFunc, allowedRoles ...types.UserRole) http.Handler {
	allowed := make(map[types.UserRole]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := models.UserFromContext(r.Context())
		if user.IsAnonymous() {
			errorResponse(w, http.StatusUnauthorized, "authorization required")
			return
		}
		if len(allowed) > 0 {
			if _, ok := allowed[user.Role]; !ok {
				errorResponse(w, http.StatusForbidden, "forbidden: insufficient role")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// tokenFromRequest returns "" when the request carries no credentials.
func tokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		return extractBearerToken(header)
	}
	return r.URL.Query().Get(tokenQueryParam), nil
}

func extractBearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errAuthHeaderFormat
	}
	return parts[1], nil
}
