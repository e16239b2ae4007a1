package middleware

import (
	"context"
	"errors"
	"net/http"

	"stateless_auth/internal/common"
	"stateless_auth/internal/common/security"
	"stateless_auth/internal/domain/model"
	"stateless_auth/internal/logutil"
)

type contextKey string

const (
	SubjectCtxKey contextKey = "subject"
	RoleCtxKey    contextKey = "role"
)

// RestrictAccess guards a route with a required role set. The token is read
// from the custom "token" header; the access decision runs before the
// protected handler. Every deny, whether the token was invalid or the role
// insufficient, answers with the same 401.
func RestrictAccess(codec *security.TokenCodec, roles model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := codec.Authorize(r.Header.Get(security.TokenHeader), roles)
			if err != nil {
				if errors.Is(err, common.ErrInsufficientRole) {
					logger := logutil.FromContext(r.Context())
					logger.Debug().
						Stringer("required", roles).
						Msg("access denied: insufficient role")
				}
				common.RespondAuthRequired(w)
				return
			}

			ctx := context.WithValue(r.Context(), SubjectCtxKey, claims.Subject)
			ctx = context.WithValue(ctx, RoleCtxKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSubjectFromContext returns the authenticated username.
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectCtxKey).(string)
	return subject, ok
}

// GetRoleFromContext returns the authenticated principal's role set.
func GetRoleFromContext(ctx context.Context) (model.Role, bool) {
	role, ok := ctx.Value(RoleCtxKey).(model.Role)
	return role, ok
}
