package middleware

import (
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"stateless_auth/internal/common/security"
	"stateless_auth/internal/domain/model"

	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/require"
)

func newCodec(t *testing.T) *security.TokenCodec {
	t.Helper()
	key, err := security.GenerateSigningKey()
	require.NoError(t, err)
	return security.NewTokenCodec(key, time.Hour)
}

func TestRestrictAccess(t *testing.T) {
	codec := newCodec(t)

	var count uint32
	protected := RestrictAccess(codec, model.RoleUser)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, ok := GetSubjectFromContext(r.Context())
		if !ok || subject == "" {
			t.Error("subject missing from context")
		}
		role, ok := GetRoleFromContext(r.Context())
		if !ok || !role.Intersects(model.RoleUser) {
			t.Error("role missing from context")
		}
		atomic.AddUint32(&count, 1)
		w.WriteHeader(http.StatusOK)
	}))

	// No token at all.
	apitest.Handler(protected).Get("/").Expect(t).Status(http.StatusUnauthorized).End()

	// Garbage token.
	apitest.Handler(protected).Get("/").
		Header(security.TokenHeader, "not-a-token").
		Expect(t).Status(http.StatusUnauthorized).End()

	// Wrong role: same 401 as an invalid token.
	adminToken, err := codec.Issue("Admin", model.RoleSuperAdministrator, 0)
	require.NoError(t, err)
	apitest.Handler(protected).Get("/").
		Header(security.TokenHeader, adminToken).
		Expect(t).Status(http.StatusUnauthorized).End()

	// Valid token with the required role.
	userToken, err := codec.Issue("User", model.RoleUser, 0)
	require.NoError(t, err)
	apitest.Handler(protected).Get("/").
		Header(security.TokenHeader, userToken).
		Expect(t).Status(http.StatusOK).End()

	if count != 1 {
		t.Fatalf("protected endpoint should have been called once, got %d", count)
	}
}

func TestRestrictAccessNoneRequiresOnlyValidLogin(t *testing.T) {
	codec := newCodec(t)

	protected := RestrictAccess(codec, model.RoleNone)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	token, err := codec.Issue("User", model.RoleSuperAdministrator, 0)
	require.NoError(t, err)

	apitest.Handler(protected).Get("/").Expect(t).Status(http.StatusUnauthorized).End()
	apitest.Handler(protected).Get("/").
		Header(security.TokenHeader, token).
		Expect(t).Status(http.StatusOK).End()
}
