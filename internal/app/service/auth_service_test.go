package service

import (
	"context"
	"testing"
	"time"

	"stateless_auth/internal/common"
	"stateless_auth/internal/common/security"
	"stateless_auth/internal/domain/model"
	"stateless_auth/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*AuthService, *security.TokenCodec) {
	t.Helper()
	key, err := security.GenerateSigningKey()
	require.NoError(t, err)
	codec := security.NewTokenCodec(key, time.Hour)
	return NewAuthService(repository.NewMemoryCredentialRepository(), codec, security.DefaultSaltLength), codec
}

func TestGetSaltUnknownUsername(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.GetSalt(context.Background(), "Ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestLoginWithCorrectHash(t *testing.T) {
	t.Parallel()

	svc, codec := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, "User", "welcome", model.RoleUser)
	require.NoError(t, err)

	saltResp, err := svc.GetSalt(ctx, "User")
	require.NoError(t, err)
	require.NotEmpty(t, saltResp.Salt)

	// Client side: hash the plaintext under the returned salt.
	hash, err := security.HashPasswordString("welcome", saltResp.Salt)
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{Username: "User", PasswordHash: hash})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := codec.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "User", claims.Subject)
	assert.Equal(t, model.RoleUser, claims.Role)
}

func TestLoginWithWrongHashMatchesUnknownUser(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, "User", "welcome", model.RoleUser)
	require.NoError(t, err)

	saltResp, err := svc.GetSalt(ctx, "User")
	require.NoError(t, err)
	wrongHash, err := security.HashPasswordString("Wrong", saltResp.Salt)
	require.NoError(t, err)

	_, errWrongHash := svc.Login(ctx, LoginRequest{Username: "User", PasswordHash: wrongHash})
	_, errUnknownUser := svc.Login(ctx, LoginRequest{Username: "Ghost", PasswordHash: wrongHash})

	// Both failure modes are the same error so callers cannot tell them apart.
	assert.ErrorIs(t, errWrongHash, common.ErrNotFound)
	assert.ErrorIs(t, errUnknownUser, common.ErrNotFound)
}

func TestLoginIssuesStoredRole(t *testing.T) {
	t.Parallel()

	svc, codec := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, "Admin", "sesame", model.RoleAdministrator)
	require.NoError(t, err)

	saltResp, err := svc.GetSalt(ctx, "Admin")
	require.NoError(t, err)
	hash, err := security.HashPasswordString("sesame", saltResp.Salt)
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{Username: "Admin", PasswordHash: hash})
	require.NoError(t, err)

	claims, err := codec.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdministrator, claims.Role)
}

func TestLoginRejectsEmptyFields(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginRequest{Username: "", PasswordHash: "x"})
	assert.ErrorIs(t, err, common.ErrBadRequest)
	_, err = svc.Login(ctx, LoginRequest{Username: "User", PasswordHash: ""})
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestCreateAccount(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateAccount(ctx, "alice", "pw-one", model.RoleUser)
	require.NoError(t, err)
	b, err := svc.CreateAccount(ctx, "bob", "pw-one", model.RoleUser)
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.Salt, b.Salt, "each account gets its own salt")
	assert.NotEqual(t, a.PasswordHash, b.PasswordHash, "same password, different salts, different hashes")

	_, err = svc.CreateAccount(ctx, "alice", "again", model.RoleUser)
	assert.ErrorIs(t, err, common.ErrConflict)

	_, err = svc.CreateAccount(ctx, "eve", "pw", model.Role(32))
	assert.ErrorIs(t, err, common.ErrBadRequest)
}
