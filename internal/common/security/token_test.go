package security

import (
	"errors"
	"testing"
	"time"

	"stateless_auth/internal/common"
	"stateless_auth/internal/domain/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) *TokenCodec {
	t.Helper()
	key, err := GenerateSigningKey()
	require.NoError(t, err)
	return NewTokenCodec(key, time.Hour)
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	token, err := codec.Issue("User", model.RoleUser|model.RoleAdministrator, 0)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "User", claims.Subject)
	assert.Equal(t, model.RoleUser|model.RoleAdministrator, claims.Role)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	token, err := codec.Issue("User", model.RoleUser, -time.Minute)
	require.NoError(t, err)

	_, err = codec.Validate(token)
	assert.ErrorIs(t, err, common.ErrAuthenticationRequired)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	token, err := codec.Issue("User", model.RoleUser, 0)
	require.NoError(t, err)

	// Flip one character somewhere in every position of the token; the
	// signature check must fail for each mutation.
	for i := 0; i < len(token); i += 7 {
		mutated := []byte(token)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		if string(mutated) == token {
			continue
		}
		_, err = codec.Validate(string(mutated))
		assert.ErrorIs(t, err, common.ErrAuthenticationRequired, "mutation at offset %d", i)
	}
}

func TestValidateRejectsForeignKey(t *testing.T) {
	t.Parallel()

	issuer := newTestCodec(t)
	verifier := newTestCodec(t)

	token, err := issuer.Issue("User", model.RoleUser, 0)
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, common.ErrAuthenticationRequired)
}

func TestValidateRejectsGarbage(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	for _, in := range []string{"", "   ", "not.a.jwt", "aaaa"} {
		_, err := codec.Validate(in)
		assert.ErrorIs(t, err, common.ErrAuthenticationRequired, "input %q", in)
	}
}

func TestValidateRejectsUnknownRoleClaim(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)

	encode := func(claims jwt.MapClaims) string {
		if _, ok := claims["exp"]; !ok {
			claims["exp"] = time.Now().Add(time.Hour).Unix()
		}
		_, tokenString, err := codec.auth.Encode(claims)
		require.NoError(t, err)
		return tokenString
	}

	cases := map[string]jwt.MapClaims{
		"unknown role name":  {"sub": "User", "role": "Ghost"},
		"out of range bits":  {"sub": "User", "role": "32"},
		"non-string role":    {"sub": "User", "role": 1.5},
		"missing role claim": {"sub": "User"},
		"missing subject":    {"role": "User"},
	}
	for name, claims := range cases {
		_, err := codec.Validate(encode(claims))
		assert.True(t, errors.Is(err, common.ErrAuthenticationRequired), "case %q: got %v", name, err)
	}
}

func TestIssueUsesCodecDefaultTTL(t *testing.T) {
	t.Parallel()

	key, err := GenerateSigningKey()
	require.NoError(t, err)
	codec := NewTokenCodec(key, 0)
	assert.Equal(t, DefaultTokenTTL, codec.defaultTTL)

	token, err := codec.Issue("User", model.RoleUser, 0)
	require.NoError(t, err)
	_, err = codec.Validate(token)
	assert.NoError(t, err)
}
