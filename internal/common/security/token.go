package security

import (
	"strings"
	"time"

	"stateless_auth/internal/common"
	"stateless_auth/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenHeader is the request header carrying the compact signed token.
const TokenHeader = "token"

// DefaultTokenTTL applies when a codec is built without an explicit lifetime.
const DefaultTokenTTL = time.Hour

// Claims are the assertions embedded in an issued token.
type Claims struct {
	Subject string
	Role    model.Role
}

// TokenCodec issues and validates HS256-signed expiring tokens. The signing
// key is injected once at construction and never mutated, so a codec is safe
// for concurrent use; independently keyed instances do not accept each
// other's tokens.
type TokenCodec struct {
	auth       *jwtauth.JWTAuth
	defaultTTL time.Duration
}

func NewTokenCodec(key []byte, defaultTTL time.Duration) *TokenCodec {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTokenTTL
	}
	return &TokenCodec{
		auth:       jwtauth.New("HS256", key, nil),
		defaultTTL: defaultTTL,
	}
}

// Issue signs a token for subject with the given role set. A zero ttl means
// the codec default; a negative ttl produces an already expired token.
func (c *TokenCodec) Issue(subject string, role model.Role, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role.String(),
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, ttl)
	_, tokenString, err := c.auth.Encode(claims)
	return tokenString, err
}

// Validate parses and checks a presented token. It fails closed: a missing,
// malformed, forged or expired token, or a role claim outside the known
// enumeration, all return ErrAuthenticationRequired.
func (c *TokenCodec) Validate(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, common.ErrAuthenticationRequired
	}
	token, err := jwtauth.VerifyToken(c.auth, tokenString)
	if err != nil {
		return nil, common.ErrAuthenticationRequired
	}

	subject := token.Subject()
	if subject == "" {
		return nil, common.ErrAuthenticationRequired
	}
	raw, ok := token.Get("role")
	if !ok {
		return nil, common.ErrAuthenticationRequired
	}
	roleStr, ok := raw.(string)
	if !ok {
		return nil, common.ErrAuthenticationRequired
	}
	role, err := model.ParseRole(roleStr)
	if err != nil {
		return nil, common.ErrAuthenticationRequired
	}

	return &Claims{Subject: subject, Role: role}, nil
}
