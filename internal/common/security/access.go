package security

import (
	"stateless_auth/internal/common"
	"stateless_auth/internal/domain/model"
)

// Authorize applies the access decision procedure to a presented token.
// An invalid token denies with ErrAuthenticationRequired. required == RoleNone
// allows any authenticated principal; otherwise the claim's role bits must
// intersect required, or the deny is ErrInsufficientRole. On allow the parsed
// claims are returned.
func (c *TokenCodec) Authorize(tokenString string, required model.Role) (*Claims, error) {
	claims, err := c.Validate(tokenString)
	if err != nil {
		return nil, common.ErrAuthenticationRequired
	}
	if required == model.RoleNone {
		return claims, nil
	}
	if !claims.Role.Intersects(required) {
		return nil, common.ErrInsufficientRole
	}
	return claims, nil
}
