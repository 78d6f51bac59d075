package access

import (
	"fmt"
	"strconv"

	"miniblog/web/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the verified caller of a single request. It is built at
// request entry from token claims or the session and discarded at request
// exit; nothing here is ever persisted or cached across requests.
type Identity struct {
	UserId int
	Role   Role
}

// FromClaims extracts an Identity from verified token claims. A missing or
// malformed role claim leaves the role empty, so the caller holds no
// privilege at all. A user id that cannot be parsed as a positive integer is
// an identity error, never coerced to a sentinel value.
func FromClaims(claims jwt.MapClaims) (Identity, error) {
	var ident Identity

	switch v := claims["id"].(type) {
	case float64:
		ident.UserId = int(v)
	case int:
		ident.UserId = v
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return Identity{}, fmt.Errorf("%w: user id %q", entity.ErrInvalidIdentity, v)
		}
		ident.UserId = n
	default:
		return Identity{}, fmt.Errorf("%w: missing user id", entity.ErrInvalidIdentity)
	}
	if ident.UserId <= 0 {
		return Identity{}, fmt.Errorf("%w: user id %d", entity.ErrInvalidIdentity, ident.UserId)
	}

	if role, ok := claims["role"].(string); ok {
		ident.Role = Role(role)
	}
	return ident, nil
}
