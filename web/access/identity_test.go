package access

import (
	"testing"

	"miniblog/web/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestFromClaims(t *testing.T) {
	// Numeric id (the usual case after JSON decoding)
	ident, err := FromClaims(jwt.MapClaims{"id": float64(42), "role": "moderator"})
	assert.NoError(t, err)
	assert.Equal(t, 42, ident.UserId)
	assert.Equal(t, RoleModerator, ident.Role)

	// String id is parsed, not rejected
	ident, err = FromClaims(jwt.MapClaims{"id": "7", "role": "user"})
	assert.NoError(t, err)
	assert.Equal(t, 7, ident.UserId)

	// Missing role leaves the role empty, holding no privilege
	ident, err = FromClaims(jwt.MapClaims{"id": float64(3)})
	assert.NoError(t, err)
	assert.Equal(t, Role(""), ident.Role)
	assert.False(t, IsElevated(ident.Role))
}

func TestFromClaimsInvalidId(t *testing.T) {
	cases := []jwt.MapClaims{
		{},
		{"id": "abc"},
		{"id": true},
		{"id": float64(0)},
		{"id": float64(-5)},
		{"id": "-1"},
	}
	for _, claims := range cases {
		ident, err := FromClaims(claims)
		assert.ErrorIs(t, err, entity.ErrInvalidIdentity)
		assert.Equal(t, Identity{}, ident)
	}
}
