package service

import (
	"testing"

	"miniblog/database"
	"miniblog/database/model"
	"miniblog/web/access"
	"miniblog/web/entity"

	"github.com/stretchr/testify/assert"
)

func newAuthService() *AuthService {
	db := database.GetDB()
	return NewAuthService(db, NewSettingService(db))
}

func TestRegister(t *testing.T) {
	setup()
	defer teardown()

	service := newAuthService()

	user, err := service.Register("alice", "alice@example.com", "secret123", "")
	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	// Duplicate email or username is a conflict
	_, err = service.Register("alice2", "alice@example.com", "secret123", "")
	assert.ErrorIs(t, err, entity.ErrConflict)
	_, err = service.Register("alice", "other@example.com", "secret123", "")
	assert.ErrorIs(t, err, entity.ErrConflict)

	// Validation failures
	_, err = service.Register("al", "short@example.com", "secret123", "")
	assert.ErrorIs(t, err, entity.ErrValidation)
	_, err = service.Register("bob", "not-an-email", "secret123", "")
	assert.ErrorIs(t, err, entity.ErrValidation)
	_, err = service.Register("bob", "bob@example.com", "short", "")
	assert.ErrorIs(t, err, entity.ErrValidation)
	_, err = service.Register("bob", "bob@example.com", "secret123", "superuser")
	assert.ErrorIs(t, err, entity.ErrValidation)

	// An explicit known role is honored
	mod, err := service.Register("mallory", "mallory@example.com", "secret123", model.RoleModerator)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleModerator, mod.Role)
}

func TestLoginAndVerifyToken(t *testing.T) {
	setup()
	defer teardown()

	service := newAuthService()

	user, err := service.Register("alice", "alice@example.com", "secret123", model.RoleModerator)
	assert.NoError(t, err)

	// Unknown account and wrong password are distinct outcomes
	_, _, err = service.Login("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, entity.ErrNotFound)
	_, _, err = service.Login("alice@example.com", "wrongpass")
	assert.ErrorIs(t, err, entity.ErrUnauthorized)

	token, loggedIn, err := service.Login("alice@example.com", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, user.Id, loggedIn.Id)
	assert.NotEmpty(t, token)

	// The token round-trips to the identity carrying id and role
	ident, err := service.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.Id, ident.UserId)
	assert.Equal(t, access.RoleModerator, ident.Role)

	// Garbage and tampered tokens are rejected as unauthorized
	_, err = service.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, entity.ErrUnauthorized)
	_, err = service.VerifyToken(token + "x")
	assert.ErrorIs(t, err, entity.ErrUnauthorized)
}
