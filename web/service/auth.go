package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"miniblog/database/model"
	"miniblog/util/crypto"
	"miniblog/web/access"
	"miniblog/web/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const tokenLifetime = 24 * time.Hour

// AuthService issues and verifies the bearer tokens used by the JSON API.
type AuthService struct {
	DB             *gorm.DB
	settingService *SettingService
}

func NewAuthService(db *gorm.DB, settingService *SettingService) *AuthService {
	return &AuthService{DB: db, settingService: settingService}
}

// Register creates a new account. The requested role must be a known role;
// an empty role defaults to user.
func (s *AuthService) Register(username, email, rawPassword, role string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if len(username) < 3 {
		return nil, fmt.Errorf("%w: username must be at least 3 characters", entity.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email", entity.ErrValidation)
	}
	if len(rawPassword) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", entity.ErrValidation)
	}
	if role == "" {
		role = model.RoleUser
	}
	if !access.Valid(access.Role(role)) {
		return nil, fmt.Errorf("%w: unknown role %q", entity.ErrValidation, role)
	}

	var count int64
	err := s.DB.Model(model.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: email or username already registered", entity.ErrConflict)
	}

	hash, err := crypto.HashPasswordAsBcrypt(rawPassword)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.DB.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and mints a signed token carrying the user
// id and role. Unknown account and wrong password are distinct outcomes.
func (s *AuthService) Login(email, rawPassword string) (string, *model.User, error) {
	var user model.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("%w: no account for this email", entity.ErrNotFound)
		}
		return "", nil, err
	}
	if !crypto.CheckPasswordHash(user.PasswordHash, rawPassword) {
		return "", nil, fmt.Errorf("%w: wrong password", entity.ErrUnauthorized)
	}

	secret, err := s.settingService.GetJWTSecret()
	if err != nil {
		return "", nil, err
	}
	claims := jwt.MapClaims{
		"id":       user.Id,
		"username": user.Username,
		"role":     user.Role,
		"jti":      uuid.NewString(),
		"exp":      time.Now().Add(tokenLifetime).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// VerifyToken parses and validates a bearer token and extracts the caller
// identity from its claims.
func (s *AuthService) VerifyToken(tokenString string) (access.Identity, error) {
	secret, err := s.settingService.GetJWTSecret()
	if err != nil {
		return access.Identity{}, err
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return access.Identity{}, fmt.Errorf("%w: invalid or expired token", entity.ErrUnauthorized)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return access.Identity{}, fmt.Errorf("%w: unexpected claims", entity.ErrUnauthorized)
	}
	return access.FromClaims(claims)
}
