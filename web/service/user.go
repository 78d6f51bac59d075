package service

import (
	"errors"
	"fmt"
	"strings"

	"miniblog/database/model"
	"miniblog/logger"
	"miniblog/util/crypto"
	"miniblog/web/access"
	"miniblog/web/entity"

	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// UserUpdate carries the optional fields of a profile update. The role
// field is only honored for admin callers; the controller strips it
// otherwise.
type UserUpdate struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
}

// CheckUser verifies web login credentials, returning nil on any mismatch.
func (s *UserService) CheckUser(email, password string) *model.User {
	var user model.User
	err := s.DB.Model(model.User{}).
		Where("email = ?", email).
		First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}
	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return nil
	}
	return &user
}

func (s *UserService) GetUser(id int) (*model.User, error) {
	var user model.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) ListUsers() ([]model.User, error) {
	var users []model.User
	if err := s.DB.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) UpdateUser(user *model.User, upd UserUpdate) (*model.User, error) {
	if upd.Username != nil {
		username := strings.TrimSpace(*upd.Username)
		if len(username) < 3 {
			return nil, fmt.Errorf("%w: username must be at least 3 characters", entity.ErrValidation)
		}
		user.Username = username
	}
	if upd.Email != nil {
		email := strings.TrimSpace(*upd.Email)
		if !strings.Contains(email, "@") {
			return nil, fmt.Errorf("%w: invalid email", entity.ErrValidation)
		}
		user.Email = email
	}
	if upd.Role != nil {
		if !access.Valid(access.Role(*upd.Role)) {
			return nil, fmt.Errorf("%w: unknown role %q", entity.ErrValidation, *upd.Role)
		}
		user.Role = *upd.Role
	}

	var count int64
	err := s.DB.Model(model.User{}).
		Where("(email = ? OR username = ?) AND id <> ?", user.Email, user.Username, user.Id).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: email or username already in use", entity.ErrConflict)
	}

	if err := s.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateFirstAdmin sets the credentials of the oldest admin account. Used
// by the setting command for recovery when the panel is locked out.
func (s *UserService) UpdateFirstAdmin(username, password string) error {
	var user model.User
	err := s.DB.Model(model.User{}).
		Where("role = ?", model.RoleAdmin).
		Order("id ASC").
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.ErrNotFound
		}
		return err
	}
	if username != "" {
		user.Username = username
	}
	if password != "" {
		hash, err := crypto.HashPasswordAsBcrypt(password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}
	return s.DB.Save(&user).Error
}

func (s *UserService) DeleteUser(id int) error {
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(user).Error
}
