package store

import (
	"errors"

	"renomapro/internal/domain/users"

	"gorm.io/gorm"
)

func (s *Store) UserByGoogleSub(sub string) (*users.User, error) {
	var user users.User
	if err := s.db.Where("google_sub = ?", sub).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// LinkGoogleSub attaches a Google subject to an existing local account.
func (s *Store) LinkGoogleSub(id uint, sub string) error {
	return s.db.Model(&users.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"google_sub": sub, "auth_provider": "google"}).Error
}

// CreateGoogleUser creates a passwordless account for a Google sign-in.
func (s *Store) CreateGoogleUser(name, email, sub, role string) (*users.User, error) {
	if role == "" {
		role = users.RoleClient
	}
	user := users.User{
		Name:         name,
		Email:        email,
		Password:     nil,
		AuthProvider: "google",
		GoogleSub:    &sub,
		Role:         role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &user, nil
}
