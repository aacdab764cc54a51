// Package store is the durable source of truth for identity, role and billing
// linkage.
package store

import (
	"errors"

	"renomapro/internal/domain/users"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNotFound       = errors.New("user not found")
	ErrBadCredential  = errors.New("password mismatch")
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateUser hashes the password with bcrypt and inserts the user. Role
// defaults to "pro" when empty.
func (s *Store) CreateUser(name, email, password, role string) (*users.User, error) {
	if role == "" {
		role = users.RolePro
	}

	var existing users.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashed := string(hash)

	user := users.User{
		Name:         name,
		Email:        email,
		Password:     &hashed,
		AuthProvider: "local",
		Role:         role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// The unique index closes the pre-check race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &user, nil
}

// VerifyPassword returns the user when the email exists and the bcrypt hash
// matches.
func (s *Store) VerifyPassword(email, password string) (*users.User, error) {
	var user users.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if user.Password == nil || *user.Password == "" {
		return nil, ErrBadCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(password)); err != nil {
		return nil, ErrBadCredential
	}
	return &user, nil
}

func (s *Store) UserByID(id uint) (*users.User, error) {
	var user users.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) UserByEmail(email string) (*users.User, error) {
	var user users.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// RoleByID fetches the current role from the store. Admin gating re-checks
// the role here instead of trusting the token claim, which may be stale for
// up to the token lifetime.
func (s *Store) RoleByID(id uint) (string, error) {
	var user users.User
	if err := s.db.Select("role").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return user.Role, nil
}

// SetStripeCustomerID assigns the billing customer reference. The write only
// lands when no reference is set yet (or the same one is re-sent), so two
// concurrent first-time checkouts cannot both attach a customer. Callers
// should re-read the user afterwards to pick up whichever write won.
func (s *Store) SetStripeCustomerID(id uint, customerID string) error {
	res := s.db.Model(&users.User{}).
		Where("id = ? AND (stripe_customer_id IS NULL OR stripe_customer_id = ?)", id, customerID).
		Update("stripe_customer_id", customerID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.db.Model(&users.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		// A different reference is already assigned; the caller re-reads.
	}
	return nil
}

// MarkSubscribed flips the subscription flag for every user holding the
// billing customer reference. Zero matches is a no-op, not an error, and
// re-applying is idempotent.
func (s *Store) MarkSubscribed(customerID string) error {
	return s.db.Model(&users.User{}).
		Where("stripe_customer_id = ?", customerID).
		Update("subscribed", true).Error
}
