package database

import (
	"fmt"
	"log"

	"renomapro/internal/domain/leads"
	"renomapro/internal/domain/opinions"
	"renomapro/internal/domain/providers"
	"renomapro/internal/domain/users"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&users.User{},
		&providers.Provider{},
		&leads.Lead{},
		&opinions.Opinion{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// SeedAdmin creates the initial admin account when the users table is empty.
func SeedAdmin(db *gorm.DB, email, password string) error {
	var count int64
	if err := db.Model(&users.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hashed := string(hash)

	admin := users.User{
		Name:         "Admin",
		Email:        email,
		Password:     &hashed,
		AuthProvider: "local",
		Role:         users.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	log.Printf("Seeded admin account %s", email)
	return nil
}
