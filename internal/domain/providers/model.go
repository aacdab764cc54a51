package providers

import "time"

// Provider is a listed service provider ("fachowiec") in the directory.
type Provider struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	Verified bool   `gorm:"not null;default:false" json:"verified"`
	About    string `json:"about"`
	UserID   uint   `gorm:"index" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
