package users

import "time"

// Roles a user can hold. The role is fixed at creation; no endpoint changes it.
const (
	RolePro    = "pro"
	RoleClient = "client"
	RoleAdmin  = "admin"
)

type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `json:"name"`
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email" json:"email"`
	Password     *string `json:"-"`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'" json:"-"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub" json:"-"`
	Role         string  `gorm:"not null;default:'pro'" json:"role"`

	// Assigned at most once, on first checkout. The unique index backs the
	// compare-and-swap in store.SetStripeCustomerID.
	StripeCustomerID *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id" json:"stripe_customer_id,omitempty"`
	Subscribed       bool    `gorm:"not null;default:false" json:"subscribed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
