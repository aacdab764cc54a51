package leads

import "time"

// Lead is a customer inquiry from the public contact form. Not tied to an
// authenticated account.
type Lead struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Description string    `json:"desc"`
	CreatedAt   time.Time `json:"created_at"`
}
