package opinions

import "time"

// Opinion is a client review of a provider record.
type Opinion struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProviderID uint      `gorm:"index" json:"provider_id"`
	ClientID   uint      `json:"client_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}
