package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a provisioned account. Identity comes from an external OAuth
// provider; the backend keys users by email only during provisioning.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	PhotoURL  *string   `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
