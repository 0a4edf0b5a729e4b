package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Token is a server-side record of an issued bearer token. Only a
// SHA-256 digest of the secret is stored; the plaintext is returned
// to the client once at issuance and never again.
type Token struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID     uuid.UUID      `json:"user_id" gorm:"type:uuid;index;not null"`
	Name       string         `json:"name" gorm:"index;not null"`
	SecretHash string         `json:"-" gorm:"not null"`
	Abilities  datatypes.JSON `json:"abilities" gorm:"type:jsonb;default:'[\"*\"]'"`
	LastUsedAt *time.Time     `json:"last_used_at"`
	ExpiresAt  *time.Time     `json:"expires_at"`
	CreatedAt  time.Time      `json:"created_at"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Expired reports whether the token carries an expiry that has passed.
func (t *Token) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && now.After(*t.ExpiresAt)
}
