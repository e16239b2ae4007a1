package model

import (
	"time"
)

// Credential is the stored login record for one account. Salt is generated
// once at provisioning and never changes; PasswordHash is the scrypt digest
// of the current password under that salt. Both are base64 encoded.
type Credential struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Salt         string    `json:"-"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
