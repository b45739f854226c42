package models

import (
	"time"

	"gorm.io/datatypes"
)

// RefreshToken is a single-use opaque token stored server-side. Redeeming
// one deletes it; a replacement is issued in the same request.
type RefreshToken struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    string         `json:"user_id" gorm:"index;not null"`
	Token     string         `json:"-" gorm:"uniqueIndex;not null"`
	Groups    datatypes.JSON `json:"groups"`
	ExpiresAt time.Time      `json:"expires_at" gorm:"index"`
	CreatedAt time.Time      `json:"created_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
