package model

import (
	"time"

	"github.com/google/uuid"
)

// Tokens are blacklisted on logout and kept until they would have expired
// anyway; the cleanup scheduler purges stale rows.
type TokenBlacklistModel struct {
	TokenBlacklistID        uuid.UUID `gorm:"column:token_blacklist_id;type:uuid;default:gen_random_uuid();primaryKey" json:"token_blacklist_id"`
	TokenBlacklistToken     string    `gorm:"column:token_blacklist_token;type:text;not null;index" json:"token_blacklist_token"`
	TokenBlacklistExpiresAt time.Time `gorm:"column:token_blacklist_expires_at;not null;index" json:"token_blacklist_expires_at"`
	TokenBlacklistCreatedAt time.Time `gorm:"column:token_blacklist_created_at;not null;autoCreateTime" json:"token_blacklist_created_at"`
}

func (TokenBlacklistModel) TableName() string { return "token_blacklist" }
