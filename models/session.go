package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session binds a dashboard cookie to the upstream bearer token obtained at
// login. The token never leaves the server.
type Session struct {
	gorm.Model

	SID       string    `gorm:"size:36;uniqueIndex;not null"`
	Token     string    `gorm:"size:512;not null"`
	UserID    int64     `gorm:"index"`
	Username  string    `gorm:"size:64"`
	IsAdmin   bool      `gorm:"default:false"`
	ExpiresAt time.Time `gorm:"index"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) (err error) {
	if s.SID == "" {
		s.SID = strings.ToLower(uuid.New().String())
	}
	return nil
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
