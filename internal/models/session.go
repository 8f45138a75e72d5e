package models

import "time"

// Session stores server-side login sessions (for logout, expiry and
// per-session display settings). Lifetime is fixed when the session is
// created: the "remember" flag picks the long expiry, otherwise the
// cookie is browser-scoped and the row gets the short default.
type Session struct {
	ID        string    `gorm:"primaryKey;size:64"` // UUID
	UserID    uint      `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Remember  bool      `gorm:"not null"`
	Theme     string    `gorm:"size:32"`
	Revoked   bool      `gorm:"index;not null"`
	CreatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
