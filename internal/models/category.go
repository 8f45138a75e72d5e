package models

import "time"

// Category groups transactions. UserID is nil for the global default
// categories shared by every account. Uniqueness of (name, user) is
// enforced by partial indexes created in database.AutoMigrate, since a
// plain composite unique index never fires for NULL user_id rows.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    *uint  `gorm:"index"`
	Name      string `gorm:"size:50;not null"`
	IsDefault bool   `gorm:"not null;default:false"`
	CreatedAt time.Time

	User *User `gorm:"constraint:OnDelete:CASCADE"`
}
