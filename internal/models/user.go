package models

import "time"

// User represents application user. The username is the lowercased
// email address, so the two columns always hold the same value.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:254;uniqueIndex;not null"`
	Email        string `gorm:"size:254;not null"`
	FirstName    string `gorm:"size:64"`
	LastName     string `gorm:"size:64"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
