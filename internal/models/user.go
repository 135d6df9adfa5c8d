// Package models contains data structures for the application's domain models.
package models

import "time"

// User is a registered account. Password holds the bcrypt hash only.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      *string   `json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"column:password_hash;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
