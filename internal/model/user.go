// Package model defines database models
package model

import "time"

type User struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username          string    `gorm:"not null" json:"username"`
	Email             string    `gorm:"unique;not null" json:"email"`
	Password          string    `gorm:"not null" json:"-"`
	VerificationToken *string   `json:"-"`
	Verified          bool      `gorm:"default:false" json:"verified"`
	CreatedAt         time.Time `json:"created_at"`
}
