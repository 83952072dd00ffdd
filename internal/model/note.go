package model

import "time"

type Note struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"not null" json:"content"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteView is a note together with every category it is linked to. Single
// fetches and list pages return notes in this shape.
type NoteView struct {
	ID         uint         `json:"id"`
	Title      string       `json:"title"`
	Content    string       `json:"content"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	Categories CategoryList `json:"categories"`
}
