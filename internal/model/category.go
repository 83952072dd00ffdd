package model

type Category struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name   string `gorm:"size:50;not null" json:"name"`
	UserID uint   `gorm:"not null" json:"user_id"`
}

// NoteCategory is a single link row between a note and a category. Both
// sides must belong to the same user, which is checked when the row is written.
type NoteCategory struct {
	NoteID     uint `gorm:"primaryKey"`
	CategoryID uint `gorm:"primaryKey"`
}
