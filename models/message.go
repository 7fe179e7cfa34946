package models

import "time"

// Message shares the schema with the rest of the chat tables. Nothing in
// this module reads or writes it yet.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ChannelID uint      `gorm:"not null;index" json:"channel_id"`
	Channel   Channel   `json:"-"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `json:"-"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
