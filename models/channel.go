package models

import "time"

type Channel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"` // creator
	Owner     User      `gorm:"foreignKey:UserID" json:"-"`
	Title     string    `gorm:"not null" json:"title"`
	IsPublic  bool      `gorm:"not null" json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Membership is the join row behind User.Channels. The composite primary
// key means a user can be enrolled in a channel at most once.
type Membership struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	ChannelID uint      `gorm:"primaryKey;autoIncrement:false;index" json:"channel_id"`
	CreatedAt time.Time `json:"created_at"`
}
