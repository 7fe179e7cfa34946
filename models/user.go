package models

type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Email string `gorm:"uniqueIndex;not null" json:"email"` // unique, enforced by the store

	// channels the user belongs to, through the memberships join table
	Channels []Channel `gorm:"many2many:memberships" json:"-"`
}
