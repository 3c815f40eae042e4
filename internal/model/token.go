package model

import "time"

// Token is the bearer credential of a user. A user holds at most one token
// and keeps it until logout.
type Token struct {
	Key       string    `gorm:"primaryKey;size:512"`
	UserID    uint      `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
