package model

import "time"

type Board struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string `gorm:"not null;default:''"`
	OwnerID     uint   `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Owner   User   `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Members []User `gorm:"many2many:board_members"`
}

// BoardMember is the join row behind Board.Members.
type BoardMember struct {
	BoardID uint `gorm:"primaryKey"`
	UserID  uint `gorm:"primaryKey;index"`
}

// HasMember reports whether userID is the owner or listed in Members.
// Members must be loaded.
func (b *Board) HasMember(userID uint) bool {
	if b.OwnerID == userID {
		return true
	}
	for _, m := range b.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// BoardStats aggregates the tasks of one board.
type BoardStats struct {
	BoardID            uint
	TicketCount        int64
	TasksToDoCount     int64
	TasksHighPrioCount int64
}
