package model

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// ParseStatus accepts any letter case and the "to-do" spelling used by older clients.
func ParseStatus(s string) (TaskStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo", "to-do":
		return StatusTodo, true
	case "in-progress":
		return StatusInProgress, true
	case "done":
		return StatusDone, true
	}
	return "", false
}

func ParsePriority(s string) (TaskPriority, bool) {
	switch TaskPriority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityHigh:
		return PriorityHigh, true
	}
	return "", false
}

type Task struct {
	ID          uint         `gorm:"primaryKey"`
	BoardID     uint         `gorm:"not null;index"`
	Title       string       `gorm:"not null"`
	Description string       `gorm:"not null;default:''"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:todo;index"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:medium"`
	DueDate     *time.Time   `gorm:"type:date"`
	AssigneeID  *uint        `gorm:"index"`
	ReviewerID  *uint        `gorm:"index"`
	CreatedBy   uint         `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Board    Board `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
	Assignee *User `gorm:"foreignKey:AssigneeID;constraint:OnDelete:SET NULL"`
	Reviewer *User `gorm:"foreignKey:ReviewerID;constraint:OnDelete:SET NULL"`

	CommentsCount int64 `gorm:"-"`
}

func (t *Task) IsAssignee(userID uint) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}

func (t *Task) IsReviewer(userID uint) bool {
	return t.ReviewerID != nil && *t.ReviewerID == userID
}
