package dto

import (
	"strings"
	"time"

	"kanmind/internal/model"
)

const DateLayout = "2006-01-02"

type RegisterRequest struct {
	Fullname         string `json:"fullname" binding:"required,notblank"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required"`
	RepeatedPassword string `json:"repeated_password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type BoardCreateRequest struct {
	Title       string  `json:"title" binding:"required,notblank"`
	Description *string `json:"description"`
	Members     []uint  `json:"members"`
}

type BoardUpdateRequest struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	Members     Optional[[]uint] `json:"members"`
}

// Apply copies the sent fields onto board. It returns per-field problems.
func (r *BoardUpdateRequest) Apply(board *model.Board) map[string]string {
	errs := map[string]string{}
	if r.Title.Set {
		title := strings.TrimSpace(r.Title.Value)
		if r.Title.Null || title == "" {
			errs["title"] = "Title cannot be empty."
		} else {
			board.Title = title
		}
	}
	if r.Description.Set {
		board.Description = r.Description.Value
	}
	return errs
}

type TaskCreateRequest struct {
	Board       uint    `json:"board" binding:"required"`
	Title       string  `json:"title" binding:"required,notblank"`
	Description *string `json:"description"`
	Status      string  `json:"status" binding:"omitempty,taskstatus"`
	Priority    string  `json:"priority" binding:"omitempty,taskpriority"`
	AssigneeID  *uint   `json:"assignee_id"`
	ReviewerID  *uint   `json:"reviewer_id"`
	DueDate     *string `json:"due_date"`
}

// ToModel builds the task the request describes. Status and priority fall
// back to todo and medium.
func (r *TaskCreateRequest) ToModel(createdBy uint) (*model.Task, map[string]string) {
	errs := map[string]string{}
	task := &model.Task{
		BoardID:    r.Board,
		Title:      strings.TrimSpace(r.Title),
		Status:     model.StatusTodo,
		Priority:   model.PriorityMedium,
		AssigneeID: r.AssigneeID,
		ReviewerID: r.ReviewerID,
		CreatedBy:  createdBy,
	}
	if r.Description != nil {
		task.Description = *r.Description
	}
	if r.Status != "" {
		task.Status, _ = model.ParseStatus(r.Status)
	}
	if r.Priority != "" {
		task.Priority, _ = model.ParsePriority(r.Priority)
	}
	if r.DueDate != nil && *r.DueDate != "" {
		due, err := ParseDate(*r.DueDate)
		if err != nil {
			errs["due_date"] = "Date has wrong format. Use YYYY-MM-DD."
		} else {
			task.DueDate = &due
		}
	}
	return task, errs
}

type TaskUpdateRequest struct {
	Board       Optional[uint]   `json:"board"`
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	Status      Optional[string] `json:"status"`
	Priority    Optional[string] `json:"priority"`
	AssigneeID  Optional[uint]   `json:"assignee_id"`
	ReviewerID  Optional[uint]   `json:"reviewer_id"`
	DueDate     Optional[string] `json:"due_date"`
}

// Apply copies the sent fields onto task. An explicit null clears assignee,
// reviewer and due date and turns the description into "".
func (r *TaskUpdateRequest) Apply(task *model.Task) map[string]string {
	errs := map[string]string{}

	if r.Board.Set && (r.Board.Null || r.Board.Value != task.BoardID) {
		errs["board"] = "Changing the board of a task is not allowed."
	}
	if r.Title.Set {
		title := strings.TrimSpace(r.Title.Value)
		if r.Title.Null || title == "" {
			errs["title"] = "Title cannot be empty."
		} else {
			task.Title = title
		}
	}
	if r.Description.Set {
		task.Description = r.Description.Value
	}
	if r.Status.Set {
		status, ok := model.ParseStatus(r.Status.Value)
		if r.Status.Null || !ok {
			errs["status"] = "Status must be one of todo, in-progress, done."
		} else {
			task.Status = status
		}
	}
	if r.Priority.Set {
		priority, ok := model.ParsePriority(r.Priority.Value)
		if r.Priority.Null || !ok {
			errs["priority"] = "Priority must be one of low, medium, high."
		} else {
			task.Priority = priority
		}
	}
	if r.AssigneeID.Set {
		task.AssigneeID = optionalID(r.AssigneeID)
		task.Assignee = nil
	}
	if r.ReviewerID.Set {
		task.ReviewerID = optionalID(r.ReviewerID)
		task.Reviewer = nil
	}
	if r.DueDate.Set {
		if r.DueDate.Null || r.DueDate.Value == "" {
			task.DueDate = nil
		} else if due, err := ParseDate(r.DueDate.Value); err != nil {
			errs["due_date"] = "Date has wrong format. Use YYYY-MM-DD."
		} else {
			task.DueDate = &due
		}
	}
	return errs
}

func optionalID(o Optional[uint]) *uint {
	if o.Null {
		return nil
	}
	id := o.Value
	return &id
}

type CommentCreateRequest struct {
	Content string `json:"content" binding:"required,notblank"`
}

type CommentUpdateRequest struct {
	Content string `json:"content" binding:"required,notblank"`
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// MemberIDs returns ids with the owner first and duplicates removed.
func MemberIDs(ownerID uint, ids []uint) []uint {
	out := []uint{ownerID}
	seen := map[uint]bool{ownerID: true}
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
