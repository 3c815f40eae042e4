package dto

import (
	"time"

	"kanmind/internal/model"
)

type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Fullname: u.FullName()}
}

func NewUserResponses(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

type AuthResponse struct {
	Token    string `json:"token"`
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
}

func NewAuthResponse(token *model.Token, u *model.User) AuthResponse {
	return AuthResponse{Token: token.Key, UserID: u.ID, Email: u.Email, Fullname: u.FullName()}
}

type BoardListItem struct {
	ID                 uint   `json:"id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	OwnerID            uint   `json:"owner_id"`
	MemberCount        int    `json:"member_count"`
	TicketCount        int64  `json:"ticket_count"`
	TasksToDoCount     int64  `json:"tasks_to_do_count"`
	TasksHighPrioCount int64  `json:"tasks_high_prio_count"`
}

// NewBoardListItem expects board.Members to be loaded.
func NewBoardListItem(board *model.Board, stats model.BoardStats) BoardListItem {
	return BoardListItem{
		ID:                 board.ID,
		Title:              board.Title,
		Description:        board.Description,
		OwnerID:            board.OwnerID,
		MemberCount:        len(board.Members),
		TicketCount:        stats.TicketCount,
		TasksToDoCount:     stats.TasksToDoCount,
		TasksHighPrioCount: stats.TasksHighPrioCount,
	}
}

type BoardDetail struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	OwnerID     uint           `json:"owner_id"`
	Members     []UserResponse `json:"members"`
	Tasks       []TaskResponse `json:"tasks"`
}

func NewBoardDetail(board *model.Board, tasks []model.Task) BoardDetail {
	return BoardDetail{
		ID:          board.ID,
		Title:       board.Title,
		Description: board.Description,
		OwnerID:     board.OwnerID,
		Members:     NewUserResponses(board.Members),
		Tasks:       NewTaskResponses(tasks),
	}
}

type TaskResponse struct {
	ID            uint          `json:"id"`
	Board         uint          `json:"board"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Status        string        `json:"status"`
	Priority      string        `json:"priority"`
	Assignee      *UserResponse `json:"assignee"`
	Reviewer      *UserResponse `json:"reviewer"`
	DueDate       *string       `json:"due_date"`
	CommentsCount int64         `json:"comments_count"`
}

func NewTaskResponse(t *model.Task) TaskResponse {
	resp := TaskResponse{
		ID:            t.ID,
		Board:         t.BoardID,
		Title:         t.Title,
		Description:   t.Description,
		Status:        string(t.Status),
		Priority:      string(t.Priority),
		CommentsCount: t.CommentsCount,
	}
	if t.Assignee != nil {
		u := NewUserResponse(t.Assignee)
		resp.Assignee = &u
	}
	if t.Reviewer != nil {
		u := NewUserResponse(t.Reviewer)
		resp.Reviewer = &u
	}
	if t.DueDate != nil {
		d := t.DueDate.Format(DateLayout)
		resp.DueDate = &d
	}
	return resp
}

func NewTaskResponses(tasks []model.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskResponse(&tasks[i]))
	}
	return out
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
}

// NewCommentResponse renders the author by full name. c.Author must be loaded.
func NewCommentResponse(c *model.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		Author:    c.Author.FullName(),
		Content:   c.Content,
	}
}

func NewCommentResponses(comments []model.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, NewCommentResponse(&comments[i]))
	}
	return out
}
