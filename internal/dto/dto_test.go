package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"kanmind/internal/dto"
	"kanmind/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_DistinguishesAbsentAndNull(t *testing.T) {
	var req dto.TaskUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"assignee_id": null, "reviewer_id": 7}`), &req))

	assert.True(t, req.AssigneeID.Set)
	assert.True(t, req.AssigneeID.Null)
	assert.True(t, req.ReviewerID.Present())
	assert.Equal(t, uint(7), req.ReviewerID.Value)
	assert.False(t, req.DueDate.Set)
}

func TestTaskUpdateRequest_Apply(t *testing.T) {
	assignee := uint(2)
	due := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	task := &model.Task{
		BoardID:     1,
		Title:       "old",
		Description: "text",
		Status:      model.StatusTodo,
		Priority:    model.PriorityMedium,
		AssigneeID:  &assignee,
		DueDate:     &due,
	}

	var req dto.TaskUpdateRequest
	body := `{"title":" new ","description":null,"status":"to-do","priority":"HIGH","assignee_id":null,"due_date":null}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	errs := req.Apply(task)

	assert.Empty(t, errs)
	assert.Equal(t, "new", task.Title)
	assert.Equal(t, "", task.Description)
	assert.Equal(t, model.StatusTodo, task.Status)
	assert.Equal(t, model.PriorityHigh, task.Priority)
	assert.Nil(t, task.AssigneeID)
	assert.Nil(t, task.DueDate)
}

func TestTaskUpdateRequest_ApplyRejectsInvalid(t *testing.T) {
	task := &model.Task{BoardID: 1, Title: "keep"}

	var req dto.TaskUpdateRequest
	body := `{"board":2,"title":"  ","status":"review","due_date":"02/01/2025"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	errs := req.Apply(task)

	assert.Contains(t, errs, "board")
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "status")
	assert.Contains(t, errs, "due_date")
	assert.Equal(t, "keep", task.Title)
}

func TestTaskCreateRequest_ToModelDefaults(t *testing.T) {
	req := dto.TaskCreateRequest{Board: 3, Title: "Write docs"}

	task, errs := req.ToModel(9)

	assert.Empty(t, errs)
	assert.Equal(t, uint(3), task.BoardID)
	assert.Equal(t, "", task.Description)
	assert.Equal(t, model.StatusTodo, task.Status)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.Equal(t, uint(9), task.CreatedBy)
}

func TestBoardUpdateRequest_Apply(t *testing.T) {
	board := &model.Board{Title: "old", Description: "d"}

	var req dto.BoardUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"description":null,"members":[2,3]}`), &req))

	assert.Empty(t, req.Apply(board))
	assert.Equal(t, "old", board.Title)
	assert.Equal(t, "", board.Description)
	assert.Equal(t, []uint{2, 3}, req.Members.Value)
}

func TestMemberIDs(t *testing.T) {
	assert.Equal(t, []uint{1, 3, 2}, dto.MemberIDs(1, []uint{3, 1, 2, 3}))
	assert.Equal(t, []uint{5}, dto.MemberIDs(5, nil))
}

func TestNewTaskResponse(t *testing.T) {
	due := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	task := &model.Task{
		ID:            1,
		BoardID:       2,
		Title:         "t",
		Status:        model.StatusInProgress,
		Priority:      model.PriorityLow,
		DueDate:       &due,
		Assignee:      &model.User{ID: 4, Email: "a@example.com", FirstName: "Ann"},
		CommentsCount: 3,
	}

	resp := dto.NewTaskResponse(task)

	require.NotNil(t, resp.DueDate)
	assert.Equal(t, "2025-03-04", *resp.DueDate)
	assert.Equal(t, "Ann", resp.Assignee.Fullname)
	assert.Nil(t, resp.Reviewer)
	assert.Equal(t, "", resp.Description)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"reviewer":null`)
	assert.Contains(t, string(raw), `"description":""`)
}

func TestNewCommentResponse_AuthorFallsBackToEmail(t *testing.T) {
	c := &model.Comment{ID: 1, Content: "hi", Author: model.User{Email: "x@example.com"}}
	assert.Equal(t, "x@example.com", dto.NewCommentResponse(c).Author)
}

type sample struct {
	Title  string `json:"title" binding:"required,notblank" validate:"required,notblank"`
	Status string `json:"status" validate:"omitempty,taskstatus"`
}

func TestRegisterValidators_FieldErrors(t *testing.T) {
	v := validator.New()
	require.NoError(t, dto.RegisterValidators(v))

	err := v.Struct(sample{Title: "   ", Status: "nope"})
	require.Error(t, err)

	fields, ok := dto.FieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "This field may not be blank.", fields["title"])
	assert.Contains(t, fields, "status")

	assert.NoError(t, v.Struct(sample{Title: "ok", Status: "to-do"}))
}
