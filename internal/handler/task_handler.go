package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"kanmind/internal/access"
	"kanmind/internal/apperror"
	"kanmind/internal/dto"
	"kanmind/internal/model"
	"kanmind/internal/repository"
)

type TaskHandler struct {
	tasks  repository.TaskRepositoryInterface
	boards repository.BoardRepositoryInterface
}

func NewTaskHandler(tasks repository.TaskRepositoryInterface, boards repository.BoardRepositoryInterface) *TaskHandler {
	return &TaskHandler{tasks: tasks, boards: boards}
}

// List returns the tasks of every board the caller belongs to.
func (h *TaskHandler) List(c *gin.Context) {
	h.respondList(c, h.tasks.ListForMember)
}

func (h *TaskHandler) AssignedToMe(c *gin.Context) {
	h.respondList(c, h.tasks.ListByAssignee)
}

func (h *TaskHandler) Reviewing(c *gin.Context) {
	h.respondList(c, h.tasks.ListByReviewer)
}

func (h *TaskHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	actor := actorID(c)

	var req dto.TaskCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	board, err := h.boards.GetByID(ctx, req.Board)
	if err != nil {
		apperror.Respond(c, storeError(err))
		return
	}
	if err := access.Require(access.CanCreateTask(actor, board), "You are not a member of this board"); err != nil {
		apperror.Respond(c, err)
		return
	}

	task, fields := req.ToModel(actor)
	checkParticipant(board, "assignee_id", task.AssigneeID, fields)
	checkParticipant(board, "reviewer_id", task.ReviewerID, fields)
	if err := validationOrNil(fields); err != nil {
		apperror.Respond(c, err)
		return
	}

	if err := h.tasks.Create(ctx, task); err != nil {
		apperror.Respond(c, apperror.Internal(err))
		return
	}
	h.respondTask(c, http.StatusCreated, task.ID)
}

func (h *TaskHandler) Get(c *gin.Context) {
	task, ok := h.loadTask(c)
	if !ok {
		return
	}
	if err := access.Require(access.CanReadTask(actorID(c), task), "You do not have access to this task"); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskResponse(task))
}

// Update applies a partial update. Only the assignee or reviewer sent in the
// request must be board members, so a participant who left the board can
// still edit the task.
func (h *TaskHandler) Update(c *gin.Context) {
	task, ok := h.loadTask(c)
	if !ok {
		return
	}
	if err := access.Require(access.CanUpdateTask(actorID(c), task), "You do not have access to this task"); err != nil {
		apperror.Respond(c, err)
		return
	}

	var req dto.TaskUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := req.Apply(task)
	if req.AssigneeID.Present() {
		checkParticipant(&task.Board, "assignee_id", task.AssigneeID, fields)
	}
	if req.ReviewerID.Present() {
		checkParticipant(&task.Board, "reviewer_id", task.ReviewerID, fields)
	}
	if err := validationOrNil(fields); err != nil {
		apperror.Respond(c, err)
		return
	}

	if err := h.tasks.Update(c.Request.Context(), task); err != nil {
		apperror.Respond(c, storeError(err))
		return
	}
	h.respondTask(c, http.StatusOK, task.ID)
}

// Delete is reserved to the board owner and removes the task's comments too.
func (h *TaskHandler) Delete(c *gin.Context) {
	task, ok := h.loadTask(c)
	if !ok {
		return
	}
	if err := access.Require(access.CanDeleteTask(actorID(c), task), "Only the board owner can delete tasks"); err != nil {
		apperror.Respond(c, err)
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), task.ID); err != nil {
		apperror.Respond(c, storeError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) loadTask(c *gin.Context) (*model.Task, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	task, err := h.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, storeError(err))
		return nil, false
	}
	return task, true
}

func (h *TaskHandler) respondTask(c *gin.Context, status int, id uint) {
	task, err := h.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, storeError(err))
		return
	}
	c.JSON(status, dto.NewTaskResponse(task))
}

func (h *TaskHandler) respondList(c *gin.Context, list func(ctx context.Context, userID uint) ([]model.Task, error)) {
	tasks, err := list(c.Request.Context(), actorID(c))
	if err != nil {
		apperror.Respond(c, apperror.Internal(err))
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskResponses(tasks))
}
