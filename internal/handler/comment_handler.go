package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kanmind/internal/access"
	"kanmind/internal/apperror"
	"kanmind/internal/dto"
	"kanmind/internal/model"
	"kanmind/internal/repository"
)

type CommentHandler struct {
	comments repository.CommentRepositoryInterface
	tasks    repository.TaskRepositoryInterface
}

func NewCommentHandler(comments repository.CommentRepositoryInterface, tasks repository.TaskRepositoryInterface) *CommentHandler {
	return &CommentHandler{comments: comments, tasks: tasks}
}

// List returns the task's comments oldest first.
func (h *CommentHandler) List(c *gin.Context) {
	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	comments, err := h.comments.ListByTask(c.Request.Context(), task.ID)
	if err != nil {
		apperror.Respond(c, apperror.Internal(err))
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentResponses(comments))
}

func (h *CommentHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	var req dto.CommentCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	comment := &model.Comment{
		TaskID:   task.ID,
		AuthorID: actorID(c),
		Content:  strings.TrimSpace(req.Content),
	}
	if err := h.comments.Create(ctx, comment); err != nil {
		apperror.Respond(c, apperror.Internal(err))
		return
	}

	created, err := h.comments.GetByID(ctx, comment.ID)
	if err != nil {
		apperror.Respond(c, storeError(err))
		return
	}
	c.JSON(http.StatusCreated, dto.NewCommentResponse(created))
}

// Get returns a single comment to members of its board.
func (h *CommentHandler) Get(c *gin.Context) {
	h.get(c, 0)
}

// GetInTask is Get scoped to the task in the path.
func (h *CommentHandler) GetInTask(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.get(c, taskID)
}

// Update changes the content of a comment. Only the author may edit it.
func (h *CommentHandler) Update(c *gin.Context) {
	h.update(c, 0)
}

func (h *CommentHandler) UpdateInTask(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.update(c, taskID)
}

// Delete removes a comment by id. Allowed for the author and the board owner.
func (h *CommentHandler) Delete(c *gin.Context) {
	h.delete(c, 0)
}

// DeleteInTask is Delete scoped to the task in the path: a comment of another
// task is reported as missing.
func (h *CommentHandler) DeleteInTask(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.delete(c, taskID)
}

func (h *CommentHandler) get(c *gin.Context, taskID uint) {
	comment, ok := h.loadComment(c, taskID)
	if !ok {
		return
	}
	if err := access.Require(access.CanReadComment(actorID(c), comment), "You are not a member of this board"); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentResponse(comment))
}

func (h *CommentHandler) update(c *gin.Context, taskID uint) {
	ctx := c.Request.Context()

	comment, ok := h.loadComment(c, taskID)
	if !ok {
		return
	}
	if err := access.Require(access.CanUpdateComment(actorID(c), comment), "Only the author can edit this comment"); err != nil {
		apperror.Respond(c, err)
		return
	}

	var req dto.CommentUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.comments.UpdateContent(ctx, comment.ID, strings.TrimSpace(req.Content)); err != nil {
		apperror.Respond(c, storeError(err))
		return
	}

	updated, err := h.comments.GetByID(ctx, comment.ID)
	if err != nil {
		apperror.Respond(c, storeError(err))
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentResponse(updated))
}

func (h *CommentHandler) delete(c *gin.Context, taskID uint) {
	comment, ok := h.loadComment(c, taskID)
	if !ok {
		return
	}
	if err := access.Require(access.CanDeleteComment(actorID(c), comment), "Only the author or the board owner can delete this comment"); err != nil {
		apperror.Respond(c, err)
		return
	}

	if err := h.comments.Delete(c.Request.Context(), comment.ID); err != nil {
		apperror.Respond(c, storeError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// loadComment fetches the comment in the path. With a non-zero taskID the
// comment must belong to that task, otherwise it is reported as missing.
func (h *CommentHandler) loadComment(c *gin.Context, taskID uint) (*model.Comment, bool) {
	param := "id"
	if taskID != 0 {
		param = "comment_id"
	}
	id, ok := parseID(c, param)
	if !ok {
		return nil, false
	}

	comment, err := h.comments.GetByID(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, storeError(err))
		return nil, false
	}
	if taskID != 0 && comment.TaskID != taskID {
		apperror.Respond(c, apperror.NotFound("Comment not found"))
		return nil, false
	}
	return comment, true
}

// loadTask fetches the task in the path and checks the caller belongs to its board.
func (h *CommentHandler) loadTask(c *gin.Context) (*model.Task, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	task, err := h.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, storeError(err))
		return nil, false
	}
	if err := access.Require(access.CanAccessComments(actorID(c), task), "You are not a member of this board"); err != nil {
		apperror.Respond(c, err)
		return nil, false
	}
	return task, true
}
