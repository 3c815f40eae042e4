// Package handler implements the HTTP endpoints on top of the repositories.
// Handlers load the resource first (404), then check access (403), then
// validate the body (400).
package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"kanmind/internal/apperror"
	"kanmind/internal/dto"
	"kanmind/internal/middleware"
	"kanmind/internal/model"
	"kanmind/internal/repository"
)

// bindJSON decodes and validates the body into dst. On failure it writes the
// 400 response and returns false.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if fields, ok := dto.FieldErrors(err); ok {
			apperror.Respond(c, apperror.ValidationFields(fields))
		} else {
			apperror.Respond(c, apperror.Validation("Invalid request body"))
		}
		return false
	}
	return true
}

// parseID reads a numeric path parameter. Anything else is a missing resource.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apperror.Respond(c, apperror.NotFound("Not found"))
		return 0, false
	}
	return uint(id), true
}

func actorID(c *gin.Context) uint {
	id, _ := c.Get(middleware.UserIDKey)
	userID, _ := id.(uint)
	return userID
}

// storeError maps repository sentinels to API errors.
func storeError(err error) error {
	switch {
	case errors.Is(err, repository.ErrBoardNotFound):
		return apperror.NotFound("Board not found")
	case errors.Is(err, repository.ErrTaskNotFound):
		return apperror.NotFound("Task not found")
	case errors.Is(err, repository.ErrCommentNotFound):
		return apperror.NotFound("Comment not found")
	}
	return apperror.Internal(err)
}

func validationOrNil(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return apperror.ValidationFields(fields)
}

// checkParticipant records a field error when userID is set but not a member of board.
func checkParticipant(board *model.Board, field string, userID *uint, fields map[string]string) {
	if userID != nil && !board.HasMember(*userID) {
		fields[field] = "User must be a member of the board."
	}
}
