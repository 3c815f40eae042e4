package repository

import "errors"

// Common repository errors
var (
	ErrBoardNotFound   = errors.New("board not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrTokenNotFound   = errors.New("token not found")

	// ErrEmailTaken is returned when the unique email index rejects an insert
	ErrEmailTaken = errors.New("email already registered")
)
