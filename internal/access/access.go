// Package access holds the permission rules for boards, tasks and comments.
// Every predicate works on models that are already loaded; none of them
// touches the database.
package access

import (
	"kanmind/internal/apperror"
	"kanmind/internal/model"
)

// CanReadBoard reports whether actor may see the board. The owner counts as a member.
func CanReadBoard(actor uint, board *model.Board) bool {
	return board.HasMember(actor)
}

func CanUpdateBoard(actor uint, board *model.Board) bool {
	return board.HasMember(actor)
}

func CanDeleteBoard(actor uint, board *model.Board) bool {
	return board.OwnerID == actor
}

// CanCreateTask reports whether actor may add a task to board.
func CanCreateTask(actor uint, board *model.Board) bool {
	return board.HasMember(actor)
}

// CanReadTask lets board members in, and also the assignee and reviewer even
// after they left the board. task.Board must be loaded with its members.
func CanReadTask(actor uint, task *model.Task) bool {
	return task.Board.HasMember(actor) || task.IsAssignee(actor) || task.IsReviewer(actor)
}

func CanUpdateTask(actor uint, task *model.Task) bool {
	return CanReadTask(actor, task)
}

func CanDeleteTask(actor uint, task *model.Task) bool {
	return task.Board.OwnerID == actor
}

// CanAccessComments covers listing and adding comments under a task.
func CanAccessComments(actor uint, task *model.Task) bool {
	return task.Board.HasMember(actor)
}

// CanReadComment lets members of the comment's board see it.
// comment.Task.Board must be loaded with its members.
func CanReadComment(actor uint, comment *model.Comment) bool {
	return comment.Task.Board.HasMember(actor)
}

// CanUpdateComment allows the author only.
func CanUpdateComment(actor uint, comment *model.Comment) bool {
	return comment.AuthorID == actor
}

// CanDeleteComment allows the author and the owner of the task's board.
// comment.Task.Board must be loaded.
func CanDeleteComment(actor uint, comment *model.Comment) bool {
	return comment.AuthorID == actor || comment.Task.Board.OwnerID == actor
}

// Require turns a failed predicate into an authorization error.
func Require(allowed bool, message string) error {
	if allowed {
		return nil
	}
	return apperror.Authorization(message)
}
