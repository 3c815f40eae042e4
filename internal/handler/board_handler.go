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

type BoardHandler struct {
	boards repository.BoardRepositoryInterface
	tasks  repository.TaskRepositoryInterface
	users  repository.UserRepositoryInterface
}

func NewBoardHandler(boards repository.BoardRepositoryInterface, tasks repository.TaskRepositoryInterface,
	users repository.UserRepositoryInterface) *BoardHandler {
	return &BoardHandler{boards: boards, tasks: tasks, users: users}
}

// List returns the boards the caller is a member of, with task counts.
func (h *BoardHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	boards, err := h.boards.ListForMember(ctx, actorID(c))
	if err != nil {
		apperror.Respond(c, apperror.Internal(err))
		return
	}

	ids := make([]uint, len(boards))
	for i := range boards {
		ids[i] = boards[i].ID
	}
	stats, err := h.boards.Stats(ctx, ids)
	if err != nil {
		apperror.Respond(c, apperror.Internal(err))
		return
	}

	response := make([]dto.BoardListItem, 0, len(boards))
	for i := range boards {
		response = append(response, dto.NewBoardListItem(&boards[i], stats[boards[i].ID]))
	}
	c.JSON(http.StatusOK, response)
}

// Create makes the caller the owner. The owner is always a member.
func (h *BoardHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := actorID(c)

	var req dto.BoardCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	memberIDs := dto.MemberIDs(ownerID, req.Members)
	if err := h.checkUsersExist(c, memberIDs); err != nil {
		apperror.Respond(c, err)
		return
	}

	board := &model.Board{Title: strings.TrimSpace(req.Title), OwnerID: ownerID}
	if req.Description != nil {
		board.Description = *req.Description
	}

	if err := h.boards.Create(ctx, board, memberIDs); err != nil {
		apperror.Respond(c, apperror.Internal(err))
		return
	}

	created, err := h.boards.GetByID(ctx, board.ID)
	if err != nil {
		apperror.Respond(c, storeError(err))
		return
	}
	c.JSON(http.StatusCreated, dto.NewBoardListItem(created, model.BoardStats{BoardID: created.ID}))
}

func (h *BoardHandler) Get(c *gin.Context) {
	board, ok := h.loadBoard(c)
	if !ok {
		return
	}
	if err := access.Require(access.CanReadBoard(actorID(c), board), "You are not a member of this board"); err != nil {
		apperror.Respond(c, err)
		return
	}

	h.respondDetail(c, http.StatusOK, board)
}

// Update applies a partial update. A members list replaces the membership
// set, keeping the owner.
func (h *BoardHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	board, ok := h.loadBoard(c)
	if !ok {
		return
	}
	if err := access.Require(access.CanUpdateBoard(actorID(c), board), "You are not a member of this board"); err != nil {
		apperror.Respond(c, err)
		return
	}

	var req dto.BoardUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := req.Apply(board)
	var memberIDs []uint
	if req.Members.Set {
		if req.Members.Null {
			fields["members"] = "This field may not be null."
		} else {
			memberIDs = dto.MemberIDs(board.OwnerID, req.Members.Value)
		}
	}
	if err := validationOrNil(fields); err != nil {
		apperror.Respond(c, err)
		return
	}
	if memberIDs != nil {
		if err := h.checkUsersExist(c, memberIDs); err != nil {
			apperror.Respond(c, err)
			return
		}
	}

	if err := h.boards.Update(ctx, board, memberIDs); err != nil {
		apperror.Respond(c, storeError(err))
		return
	}

	updated, err := h.boards.GetByID(ctx, board.ID)
	if err != nil {
		apperror.Respond(c, storeError(err))
		return
	}
	h.respondDetail(c, http.StatusOK, updated)
}

// Delete is reserved to the owner and removes tasks and comments with the board.
func (h *BoardHandler) Delete(c *gin.Context) {
	board, ok := h.loadBoard(c)
	if !ok {
		return
	}
	if err := access.Require(access.CanDeleteBoard(actorID(c), board), "Only the board owner can delete the board"); err != nil {
		apperror.Respond(c, err)
		return
	}

	if err := h.boards.Delete(c.Request.Context(), board.ID); err != nil {
		apperror.Respond(c, storeError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BoardHandler) loadBoard(c *gin.Context) (*model.Board, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	board, err := h.boards.GetByID(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, storeError(err))
		return nil, false
	}
	return board, true
}

func (h *BoardHandler) respondDetail(c *gin.Context, status int, board *model.Board) {
	tasks, err := h.tasks.ListByBoard(c.Request.Context(), board.ID)
	if err != nil {
		apperror.Respond(c, apperror.Internal(err))
		return
	}
	c.JSON(status, dto.NewBoardDetail(board, tasks))
}

func (h *BoardHandler) checkUsersExist(c *gin.Context, ids []uint) error {
	users, err := h.users.GetByIDs(c.Request.Context(), ids)
	if err != nil {
		return apperror.Internal(err)
	}
	if len(users) != len(ids) {
		return apperror.ValidationFields(map[string]string{"members": "Unknown user id in members."})
	}
	return nil
}
