package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kanmind/internal/apperror"
	"kanmind/internal/auth"
	"kanmind/internal/dto"
	"kanmind/internal/middleware"
	"kanmind/internal/repository"
)

type UserHandler struct {
	auth  *auth.Service
	users repository.UserRepositoryInterface
}

func NewUserHandler(authService *auth.Service, users repository.UserRepositoryInterface) *UserHandler {
	return &UserHandler{auth: authService, users: users}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	token, user, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAuthResponse(token, user))
}

func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAuthResponse(token, user))
}

// Logout deletes the caller's token.
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.CurrentToken(c)); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// EmailCheck looks a user up by the email query parameter.
func (h *UserHandler) EmailCheck(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" {
		apperror.Respond(c, apperror.ValidationFields(map[string]string{"email": "This query parameter is required."}))
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), email)
	if err != nil {
		apperror.Respond(c, apperror.Internal(err))
		return
	}
	if user == nil {
		apperror.Respond(c, apperror.NotFound("User not found"))
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// ListProfiles returns every registered user.
func (h *UserHandler) ListProfiles(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		apperror.Respond(c, apperror.Internal(err))
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponses(users))
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, apperror.Internal(err))
		return
	}
	if user == nil {
		apperror.Respond(c, apperror.NotFound("User not found"))
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
