package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/procureflow/procureflow/internal/application/user/usecases"
	"github.com/procureflow/procureflow/internal/interfaces/http/middleware"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
	"github.com/procureflow/procureflow/internal/shared/utils"
)

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type UserHandler struct {
	listUsersUC      usecases.ListUsersExecutor
	createUserUC     usecases.CreateUserExecutor
	updateUserRoleUC usecases.UpdateUserRoleExecutor
	uploadAvatarUC   usecases.UploadAvatarExecutor
	logger           logger.Interface
}

func NewUserHandler(
	listUsersUC usecases.ListUsersExecutor,
	createUserUC usecases.CreateUserExecutor,
	updateUserRoleUC usecases.UpdateUserRoleExecutor,
	uploadAvatarUC usecases.UploadAvatarExecutor,
	logger logger.Interface,
) *UserHandler {
	return &UserHandler{
		listUsersUC:      listUsersUC,
		createUserUC:     createUserUC,
		updateUserRoleUC: updateUserRoleUC,
		uploadAvatarUC:   uploadAvatarUC,
		logger:           logger,
	}
}

// ListUsers godoc
// @Summary List users
// @Description List users for the reviewer picker, optionally filtered by role and search term
// @Security Bearer
// @Tags users
// @Accept json
// @Produce json
// @Param role query string false "Filter by role" Enums(PURCHASER, REVIEWER, MANAGER, ADMIN)
// @Param search query string false "Name or email search"
// @Success 200 {object} utils.APIResponse{data=dto.UserListResponse} "Users"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	p := utils.ParsePagination(c)
	result, err := h.listUsersUC.Execute(c.Request.Context(), usecases.ListUsersQuery{
		Role:     c.Query("role"),
		Search:   c.Query("search"),
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, p.Page, p.PageSize)
}

// CreateUser godoc
// @Summary Create user
// @Description Create a user account (admin only)
// @Security Bearer
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User data"
// @Success 201 {object} utils.APIResponse{data=dto.UserResponse} "User created"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 409 {object} utils.APIResponse "Conflict"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	_, role, err := middleware.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateUserRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create user", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createUserUC.Execute(c.Request.Context(), usecases.CreateUserCommand{
		ActorRole: role,
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "User created successfully")
}

// UpdateUserRole godoc
// @Summary Update user role
// @Description Change the role of a user (admin only)
// @Security Bearer
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateUserRoleRequest true "New role"
// @Success 200 {object} utils.APIResponse{data=dto.UserResponse} "Role updated"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /users/{id}/role [patch]
func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	actorID, role, err := middleware.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateUserRoleRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateUserRoleUC.Execute(c.Request.Context(), usecases.UpdateUserRoleCommand{
		ActorID:   actorID,
		ActorRole: role,
		UserID:    userID,
		Role:      req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Role updated", result)
}

// UploadAvatar godoc
// @Summary Upload avatar
// @Description Replace the avatar of the authenticated user
// @Security Bearer
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Avatar image"
// @Success 200 {object} utils.APIResponse{data=dto.UserResponse} "Avatar updated"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /users/me/avatar [put]
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, _, err := middleware.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("file is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		h.logger.Errorw("failed to open avatar upload", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, errors.NewInternalError("failed to read upload"))
		return
	}
	defer file.Close()

	result, err := h.uploadAvatarUC.Execute(c.Request.Context(), usecases.UploadAvatarCommand{
		UserID:      userID,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		File:        file,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Avatar updated", result)
}

// HealthCheck handles GET /health
func HealthCheck(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "ok", gin.H{"status": "healthy"})
}
