package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/procureflow/procureflow/internal/application/user/usecases"
	"github.com/procureflow/procureflow/internal/interfaces/http/middleware"
	"github.com/procureflow/procureflow/internal/shared/logger"
	"github.com/procureflow/procureflow/internal/shared/utils"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthHandler struct {
	loginUC          usecases.LoginExecutor
	refreshTokenUC   usecases.RefreshTokenExecutor
	getCurrentUserUC usecases.GetCurrentUserExecutor
	logger           logger.Interface
}

func NewAuthHandler(
	loginUC usecases.LoginExecutor,
	refreshTokenUC usecases.RefreshTokenExecutor,
	getCurrentUserUC usecases.GetCurrentUserExecutor,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		loginUC:          loginUC,
		refreshTokenUC:   refreshTokenUC,
		getCurrentUserUC: getCurrentUserUC,
		logger:           logger,
	}
}

// Login godoc
// @Summary Log in with email and password
// @Description Exchange credentials for an access and refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse{data=dto.TokenResponse} "Token pair"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 429 {object} utils.APIResponse "Too many requests"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for login", "error", err, "ip", c.ClientIP())
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", result)
}

// RefreshToken godoc
// @Summary Refresh tokens
// @Description Rotate the token pair using a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} utils.APIResponse{data=dto.TokenResponse} "Token pair"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 429 {object} utils.APIResponse "Too many requests"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.refreshTokenUC.Execute(c.Request.Context(), req.RefreshToken)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Token refreshed", result)
}

// GetCurrentUser godoc
// @Summary Get current user
// @Description Get the profile of the authenticated user
// @Security Bearer
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse{data=dto.UserResponse} "Current user"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, _, err := middleware.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getCurrentUserUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
