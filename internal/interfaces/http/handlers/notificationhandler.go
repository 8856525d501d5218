package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/procureflow/procureflow/internal/application/notification/usecases"
	"github.com/procureflow/procureflow/internal/interfaces/http/middleware"
	"github.com/procureflow/procureflow/internal/shared/logger"
	"github.com/procureflow/procureflow/internal/shared/utils"
)

type NotificationHandler struct {
	listUC        usecases.ListNotificationsExecutor
	unreadCountUC usecases.GetUnreadCountExecutor
	markAsReadUC  usecases.MarkAsReadExecutor
	markAllUC     usecases.MarkAllAsReadExecutor
	deleteUC      usecases.DeleteNotificationExecutor
	logger        logger.Interface
}

func NewNotificationHandler(
	listUC usecases.ListNotificationsExecutor,
	unreadCountUC usecases.GetUnreadCountExecutor,
	markAsReadUC usecases.MarkAsReadExecutor,
	markAllUC usecases.MarkAllAsReadExecutor,
	deleteUC usecases.DeleteNotificationExecutor,
	logger logger.Interface,
) *NotificationHandler {
	return &NotificationHandler{
		listUC:        listUC,
		unreadCountUC: unreadCountUC,
		markAsReadUC:  markAsReadUC,
		markAllUC:     markAllUC,
		deleteUC:      deleteUC,
		logger:        logger,
	}
}

// ListNotifications godoc
// @Summary List notifications for current user
// @Description Get a page of notifications for the authenticated user
// @Security Bearer
// @Tags notifications
// @Accept json
// @Produce json
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param unread query bool false "Only unread notifications"
// @Success 200 {object} utils.APIResponse{data=dto.NotificationListResponse} "Notifications list"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, _, err := middleware.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListNotificationsQuery{
		UserID:     userID,
		Page:       p.Page,
		PageSize:   p.PageSize,
		UnreadOnly: c.Query("unread") == "true",
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetUnreadCount godoc
// @Summary Get unread notifications count
// @Description Count unread notifications of the authenticated user
// @Security Bearer
// @Tags notifications
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse "Unread count"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, _, err := middleware.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	count, err := h.unreadCountUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"count": count})
}

// MarkAsRead godoc
// @Summary Mark notification as read
// @Description Mark a specific notification as read for the authenticated user
// @Security Bearer
// @Tags notifications
// @Accept json
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} utils.APIResponse{data=dto.NotificationResponse} "Notification marked as read"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, _, err := middleware.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	notificationID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.markAsReadUC.Execute(c.Request.Context(), usecases.MarkAsReadCommand{
		NotificationID: notificationID,
		UserID:         userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notification marked as read", result)
}

// MarkAllAsRead godoc
// @Summary Mark all notifications as read
// @Description Mark every notification of the authenticated user as read
// @Security Bearer
// @Tags notifications
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse "Notifications marked as read"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /notifications/read [patch]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, _, err := middleware.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	updated, err := h.markAllUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "All notifications marked as read", gin.H{"updated": updated})
}

// DeleteNotification godoc
// @Summary Delete notification
// @Description Delete a notification of the authenticated user
// @Security Bearer
// @Tags notifications
// @Accept json
// @Produce json
// @Param id path int true "Notification ID"
// @Success 204 "No content"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID, _, err := middleware.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	notificationID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteNotificationCommand{
		NotificationID: notificationID,
		UserID:         userID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
