package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/procureflow/procureflow/internal/application/ticket/usecases"
	"github.com/procureflow/procureflow/internal/interfaces/http/middleware"
	"github.com/procureflow/procureflow/internal/shared/logger"
	"github.com/procureflow/procureflow/internal/shared/utils"
)

type CommentHandler struct {
	listCommentsUC  usecases.ListCommentsExecutor
	addCommentUC    usecases.AddCommentExecutor
	editCommentUC   usecases.EditCommentExecutor
	deleteCommentUC usecases.DeleteCommentExecutor
	logger          logger.Interface
}

func NewCommentHandler(
	listCommentsUC usecases.ListCommentsExecutor,
	addCommentUC usecases.AddCommentExecutor,
	editCommentUC usecases.EditCommentExecutor,
	deleteCommentUC usecases.DeleteCommentExecutor,
	logger logger.Interface,
) *CommentHandler {
	return &CommentHandler{
		listCommentsUC:  listCommentsUC,
		addCommentUC:    addCommentUC,
		editCommentUC:   editCommentUC,
		deleteCommentUC: deleteCommentUC,
		logger:          logger,
	}
}

// ListComments godoc
// @Summary List comments
// @Description List the comment thread of a ticket
// @Security Bearer
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse{data=[]dto.CommentResponse} "Comments"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /tickets/{id}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	userID, role, ticketID, ok := actorAndTicket(c)
	if !ok {
		return
	}

	result, err := h.listCommentsUC.Execute(c.Request.Context(), usecases.ListCommentsQuery{
		TicketID:  ticketID,
		ActorID:   userID,
		ActorRole: role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// AddComment godoc
// @Summary Add comment
// @Description Add a markdown comment to a ticket
// @Security Bearer
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param request body CommentRequest true "Comment"
// @Success 201 {object} utils.APIResponse{data=dto.CommentResponse} "Comment added"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /tickets/{id}/comments [post]
func (h *CommentHandler) AddComment(c *gin.Context) {
	userID, role, ticketID, ok := actorAndTicket(c)
	if !ok {
		return
	}

	var req CommentRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.addCommentUC.Execute(c.Request.Context(), usecases.AddCommentCommand{
		TicketID:   ticketID,
		AuthorID:   userID,
		AuthorRole: role,
		Content:    req.Content,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}

// EditComment godoc
// @Summary Edit comment
// @Description Edit the caller's own comment
// @Security Bearer
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param request body CommentRequest true "Comment"
// @Success 200 {object} utils.APIResponse{data=dto.CommentResponse} "Comment updated"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /comments/{id} [patch]
func (h *CommentHandler) EditComment(c *gin.Context) {
	userID, _, err := middleware.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	commentID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CommentRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.editCommentUC.Execute(c.Request.Context(), usecases.EditCommentCommand{
		CommentID: commentID,
		ActorID:   userID,
		Content:   req.Content,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Comment updated", result)
}

// DeleteComment godoc
// @Summary Delete comment
// @Description Delete a comment (author or admin)
// @Security Bearer
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Success 204 "No content"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, role, err := middleware.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	commentID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteCommentUC.Execute(c.Request.Context(), usecases.DeleteCommentCommand{
		CommentID: commentID,
		ActorID:   userID,
		ActorRole: role,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
