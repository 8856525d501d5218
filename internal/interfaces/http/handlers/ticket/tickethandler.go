package ticket

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/procureflow/procureflow/internal/application/ticket/usecases"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/interfaces/http/middleware"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
	"github.com/procureflow/procureflow/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC   usecases.CreateTicketExecutor
	listTicketsUC    usecases.ListTicketsExecutor
	getTicketUC      usecases.GetTicketExecutor
	changeStatusUC   usecases.ChangeStatusExecutor
	recordReviewUC   usecases.RecordReviewExecutor
	updateApprovalUC usecases.UpdateApprovalStatusExecutor
	revertApprovalUC usecases.RevertApprovalStatusExecutor
	historyUC        usecases.ListStatusHistoryExecutor
	shareTicketUC    usecases.ShareTicketExecutor
	logger           logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	getTicketUC usecases.GetTicketExecutor,
	changeStatusUC usecases.ChangeStatusExecutor,
	recordReviewUC usecases.RecordReviewExecutor,
	updateApprovalUC usecases.UpdateApprovalStatusExecutor,
	revertApprovalUC usecases.RevertApprovalStatusExecutor,
	historyUC usecases.ListStatusHistoryExecutor,
	shareTicketUC usecases.ShareTicketExecutor,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC:   createTicketUC,
		listTicketsUC:    listTicketsUC,
		getTicketUC:      getTicketUC,
		changeStatusUC:   changeStatusUC,
		recordReviewUC:   recordReviewUC,
		updateApprovalUC: updateApprovalUC,
		revertApprovalUC: revertApprovalUC,
		historyUC:        historyUC,
		shareTicketUC:    shareTicketUC,
		logger:           logger,
	}
}

// CreateTicket godoc
// @Summary Create ticket
// @Description Open a procurement ticket and assign its reviewers
// @Security Bearer
// @Tags tickets
// @Accept json
// @Produce json
// @Param request body CreateTicketRequest true "Ticket data"
// @Success 201 {object} utils.APIResponse{data=dto.CreateTicketResponse} "Ticket created"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	userID, _, err := middleware.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateTicketRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(userID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// ListTickets godoc
// @Summary List tickets
// @Description List tickets visible to the caller, newest first
// @Security Bearer
// @Tags tickets
// @Accept json
// @Produce json
// @Param status query string false "Filter by status"
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=dto.TicketListResponse} "Tickets"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	userID, role, err := middleware.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.listTicketsUC.Execute(c.Request.Context(), usecases.ListTicketsQuery{
		ActorID:   userID,
		ActorRole: role,
		Status:    c.Query("status"),
		Page:      p.Page,
		PageSize:  p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetTicket godoc
// @Summary Get ticket
// @Description Get ticket details with reviewers, shares, current canvass and available actions
// @Security Bearer
// @Tags tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDetail} "Ticket"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	userID, role, ticketID, ok := actorAndTicket(c)
	if !ok {
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{
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

// ChangeStatus godoc
// @Summary Change ticket status
// @Description Move a ticket to another workflow status
// @Security Bearer
// @Tags tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param request body ChangeStatusRequest true "Target status"
// @Success 200 {object} utils.APIResponse{data=dto.StatusChangeResponse} "Status changed"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Failure 409 {object} utils.APIResponse "Conflict"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /tickets/{id}/status [patch]
func (h *TicketHandler) ChangeStatus(c *gin.Context) {
	userID, role, ticketID, ok := actorAndTicket(c)
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for change status", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.changeStatusUC.Execute(c.Request.Context(), usecases.ChangeStatusCommand{
		TicketID:  ticketID,
		ActorID:   userID,
		ActorRole: role,
		Status:    req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket status updated successfully", result)
}

// RecordReview godoc
// @Summary Record review decision
// @Description Record the caller's review or approval decision
// @Security Bearer
// @Tags tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param request body RecordReviewRequest true "Decision"
// @Success 200 {object} utils.APIResponse{data=dto.StatusChangeResponse} "Decision recorded"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Failure 409 {object} utils.APIResponse "Conflict"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /tickets/{id}/reviews [post]
func (h *TicketHandler) RecordReview(c *gin.Context) {
	userID, role, ticketID, ok := actorAndTicket(c)
	if !ok {
		return
	}

	var req RecordReviewRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.recordReviewUC.Execute(c.Request.Context(), usecases.RecordReviewCommand{
		TicketID:   ticketID,
		ReviewerID: userID,
		Role:       role,
		Decision:   req.Decision,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Review recorded", result)
}

// UpdateApproval godoc
// @Summary Update own approval status
// @Description Set the caller's approval status without a workflow transition
// @Security Bearer
// @Tags tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param request body UpdateApprovalRequest true "Approval status"
// @Success 200 {object} utils.APIResponse{data=dto.ReviewerResponse} "Approval updated"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /tickets/{id}/approvals/me [put]
func (h *TicketHandler) UpdateApproval(c *gin.Context) {
	userID, _, ticketID, ok := actorAndTicket(c)
	if !ok {
		return
	}

	var req UpdateApprovalRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateApprovalUC.Execute(c.Request.Context(), usecases.UpdateApprovalStatusCommand{
		TicketID:   ticketID,
		ReviewerID: userID,
		Status:     req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Approval status updated", result)
}

// RevertApproval godoc
// @Summary Revert own approval status
// @Description Reset the caller's approval status to pending
// @Security Bearer
// @Tags tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse{data=dto.ReviewerResponse} "Approval reverted"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /tickets/{id}/approvals/me [delete]
func (h *TicketHandler) RevertApproval(c *gin.Context) {
	userID, _, ticketID, ok := actorAndTicket(c)
	if !ok {
		return
	}

	result, err := h.revertApprovalUC.Execute(c.Request.Context(), usecases.RevertApprovalStatusCommand{
		TicketID:   ticketID,
		ReviewerID: userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Approval status reverted", result)
}

// ListStatusHistory godoc
// @Summary List status history
// @Description List every status change of a ticket, oldest first
// @Security Bearer
// @Tags tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse{data=[]dto.StatusHistoryEntry} "History"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /tickets/{id}/history [get]
func (h *TicketHandler) ListStatusHistory(c *gin.Context) {
	userID, role, ticketID, ok := actorAndTicket(c)
	if !ok {
		return
	}

	result, err := h.historyUC.Execute(c.Request.Context(), usecases.ListStatusHistoryQuery{
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

// ShareTicket godoc
// @Summary Share ticket
// @Description Share a ticket with other users; partial success returns 200 with per-user results
// @Security Bearer
// @Tags tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param request body ShareTicketRequest true "Target users"
// @Success 200 {object} utils.APIResponse{data=dto.ShareTicketResponse} "Share results"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Failure 409 {object} utils.APIResponse "Conflict"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /tickets/{id}/shares [post]
func (h *TicketHandler) ShareTicket(c *gin.Context) {
	userID, role, ticketID, ok := actorAndTicket(c)
	if !ok {
		return
	}

	var req ShareTicketRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.shareTicketUC.Execute(c.Request.Context(), usecases.ShareTicketCommand{
		TicketID:  ticketID,
		ActorID:   userID,
		ActorRole: role,
		UserIDs:   req.UserIDs,
	})
	if err != nil {
		if result != nil {
			utils.ErrorResponseWithData(c, err, result)
			return
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket shared", result)
}

func parseTicketID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid ticket ID")
	}
	return uint(id), nil
}

// actorAndTicket writes the error response itself and reports false when
// the caller or the ticket id is missing.
func actorAndTicket(c *gin.Context) (uint, user.Role, uint, bool) {
	userID, role, err := middleware.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, "", 0, false
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, "", 0, false
	}
	return userID, role, ticketID, true
}
