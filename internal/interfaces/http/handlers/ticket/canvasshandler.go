package ticket

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/procureflow/procureflow/internal/application/canvass/dto"
	"github.com/procureflow/procureflow/internal/application/canvass/usecases"
	"github.com/procureflow/procureflow/internal/domain/canvass"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
	"github.com/procureflow/procureflow/internal/shared/utils"
)

type CanvassHandler struct {
	submitUC        usecases.SubmitCanvassExecutor
	updateUC        usecases.UpdateCanvassExecutor
	getCurrentUC    usecases.GetCurrentCanvassExecutor
	listRevisionsUC usecases.ListCanvassRevisionsExecutor
	logger          logger.Interface
}

func NewCanvassHandler(
	submitUC usecases.SubmitCanvassExecutor,
	updateUC usecases.UpdateCanvassExecutor,
	getCurrentUC usecases.GetCurrentCanvassExecutor,
	listRevisionsUC usecases.ListCanvassRevisionsExecutor,
	logger logger.Interface,
) *CanvassHandler {
	return &CanvassHandler{
		submitUC:        submitUC,
		updateUC:        updateUC,
		getCurrentUC:    getCurrentUC,
		listRevisionsUC: listRevisionsUC,
		logger:          logger,
	}
}

// SubmitCanvass godoc
// @Summary Submit canvass
// @Description Submit a new canvass revision; file slots without a part are empty
// @Security Bearer
// @Tags canvass
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Ticket ID"
// @Param recommended_supplier formData string true "Recommended supplier"
// @Param lead_time_days formData int true "Lead time in days"
// @Param total_amount formData number true "Total amount"
// @Param payment_terms formData string true "Payment terms"
// @Param received_date formData string true "Received date (YYYY-MM-DD)"
// @Param canvass_sheet formData file false "Canvass sheet"
// @Param quotation_1 formData file false "Quotation 1"
// @Param quotation_2 formData file false "Quotation 2"
// @Param quotation_3 formData file false "Quotation 3"
// @Param quotation_4 formData file false "Quotation 4"
// @Success 201 {object} utils.APIResponse{data=dto.CanvassResponse} "Canvass submitted"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Failure 409 {object} utils.APIResponse "Conflict"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /tickets/{id}/canvass [post]
func (h *CanvassHandler) SubmitCanvass(c *gin.Context) {
	h.write(c, h.submitUC.Execute, http.StatusCreated, "Canvass submitted")
}

// UpdateCanvass godoc
// @Summary Update canvass
// @Description Create a revision that keeps the current file for every omitted slot
// @Security Bearer
// @Tags canvass
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Ticket ID"
// @Param recommended_supplier formData string true "Recommended supplier"
// @Param lead_time_days formData int true "Lead time in days"
// @Param total_amount formData number true "Total amount"
// @Param payment_terms formData string true "Payment terms"
// @Param received_date formData string true "Received date (YYYY-MM-DD)"
// @Param canvass_sheet formData file false "Canvass sheet"
// @Param quotation_1 formData file false "Quotation 1"
// @Param quotation_2 formData file false "Quotation 2"
// @Param quotation_3 formData file false "Quotation 3"
// @Param quotation_4 formData file false "Quotation 4"
// @Param removed formData string false "Comma separated slots to clear"
// @Success 200 {object} utils.APIResponse{data=dto.CanvassResponse} "Canvass updated"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Failure 409 {object} utils.APIResponse "Conflict"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /tickets/{id}/canvass [put]
func (h *CanvassHandler) UpdateCanvass(c *gin.Context) {
	h.write(c, h.updateUC.Execute, http.StatusOK, "Canvass updated")
}

func (h *CanvassHandler) write(
	c *gin.Context,
	execute func(ctx context.Context, cmd usecases.SubmitCanvassCommand) (*dto.CanvassResponse, error),
	status int,
	message string,
) {
	userID, role, ticketID, ok := actorAndTicket(c)
	if !ok {
		return
	}

	form, err := parseCanvassForm(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	files, closers, err := openCanvassFiles(c)
	defer closeAll(closers)
	if err != nil {
		h.logger.Warnw("failed to read canvass upload", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := execute(c.Request.Context(), form.toCommand(ticketID, userID, role, files))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, status, message, result)
}

// GetCurrentCanvass godoc
// @Summary Get current canvass
// @Description Get the current canvass revision of a ticket
// @Security Bearer
// @Tags canvass
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse{data=dto.CanvassResponse} "Current canvass"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /tickets/{id}/canvass [get]
func (h *CanvassHandler) GetCurrentCanvass(c *gin.Context) {
	userID, role, ticketID, ok := actorAndTicket(c)
	if !ok {
		return
	}

	result, err := h.getCurrentUC.Execute(c.Request.Context(), usecases.CanvassQuery{
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

// ListCanvassRevisions godoc
// @Summary List canvass revisions
// @Description List retained canvass revisions, newest first
// @Security Bearer
// @Tags canvass
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse{data=[]dto.CanvassResponse} "Revisions"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /tickets/{id}/canvass/revisions [get]
func (h *CanvassHandler) ListCanvassRevisions(c *gin.Context) {
	userID, role, ticketID, ok := actorAndTicket(c)
	if !ok {
		return
	}

	result, err := h.listRevisionsUC.Execute(c.Request.Context(), usecases.CanvassQuery{
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

// openCanvassFiles opens every slot part present in the request. The
// returned closers must be closed by the caller even on error.
func openCanvassFiles(c *gin.Context) (map[canvass.AttachmentType]*usecases.FileUpload, []io.Closer, error) {
	files := make(map[canvass.AttachmentType]*usecases.FileUpload)
	var closers []io.Closer

	mf, err := c.MultipartForm()
	if err != nil {
		return nil, nil, errors.NewValidationError("expected a multipart form", err.Error())
	}

	for _, kind := range canvass.SlotTypes() {
		headers := mf.File[slotField(kind)]
		if len(headers) == 0 {
			continue
		}
		if len(headers) > 1 {
			return nil, closers, errors.NewValidationError("only one file per slot is allowed", slotField(kind))
		}

		f, err := headers[0].Open()
		if err != nil {
			return nil, closers, errors.NewInternalError("failed to read upload")
		}
		closers = append(closers, f)

		files[kind] = &usecases.FileUpload{
			FileName:    headers[0].Filename,
			ContentType: headers[0].Header.Get("Content-Type"),
			Size:        headers[0].Size,
			Reader:      f,
		}
	}
	return files, closers, nil
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		_ = c.Close()
	}
}
