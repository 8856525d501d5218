package usecases

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/procureflow/procureflow/internal/application/canvass/dto"
	ticketusecases "github.com/procureflow/procureflow/internal/application/ticket/usecases"
	"github.com/procureflow/procureflow/internal/domain/canvass"
	"github.com/procureflow/procureflow/internal/domain/notification"
	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/infrastructure/storage"
	"github.com/procureflow/procureflow/internal/shared/biztime"
	"github.com/procureflow/procureflow/internal/shared/db"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/goroutine"
	"github.com/procureflow/procureflow/internal/shared/logger"
	"github.com/procureflow/procureflow/internal/shared/utils"
)

const pruneTimeout = 30 * time.Second

type FileUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// SubmitCanvassCommand carries both a first submission and an update. On
// update a slot missing from Files keeps the current revision's file unless
// it is listed in Removed.
type SubmitCanvassCommand struct {
	TicketID            uint
	SubmitterID         uint
	SubmitterRole       user.Role
	RecommendedSupplier string
	LeadTimeDays        int
	TotalAmount         float64
	PaymentTerms        string
	ReceivedDate        string
	Files               map[canvass.AttachmentType]*FileUpload
	Removed             []canvass.AttachmentType
}

type writeMode int

const (
	modeSubmit writeMode = iota
	modeUpdate
)

func (m writeMode) String() string {
	if m == modeUpdate {
		return "update"
	}
	return "submit"
}

// canvassWriter stores a new revision. Files are uploaded first; the
// revision swap, the ticket transition and the notifications then commit
// together, and uploads are removed again if that transaction fails.
type canvassWriter struct {
	mode        writeMode
	workflow    *ticketusecases.Workflow
	canvassRepo canvass.Repository
	store       ObjectStore
	txManager   db.Transactor
	dispatcher  NotificationDispatcher
	pruner      RevisionPruner
	maxFileSize int64
	logger      logger.Interface
}

func (w *canvassWriter) execute(ctx context.Context, cmd SubmitCanvassCommand) (*dto.CanvassResponse, error) {
	w.logger.Infow("executing canvass "+w.mode.String()+" use case",
		"ticket_id", cmd.TicketID,
		"submitter_id", cmd.SubmitterID,
		"files", len(cmd.Files))

	terms, err := w.parseTerms(cmd)
	if err != nil {
		return nil, err
	}
	if err := w.validateFiles(cmd); err != nil {
		return nil, err
	}

	state, err := w.workflow.LoadVisible(ctx, cmd.TicketID, cmd.SubmitterID, cmd.SubmitterRole)
	if err != nil {
		return nil, err
	}
	if err := w.checkAllowed(state, cmd.SubmitterID); err != nil {
		return nil, err
	}
	current, err := w.canvassRepo.GetCurrent(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if err := w.checkSlots(current, cmd); err != nil {
		return nil, err
	}

	uploads, uploadedPaths, err := w.upload(ctx, cmd)
	if err != nil {
		return nil, err
	}

	var (
		form    *canvass.Form
		created []*notification.Notification
	)
	err = w.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		state, err := w.workflow.Load(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}
		if err := w.checkAllowed(state, cmd.SubmitterID); err != nil {
			return err
		}

		current, err := w.canvassRepo.GetCurrent(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}
		base := current
		var removed []canvass.AttachmentType
		if w.mode == modeSubmit {
			base = nil
		} else {
			removed = cmd.Removed
		}
		attachments, err := canvass.ResolveAttachments(base, uploads, removed)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}

		revision, err := w.canvassRepo.MaxRevision(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}
		form, err = canvass.NewForm(cmd.TicketID, cmd.SubmitterID, revision+1, terms, attachments)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}

		if current != nil {
			if err := w.canvassRepo.Supersede(txCtx, current.ID(), biztime.NowUTC()); err != nil {
				return err
			}
		}
		if err := w.canvassRepo.Create(txCtx, form); err != nil {
			return err
		}

		stage := state.Ticket.Status()
		verb := "updated the canvass"
		if stage.AcceptsCanvass() {
			change, err := w.workflow.StartCanvass(txCtx, state, cmd.SubmitterID, cmd.SubmitterRole)
			if err != nil {
				return err
			}
			stage = change.NewStatus()
			verb = "submitted a canvass"
		}

		recipients, err := w.workflow.NextActors(txCtx, state, stage)
		if err != nil {
			return err
		}
		message := fmt.Sprintf("%s %s for %s: %s, total %s. Status: %s.",
			w.workflow.ActorName(txCtx, cmd.SubmitterID),
			verb,
			state.Ticket.ItemName(),
			terms.RecommendedSupplier,
			utils.FormatAmount(terms.TotalAmount),
			stage.Label())
		created, err = w.workflow.Notify(txCtx, cmd.TicketID, recipients, message)
		return err
	})
	if err != nil {
		w.logger.Errorw("failed to store canvass revision, removing uploads",
			"ticket_id", cmd.TicketID,
			"uploads", len(uploadedPaths),
			"error", err)
		w.removeObjects(ctx, uploadedPaths)
		return nil, err
	}

	w.dispatcher.Created(created...)
	w.pruneAsync(cmd.TicketID)

	w.logger.Infow("canvass revision stored",
		"ticket_id", cmd.TicketID,
		"revision", form.Revision(),
		"quotations", form.QuotationCount())

	return dto.ToCanvassResponse(form), nil
}

func (w *canvassWriter) parseTerms(cmd SubmitCanvassCommand) (canvass.Terms, error) {
	received, err := biztime.ParseDate(cmd.ReceivedDate)
	if err != nil {
		return canvass.Terms{}, errors.NewValidationError("received date must be in YYYY-MM-DD format")
	}
	terms := canvass.Terms{
		RecommendedSupplier: strings.TrimSpace(cmd.RecommendedSupplier),
		LeadTimeDays:        cmd.LeadTimeDays,
		TotalAmount:         cmd.TotalAmount,
		PaymentTerms:        strings.TrimSpace(cmd.PaymentTerms),
		ReceivedDate:        received,
	}
	if err := terms.Validate(); err != nil {
		return canvass.Terms{}, errors.NewValidationError(err.Error())
	}
	return terms, nil
}

func (w *canvassWriter) validateFiles(cmd SubmitCanvassCommand) error {
	for kind, f := range cmd.Files {
		if !kind.IsValid() {
			return errors.NewValidationError(fmt.Sprintf("unknown attachment slot %s", kind))
		}
		if f == nil || f.Reader == nil || f.Size <= 0 {
			return errors.NewValidationError(fmt.Sprintf("attachment %s is empty", kind))
		}
		if w.maxFileSize > 0 && f.Size > w.maxFileSize {
			return errors.NewValidationError(fmt.Sprintf("attachment %s exceeds the %d MB limit", kind, w.maxFileSize>>20))
		}
	}
	for _, kind := range cmd.Removed {
		if !kind.IsValid() {
			return errors.NewValidationError(fmt.Sprintf("unknown attachment slot %s", kind))
		}
	}
	return nil
}

func (w *canvassWriter) checkAllowed(state *ticketusecases.TicketState, submitterID uint) error {
	t := state.Ticket
	if !t.IsCreator(submitterID) {
		return errors.NewForbiddenError("only the ticket creator can submit the canvass")
	}
	status := t.Status()
	if status.AcceptsCanvass() {
		return nil
	}
	if w.mode == modeUpdate && status == vo.StatusForReviewOfSubmissions {
		return nil
	}
	return errors.NewBadRequestError(fmt.Sprintf("the canvass cannot be changed while the ticket is %s", status.Label()))
}

// checkSlots validates the resulting slot set before anything is uploaded.
func (w *canvassWriter) checkSlots(current *canvass.Form, cmd SubmitCanvassCommand) error {
	filled := make(map[canvass.AttachmentType]bool)
	if w.mode == modeUpdate {
		if current == nil {
			return errors.NewBadRequestError("there is no canvass to update yet")
		}
		for _, a := range current.Attachments() {
			filled[a.Type()] = true
		}
		for _, kind := range cmd.Removed {
			delete(filled, kind)
		}
	}
	for kind := range cmd.Files {
		filled[kind] = true
	}

	if !filled[canvass.AttachmentCanvassSheet] {
		return errors.NewValidationError("canvass sheet is required")
	}
	quotations := 0
	for kind := range filled {
		if kind.IsQuotation() {
			quotations++
		}
	}
	if quotations < 1 || quotations > canvass.MaxQuotations {
		return errors.NewValidationError(fmt.Sprintf("between 1 and %d quotations are required", canvass.MaxQuotations))
	}
	return nil
}

func (w *canvassWriter) upload(ctx context.Context, cmd SubmitCanvassCommand) (map[canvass.AttachmentType]*canvass.Attachment, []string, error) {
	uploads := make(map[canvass.AttachmentType]*canvass.Attachment, len(cmd.Files))
	paths := make([]string, 0, len(cmd.Files))

	for _, kind := range canvass.SlotTypes() {
		f, ok := cmd.Files[kind]
		if !ok {
			continue
		}
		path, err := storage.CanvassObjectPath(cmd.TicketID, f.FileName)
		if err != nil {
			w.removeObjects(ctx, paths)
			return nil, nil, errors.NewInternalError("failed to name canvass object")
		}
		url, err := w.store.Upload(ctx, path, f.Reader, f.Size, f.ContentType)
		if err != nil {
			w.logger.Errorw("failed to upload canvass file", "ticket_id", cmd.TicketID, "slot", kind, "error", err)
			w.removeObjects(ctx, paths)
			return nil, nil, errors.NewInternalError("failed to upload canvass file")
		}
		paths = append(paths, path)

		a, err := canvass.NewAttachment(kind, url, path, f.ContentType, f.Size)
		if err != nil {
			w.removeObjects(ctx, paths)
			return nil, nil, errors.NewValidationError(err.Error())
		}
		uploads[kind] = a
	}
	return uploads, paths, nil
}

func (w *canvassWriter) removeObjects(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := w.store.Remove(ctx, p); err != nil {
			w.logger.Warnw("failed to remove canvass object", "path", p, "error", err)
		}
	}
}

func (w *canvassWriter) pruneAsync(ticketID uint) {
	if w.pruner == nil {
		return
	}
	goroutine.SafeGo(w.logger, "canvass-prune", func() {
		ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
		defer cancel()
		if _, err := w.pruner.Execute(ctx, ticketID); err != nil {
			w.logger.Warnw("failed to prune canvass revisions", "ticket_id", ticketID, "error", err)
		}
	})
}
