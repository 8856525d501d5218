package usecases

import (
	"context"

	"github.com/procureflow/procureflow/internal/application/canvass/dto"
	ticketusecases "github.com/procureflow/procureflow/internal/application/ticket/usecases"
	"github.com/procureflow/procureflow/internal/domain/canvass"
	"github.com/procureflow/procureflow/internal/shared/db"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

// SubmitCanvassUseCase stores a complete canvass and starts the review
// stage. Every slot must be uploaded; nothing is carried over.
type SubmitCanvassUseCase struct {
	writer *canvassWriter
}

func NewSubmitCanvassUseCase(
	workflow *ticketusecases.Workflow,
	canvassRepo canvass.Repository,
	store ObjectStore,
	txManager db.Transactor,
	dispatcher NotificationDispatcher,
	pruner RevisionPruner,
	maxFileSize int64,
	logger logger.Interface,
) *SubmitCanvassUseCase {
	return &SubmitCanvassUseCase{
		writer: &canvassWriter{
			mode:        modeSubmit,
			workflow:    workflow,
			canvassRepo: canvassRepo,
			store:       store,
			txManager:   txManager,
			dispatcher:  dispatcher,
			pruner:      pruner,
			maxFileSize: maxFileSize,
			logger:      logger,
		},
	}
}

func (uc *SubmitCanvassUseCase) Execute(ctx context.Context, cmd SubmitCanvassCommand) (*dto.CanvassResponse, error) {
	return uc.writer.execute(ctx, cmd)
}

// UpdateCanvassUseCase stores a new revision where missing slots carry the
// current file forward. It is also allowed while submissions are reviewed.
type UpdateCanvassUseCase struct {
	writer *canvassWriter
}

func NewUpdateCanvassUseCase(
	workflow *ticketusecases.Workflow,
	canvassRepo canvass.Repository,
	store ObjectStore,
	txManager db.Transactor,
	dispatcher NotificationDispatcher,
	pruner RevisionPruner,
	maxFileSize int64,
	logger logger.Interface,
) *UpdateCanvassUseCase {
	return &UpdateCanvassUseCase{
		writer: &canvassWriter{
			mode:        modeUpdate,
			workflow:    workflow,
			canvassRepo: canvassRepo,
			store:       store,
			txManager:   txManager,
			dispatcher:  dispatcher,
			pruner:      pruner,
			maxFileSize: maxFileSize,
			logger:      logger,
		},
	}
}

func (uc *UpdateCanvassUseCase) Execute(ctx context.Context, cmd SubmitCanvassCommand) (*dto.CanvassResponse, error) {
	return uc.writer.execute(ctx, cmd)
}
