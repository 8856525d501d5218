package usecases

import (
	"context"

	"github.com/procureflow/procureflow/internal/domain/canvass"
	"github.com/procureflow/procureflow/internal/shared/db"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

// PruneCanvassUseCase keeps the current revision plus the newest
// retainRevisions superseded ones. Files still referenced by a kept revision
// survive.
type PruneCanvassUseCase struct {
	canvassRepo     canvass.Repository
	store           ObjectStore
	txManager       db.Transactor
	retainRevisions int
	logger          logger.Interface
}

func NewPruneCanvassUseCase(
	canvassRepo canvass.Repository,
	store ObjectStore,
	txManager db.Transactor,
	retainRevisions int,
	logger logger.Interface,
) *PruneCanvassUseCase {
	if retainRevisions < 0 {
		retainRevisions = 0
	}
	return &PruneCanvassUseCase{
		canvassRepo:     canvassRepo,
		store:           store,
		txManager:       txManager,
		retainRevisions: retainRevisions,
		logger:          logger,
	}
}

// Execute returns the number of revisions deleted.
func (uc *PruneCanvassUseCase) Execute(ctx context.Context, ticketID uint) (int, error) {
	var paths []string
	var deleted int

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		forms, err := uc.canvassRepo.ListByTicket(txCtx, ticketID)
		if err != nil {
			return err
		}

		var keep, superseded []*canvass.Form
		for _, f := range forms {
			if f.IsCurrent() {
				keep = append(keep, f)
			} else {
				superseded = append(superseded, f)
			}
		}
		if len(superseded) <= uc.retainRevisions {
			return nil
		}

		keep = append(keep, superseded[:uc.retainRevisions]...)
		pruned := superseded[uc.retainRevisions:]

		ids := make([]uint, 0, len(pruned))
		for _, f := range pruned {
			ids = append(ids, f.ID())
		}
		if err := uc.canvassRepo.DeleteForms(txCtx, ids); err != nil {
			return err
		}
		paths = canvass.PathsToRemove(pruned, keep)
		deleted = len(pruned)
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, p := range paths {
		if err := uc.store.Remove(ctx, p); err != nil {
			uc.logger.Warnw("failed to remove pruned canvass object", "ticket_id", ticketID, "path", p, "error", err)
		}
	}
	if deleted > 0 {
		uc.logger.Infow("pruned canvass revisions",
			"ticket_id", ticketID,
			"revisions", deleted,
			"objects", len(paths))
	}
	return deleted, nil
}
