package usecases

import (
	"context"
	"io"

	"github.com/procureflow/procureflow/internal/application/canvass/dto"
	"github.com/procureflow/procureflow/internal/domain/notification"
)

type ObjectStore interface {
	Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, path string) error
}

type NotificationDispatcher interface {
	Created(notifications ...*notification.Notification)
}

// RevisionPruner trims superseded revisions after a new one is committed.
type RevisionPruner interface {
	Execute(ctx context.Context, ticketID uint) (int, error)
}

type SubmitCanvassExecutor interface {
	Execute(ctx context.Context, cmd SubmitCanvassCommand) (*dto.CanvassResponse, error)
}

type UpdateCanvassExecutor interface {
	Execute(ctx context.Context, cmd SubmitCanvassCommand) (*dto.CanvassResponse, error)
}

type GetCurrentCanvassExecutor interface {
	Execute(ctx context.Context, query CanvassQuery) (*dto.CanvassResponse, error)
}

type ListCanvassRevisionsExecutor interface {
	Execute(ctx context.Context, query CanvassQuery) ([]*dto.CanvassResponse, error)
}
