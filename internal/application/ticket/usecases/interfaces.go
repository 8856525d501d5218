package usecases

import (
	"context"

	"github.com/procureflow/procureflow/internal/application/ticket/dto"
	"github.com/procureflow/procureflow/internal/domain/notification"
	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
	"github.com/procureflow/procureflow/internal/domain/user"
)

// NotificationDispatcher delivers committed notifications to realtime
// subscribers. It must not block the caller.
type NotificationDispatcher interface {
	Created(notifications ...*notification.Notification)
}

type TransitionPolicy interface {
	CanDecide(role user.Role, stage vo.TicketStatus, decision vo.ApprovalStatus) (bool, error)
}

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.CreateTicketResponse, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*dto.TicketListResponse, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDetail, error)
}

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeStatusCommand) (*dto.StatusChangeResponse, error)
}

type RecordReviewExecutor interface {
	Execute(ctx context.Context, cmd RecordReviewCommand) (*dto.StatusChangeResponse, error)
}

type UpdateApprovalStatusExecutor interface {
	Execute(ctx context.Context, cmd UpdateApprovalStatusCommand) (*dto.ReviewerResponse, error)
}

type RevertApprovalStatusExecutor interface {
	Execute(ctx context.Context, cmd RevertApprovalStatusCommand) (*dto.ReviewerResponse, error)
}

type ListStatusHistoryExecutor interface {
	Execute(ctx context.Context, query ListStatusHistoryQuery) ([]*dto.StatusHistoryEntry, error)
}

type ShareTicketExecutor interface {
	Execute(ctx context.Context, cmd ShareTicketCommand) (*dto.ShareTicketResponse, error)
}

type AddCommentExecutor interface {
	Execute(ctx context.Context, cmd AddCommentCommand) (*dto.CommentResponse, error)
}

type EditCommentExecutor interface {
	Execute(ctx context.Context, cmd EditCommentCommand) (*dto.CommentResponse, error)
}

type DeleteCommentExecutor interface {
	Execute(ctx context.Context, cmd DeleteCommentCommand) error
}

type ListCommentsExecutor interface {
	Execute(ctx context.Context, query ListCommentsQuery) ([]*dto.CommentResponse, error)
}
