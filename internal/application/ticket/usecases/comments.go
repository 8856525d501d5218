package usecases

import (
	"context"

	"github.com/procureflow/procureflow/internal/application/ticket/dto"
	"github.com/procureflow/procureflow/internal/domain/ticket"
	"github.com/procureflow/procureflow/internal/shared/services/markdown"
)

// commentPresenter renders comments with their author profile and the
// sanitized HTML of the markdown body.
type commentPresenter struct {
	workflow *Workflow
	renderer markdown.Renderer
}

func (p commentPresenter) present(ctx context.Context, comments ...*ticket.Comment) ([]*dto.CommentResponse, error) {
	authorIDs := make([]uint, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.AuthorID())
	}
	users, err := p.workflow.Users(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	idx := dto.NewUserIndex(users)

	out := make([]*dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, dto.ToCommentResponse(c, idx, p.renderer.ToSafeHTML(c.Content())))
	}
	return out, nil
}
