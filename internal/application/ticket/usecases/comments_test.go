package usecases

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/errors"
)

func TestCommentThread(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pam := f.user(t, "pam", user.RolePurchaser)
	rita := f.user(t, "rita", user.RoleReviewer)
	max := f.user(t, "max", user.RoleManager)
	olga := f.user(t, "olga", user.RolePurchaser)
	adam := f.user(t, "adam", user.RoleAdmin)
	id := f.createTicket(t, pam, rita)

	add := NewAddCommentUseCase(f.workflow, f.comments, f.txManager, f.dispatcher, f.renderer, f.log)
	edit := NewEditCommentUseCase(f.workflow, f.comments, f.renderer, f.log)
	remove := NewDeleteCommentUseCase(f.comments, f.log)
	list := NewListCommentsUseCase(f.workflow, f.comments, f.renderer, f.log)

	c, err := add.Execute(ctx, AddCommentCommand{TicketID: id, AuthorID: rita.ID(), AuthorRole: rita.Role(), Content: "Please attach a **third** quote"})
	require.NoError(t, err)
	assert.Equal(t, "rita", c.Author.Name)
	assert.Contains(t, c.ContentHTML, "<strong>third</strong>")
	assert.False(t, c.Edited)
	assert.ElementsMatch(t, []uint{pam.ID(), max.ID()}, f.dispatcher.recipients())

	_, err = add.Execute(ctx, AddCommentCommand{TicketID: id, AuthorID: olga.ID(), AuthorRole: olga.Role(), Content: "hi"})
	assert.True(t, errors.IsForbiddenError(err))
	_, err = add.Execute(ctx, AddCommentCommand{TicketID: id, AuthorID: pam.ID(), AuthorRole: pam.Role(), Content: "   "})
	assert.True(t, errors.IsValidationError(err))
	_, err = add.Execute(ctx, AddCommentCommand{TicketID: id, AuthorID: pam.ID(), AuthorRole: pam.Role(), Content: strings.Repeat("x", 5001)})
	assert.True(t, errors.IsValidationError(err))

	_, err = edit.Execute(ctx, EditCommentCommand{CommentID: c.ID, ActorID: pam.ID(), Content: "hijack"})
	assert.True(t, errors.IsForbiddenError(err))

	edited, err := edit.Execute(ctx, EditCommentCommand{CommentID: c.ID, ActorID: rita.ID(), Content: "<script>alert(1)</script>updated"})
	require.NoError(t, err)
	assert.True(t, edited.Edited)
	assert.NotContains(t, edited.ContentHTML, "<script>")

	reply, err := add.Execute(ctx, AddCommentCommand{TicketID: id, AuthorID: pam.ID(), AuthorRole: pam.Role(), Content: "Done"})
	require.NoError(t, err)

	comments, err := list.Execute(ctx, ListCommentsQuery{TicketID: id, ActorID: max.ID(), ActorRole: max.Role()})
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, c.ID, comments[0].ID, "oldest first")

	_, err = list.Execute(ctx, ListCommentsQuery{TicketID: id, ActorID: olga.ID(), ActorRole: olga.Role()})
	assert.True(t, errors.IsForbiddenError(err))

	assert.True(t, errors.IsForbiddenError(remove.Execute(ctx, DeleteCommentCommand{CommentID: c.ID, ActorID: pam.ID(), ActorRole: pam.Role()})))
	require.NoError(t, remove.Execute(ctx, DeleteCommentCommand{CommentID: c.ID, ActorID: adam.ID(), ActorRole: adam.Role()}))
	require.NoError(t, remove.Execute(ctx, DeleteCommentCommand{CommentID: reply.ID, ActorID: pam.ID(), ActorRole: pam.Role()}))
	assert.True(t, errors.IsNotFoundError(remove.Execute(ctx, DeleteCommentCommand{CommentID: reply.ID, ActorID: pam.ID(), ActorRole: pam.Role()})))

	comments, err = list.Execute(ctx, ListCommentsQuery{TicketID: id, ActorID: pam.ID(), ActorRole: pam.Role()})
	require.NoError(t, err)
	assert.Empty(t, comments)
}
