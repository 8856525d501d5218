package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/procureflow/procureflow/internal/shared/biztime"
)

const maxCommentLength = 5000

type Comment struct {
	id        uint
	ticketID  uint
	authorID  uint
	content   string
	edited    bool
	createdAt time.Time
	updatedAt time.Time
}

func validateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("comment content is required")
	}
	if len(content) > maxCommentLength {
		return fmt.Errorf("comment content exceeds maximum length of %d characters", maxCommentLength)
	}
	return nil
}

func NewComment(ticketID, authorID uint, content string) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Comment{
		ticketID:  ticketID,
		authorID:  authorID,
		content:   content,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructComment(id, ticketID, authorID uint, content string, edited bool, createdAt, updatedAt time.Time) *Comment {
	return &Comment{
		id:        id,
		ticketID:  ticketID,
		authorID:  authorID,
		content:   content,
		edited:    edited,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (c *Comment) ID() uint             { return c.id }
func (c *Comment) TicketID() uint       { return c.ticketID }
func (c *Comment) AuthorID() uint       { return c.authorID }
func (c *Comment) Content() string      { return c.content }
func (c *Comment) IsEdited() bool       { return c.edited }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
func (c *Comment) UpdatedAt() time.Time { return c.updatedAt }

func (c *Comment) SetID(id uint) {
	c.id = id
}

func (c *Comment) IsAuthor(userID uint) bool {
	return c.authorID == userID
}

// Edit replaces the content and marks the comment edited.
func (c *Comment) Edit(content string) error {
	if err := validateCommentContent(content); err != nil {
		return err
	}
	c.content = content
	c.edited = true
	c.updatedAt = biztime.NowUTC()
	return nil
}
