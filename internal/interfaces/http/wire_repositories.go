package http

import (
	"gorm.io/gorm"

	"github.com/procureflow/procureflow/internal/domain/canvass"
	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/domain/ticket"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo         user.Repository
	ticketRepo       ticket.Repository
	reviewerRepo     ticket.ReviewerRepository
	shareRepo        ticket.ShareRepository
	historyRepo      ticket.HistoryRepository
	commentRepo      ticket.CommentRepository
	canvassRepo      canvass.Repository
	notificationRepo notification.Repository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB) *repositories {
	return &repositories{
		userRepo:         repository.NewUserRepository(db),
		ticketRepo:       repository.NewTicketRepository(db),
		reviewerRepo:     repository.NewTicketReviewerRepository(db),
		shareRepo:        repository.NewTicketShareRepository(db),
		historyRepo:      repository.NewTicketHistoryRepository(db),
		commentRepo:      repository.NewTicketCommentRepository(db),
		canvassRepo:      repository.NewCanvassRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
	}
}
