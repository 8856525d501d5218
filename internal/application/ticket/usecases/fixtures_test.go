package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/procureflow/procureflow/internal/domain/canvass"
	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/infrastructure/permission"
	"github.com/procureflow/procureflow/internal/infrastructure/persistence/models"
	"github.com/procureflow/procureflow/internal/infrastructure/repository"
	"github.com/procureflow/procureflow/internal/shared/db"
	"github.com/procureflow/procureflow/internal/shared/logger"
	"github.com/procureflow/procureflow/internal/shared/services/markdown"
)

type recordingDispatcher struct {
	mu      sync.Mutex
	created []*notification.Notification
}

func (d *recordingDispatcher) Created(ns ...*notification.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.created = append(d.created, ns...)
}

func (d *recordingDispatcher) recipients() []uint {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]uint, 0, len(d.created))
	for _, n := range d.created {
		out = append(out, n.UserID())
	}
	return out
}

func (d *recordingDispatcher) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.created = nil
}

type fixture struct {
	gdb           *gorm.DB
	users         *repository.UserRepository
	tickets       *repository.TicketRepository
	reviewers     *repository.TicketReviewerRepository
	shares        *repository.TicketShareRepository
	history       *repository.TicketHistoryRepository
	comments      *repository.TicketCommentRepository
	canvasses     *repository.CanvassRepository
	notifications *repository.NotificationRepository
	txManager     db.Transactor
	workflow      *Workflow
	policy        *permission.TransitionPolicy
	dispatcher    *recordingDispatcher
	renderer      markdown.Renderer
	log           logger.Interface
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(models.All()...))

	log := logger.NewNopLogger()
	policy, err := permission.NewTransitionPolicy(nil, log)
	require.NoError(t, err)
	require.NoError(t, policy.SeedDefaults())

	f := &fixture{
		gdb:           gdb,
		users:         repository.NewUserRepository(gdb),
		tickets:       repository.NewTicketRepository(gdb),
		reviewers:     repository.NewTicketReviewerRepository(gdb),
		shares:        repository.NewTicketShareRepository(gdb),
		history:       repository.NewTicketHistoryRepository(gdb),
		comments:      repository.NewTicketCommentRepository(gdb),
		canvasses:     repository.NewCanvassRepository(gdb),
		notifications: repository.NewNotificationRepository(gdb),
		txManager:     db.NewTransactionManager(gdb),
		policy:        policy,
		dispatcher:    &recordingDispatcher{},
		renderer:      markdown.NewRenderer(),
		log:           log,
	}
	f.workflow = NewWorkflow(f.tickets, f.reviewers, f.shares, f.history, f.users, f.notifications)
	return f
}

func (f *fixture) user(t *testing.T, name string, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(name, name+"@example.com", role, "hash")
	require.NoError(t, err)
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) createTicketUseCase() *CreateTicketUseCase {
	return NewCreateTicketUseCase(f.tickets, f.reviewers, f.history, f.users, f.workflow, f.txManager, f.dispatcher, f.log)
}

func (f *fixture) createTicket(t *testing.T, creator *user.User, reviewers ...*user.User) uint {
	t.Helper()
	ids := make([]uint, 0, len(reviewers))
	for _, r := range reviewers {
		ids = append(ids, r.ID())
	}
	resp, err := f.createTicketUseCase().Execute(context.Background(), CreateTicketCommand{
		ItemName:     "Office chairs",
		Description:  "Ergonomic chairs for the new floor",
		Quantity:     12,
		ReceivedDate: "2026-03-02",
		ReviewerIDs:  ids,
		CreatorID:    creator.ID(),
	})
	require.NoError(t, err)
	f.dispatcher.reset()
	return resp.ID
}

// submitCanvass stores a current revision without going through the
// canvass use case.
func (f *fixture) submitCanvass(t *testing.T, ticketID, submitter uint) {
	t.Helper()
	sheet, err := canvass.NewAttachment(canvass.AttachmentCanvassSheet, "http://files/sheet.pdf", "tickets/sheet.pdf", "application/pdf", 10)
	require.NoError(t, err)
	q1, err := canvass.NewAttachment("QUOTATION_1", "http://files/q1.pdf", "tickets/q1.pdf", "application/pdf", 10)
	require.NoError(t, err)
	form, err := canvass.NewForm(ticketID, submitter, 1, canvass.Terms{
		RecommendedSupplier: "Acme",
		LeadTimeDays:        7,
		TotalAmount:         1500,
		PaymentTerms:        "30 days",
		ReceivedDate:        time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
	}, []*canvass.Attachment{sheet, q1})
	require.NoError(t, err)
	require.NoError(t, f.canvasses.Create(context.Background(), form))
}

func (f *fixture) notificationsFor(t *testing.T, userID uint) []*notification.Notification {
	t.Helper()
	list, _, err := f.notifications.List(context.Background(), notification.Filter{UserID: userID, Limit: 100})
	require.NoError(t, err)
	return list
}
