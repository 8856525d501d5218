package usecases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	ticketusecases "github.com/procureflow/procureflow/internal/application/ticket/usecases"
	"github.com/procureflow/procureflow/internal/domain/canvass"
	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/infrastructure/permission"
	"github.com/procureflow/procureflow/internal/infrastructure/persistence/models"
	"github.com/procureflow/procureflow/internal/infrastructure/repository"
	"github.com/procureflow/procureflow/internal/shared/db"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

type memoryObjectStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	removed   []string
	uploadErr error
	failAfter int
	uploads   int
}

func newMemoryObjectStore() *memoryObjectStore {
	return &memoryObjectStore{objects: make(map[string][]byte), failAfter: -1}
}

func (s *memoryObjectStore) Upload(_ context.Context, path string, r io.Reader, _ int64, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil && s.uploads >= s.failAfter {
		return "", s.uploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.uploads++
	s.objects[path] = data
	return "memory://" + path, nil
}

func (s *memoryObjectStore) Remove(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, path)
	s.removed = append(s.removed, path)
	return nil
}

func (s *memoryObjectStore) paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.objects))
	for p := range s.objects {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (s *memoryObjectStore) has(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[path]
	return ok
}

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
	users      *repository.UserRepository
	tickets    *repository.TicketRepository
	reviewers  *repository.TicketReviewerRepository
	history    *repository.TicketHistoryRepository
	canvasses  *repository.CanvassRepository
	txManager  db.Transactor
	workflow   *ticketusecases.Workflow
	policy     *permission.TransitionPolicy
	store      *memoryObjectStore
	dispatcher *recordingDispatcher
	log        logger.Interface
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
		users:      repository.NewUserRepository(gdb),
		tickets:    repository.NewTicketRepository(gdb),
		reviewers:  repository.NewTicketReviewerRepository(gdb),
		history:    repository.NewTicketHistoryRepository(gdb),
		canvasses:  repository.NewCanvassRepository(gdb),
		txManager:  db.NewTransactionManager(gdb),
		policy:     policy,
		store:      newMemoryObjectStore(),
		dispatcher: &recordingDispatcher{},
		log:        log,
	}
	f.workflow = ticketusecases.NewWorkflow(
		f.tickets,
		f.reviewers,
		repository.NewTicketShareRepository(gdb),
		f.history,
		f.users,
		repository.NewNotificationRepository(gdb),
	)
	return f
}

func (f *fixture) user(t *testing.T, name string, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(name, name+"@example.com", role, "hash")
	require.NoError(t, err)
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) createTicket(t *testing.T, creator *user.User, reviewers ...*user.User) uint {
	t.Helper()
	ids := make([]uint, 0, len(reviewers))
	for _, r := range reviewers {
		ids = append(ids, r.ID())
	}
	uc := ticketusecases.NewCreateTicketUseCase(f.tickets, f.reviewers, f.history, f.users, f.workflow, f.txManager, f.dispatcher, f.log)
	resp, err := uc.Execute(context.Background(), ticketusecases.CreateTicketCommand{
		ItemName:     "Laptops",
		Description:  "Developer laptops",
		Quantity:     4,
		ReceivedDate: "2026-04-01",
		ReviewerIDs:  ids,
		CreatorID:    creator.ID(),
	})
	require.NoError(t, err)
	f.dispatcher.reset()
	return resp.ID
}

func (f *fixture) pruner(retain int) *PruneCanvassUseCase {
	return NewPruneCanvassUseCase(f.canvasses, f.store, f.txManager, retain, f.log)
}

func (f *fixture) submitUseCase(pruner RevisionPruner) *SubmitCanvassUseCase {
	return NewSubmitCanvassUseCase(f.workflow, f.canvasses, f.store, f.txManager, f.dispatcher, pruner, 1<<20, f.log)
}

func (f *fixture) updateUseCase(pruner RevisionPruner) *UpdateCanvassUseCase {
	return NewUpdateCanvassUseCase(f.workflow, f.canvasses, f.store, f.txManager, f.dispatcher, pruner, 1<<20, f.log)
}

func file(name string) *FileUpload {
	body := "content of " + name
	return &FileUpload{
		FileName:    name,
		ContentType: "application/pdf",
		Size:        int64(len(body)),
		Reader:      strings.NewReader(body),
	}
}

func quotation(n int) canvass.AttachmentType {
	q, _ := canvass.QuotationType(n)
	return q
}

func submitCommand(ticketID uint, submitter *user.User, quotations int) SubmitCanvassCommand {
	files := map[canvass.AttachmentType]*FileUpload{
		canvass.AttachmentCanvassSheet: file("sheet.pdf"),
	}
	for i := 1; i <= quotations; i++ {
		files[quotation(i)] = file(fmt.Sprintf("quote-%d.pdf", i))
	}
	return SubmitCanvassCommand{
		TicketID:            ticketID,
		SubmitterID:         submitter.ID(),
		SubmitterRole:       submitter.Role(),
		RecommendedSupplier: "Northwind",
		LeadTimeDays:        10,
		TotalAmount:         2450.5,
		PaymentTerms:        "Net 30",
		ReceivedDate:        "2026-04-03",
		Files:               files,
	}
}

type failingCanvassRepository struct {
	canvass.Repository
	createErr error
}

func (r *failingCanvassRepository) Create(ctx context.Context, f *canvass.Form) error {
	return r.createErr
}

var errStorage = errors.New("storage unavailable")
