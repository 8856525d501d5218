package notification

import (
	"context"
	"time"

	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/biztime"
	"github.com/procureflow/procureflow/internal/shared/goroutine"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

const dispatchTimeout = 10 * time.Second

type EventPublisher interface {
	PublishNotificationEvent(ctx context.Context, event notification.Event) error
}

type Mailer interface {
	SendNotificationEmail(to, recipientName, message, link string) error
}

type RecipientLookup interface {
	GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error)
}

// Dispatcher fans committed notification changes out to realtime
// subscribers and, when a mailer is configured, to email. It runs in the
// background and never reports failures to the caller.
type Dispatcher struct {
	publisher EventPublisher
	users     RecipientLookup
	mailer    Mailer
	logger    logger.Interface
}

// NewDispatcher accepts a nil mailer to disable email copies.
func NewDispatcher(publisher EventPublisher, users RecipientLookup, mailer Mailer, log logger.Interface) *Dispatcher {
	return &Dispatcher{
		publisher: publisher,
		users:     users,
		mailer:    mailer,
		logger:    log,
	}
}

func (d *Dispatcher) Created(notifications ...*notification.Notification) {
	if len(notifications) == 0 {
		return
	}
	goroutine.SafeGo(d.logger, "notification-dispatch-created", func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		now := biztime.NowUTC()
		for _, n := range notifications {
			d.publish(ctx, notification.NewEvent(notification.EventCreated, n, now))
		}
		if d.mailer != nil {
			d.sendEmails(ctx, notifications)
		}
	})
}

func (d *Dispatcher) Updated(n *notification.Notification) {
	d.publishAsync(notification.NewEvent(notification.EventUpdated, n, biztime.NowUTC()))
}

func (d *Dispatcher) Deleted(n *notification.Notification) {
	d.publishAsync(notification.NewEvent(notification.EventDeleted, n, biztime.NowUTC()))
}

func (d *Dispatcher) AllRead(userID uint) {
	d.publishAsync(notification.NewAllReadEvent(userID, biztime.NowUTC()))
}

func (d *Dispatcher) publishAsync(event notification.Event) {
	goroutine.SafeGo(d.logger, "notification-dispatch-"+string(event.Type), func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		d.publish(ctx, event)
	})
}

func (d *Dispatcher) publish(ctx context.Context, event notification.Event) {
	if err := d.publisher.PublishNotificationEvent(ctx, event); err != nil {
		d.logger.Warnw("failed to publish notification event",
			"type", event.Type,
			"user_id", event.UserID,
			"error", err,
		)
	}
}

func (d *Dispatcher) sendEmails(ctx context.Context, notifications []*notification.Notification) {
	ids := make([]uint, 0, len(notifications))
	for _, n := range notifications {
		ids = append(ids, n.UserID())
	}
	recipients, err := d.users.GetByIDs(ctx, ids)
	if err != nil {
		d.logger.Warnw("failed to load email recipients", "error", err)
		return
	}
	byID := make(map[uint]*user.User, len(recipients))
	for _, u := range recipients {
		byID[u.ID()] = u
	}

	for _, n := range notifications {
		u, ok := byID[n.UserID()]
		if !ok {
			continue
		}
		if err := d.mailer.SendNotificationEmail(u.Email(), u.Name(), n.Message(), n.Link()); err != nil {
			d.logger.Warnw("failed to send notification email",
				"user_id", u.ID(),
				"notification_id", n.ID(),
				"error", err,
			)
		}
	}
}
