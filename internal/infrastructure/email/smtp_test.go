package email

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/procureflow/procureflow/internal/shared/config"
)

type recordingSender struct {
	sent []*gomail.Message
	err  error
}

func (r *recordingSender) DialAndSend(m ...*gomail.Message) error {
	r.sent = append(r.sent, m...)
	return r.err
}

func newTestMailer(s sender) *SMTPNotificationMailer {
	m := NewSMTPNotificationMailer(&config.EmailConfig{
		FromAddress: "noreply@procureflow.local",
		FromName:    "Procureflow",
	}, "https://procure.example.com/")
	m.dialer = s
	return m
}

func TestSendNotificationEmail(t *testing.T) {
	rec := &recordingSender{}
	mailer := newTestMailer(rec)

	err := mailer.SendNotificationEmail("ana@example.com", "Ana", "A ticket was shared with you: <Laptop>", "/tickets/12")
	require.NoError(t, err)
	require.Len(t, rec.sent, 1)

	msg := rec.sent[0]
	assert.Equal(t, []string{"ana@example.com"}, msg.GetHeader("To"))
	assert.True(t, strings.HasPrefix(msg.GetHeader("Subject")[0], "[Procureflow] A ticket was shared"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	body := buf.String()
	assert.Contains(t, body, "https://procure.example.com/tickets/12")
	assert.Contains(t, body, "&lt;Laptop&gt;")
}

func TestSendNotificationEmail_Error(t *testing.T) {
	mailer := newTestMailer(&recordingSender{err: errors.New("dial tcp: refused")})
	err := mailer.SendNotificationEmail("ana@example.com", "Ana", "hello", "")
	assert.ErrorContains(t, err, "failed to send email")
}

func TestSubject_Truncates(t *testing.T) {
	s := subject(strings.Repeat("x", 100) + "\nsecond line")
	assert.Len(t, s, len("[Procureflow] ")+78)
	assert.True(t, strings.HasSuffix(s, "..."))
}
