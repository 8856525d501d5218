package email

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/procureflow/procureflow/internal/shared/config"
)

// sender is the part of gomail.Dialer the mailer needs.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotificationMailer sends an email copy of an in-app notification.
type SMTPNotificationMailer struct {
	fromAddress string
	fromName    string
	baseURL     string
	dialer      sender
}

func NewSMTPNotificationMailer(cfg *config.EmailConfig, baseURL string) *SMTPNotificationMailer {
	return &SMTPNotificationMailer{
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		baseURL:     strings.TrimRight(baseURL, "/"),
		dialer:      gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
	}
}

func (s *SMTPNotificationMailer) SendNotificationEmail(to, recipientName, message, link string) error {
	m := s.buildMessage(to, recipientName, message, link)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *SMTPNotificationMailer) buildMessage(to, recipientName, message, link string) *gomail.Message {
	url := ""
	if link != "" {
		url = s.baseURL + link
	}

	plain := fmt.Sprintf("Hi %s,\n\n%s\n", recipientName, message)
	htmlBody := fmt.Sprintf("<html><body><p>Hi %s,</p><p>%s</p>",
		html.EscapeString(recipientName), html.EscapeString(message))
	if url != "" {
		plain += fmt.Sprintf("\nOpen the ticket: %s\n", url)
		htmlBody += fmt.Sprintf(`<p><a href="%s">Open the ticket</a></p>`, html.EscapeString(url))
	}
	htmlBody += "</body></html>"

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.fromAddress, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject(message))
	m.SetBody("text/plain", plain)
	m.AddAlternative("text/html", htmlBody)
	return m
}

// subject is the first line of the message, capped at 78 characters.
func subject(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	if len(line) > 78 {
		line = line[:75] + "..."
	}
	return "[Procureflow] " + line
}
