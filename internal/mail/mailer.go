// Package mail sends the best-effort lead notification. Delivery failures are
// logged by the caller and never surfaced to the submitting client.
package mail

import (
	"fmt"
	"net/smtp"

	"renomapro/internal/domain/leads"
)

// Mailer is satisfied by SMTPMailer and by test doubles.
type Mailer interface {
	NotifyNewLead(lead *leads.Lead) error
}

type SMTPMailer struct {
	Host     string
	Port     string
	From     string
	Password string
	To       string
}

// NewSMTPMailer returns nil when no SMTP host is configured; callers skip
// sending entirely in that case.
func NewSMTPMailer(host, port, from, password, to string) *SMTPMailer {
	if host == "" {
		return nil
	}
	if to == "" {
		to = from
	}
	return &SMTPMailer{Host: host, Port: port, From: from, Password: password, To: to}
}

func (m *SMTPMailer) NotifyNewLead(lead *leads.Lead) error {
	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)

	subject := "Nowe zgłoszenie"
	body := fmt.Sprintf("Nowe zgłoszenie:\n%s\n%s\n%s", lead.Name, lead.Phone, lead.Description)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + m.From + "\r\n" +
		"To: " + m.To + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	return smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{m.To}, message)
}
