package email

import (
	"fmt"
	"log"
	"net/smtp"

	"clinic-backend/internal/config"
)

// Mailer sends HTML emails. Any returned error means the message was not
// handed off to the mail server.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type SMTPMailer struct {
	config *config.Config
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{config: cfg}
}

func (s *SMTPMailer) Send(toEmail, subject, htmlBody string) error {
	// If SMTP credentials are not set, fall back to logging
	if s.config.SMTP.Email == "" || s.config.SMTP.Password == "" {
		log.Printf("SMTP credentials not set. Mocking email to %s with subject %q", toEmail, subject)
		return nil
	}

	from := s.config.SMTP.From
	if from == "" {
		from = s.config.SMTP.Email
	}
	host := s.config.SMTP.Host
	address := host + ":" + s.config.SMTP.Port

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", from, toEmail, subject)
	mime := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"
	message := []byte(headers + mime + htmlBody)

	auth := smtp.PlainAuth("", s.config.SMTP.Email, s.config.SMTP.Password, host)

	if err := smtp.SendMail(address, auth, from, []string{toEmail}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
