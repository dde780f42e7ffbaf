package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Mailer sends transactional mail. Order status updates are best-effort: a
// failed send is logged, never surfaced to the admin who changed the status.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

type smtpMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		m.cfg.From, to, subject, body,
	)

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)

	err := smtp.SendMail(
		m.cfg.Host+":"+m.cfg.Port,
		auth,
		m.cfg.From,
		[]string{to},
		[]byte(msg),
	)
	if err != nil {
		return errors.Wrapf(err, "failed to send mail to %s", to)
	}

	return nil
}

// noopMailer stands in when SMTP is not configured.
type noopMailer struct{}

func NewNoopMailer() Mailer {
	return noopMailer{}
}

func (noopMailer) Send(to, subject, _ string) error {
	logrus.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
	}).Info("smtp not configured, mail skipped")

	return nil
}
