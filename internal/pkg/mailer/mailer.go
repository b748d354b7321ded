package mailer

import (
	"bytes"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"

	"github.com/eventra/eventra-api/internal/config"
)

// Mailer sends certificate mail. Delivery is best-effort; callers log
// failures and move on.
type Mailer interface {
	SendCertificate(to, studentName, eventTitle string, pdf []byte) error
	SendOTP(to, code string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTP(conf *config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(conf.Host, conf.Port, conf.Username, conf.Password),
		from:   conf.From,
	}
}

func (m *SMTPMailer) SendCertificate(to, studentName, eventTitle string, pdf []byte) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Your certificate for %s", eventTitle))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nThanks for attending %s. Your certificate is attached.\n", studentName, eventTitle))
	msg.Attach("certificate.pdf", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := io.Copy(w, bytes.NewReader(pdf))
		return err
	}))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("m.dialer.DialAndSend -> %w", err)
	}

	return nil
}

func (m *SMTPMailer) SendOTP(to, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your password reset code")
	msg.SetBody("text/plain", fmt.Sprintf("Your one-time code is %s. It expires in 10 minutes.\n", code))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("m.dialer.DialAndSend -> %w", err)
	}

	return nil
}
