package service

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer delivers the out-of-band verification codes. Abstracted so
// handler tests don't need an SMTP server
type Mailer interface {
	SendActivationCode(to, name, code string) error
	SendResetCode(to, name, code string) error
}

type MailConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

type SMTPMailer struct {
	cfg MailConfig
}

func NewSMTPMailer(cfg MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendActivationCode(to, name, code string) error {
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Activate your account</h2>
    <p>Hi %s, your activation code is:</p>
    <div style="font-size: 28px; font-weight: bold; letter-spacing: 3px;">%s</div>
    <p>This code will expire in 5 minutes.</p>
  </div>
</body>
</html>`, name, code)

	return m.send(to, "Activate your account", body)
}

func (m *SMTPMailer) SendResetCode(to, name, code string) error {
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Password update requested</h2>
    <p>Hi %s, your verification code is:</p>
    <div style="font-size: 28px; font-weight: bold; letter-spacing: 3px;">%s</div>
    <p>This code will expire in 10 minutes. If you didn't request it you can ignore this mail.</p>
  </div>
</body>
</html>`, name, code)

	return m.send(to, "Confirm your password update", body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	if to == m.cfg.Sender {
		return errors.New("invalid email address")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.Sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Sender, m.cfg.Password)

	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail, %w", err)
	}

	return nil
}
