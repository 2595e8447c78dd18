package email

import (
	"crypto/tls"
	"errors"
	"fmt"

	"stagematch_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// SMTPProvider реализует Provider поверх gomail
type SMTPProvider struct {
	cfg *config.EmailConfig
}

// NewSMTPProvider создает новый SMTP провайдер
func NewSMTPProvider(cfg *config.EmailConfig) *SMTPProvider {
	return &SMTPProvider{cfg: cfg}
}

// Send отправляет письмо
func (p *SMTPProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(p.cfg.FromEmail, p.cfg.FromName))
	m.SetHeader("To", email.To)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.TextBody)
	if email.HTMLBody != "" {
		m.AddAlternative("text/html", email.HTMLBody)
	}

	d := gomail.NewDialer(p.cfg.SMTPHost, p.cfg.SMTPPort, p.cfg.SMTPUsername, p.cfg.SMTPPassword)
	if p.cfg.UseTLS {
		d.TLSConfig = &tls.Config{ServerName: p.cfg.SMTPHost}
	}

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", email.To, err)
	}
	return nil
}

// Validate проверяет конфигурацию провайдера
func (p *SMTPProvider) Validate() error {
	if p.cfg.SMTPHost == "" {
		return errors.New("smtp host is not configured")
	}
	if p.cfg.FromEmail == "" {
		return errors.New("from email is not configured")
	}
	return nil
}
