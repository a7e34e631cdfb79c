package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type Service interface {
	SendVerificationApproved(ctx context.Context, to, name, role string) error
	SendCustom(ctx context.Context, to, subject, content string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type service struct {
	cfg    Config
	dialer *gomail.Dialer
}

func NewService(cfg Config) Service {
	return &service{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *service) SendVerificationApproved(ctx context.Context, to, name, role string) error {
	subject := "Your account has been verified"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour %s account has been verified by an administrator. You can now use all features of your dashboard.\n",
		name, role,
	)
	return s.SendCustom(ctx, to, subject, body)
}

func (s *service) SendCustom(ctx context.Context, to, subject, content string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", content)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NopService is used when SMTP is not configured.
type NopService struct{}

func (NopService) SendVerificationApproved(ctx context.Context, to, name, role string) error {
	return nil
}

func (NopService) SendCustom(ctx context.Context, to, subject, content string) error {
	return nil
}
