// Package channels gửi thông báo ra ngoài hệ thống. Hiện chỉ có email qua SMTP.
package channels

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doilonvl/salathai-be-demo/config"

	"gopkg.in/gomail.v2"
)

// ErrSMTPNotConfigured SMTP_HOST để trống
var ErrSMTPNotConfigured = errors.New("smtp host is not configured")

// Email nội dung một email, người gửi / người nhận lấy từ cấu hình
type Email struct {
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// SMTPConfig thông tin kết nối SMTP và địa chỉ mặc định
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	SSL      bool
	FromName string
	FromAddr string
	ToAddr   string
}

// SMTPConfigFrom MAIL_FROM_ADDR / MAIL_TO_ADDR trống thì dùng SMTP_USER
func SMTPConfigFrom(c *config.Configuration) SMTPConfig {
	cfg := SMTPConfig{
		Host:     strings.TrimSpace(c.SMTPHost),
		Port:     c.SMTPPort,
		Username: c.SMTPUser,
		Password: c.SMTPPass,
		SSL:      c.SMTPUseSSL(),
		FromName: c.MailFromName,
		FromAddr: c.MailFromAddr,
		ToAddr:   c.MailToAddr,
	}
	if cfg.FromAddr == "" {
		cfg.FromAddr = c.SMTPUser
	}
	if cfg.ToAddr == "" {
		cfg.ToAddr = c.SMTPUser
	}
	return cfg
}

// EmailSender gửi email qua gomail
type EmailSender struct {
	cfg  SMTPConfig
	send func(m ...*gomail.Message) error
}

// NewEmailSender tạo sender, kết nối SMTP chỉ mở khi gửi
func NewEmailSender(cfg SMTPConfig) *EmailSender {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.SSL = cfg.SSL
	return &EmailSender{cfg: cfg, send: dialer.DialAndSend}
}

// Configured đã có SMTP_HOST chưa
func (s *EmailSender) Configured() bool {
	return s.cfg.Host != ""
}

// Message dựng gomail.Message: From, To, Reply-To, Subject, text + HTML alternative
func (s *EmailSender) Message(e Email) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.cfg.FromAddr, s.cfg.FromName)
	msg.SetHeader("To", s.cfg.ToAddr)
	if e.ReplyTo != "" {
		msg.SetHeader("Reply-To", e.ReplyTo)
	}
	msg.SetHeader("Subject", e.Subject)
	msg.SetBody("text/plain", e.Text)
	msg.AddAlternative("text/html", e.HTML)
	return msg
}

// Send gửi email tới địa chỉ quản trị
func (s *EmailSender) Send(ctx context.Context, e Email) error {
	if !s.Configured() {
		return ErrSMTPNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.send(s.Message(e)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
