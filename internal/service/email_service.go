package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/tokogitar/tokogitar/internal/config"
	"github.com/tokogitar/tokogitar/internal/constants"
	"github.com/tokogitar/tokogitar/internal/models"
)

// EmailService sends transactional mail over SMTP.
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates the email service.
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendResetCode mails a password reset OTP.
func (s *EmailService) SendResetCode(toEmail, code string) error {
	subject := "Kode OTP Reset Password"
	body := fmt.Sprintf(
		"Kode OTP Anda: %s\n\nKode berlaku selama %d menit dan hanya dapat dipakai satu kali. Jangan bagikan kode ini kepada siapa pun.",
		code, s.resetExpireMinutes(),
	)
	return s.sendTextEmail(toEmail, subject, body)
}

// OrderStatusEmailInput is the order status mail content.
type OrderStatusEmailInput struct {
	OrderNo     string
	Status      string
	TotalAmount int64
	Resi        string
}

// SendOrderStatusEmail notifies the buyer about an order transition.
func (s *EmailService) SendOrderStatusEmail(toEmail string, input OrderStatusEmailInput) error {
	subject := fmt.Sprintf("Pesanan %s: %s", input.OrderNo, statusLabel(input.Status))
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Pesanan %s kini berstatus %s.\n", input.OrderNo, statusLabel(input.Status))
	fmt.Fprintf(&buf, "Total pembayaran: %s\n", models.FormatIDR(input.TotalAmount))
	if strings.TrimSpace(input.Resi) != "" {
		fmt.Fprintf(&buf, "Nomor resi: %s\n", input.Resi)
	}
	buf.WriteString("\nTerima kasih telah berbelanja di Toko Gitar.")
	return s.sendTextEmail(toEmail, subject, buf.String())
}

func statusLabel(status string) string {
	switch status {
	case constants.OrderStatusPending:
		return "Menunggu Pembayaran"
	case constants.OrderStatusDikemas:
		return "Sedang Dikemas"
	case constants.OrderStatusDikirim:
		return "Dalam Pengiriman"
	case constants.OrderStatusSelesai:
		return "Selesai"
	case constants.OrderStatusDibatalkan:
		return "Dibatalkan"
	default:
		return status
	}
}

func (s *EmailService) resetExpireMinutes() int {
	if s.cfg != nil && s.cfg.ResetCode.ExpireMinutes > 0 {
		return s.cfg.ResetCode.ExpireMinutes
	}
	return 10
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseSSL {
		return normalizeEmailSendError(sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
	}
	if s.cfg.UseTLS {
		return normalizeEmailSendError(sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
	}
	return normalizeEmailSendError(sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return ErrEmailRecipientRejected
	}
	return err
}

func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	if message == "" {
		return false
	}
	directKeywords := []string{
		"no such recipient",
		"no such user",
		"recipient not found",
		"recipient address rejected",
		"invalid recipient",
		"user unknown",
		"unknown user",
		"unknown mailbox",
		"mailbox unavailable",
	}
	for _, keyword := range directKeywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	if strings.Contains(message, "550") {
		hints := []string{"recipient", "user", "mailbox", "address", "rcpt"}
		for _, hint := range hints {
			if strings.Contains(message, hint) {
				return true
			}
		}
	}
	return false
}
