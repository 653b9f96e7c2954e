// Package mail delivers rendered reports to patients over SMTP. The Mailer
// interface is the seam the HTTP layer depends on; SMTPMailer is the real
// transport.
package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"

	"github.com/luminapath/lumina-api/internal/config"
	"github.com/luminapath/lumina-api/internal/redact"
)

// ErrNotConfigured indicates sender credentials are missing from the
// configuration so no delivery can be attempted.
var ErrNotConfigured = errors.New("mail transport is not configured")

// ErrAuthFailed indicates the SMTP server rejected the sender credentials.
var ErrAuthFailed = errors.New("smtp authentication failed")

// ErrSendFailed indicates delivery failed after authentication.
var ErrSendFailed = errors.New("failed to send email")

// Message is a rendered report ready for delivery. HTMLBody carries the
// formatted report; TextBody is the fallback for clients without HTML.
type Message struct {
	Recipient   string
	PatientName string
	Subject     string
	HTMLBody    string
	TextBody    string
}

// Mailer sends report messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// sendFunc matches net/smtp.SendMail and is swapped out under test.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends messages through an authenticated SMTP relay with
// STARTTLS, the way Gmail app passwords require.
type SMTPMailer struct {
	logger *slog.Logger
	cfg    config.EmailConfig
	send   sendFunc
}

// SMTPOption customizes an SMTPMailer.
type SMTPOption func(*SMTPMailer)

// WithSendFunc overrides the underlying SMTP send call.
func WithSendFunc(fn sendFunc) SMTPOption {
	return func(m *SMTPMailer) {
		m.send = fn
	}
}

// NewSMTPMailer creates an SMTPMailer. Missing credentials do not fail
// construction; Send reports ErrNotConfigured instead, mirroring how
// disabled explanation providers behave.
func NewSMTPMailer(logger *slog.Logger, cfg config.EmailConfig, opts ...SMTPOption) (*SMTPMailer, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	m := &SMTPMailer{
		logger: logger.With(slog.String("component", "smtp_mailer")),
		cfg:    cfg,
		send:   smtp.SendMail,
	}
	for _, opt := range opts {
		opt(m)
	}

	if !m.configured() {
		m.logger.Warn("email credentials not set, report delivery disabled")
	}
	return m, nil
}

func (m *SMTPMailer) configured() bool {
	return m.cfg.Username != "" && m.cfg.Password != ""
}

// Send delivers the message. The context is consulted before dialing;
// net/smtp does not support mid-send cancellation.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if !m.configured() {
		return ErrNotConfigured
	}
	if msg.Recipient == "" {
		return errors.New("recipient address is required")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	body, err := buildMIME(m.cfg, msg)
	if err != nil {
		return fmt.Errorf("failed to build email: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)

	if err := m.send(addr, auth, m.cfg.Username, []string{msg.Recipient}, body); err != nil {
		if isAuthError(err) {
			m.logger.Error("smtp authentication rejected",
				slog.String("host", m.cfg.SMTPHost))
			return fmt.Errorf("%w: %s", ErrAuthFailed, redact.Error(err))
		}
		m.logger.Error("smtp delivery failed",
			slog.String("host", m.cfg.SMTPHost),
			slog.String("error", redact.Error(err)))
		return fmt.Errorf("%w: %s", ErrSendFailed, redact.Error(err))
	}

	m.logger.Info("report email sent",
		slog.String("recipient", redact.String(msg.Recipient)))
	return nil
}

// isAuthError recognizes SMTP authentication rejections. Servers signal
// these with a 535 reply (Gmail) or the generic 530/534 auth codes.
func isAuthError(err error) bool {
	var proto *textproto.Error
	if errors.As(err, &proto) {
		switch proto.Code {
		case 530, 534, 535:
			return true
		}
	}
	msg := err.Error()
	return strings.Contains(msg, "535 ") || strings.Contains(msg, "username and password not accepted")
}

// buildMIME assembles a multipart/alternative message with a plain-text
// part followed by the HTML part, so HTML-capable clients prefer the
// formatted report.
func buildMIME(cfg config.EmailConfig, msg Message) ([]byte, error) {
	var buf strings.Builder
	mw := multipart.NewWriter(&buf)

	subject := msg.Subject
	if subject == "" {
		subject = fmt.Sprintf("Your Retinal Analysis Report - %s", msg.PatientName)
	}

	fmt.Fprintf(&buf, "From: %s <%s>\r\n", cfg.SenderName, cfg.Username)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.Recipient)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n", mw.Boundary())
	fmt.Fprintf(&buf, "\r\n")

	text, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := text.Write([]byte(msg.TextBody)); err != nil {
		return nil, err
	}

	htmlPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := htmlPart.Write([]byte(msg.HTMLBody)); err != nil {
		return nil, err
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// PlainTextBody is the fallback body attached alongside every HTML report.
func PlainTextBody(patientName string) string {
	return fmt.Sprintf(`Dear %s,

Thank you for using LuminaPath for your retinal analysis.

Your detailed retinal health report is ready. Please view this email in an
HTML-capable email client to see the full formatted report.

If you have any questions, please consult with your ophthalmologist for
professional medical advice.

Best regards,
LuminaPath Team

---
This is an automated email. Please do not reply directly to this message.
`, patientName)
}
