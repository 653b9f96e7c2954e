package mail

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/smtp"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminapath/lumina-api/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testEmailConfig() config.EmailConfig {
	return config.EmailConfig{
		SMTPHost:   "smtp.gmail.com",
		SMTPPort:   587,
		Username:   "reports@example.com",
		Password:   "app-password",
		SenderName: "LuminaPath AI System",
	}
}

func sampleMessage() Message {
	return Message{
		Recipient:   "jane.roe@example.com",
		PatientName: "Jane Roe",
		HTMLBody:    "<html><body>report</body></html>",
		TextBody:    PlainTextBody("Jane Roe"),
	}
}

func TestNewSMTPMailerRequiresLogger(t *testing.T) {
	t.Parallel()

	_, err := NewSMTPMailer(nil, testEmailConfig())
	assert.Error(t, err)
}

func TestSendNotConfigured(t *testing.T) {
	t.Parallel()

	cfg := testEmailConfig()
	cfg.Username = ""
	cfg.Password = ""

	m, err := NewSMTPMailer(testLogger(), cfg)
	require.NoError(t, err)

	err = m.Send(context.Background(), sampleMessage())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSendRequiresRecipient(t *testing.T) {
	t.Parallel()

	m, err := NewSMTPMailer(testLogger(), testEmailConfig(), WithSendFunc(
		func(string, smtp.Auth, string, []string, []byte) error {
			t.Fatal("send should not be called")
			return nil
		}))
	require.NoError(t, err)

	msg := sampleMessage()
	msg.Recipient = ""
	assert.Error(t, m.Send(context.Background(), msg))
}

func TestSendBuildsMultipartMessage(t *testing.T) {
	t.Parallel()

	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotBody string
	)

	m, err := NewSMTPMailer(testLogger(), testEmailConfig(), WithSendFunc(
		func(addr string, _ smtp.Auth, from string, to []string, body []byte) error {
			gotAddr = addr
			gotFrom = from
			gotTo = to
			gotBody = string(body)
			return nil
		}))
	require.NoError(t, err)

	require.NoError(t, m.Send(context.Background(), sampleMessage()))

	assert.Equal(t, "smtp.gmail.com:587", gotAddr)
	assert.Equal(t, "reports@example.com", gotFrom)
	assert.Equal(t, []string{"jane.roe@example.com"}, gotTo)
	assert.Contains(t, gotBody, "From: LuminaPath AI System <reports@example.com>")
	assert.Contains(t, gotBody, "To: jane.roe@example.com")
	assert.Contains(t, gotBody, "Jane Roe")
	assert.Contains(t, gotBody, "multipart/alternative")
	assert.Contains(t, gotBody, "text/plain; charset=utf-8")
	assert.Contains(t, gotBody, "text/html; charset=utf-8")
	assert.Contains(t, gotBody, "<html><body>report</body></html>")
	assert.Contains(t, gotBody, "Thank you for using LuminaPath")
}

func TestSendAuthFailure(t *testing.T) {
	t.Parallel()

	m, err := NewSMTPMailer(testLogger(), testEmailConfig(), WithSendFunc(
		func(string, smtp.Auth, string, []string, []byte) error {
			return &textproto.Error{Code: 535, Msg: "5.7.8 Username and Password not accepted"}
		}))
	require.NoError(t, err)

	err = m.Send(context.Background(), sampleMessage())
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestSendDeliveryFailure(t *testing.T) {
	t.Parallel()

	m, err := NewSMTPMailer(testLogger(), testEmailConfig(), WithSendFunc(
		func(string, smtp.Auth, string, []string, []byte) error {
			return errors.New("connection reset")
		}))
	require.NoError(t, err)

	err = m.Send(context.Background(), sampleMessage())
	assert.ErrorIs(t, err, ErrSendFailed)
	assert.NotErrorIs(t, err, ErrAuthFailed)
}

func TestSendCancelledContext(t *testing.T) {
	t.Parallel()

	m, err := NewSMTPMailer(testLogger(), testEmailConfig(), WithSendFunc(
		func(string, smtp.Auth, string, []string, []byte) error {
			t.Fatal("send should not be called")
			return nil
		}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = m.Send(ctx, sampleMessage())
	assert.ErrorIs(t, err, ErrSendFailed)
}

func TestIsAuthError(t *testing.T) {
	t.Parallel()

	assert.True(t, isAuthError(&textproto.Error{Code: 535, Msg: "rejected"}))
	assert.True(t, isAuthError(&textproto.Error{Code: 530, Msg: "auth required"}))
	assert.True(t, isAuthError(errors.New("535 5.7.8 bad credentials")))
	assert.False(t, isAuthError(errors.New("connection refused")))
}

func TestPlainTextBody(t *testing.T) {
	t.Parallel()

	body := PlainTextBody("Jane Roe")
	assert.Contains(t, body, "Dear Jane Roe,")
	assert.Contains(t, body, "LuminaPath Team")
}
