package mail

import (
	"context"
	"log/slog"
)

// LogMailer writes messages to the log instead of sending them. Used in
// development when no SMTP relay is configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, body string) error {
	slog.Info("mail (not sent, log mailer active)",
		"to", to, "subject", subject, "body", body)
	return nil
}
