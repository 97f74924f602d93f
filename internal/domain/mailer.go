package domain

import "context"

// Mailer delivers transactional mail. Send blocks until the message is
// accepted for delivery; a non-nil error means the caller must treat the
// whole operation as failed rather than continue silently.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
