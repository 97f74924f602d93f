package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avolkova/reviewhub/internal/domain"
	"github.com/avolkova/reviewhub/internal/repository/sqlite"
	"github.com/avolkova/reviewhub/internal/service"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

// captureMailer records outgoing mail so tests can read confirmation codes.
type captureMailer struct {
	sent []string // message bodies, in order
	fail bool
}

func (m *captureMailer) Send(_ context.Context, to, subject, body string) error {
	if m.fail {
		return errors.New("relay refused connection")
	}
	m.sent = append(m.sent, body)
	return nil
}

// lastCode extracts the confirmation code from the most recent message.
func (m *captureMailer) lastCode(t *testing.T) string {
	t.Helper()
	if len(m.sent) == 0 {
		t.Fatal("no mail was sent")
	}
	body := m.sent[len(m.sent)-1]
	code, ok := strings.CutPrefix(body, "Confirmation code: ")
	if !ok {
		t.Fatalf("unexpected mail body: %q", body)
	}
	return code
}

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *captureMailer, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	mailer := &captureMailer{}
	return service.NewAuthService(db.Users(), mailer, testJWTSecret), mailer, db
}

func TestAuthService_Signup_ReservedUsername(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	err := svc.Signup(context.Background(), "me", "me@example.com")
	if !errors.Is(err, domain.ErrReservedName) {
		t.Fatalf("expected ErrReservedName, got %v", err)
	}
}

func TestAuthService_Signup_InvalidUsername(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	err := svc.Signup(context.Background(), "has spaces", "a@example.com")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Signup_IdempotentReissue(t *testing.T) {
	svc, mailer, _ := newTestAuthService(t)
	ctx := context.Background()

	if err := svc.Signup(ctx, "alice", "alice@example.com"); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	firstCode := mailer.lastCode(t)

	if err := svc.Signup(ctx, "alice", "alice@example.com"); err != nil {
		t.Fatalf("repeated signup: %v", err)
	}
	secondCode := mailer.lastCode(t)

	if firstCode == secondCode {
		t.Fatal("expected a fresh confirmation code on re-signup")
	}

	// The superseded code must no longer exchange.
	if _, err := svc.ExchangeToken(ctx, "alice", firstCode); !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("expected stale code to fail with ErrInvalidCode, got %v", err)
	}
	if _, err := svc.ExchangeToken(ctx, "alice", secondCode); err != nil {
		t.Fatalf("expected current code to exchange, got %v", err)
	}
}

func TestAuthService_Signup_Conflicts(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if err := svc.Signup(ctx, "alice", "alice@example.com"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if err := svc.Signup(ctx, "alice", "other@example.com"); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if err := svc.Signup(ctx, "bob", "alice@example.com"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Signup_DeliveryFailurePropagates(t *testing.T) {
	svc, mailer, _ := newTestAuthService(t)
	mailer.fail = true

	err := svc.Signup(context.Background(), "alice", "alice@example.com")
	if !errors.Is(err, domain.ErrDelivery) {
		t.Fatalf("expected ErrDelivery, got %v", err)
	}
}

func TestAuthService_ExchangeToken(t *testing.T) {
	svc, mailer, _ := newTestAuthService(t)
	ctx := context.Background()

	if err := svc.Signup(ctx, "alice", "alice@example.com"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	code := mailer.lastCode(t)

	token, err := svc.ExchangeToken(ctx, "alice", code)
	if err != nil {
		t.Fatalf("ExchangeToken: %v", err)
	}

	username, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if username != "alice" {
		t.Fatalf("expected subject alice, got %q", username)
	}

	// Codes are single-use.
	if _, err := svc.ExchangeToken(ctx, "alice", code); !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("expected consumed code to fail with ErrInvalidCode, got %v", err)
	}
}

func TestAuthService_ExchangeToken_UnknownUser(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.ExchangeToken(context.Background(), "ghost", "whatever")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAuthService_ExchangeToken_WrongCode(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if err := svc.Signup(ctx, "alice", "alice@example.com"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := svc.ExchangeToken(ctx, "alice", "not-the-code"); !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
}

func TestAuthService_VerifyToken_Garbage(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	if _, err := svc.VerifyToken("not.a.jwt"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
