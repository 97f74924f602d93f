package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/avolkova/reviewhub/internal/domain"
	"github.com/avolkova/reviewhub/internal/validate"
)

// reservedUsername collides with the self-service profile route and is
// rejected at signup regardless of any other check.
const reservedUsername = "me"

// AuthService owns the identity and credential flow: signup with a mailed
// confirmation code, and the exchange of a verified code for a bearer token.
type AuthService struct {
	users     domain.UserRepository
	mailer    domain.Mailer
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, mailer domain.Mailer, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		mailer:    mailer,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  24 * time.Hour,
	}
}

type signupInput struct {
	Username string `validate:"required,max=150,username"`
	Email    string `validate:"required,max=254,email"`
}

// Signup registers a username/email pair and mails it a confirmation code.
// Repeating a signup with the identical pair is idempotent: the existing
// user gets a fresh code, and the previous one stops working. A username or
// email that is already bound to a different pairing is rejected without
// disclosing the existing pairing.
func (s *AuthService) Signup(ctx context.Context, username, email string) error {
	if err := validate.Struct(signupInput{Username: username, Email: email}); err != nil {
		return err
	}
	if username == reservedUsername {
		return domain.ErrReservedName
	}

	user, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if user.Email != email {
			return domain.ErrUsernameTaken
		}
	case errors.Is(err, domain.ErrNotFound):
		if _, err := s.users.GetByEmail(ctx, email); err == nil {
			return domain.ErrEmailTaken
		} else if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("check email: %w", err)
		}

		user = &domain.User{Username: username, Email: email, Role: domain.RoleUser}
		// Concurrent signups of the same pair race to this insert; the
		// unique constraints pick one winner and the loser surfaces the
		// conflict.
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
	default:
		return fmt.Errorf("check username: %w", err)
	}

	code := uuid.NewString()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash confirmation code: %w", err)
	}
	if err := s.users.SetConfirmationHash(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("store confirmation code: %w", err)
	}

	if err := s.mailer.Send(ctx, user.Email,
		"Your confirmation code",
		"Confirmation code: "+code,
	); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}
	return nil
}

// ExchangeToken verifies a confirmation code and issues a bearer token. The
// code is consumed on success, so a second exchange with the same code fails.
func (s *AuthService) ExchangeToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if user.ConfirmationHash == "" {
		return "", domain.ErrInvalidCode
	}
	if bcrypt.CompareHashAndPassword([]byte(user.ConfirmationHash), []byte(code)) != nil {
		return "", domain.ErrInvalidCode
	}

	if err := s.users.SetConfirmationHash(ctx, user.ID, ""); err != nil {
		return "", fmt.Errorf("consume confirmation code: %w", err)
	}

	return s.issueToken(user)
}

// VerifyToken parses a bearer token and returns the subject username.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", domain.ErrUnauthorized
	}
	return sub, nil
}

// GetUserByUsername loads a user for request authentication.
func (s *AuthService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, username)
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.Username,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
