package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrConstraint      = errors.New("constraint violation")
	ErrDuplicateReview = errors.New("a review for this title already exists")
	ErrUsernameTaken   = errors.New("username already registered")
	ErrEmailTaken      = errors.New("email already registered")
	ErrSlugTaken       = errors.New("slug already exists")
	ErrReservedName    = errors.New("username is reserved")
	ErrInvalidCode     = errors.New("invalid confirmation code")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDelivery        = errors.New("confirmation mail delivery failed")
)
