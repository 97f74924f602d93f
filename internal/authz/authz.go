// Package authz decides whether a requester may perform an operation on a
// resource. It is pure: decisions depend only on the arguments, never on
// storage, so the whole permission table is testable in isolation.
package authz

import "github.com/avolkova/reviewhub/internal/domain"

// Capability is the kind of operation being attempted.
type Capability int

const (
	CapRead Capability = iota
	CapCreate
	CapUpdate
	CapDelete
)

// Resource is the kind of entity the operation targets.
type Resource int

const (
	ResourceCategory Resource = iota
	ResourceGenre
	ResourceTitle
	ResourceReview
	ResourceComment
	ResourceUser
)

// Requester describes the caller. The zero value is an anonymous caller.
type Requester struct {
	Authenticated bool
	Username      string
	Role          domain.Role
	Superuser     bool
}

func (r Requester) isAdmin() bool {
	return r.Authenticated && (r.Role == domain.RoleAdmin || r.Superuser)
}

// Can reports whether the requester may perform cap against the resource
// kind as a whole. Object-level ownership rules for reviews and comments
// live in CanOnObject.
func Can(req Requester, cap Capability, res Resource) bool {
	if cap == CapRead {
		// User records are admin-managed even for reads; everything else
		// is world-readable, anonymous callers included.
		if res == ResourceUser {
			return req.isAdmin()
		}
		return true
	}

	switch res {
	case ResourceCategory, ResourceGenre:
		// Deliberately role-only: the superuser flag does not grant
		// taxonomy mutation, and moderators are denied.
		return req.Authenticated && req.Role == domain.RoleAdmin
	case ResourceTitle, ResourceUser:
		return req.isAdmin()
	case ResourceReview, ResourceComment:
		// Any authenticated user may create; ownership is established at
		// creation. Update/delete of an existing instance must go through
		// CanOnObject.
		return req.Authenticated
	}
	return false
}

// CanOnObject reports whether the requester may perform cap on a specific
// instance, given the owner's username. Reviews and comments may be mutated
// by their author, a moderator, or an admin; every other resource falls back
// to the kind-level table.
func CanOnObject(req Requester, cap Capability, res Resource, owner string) bool {
	if cap == CapRead {
		return true
	}
	if !req.Authenticated {
		return false
	}
	switch res {
	case ResourceReview, ResourceComment:
		return req.Username == owner ||
			req.Role == domain.RoleModerator ||
			req.Role == domain.RoleAdmin
	default:
		return Can(req, cap, res)
	}
}

// RequesterFor builds a Requester from a resolved user; a nil user is an
// anonymous caller.
func RequesterFor(u *domain.User) Requester {
	if u == nil {
		return Requester{}
	}
	return Requester{
		Authenticated: true,
		Username:      u.Username,
		Role:          u.Role,
		Superuser:     u.Superuser,
	}
}
