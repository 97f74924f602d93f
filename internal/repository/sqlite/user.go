package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avolkova/reviewhub/internal/domain"
)

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

const userColumns = `id, username, email, first_name, last_name, bio, role,
	is_superuser, confirmation_hash, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, email, first_name, last_name, bio, role,
		 is_superuser, confirmation_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Username, user.Email, user.FirstName, user.LastName, user.Bio,
		user.Role, user.Superuser, user.ConfirmationHash, now, now,
	)
	if err != nil {
		return mapUserConstraint(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getWhere(ctx, "username = ?", username)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getWhere(ctx, "email = ?", email)
}

func (r *UserRepository) getWhere(ctx context.Context, where string, arg any) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where, arg,
	).Scan(&user.ID, &user.Username, &user.Email, &user.FirstName,
		&user.LastName, &user.Bio, &user.Role, &user.Superuser,
		&user.ConfirmationHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName,
			&u.LastName, &u.Bio, &u.Role, &u.Superuser,
			&u.ConfirmationHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET username = ?, email = ?, first_name = ?,
		 last_name = ?, bio = ?, role = ?, updated_at = ? WHERE id = ?`,
		user.Username, user.Email, user.FirstName, user.LastName, user.Bio,
		user.Role, now, user.ID,
	)
	if err != nil {
		return mapUserConstraint(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) SetConfirmationHash(ctx context.Context, id int64, hash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET confirmation_hash = ?, updated_at = ? WHERE id = ?`,
		hash, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("set confirmation hash: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapUserConstraint(err error) error {
	switch {
	case isUniqueViolation(err, "users.username"):
		return domain.ErrUsernameTaken
	case isUniqueViolation(err, "users.email"):
		return domain.ErrEmailTaken
	case isConstraintError(err):
		return fmt.Errorf("%w: %v", domain.ErrConstraint, err)
	default:
		return fmt.Errorf("write user: %w", err)
	}
}
