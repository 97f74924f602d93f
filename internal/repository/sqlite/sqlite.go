// Package sqlite implements the domain repositories on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/avolkova/reviewhub/internal/domain"
	"github.com/avolkova/reviewhub/internal/repository/sqlite/migrations"
)

// DB wraps the SQLite connection and hands out repository instances.
type DB struct {
	sqlDB *sql.DB
}

var _ domain.Database = (*DB)(nil)

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign key enforcement; foreign keys carry the
// cascade rules the schema relies on.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// A single connection serializes writers; SQLite cannot do better.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{sqlDB: db}, nil
}

// Migrate applies any unapplied schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, db.sqlDB)
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.sqlDB.Close()
}

// Users returns the user repository.
func (db *DB) Users() *UserRepository { return &UserRepository{db: db.sqlDB} }

// Categories returns the category repository.
func (db *DB) Categories() *CategoryRepository { return &CategoryRepository{db: db.sqlDB} }

// Genres returns the genre repository.
func (db *DB) Genres() *GenreRepository { return &GenreRepository{db: db.sqlDB} }

// Titles returns the title repository.
func (db *DB) Titles() *TitleRepository { return &TitleRepository{db: db.sqlDB} }

// Reviews returns the review repository.
func (db *DB) Reviews() *ReviewRepository { return &ReviewRepository{db: db.sqlDB} }

// Comments returns the comment repository.
func (db *DB) Comments() *CommentRepository { return &CommentRepository{db: db.sqlDB} }

// Importer returns the offline bulk-import surface.
func (db *DB) Importer() *Importer { return &Importer{db: db.sqlDB} }

// isUniqueViolation reports whether err is a violation of the unique
// constraint covering the given column or index (e.g. "users.username").
func isUniqueViolation(err error, column string) bool {
	return err != nil &&
		strings.Contains(err.Error(), "UNIQUE constraint failed") &&
		strings.Contains(err.Error(), column)
}

// isConstraintError reports whether err is any SQLite constraint failure
// (unique, foreign key, check).
func isConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}
