package domain

import "context"

// Category is a named, slugged classification a title belongs to (at most
// one per title). Deleting a category detaches its titles instead of
// removing them.
type Category struct {
	ID   int64
	Name string
	Slug string
}

// Genre is a named, slugged tag; a title may carry any number of genres.
type Genre struct {
	ID   int64
	Name string
	Slug string
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Delete(ctx context.Context, slug string) error
}

// GenreRepository defines persistence operations for genres.
type GenreRepository interface {
	Create(ctx context.Context, genre *Genre) error
	// GetBySlugs resolves every slug or fails with ErrNotFound if any slug
	// is unknown. The result preserves the requested order.
	GetBySlugs(ctx context.Context, slugs []string) ([]Genre, error)
	List(ctx context.Context) ([]Genre, error)
	Delete(ctx context.Context, slug string) error
}
