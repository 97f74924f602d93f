package domain

import "context"

// Title is a reviewable work (book, film, album and so on).
//
// Rating is never stored: repositories compute it on every read as the mean
// of the scores of the title's reviews, and leave it nil when the title has
// no reviews yet.
type Title struct {
	ID          int64
	Name        string
	Year        int
	Description string
	Category    *Category
	Genres      []Genre
	Rating      *float64
}

// TitleFilter narrows a title listing. Zero values mean "no constraint".
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Year         *int
	Name         string
}

// TitleRepository defines persistence operations for titles and their genre
// associations.
type TitleRepository interface {
	// Create inserts the title and its genre association rows atomically.
	Create(ctx context.Context, title *Title) error
	GetByID(ctx context.Context, id int64) (*Title, error)
	List(ctx context.Context, filter TitleFilter) ([]Title, error)
	// Update rewrites the title row and replaces its genre associations
	// atomically.
	Update(ctx context.Context, title *Title) error
	Delete(ctx context.Context, id int64) error
}
