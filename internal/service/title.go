package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avolkova/reviewhub/internal/domain"
	"github.com/avolkova/reviewhub/internal/validate"
)

// TitleService handles titles and their category/genre bindings.
type TitleService struct {
	titles     domain.TitleRepository
	categories domain.CategoryRepository
	genres     domain.GenreRepository
}

// NewTitleService creates a new TitleService.
func NewTitleService(titles domain.TitleRepository, categories domain.CategoryRepository, genres domain.GenreRepository) *TitleService {
	return &TitleService{titles: titles, categories: categories, genres: genres}
}

// TitleInput is the payload for title creation. Category and Genres carry
// slugs, resolved here.
type TitleInput struct {
	Name        string   `validate:"required,max=256"`
	Year        int      `validate:"min=0"`
	Description string
	Category    string   `validate:"omitempty,slug"`
	Genres      []string `validate:"omitempty,dive,slug"`
}

// TitlePatch is a partial update; nil fields are left unchanged.
type TitlePatch struct {
	Name        *string `validate:"omitempty,max=256"`
	Year        *int
	Description *string
	Category    *string   `validate:"omitempty,slug"`
	Genres      *[]string `validate:"omitempty,dive,slug"`
}

// Create adds a title after checking the year bound and resolving slugs.
func (s *TitleService) Create(ctx context.Context, in TitleInput) (*domain.Title, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if err := checkYear(in.Year); err != nil {
		return nil, err
	}

	title := &domain.Title{
		Name:        in.Name,
		Year:        in.Year,
		Description: in.Description,
	}

	if in.Category != "" {
		cat, err := s.resolveCategory(ctx, in.Category)
		if err != nil {
			return nil, err
		}
		title.Category = cat
	}
	genres, err := s.resolveGenres(ctx, in.Genres)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titles.Create(ctx, title); err != nil {
		return nil, err
	}
	return s.titles.GetByID(ctx, title.ID)
}

// Get returns one title with its computed rating.
func (s *TitleService) Get(ctx context.Context, id int64) (*domain.Title, error) {
	return s.titles.GetByID(ctx, id)
}

// List returns titles matching the filter, each with its computed rating.
func (s *TitleService) List(ctx context.Context, filter domain.TitleFilter) ([]domain.Title, error) {
	return s.titles.List(ctx, filter)
}

// Update applies a partial update, revalidating the year bound and the
// slug bindings for any field the patch touches.
func (s *TitleService) Update(ctx context.Context, id int64, patch TitlePatch) (*domain.Title, error) {
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}

	title, err := s.titles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		title.Name = *patch.Name
	}
	if patch.Year != nil {
		if err := checkYear(*patch.Year); err != nil {
			return nil, err
		}
		title.Year = *patch.Year
	}
	if patch.Description != nil {
		title.Description = *patch.Description
	}
	if patch.Category != nil {
		if *patch.Category == "" {
			title.Category = nil
		} else {
			cat, err := s.resolveCategory(ctx, *patch.Category)
			if err != nil {
				return nil, err
			}
			title.Category = cat
		}
	}
	if patch.Genres != nil {
		genres, err := s.resolveGenres(ctx, *patch.Genres)
		if err != nil {
			return nil, err
		}
		title.Genres = genres
	}

	if err := s.titles.Update(ctx, title); err != nil {
		return nil, err
	}
	return s.titles.GetByID(ctx, id)
}

// Delete removes a title; its reviews and their comments go with it.
func (s *TitleService) Delete(ctx context.Context, id int64) error {
	return s.titles.Delete(ctx, id)
}

func (s *TitleService) resolveCategory(ctx context.Context, slug string) (*domain.Category, error) {
	cat, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown category %q", domain.ErrConstraint, slug)
		}
		return nil, err
	}
	return cat, nil
}

func (s *TitleService) resolveGenres(ctx context.Context, slugs []string) ([]domain.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	genres, err := s.genres.GetBySlugs(ctx, slugs)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", domain.ErrConstraint, err)
		}
		return nil, err
	}
	return genres, nil
}

// checkYear enforces the release-year bound: non-negative and no later than
// the current calendar year.
func checkYear(year int) error {
	if year < 0 || year > time.Now().Year() {
		return fmt.Errorf("%w: year %d is out of range", domain.ErrConstraint, year)
	}
	return nil
}
