package service

import (
	"context"

	"github.com/avolkova/reviewhub/internal/domain"
	"github.com/avolkova/reviewhub/internal/validate"
)

// CatalogService handles the category and genre taxonomy.
type CatalogService struct {
	categories domain.CategoryRepository
	genres     domain.GenreRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(categories domain.CategoryRepository, genres domain.GenreRepository) *CatalogService {
	return &CatalogService{categories: categories, genres: genres}
}

type tagInput struct {
	Name string `validate:"required,max=256"`
	Slug string `validate:"required,max=50,slug"`
}

// CreateCategory adds a category. Slugs are unique across categories.
func (s *CatalogService) CreateCategory(ctx context.Context, name, slug string) (*domain.Category, error) {
	if err := validate.Struct(tagInput{Name: name, Slug: slug}); err != nil {
		return nil, err
	}
	c := &domain.Category{Name: name, Slug: slug}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCategories returns all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// DeleteCategory removes a category by slug; its titles survive with the
// category reference cleared.
func (s *CatalogService) DeleteCategory(ctx context.Context, slug string) error {
	return s.categories.Delete(ctx, slug)
}

// CreateGenre adds a genre. Slugs are unique across genres.
func (s *CatalogService) CreateGenre(ctx context.Context, name, slug string) (*domain.Genre, error) {
	if err := validate.Struct(tagInput{Name: name, Slug: slug}); err != nil {
		return nil, err
	}
	g := &domain.Genre{Name: name, Slug: slug}
	if err := s.genres.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// ListGenres returns all genres.
func (s *CatalogService) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	return s.genres.List(ctx)
}

// DeleteGenre removes a genre by slug; tagged titles merely lose the tag.
func (s *CatalogService) DeleteGenre(ctx context.Context, slug string) error {
	return s.genres.Delete(ctx, slug)
}
