package handler

import (
	"time"

	"github.com/avolkova/reviewhub/internal/domain"
)

// TagDTO is the JSON representation of a category or genre.
type TagDTO struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func toCategoryDTOs(categories []domain.Category) []TagDTO {
	dtos := make([]TagDTO, len(categories))
	for i, c := range categories {
		dtos[i] = TagDTO{Name: c.Name, Slug: c.Slug}
	}
	return dtos
}

func toGenreDTOs(genres []domain.Genre) []TagDTO {
	dtos := make([]TagDTO, len(genres))
	for i, g := range genres {
		dtos[i] = TagDTO{Name: g.Name, Slug: g.Slug}
	}
	return dtos
}

// TitleDTO is the JSON representation of a title, rating included.
type TitleDTO struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Rating      *float64 `json:"rating"`
	Description string   `json:"description"`
	Genre       []TagDTO `json:"genre"`
	Category    *TagDTO  `json:"category"`
}

func toTitleDTO(t *domain.Title) TitleDTO {
	dto := TitleDTO{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       make([]TagDTO, 0, len(t.Genres)),
	}
	for _, g := range t.Genres {
		dto.Genre = append(dto.Genre, TagDTO{Name: g.Name, Slug: g.Slug})
	}
	if t.Category != nil {
		dto.Category = &TagDTO{Name: t.Category.Name, Slug: t.Category.Slug}
	}
	return dto
}

func toTitleDTOs(titles []domain.Title) []TitleDTO {
	dtos := make([]TitleDTO, len(titles))
	for i := range titles {
		dtos[i] = toTitleDTO(&titles[i])
	}
	return dtos
}

// ReviewDTO is the JSON representation of a review.
type ReviewDTO struct {
	ID      int64  `json:"id"`
	Text    string `json:"text"`
	Author  string `json:"author"`
	Score   int    `json:"score"`
	PubDate string `json:"pub_date"`
}

func toReviewDTO(r *domain.Review) ReviewDTO {
	return ReviewDTO{
		ID:      r.ID,
		Text:    r.Text,
		Author:  r.Author,
		Score:   r.Score,
		PubDate: r.PubDate.Format(time.RFC3339),
	}
}

func toReviewDTOs(reviews []domain.Review) []ReviewDTO {
	dtos := make([]ReviewDTO, len(reviews))
	for i := range reviews {
		dtos[i] = toReviewDTO(&reviews[i])
	}
	return dtos
}

// CommentDTO is the JSON representation of a comment.
type CommentDTO struct {
	ID      int64  `json:"id"`
	Text    string `json:"text"`
	Author  string `json:"author"`
	PubDate string `json:"pub_date"`
}

func toCommentDTO(c *domain.Comment) CommentDTO {
	return CommentDTO{
		ID:      c.ID,
		Text:    c.Text,
		Author:  c.Author,
		PubDate: c.PubDate.Format(time.RFC3339),
	}
}

func toCommentDTOs(comments []domain.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i := range comments {
		dtos[i] = toCommentDTO(&comments[i])
	}
	return dtos
}

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      string(u.Role),
	}
}

func toUserDTOs(users []domain.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = toUserDTO(&users[i])
	}
	return dtos
}
