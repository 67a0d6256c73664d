package dto

import (
	"time"

	"github.com/spec-kit/blog-service/internal/domain"
)

// CreatePostRequest payload.
type CreatePostRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	AuthorID  int64  `json:"authorId"`
	Available *bool  `json:"available"`
}

// UpdatePostRequest payload; absent fields are kept.
type UpdatePostRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Author    *string `json:"author"`
	Available *bool   `json:"available"`
}

// PostResponse is the outward post representation.
type PostResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Available bool      `json:"available"`
	Author    string    `json:"author"`
	AuthorID  int64     `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPostResponse projects a domain post.
func NewPostResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Available: post.Available,
		Author:    post.Author,
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

// NewPostResponses projects a slice of domain posts.
func NewPostResponses(posts []domain.Post) []PostResponse {
	items := make([]PostResponse, 0, len(posts))
	for i := range posts {
		items = append(items, NewPostResponse(&posts[i]))
	}
	return items
}
