package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/cache"
	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/events"
	"github.com/spec-kit/blog-service/internal/repository"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// PostService orchestrates post CRUD, search and role-scoped listing.
type PostService struct {
	posts      repository.PostRepository
	cache      *cache.PostCache
	dispatcher events.Dispatcher
}

// NewPostService builds the service. cache and dispatcher may be nil.
func NewPostService(posts repository.PostRepository, postCache *cache.PostCache, dispatcher events.Dispatcher) *PostService {
	return &PostService{posts: posts, cache: postCache, dispatcher: dispatcher}
}

// PostCreateInput carries the fields for post creation.
type PostCreateInput struct {
	Title     string
	Content   string
	Author    string
	AuthorID  int64
	Available *bool
}

// PostUpdateInput carries optional fields for post updates.
type PostUpdateInput struct {
	Title     *string
	Content   *string
	Author    *string
	Available *bool
}

// ListPosts returns posts scoped by the caller's role: professors see
// every post, alunos only the available ones. Both listings are served
// from the Redis cache when warm.
func (s *PostService) ListPosts(ctx context.Context, role domain.Role) ([]domain.Post, error) {
	allScope := auth.Allowed(role, auth.ActionListAll)

	if posts, ok := s.cache.GetListing(ctx, allScope); ok {
		return posts, nil
	}

	var posts []domain.Post
	var err error
	if allScope {
		posts, err = s.posts.ListAll(ctx)
	} else {
		posts, err = s.posts.ListAvailable(ctx)
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.cache.SetListing(ctx, allScope, posts)
	return posts, nil
}

// GetPost returns a single post by id.
func (s *PostService) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Post não encontrado")
		}
		return nil, apperrors.MapError(err)
	}
	return post, nil
}

// ListPostsByAuthor returns posts authored by the given user.
func (s *PostService) ListPostsByAuthor(ctx context.Context, authorID int64) ([]domain.Post, error) {
	posts, err := s.posts.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return posts, nil
}

// SearchPosts matches the term case-insensitively against title and content.
func (s *PostService) SearchPosts(ctx context.Context, term string) ([]domain.Post, error) {
	posts, err := s.posts.Search(ctx, term)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return posts, nil
}

// CreatePost stores a new post. available defaults to true.
func (s *PostService) CreatePost(ctx context.Context, actor events.Actor, input PostCreateInput) (*domain.Post, error) {
	if input.Title == "" || input.Content == "" || input.AuthorID == 0 {
		return nil, apperrors.NewValidationError("Campos obrigatórios: title, content e authorId")
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}

	post := &domain.Post{
		Title:     input.Title,
		Content:   input.Content,
		Available: available,
		Author:    input.Author,
		AuthorID:  input.AuthorID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventPostCreated, post.ID, actor, events.PostCreatedPayload{
		Title:     post.Title,
		Author:    post.Author,
		AuthorID:  post.AuthorID,
		Available: post.Available,
	})
	return post, nil
}

// UpdatePost applies the provided fields to an existing post.
func (s *PostService) UpdatePost(ctx context.Context, actor events.Actor, id int64, input PostUpdateInput) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Post não encontrado")
		}
		return apperrors.MapError(err)
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Author != nil {
		post.Author = *input.Author
	}
	if input.Available != nil {
		post.Available = *input.Available
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.EventPostUpdated, post.ID, actor, events.PostUpdatedPayload{Title: post.Title})
	return nil
}

// DeletePost removes a post by id.
func (s *PostService) DeletePost(ctx context.Context, actor events.Actor, id int64) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Post não encontrado")
		}
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.EventPostDeleted, id, actor, nil)
	return nil
}

func (s *PostService) publish(ctx context.Context, eventType events.EventType, postID int64, actor events.Actor, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		PostID:    postID,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
