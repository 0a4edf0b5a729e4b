package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/luthfir/posts-api/internal/domain"
	"github.com/luthfir/posts-api/internal/repository"
	"gorm.io/gorm"
)

type PostService struct {
	posts repository.PostRepository
	now   func() time.Time
}

func NewPostService(posts repository.PostRepository) *PostService {
	return &PostService{posts: posts, now: time.Now}
}

type PostInput struct {
	Title string
	Body  string
}

func (s *PostService) List(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.GetAll(ctx)
}

func (s *PostService) Get(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// Create persists a post owned by the caller. The owner id always
// comes from the authenticated principal, never from the payload.
func (s *PostService) Create(ctx context.Context, input PostInput, callerID uuid.UUID) (*domain.Post, error) {
	post := &domain.Post{
		ID:        uuid.New(),
		UserID:    callerID,
		Title:     input.Title,
		Body:      input.Body,
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update overwrites the content fields of an existing post. The owner
// id is preserved from the stored record.
func (s *PostService) Update(ctx context.Context, id uuid.UUID, input PostInput) (*domain.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Body = input.Body
	post.UpdatedAt = s.now()

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.posts.Delete(ctx, id)
}
