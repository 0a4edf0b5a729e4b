package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/luthfir/posts-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	GetAll(ctx context.Context) ([]*domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TokenRepository interface {
	Create(ctx context.Context, token *domain.Token) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Token, error)
	GetByUserAndName(ctx context.Context, userID uuid.UUID, name string) (*domain.Token, error)
	Update(ctx context.Context, token *domain.Token) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Repositories struct {
	User  UserRepository
	Post  PostRepository
	Token TokenRepository
}
