package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/luthfir/posts-api/internal/domain"
	"gorm.io/gorm"
)

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *tokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *domain.Token) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Token, error) {
	var token domain.Token
	err := r.db.WithContext(ctx).First(&token, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) GetByUserAndName(ctx context.Context, userID uuid.UUID, name string) (*domain.Token, error) {
	var token domain.Token
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		Order("created_at DESC").
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) Update(ctx context.Context, token *domain.Token) error {
	return r.db.WithContext(ctx).Save(token).Error
}

func (r *tokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Token{}, "id = ?", id).Error
}
