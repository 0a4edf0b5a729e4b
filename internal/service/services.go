package service

import (
	"github.com/luthfir/posts-api/internal/auth"
	"github.com/luthfir/posts-api/internal/config"
	"github.com/luthfir/posts-api/internal/ratelimit"
	"github.com/luthfir/posts-api/internal/repository"
	"github.com/luthfir/posts-api/internal/token"
	"go.uber.org/zap"
)

type Services struct {
	Auth *AuthService
	Post *PostService
}

func NewServices(repos *repository.Repositories, tokens *token.Store, limiter ratelimit.Limiter, cfg *config.Config, logger *zap.Logger) *Services {
	return &Services{
		Auth: NewAuthService(repos.User, tokens, auth.NewBcryptHasher(), limiter, cfg, logger),
		Post: NewPostService(repos.Post),
	}
}
