package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/luthfir/posts-api/internal/auth"
	"github.com/luthfir/posts-api/internal/config"
	"github.com/luthfir/posts-api/internal/domain"
	"github.com/luthfir/posts-api/internal/ratelimit"
	"github.com/luthfir/posts-api/internal/repository"
	"github.com/luthfir/posts-api/internal/token"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	registerTokenName = "secure-login-token"
	loginTokenPrefix  = "login-"
	limiterKeyPrefix  = "login-attempts:"
)

type AuthService struct {
	users   repository.UserRepository
	tokens  *token.Store
	hasher  auth.Hasher
	limiter ratelimit.Limiter
	cfg     *config.Config
	logger  *zap.Logger
	now     func() time.Time
}

func NewAuthService(users repository.UserRepository, tokens *token.Store, hasher auth.Hasher, limiter ratelimit.Limiter, cfg *config.Config, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:   users,
		tokens:  tokens,
		hasher:  hasher,
		limiter: limiter,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type RegisterResult struct {
	User  *domain.User
	Token string
}

type LoginInput struct {
	Email    string
	Password string
	ClientIP string
}

type LoginResult struct {
	Token           string
	ExpiresIn       int64
	AlreadyLoggedIn bool
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	existing, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
		UpdatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	secret, err := s.tokens.Issue(ctx, user.ID, registerTokenName, 0)
	if err != nil {
		return nil, err
	}

	return &RegisterResult{User: user, Token: secret}, nil
}

// Login runs the per-request state machine: rate-limit gate, hit,
// credential check, already-logged-in short-circuit, then clear and
// issue. The counter is hit before credentials are verified, and the
// short-circuit path does not clear it.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	key := limiterKeyPrefix + input.ClientIP

	over, err := s.limiter.TooManyAttempts(ctx, key, s.cfg.LoginMaxAttempts)
	if err != nil {
		return nil, err
	}
	if over {
		return nil, domain.ErrRateLimited
	}

	if err := s.limiter.Hit(ctx, key, s.cfg.LoginWindow); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if user == nil || !s.hasher.Verify(input.Password, user.PasswordHash) {
		s.logger.Warn("failed login attempt",
			zap.String("email", input.Email),
			zap.String("ip", input.ClientIP),
		)
		return nil, domain.ErrInvalidCredentials
	}

	tokenName := loginTokenPrefix + input.ClientIP
	existing, err := s.tokens.FindByName(ctx, user.ID, tokenName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &LoginResult{AlreadyLoggedIn: true}, nil
	}

	if err := s.limiter.Clear(ctx, key); err != nil {
		return nil, err
	}

	secret, err := s.tokens.Issue(ctx, user.ID, tokenName, s.cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     secret,
		ExpiresIn: s.now().Add(s.cfg.TokenTTL).Unix(),
	}, nil
}

// Logout revokes the token that authenticated the current request.
func (s *AuthService) Logout(ctx context.Context, tokenID uuid.UUID) error {
	return s.tokens.Revoke(ctx, tokenID)
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
