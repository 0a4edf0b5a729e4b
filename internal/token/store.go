// Package token issues and recognizes opaque bearer tokens. A secret
// has the form "<token-id>|<random-hex>"; the server keeps only a
// SHA-256 digest of the random part, so a leaked database cannot be
// replayed as live bearers.
package token

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/luthfir/posts-api/internal/domain"
	"github.com/luthfir/posts-api/internal/repository"
	"gorm.io/gorm"
)

const secretBytes = 32

type Store struct {
	tokens repository.TokenRepository
	now    func() time.Time
}

func NewStore(tokens repository.TokenRepository) *Store {
	return &Store{tokens: tokens, now: time.Now}
}

// Issue persists a token record for user and returns the plaintext
// secret. The plaintext is not recoverable afterwards. A nil ttl-free
// token never expires; otherwise expires_at is set to now+ttl.
func (s *Store) Issue(ctx context.Context, userID uuid.UUID, name string, ttl time.Duration) (string, error) {
	raw := make([]byte, secretBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate token secret: %w", err)
	}
	secret := hex.EncodeToString(raw)

	record := &domain.Token{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       name,
		SecretHash: hashSecret(secret),
		CreatedAt:  s.now(),
	}
	if ttl > 0 {
		expiresAt := s.now().Add(ttl)
		record.ExpiresAt = &expiresAt
	}

	if err := s.tokens.Create(ctx, record); err != nil {
		return "", err
	}

	return record.ID.String() + "|" + secret, nil
}

// FindByName returns the newest live token a user holds under name,
// or nil when there is none. A miss is not an error.
func (s *Store) FindByName(ctx context.Context, userID uuid.UUID, name string) (*domain.Token, error) {
	record, err := s.tokens.GetByUserAndName(ctx, userID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if record.Expired(s.now()) {
		return nil, nil
	}
	return record, nil
}

// Authenticate resolves a presented bearer secret to its token record.
// Malformed, unknown, mismatched, or expired secrets all return
// (nil, nil); only infrastructure failures are errors.
func (s *Store) Authenticate(ctx context.Context, presented string) (*domain.Token, error) {
	id, secret, ok := splitSecret(presented)
	if !ok {
		return nil, nil
	}

	record, err := s.tokens.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(record.SecretHash), []byte(hashSecret(secret))) != 1 {
		return nil, nil
	}
	if record.Expired(s.now()) {
		return nil, nil
	}

	touched := s.now()
	record.LastUsedAt = &touched
	if err := s.tokens.Update(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// Revoke deletes a token record, invalidating its secret.
func (s *Store) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	return s.tokens.Delete(ctx, tokenID)
}

func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

func splitSecret(presented string) (uuid.UUID, string, bool) {
	idPart, secret, found := strings.Cut(presented, "|")
	if !found || secret == "" {
		return uuid.Nil, "", false
	}
	id, err := uuid.Parse(idPart)
	if err != nil {
		return uuid.Nil, "", false
	}
	return id, secret, true
}
