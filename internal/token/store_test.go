package token

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/luthfir/posts-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeTokenRepo is a map-backed TokenRepository for store tests.
type fakeTokenRepo struct {
	records map[uuid.UUID]*domain.Token
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{records: make(map[uuid.UUID]*domain.Token)}
}

func (r *fakeTokenRepo) Create(_ context.Context, token *domain.Token) error {
	copied := *token
	r.records[token.ID] = &copied
	return nil
}

func (r *fakeTokenRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Token, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *fakeTokenRepo) GetByUserAndName(_ context.Context, userID uuid.UUID, name string) (*domain.Token, error) {
	var newest *domain.Token
	for _, record := range r.records {
		if record.UserID != userID || record.Name != name {
			continue
		}
		if newest == nil || record.CreatedAt.After(newest.CreatedAt) {
			newest = record
		}
	}
	if newest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *newest
	return &copied, nil
}

func (r *fakeTokenRepo) Update(_ context.Context, token *domain.Token) error {
	copied := *token
	r.records[token.ID] = &copied
	return nil
}

func (r *fakeTokenRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.records, id)
	return nil
}

func TestStore_IssueAndAuthenticate(t *testing.T) {
	store := NewStore(newFakeTokenRepo())
	ctx := context.Background()
	userID := uuid.New()

	secret, err := store.Issue(ctx, userID, "secure-login-token", 0)
	require.NoError(t, err)

	// "<token-id>|<64 hex chars>"
	idPart, randomPart, found := strings.Cut(secret, "|")
	require.True(t, found)
	_, err = uuid.Parse(idPart)
	require.NoError(t, err)
	assert.Len(t, randomPart, 64)

	record, err := store.Authenticate(ctx, secret)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, userID, record.UserID)
	assert.NotNil(t, record.LastUsedAt)
}

func TestStore_IssueNeverRepeats(t *testing.T) {
	store := NewStore(newFakeTokenRepo())
	ctx := context.Background()
	userID := uuid.New()

	first, err := store.Issue(ctx, userID, "login-1.1.1.1", 0)
	require.NoError(t, err)
	second, err := store.Issue(ctx, userID, "login-1.1.1.1", 0)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestStore_AuthenticateRejects(t *testing.T) {
	repo := newFakeTokenRepo()
	store := NewStore(repo)
	ctx := context.Background()

	secret, err := store.Issue(ctx, uuid.New(), "login-1.1.1.1", 0)
	require.NoError(t, err)
	idPart, _, _ := strings.Cut(secret, "|")

	tests := []struct {
		name      string
		presented string
	}{
		{"empty", ""},
		{"no separator", "abcdef"},
		{"bad id", "not-a-uuid|deadbeef"},
		{"unknown id", uuid.New().String() + "|deadbeef"},
		{"wrong secret", idPart + "|" + strings.Repeat("0", 64)},
		{"missing secret part", idPart + "|"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := store.Authenticate(ctx, tt.presented)
			require.NoError(t, err)
			assert.Nil(t, record)
		})
	}
}

func TestStore_ExpiredTokenIsAMiss(t *testing.T) {
	repo := newFakeTokenRepo()
	store := NewStore(repo)
	ctx := context.Background()
	userID := uuid.New()

	now := time.Now()
	store.now = func() time.Time { return now }

	secret, err := store.Issue(ctx, userID, "login-1.1.1.1", 2*time.Hour)
	require.NoError(t, err)

	record, err := store.Authenticate(ctx, secret)
	require.NoError(t, err)
	require.NotNil(t, record)

	found, err := store.FindByName(ctx, userID, "login-1.1.1.1")
	require.NoError(t, err)
	require.NotNil(t, found)

	now = now.Add(2*time.Hour + time.Minute)

	record, err = store.Authenticate(ctx, secret)
	require.NoError(t, err)
	assert.Nil(t, record)

	found, err = store.FindByName(ctx, userID, "login-1.1.1.1")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestStore_Revoke(t *testing.T) {
	store := NewStore(newFakeTokenRepo())
	ctx := context.Background()

	secret, err := store.Issue(ctx, uuid.New(), "login-1.1.1.1", 0)
	require.NoError(t, err)

	record, err := store.Authenticate(ctx, secret)
	require.NoError(t, err)
	require.NotNil(t, record)

	require.NoError(t, store.Revoke(ctx, record.ID))

	record, err = store.Authenticate(ctx, secret)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestStore_FindByNameMissIsNotAnError(t *testing.T) {
	store := NewStore(newFakeTokenRepo())

	record, err := store.FindByName(context.Background(), uuid.New(), "login-9.9.9.9")
	require.NoError(t, err)
	assert.Nil(t, record)
}
