package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/luthfir/posts-api/internal/domain"
	"github.com/luthfir/posts-api/internal/repository/postgres"
	"github.com/luthfir/posts-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewTokenRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	record := &domain.Token{
		ID:         uuid.New(),
		UserID:     owner.ID,
		Name:       "secure-login-token",
		SecretHash: "deadbeef",
		CreatedAt:  time.Now(),
	}
	require.NoError(t, repo.Create(ctx, record))

	got, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, got.UserID)
	assert.Equal(t, "secure-login-token", got.Name)
	assert.Nil(t, got.ExpiresAt)
}

func TestTokenRepository_GetByUserAndName(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewTokenRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	older := &domain.Token{
		ID:         uuid.New(),
		UserID:     owner.ID,
		Name:       "login-1.1.1.1",
		SecretHash: "older",
		CreatedAt:  time.Now().Add(-time.Hour),
	}
	newer := &domain.Token{
		ID:         uuid.New(),
		UserID:     owner.ID,
		Name:       "login-1.1.1.1",
		SecretHash: "newer",
		CreatedAt:  time.Now(),
	}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	got, err := repo.GetByUserAndName(ctx, owner.ID, "login-1.1.1.1")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID, "newest record wins")

	_, err = repo.GetByUserAndName(ctx, other.ID, "login-1.1.1.1")
	assert.Error(t, err, "names are scoped per user")

	_, err = repo.GetByUserAndName(ctx, owner.ID, "login-2.2.2.2")
	assert.Error(t, err)
}

func TestTokenRepository_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewTokenRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	record := &domain.Token{
		ID:         uuid.New(),
		UserID:     owner.ID,
		Name:       "login-1.1.1.1",
		SecretHash: "deadbeef",
		CreatedAt:  time.Now(),
	}
	require.NoError(t, repo.Create(ctx, record))

	require.NoError(t, repo.Delete(ctx, record.ID))

	_, err := repo.GetByID(ctx, record.ID)
	assert.Error(t, err)
}
