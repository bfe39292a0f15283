package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/testutil"
)

func TestUserRepo_Integration_CreateAndGet(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewUserRepo(db)
		ctx := context.Background()

		authID := uuid.NewString()
		params := testutil.NewUserParams().
			WithEmail("created@example.com").
			WithAuthID(authID).
			Build()

		user, err := repo.Create(ctx, params)
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "created@example.com", user.Email)
		require.NotNil(t, user.AuthID)
		assert.Equal(t, authID, *user.AuthID)

		byID, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, byID.Email)

		byAuthID, err := repo.GetByAuthID(ctx, authID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, byAuthID.ID)
	})
}

func TestUserRepo_Integration_CreateSeedsProfileStub(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		users := NewUserRepo(db)
		profiles := NewProfileRepo(db)
		ctx := context.Background()

		authID := uuid.NewString()
		_, err := users.Create(ctx, testutil.NewUserParams().
			WithEmail("stub@example.com").
			WithAuthID(authID).
			Build())
		require.NoError(t, err)

		profile, err := profiles.GetByUserID(ctx, authID)
		require.NoError(t, err)
		assert.False(t, profile.ProfileComplete)
		require.NotNil(t, profile.Role)
		assert.Equal(t, "homeowner", *profile.Role)
	})
}

func TestUserRepo_Integration_DuplicateEmail(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewUserRepo(db)
		ctx := context.Background()

		_, err := repo.Create(ctx, testutil.NewUserParams().WithEmail("dupe@example.com").Build())
		require.NoError(t, err)

		// Case variants collide on the lower(email) unique index.
		_, err = repo.Create(ctx, testutil.NewUserParams().WithEmail("Dupe@Example.com").Build())
		require.ErrorIs(t, err, ErrUserEmailExists)
	})
}

func TestUserRepo_Integration_GetByEmailCaseInsensitive(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewUserRepo(db)
		ctx := context.Background()

		created, err := repo.Create(ctx, testutil.NewUserParams().WithEmail("Mixed.Case@Example.com").Build())
		require.NoError(t, err)

		found, err := repo.GetByEmail(ctx, "mixed.case@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})
}

func TestUserRepo_Integration_NotFound(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewUserRepo(db)
		ctx := context.Background()

		_, err := repo.GetByID(ctx, uuid.NewString())
		require.ErrorIs(t, err, ErrUserNotFound)

		_, err = repo.GetByAuthID(ctx, uuid.NewString())
		require.ErrorIs(t, err, ErrUserNotFound)

		_, err = repo.GetByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserRepo_Integration_AttachAuthID(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewUserRepo(db)
		ctx := context.Background()

		user, err := repo.Create(ctx, testutil.NewUserParams().WithEmail("legacy@example.com").Build())
		require.NoError(t, err)
		assert.Nil(t, user.AuthID)

		authID := uuid.NewString()
		updated, err := repo.AttachAuthID(ctx, user.ID, authID)
		require.NoError(t, err)
		assert.True(t, updated)

		// Attaching the same id again is a no-op.
		updated, err = repo.AttachAuthID(ctx, user.ID, authID)
		require.NoError(t, err)
		assert.False(t, updated)

		repaired, err := repo.GetByAuthID(ctx, authID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, repaired.ID)
	})
}
