package repository

import (
	"context"
	"testing"
	"time"

	"classifieds/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteRepository_AddRemoveExists(t *testing.T) {
	db := newDB(t)
	owner := createUser(t, db, "owner@example.com")
	fan := createUser(t, db, "fan@example.com")
	ad := createAd(t, db, owner.ID, "ad", "")
	repo := NewFavoriteRepository(db)
	ctx := context.Background()

	exists, err := repo.Exists(ctx, fan.ID, ad.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Add(ctx, fan.ID, ad.ID))
	exists, err = repo.Exists(ctx, fan.ID, ad.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	err = repo.Add(ctx, fan.ID, ad.ID)
	assert.True(t, models.HasCode(err, models.CodeConflict), "got %v", err)

	require.NoError(t, repo.Remove(ctx, fan.ID, ad.ID))
	exists, err = repo.Exists(ctx, fan.ID, ad.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFavoriteRepository_ListByUser(t *testing.T) {
	db := newDB(t)
	owner := createUser(t, db, "owner@example.com")
	fan := createUser(t, db, "fan@example.com")
	older := createAd(t, db, owner.ID, "older", "")
	newer := createAd(t, db, owner.ID, "newer", models.AdStatusDraft)
	repo := NewFavoriteRepository(db)
	ctx := context.Background()

	// Favorite the newer ad first so favorite order differs from ad order.
	require.NoError(t, repo.Add(ctx, fan.ID, newer.ID))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, repo.Add(ctx, fan.ID, older.ID))

	list, err := repo.ListByUser(ctx, fan.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, older.ID, list[0].ID)
	assert.Equal(t, newer.ID, list[1].ID)
	assert.Equal(t, "older", list[0].Title)
	assert.Equal(t, owner.ID, list[0].UserID)
	assert.NotNil(t, list[0].Images)
	assert.False(t, list[0].CreatedAt.IsZero())

	empty, err := repo.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestFavoriteRepository_UnknownAdViolatesForeignKey(t *testing.T) {
	db := newDB(t)
	fan := createUser(t, db, "fan@example.com")

	err := NewFavoriteRepository(db).Add(context.Background(), fan.ID, 777)
	assert.True(t, models.HasCode(err, models.CodeInternal), "got %v", err)
}
