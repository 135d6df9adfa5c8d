package service

import (
	"context"
	"errors"
	"testing"

	"classifieds/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteService_Toggle(t *testing.T) {
	ctx := context.Background()
	ads := noopAdRepo()
	ads.existsFn = func(_ context.Context, id uint) (bool, error) { return id == 10, nil }

	t.Run("double toggle returns to the start", func(t *testing.T) {
		favs := memoryFavorites()
		svc := NewFavoriteService(favs, ads)

		first, err := svc.Toggle(ctx, 1, 10)
		require.NoError(t, err)
		assert.True(t, first.Favorite)

		second, err := svc.Toggle(ctx, 1, 10)
		require.NoError(t, err)
		assert.False(t, second.Favorite)

		exists, err := favs.Exists(ctx, 1, 10)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := NewFavoriteService(memoryFavorites(), ads).Toggle(ctx, 1, 0)
		assertAppError(t, err, models.CodeValidation, msgInvalidID)
	})

	t.Run("missing ad", func(t *testing.T) {
		_, err := NewFavoriteService(memoryFavorites(), ads).Toggle(ctx, 1, 11)
		assertAppError(t, err, models.CodeNotFound, msgAdNotFound)
	})

	t.Run("concurrent add counts as favorited", func(t *testing.T) {
		favs := memoryFavorites()
		favs.addFn = func(_ context.Context, _, _ uint) error {
			return models.NewConflictError("Ad already in favorites")
		}
		res, err := NewFavoriteService(favs, ads).Toggle(ctx, 1, 10)
		require.NoError(t, err)
		assert.True(t, res.Favorite)
	})

	t.Run("store failure", func(t *testing.T) {
		favs := memoryFavorites()
		favs.existsFn = func(_ context.Context, _, _ uint) (bool, error) {
			return false, models.NewInternalError(errors.New("locked"))
		}
		_, err := NewFavoriteService(favs, ads).Toggle(ctx, 1, 10)
		assertAppError(t, err, models.CodeInternal, "")
	})
}

func TestFavoriteService_ListByUser(t *testing.T) {
	favs := memoryFavorites()
	favs.listByUserFn = func(_ context.Context, userID uint) ([]models.FavoriteAd, error) {
		return []models.FavoriteAd{{ID: 10, UserID: 2, Title: "Casa", Images: []string{}}}, nil
	}
	list, err := NewFavoriteService(favs, noopAdRepo()).ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, uint(10), list[0].ID)
}

func TestFavoriteService_IsFavorite(t *testing.T) {
	ctx := context.Background()
	favs := memoryFavorites()
	require.NoError(t, favs.Add(ctx, 1, 10))
	svc := NewFavoriteService(favs, noopAdRepo())

	res, err := svc.IsFavorite(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, res.Favorite)

	res, err = svc.IsFavorite(ctx, 2, 10)
	require.NoError(t, err)
	assert.False(t, res.Favorite)

	res, err = svc.IsFavorite(ctx, 1, 999)
	require.NoError(t, err)
	assert.False(t, res.Favorite)

	_, err = svc.IsFavorite(ctx, 1, 0)
	assertAppError(t, err, models.CodeValidation, msgInvalidID)
}
