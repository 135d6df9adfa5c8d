package service

import (
	"context"
	"testing"

	"classifieds/internal/auth"
	"classifieds/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	countFn      func(context.Context) (int64, error)
	deleteFn     func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, _ uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User not found")
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) {
			return nil, models.NewNotFoundError("User not found")
		},
		createFn: func(_ context.Context, _ *models.User) error { return nil },
		countFn:  func(_ context.Context) (int64, error) { return 0, nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

type adRepoStub struct {
	listPublishedFn func(context.Context) ([]models.Ad, error)
	listByUserFn    func(context.Context, uint) ([]models.Ad, error)
	getByIDFn       func(context.Context, uint) (*models.Ad, error)
	existsFn        func(context.Context, uint) (bool, error)
	createFn        func(context.Context, *models.Ad) error
	updateFn        func(context.Context, *models.Ad) error
	deleteFn        func(context.Context, uint) error
}

func (s *adRepoStub) ListPublished(ctx context.Context) ([]models.Ad, error) {
	return s.listPublishedFn(ctx)
}
func (s *adRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.Ad, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *adRepoStub) GetByID(ctx context.Context, id uint) (*models.Ad, error) {
	return s.getByIDFn(ctx, id)
}
func (s *adRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *adRepoStub) Create(ctx context.Context, ad *models.Ad) error {
	return s.createFn(ctx, ad)
}
func (s *adRepoStub) Update(ctx context.Context, ad *models.Ad) error {
	return s.updateFn(ctx, ad)
}
func (s *adRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopAdRepo() *adRepoStub {
	return &adRepoStub{
		listPublishedFn: func(_ context.Context) ([]models.Ad, error) { return []models.Ad{}, nil },
		listByUserFn:    func(_ context.Context, _ uint) ([]models.Ad, error) { return []models.Ad{}, nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Ad, error) {
			return nil, models.NewNotFoundError("Ad not found")
		},
		existsFn: func(_ context.Context, _ uint) (bool, error) { return false, nil },
		createFn: func(_ context.Context, _ *models.Ad) error { return nil },
		updateFn: func(_ context.Context, _ *models.Ad) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

type favoriteRepoStub struct {
	existsFn     func(context.Context, uint, uint) (bool, error)
	addFn        func(context.Context, uint, uint) error
	removeFn     func(context.Context, uint, uint) error
	listByUserFn func(context.Context, uint) ([]models.FavoriteAd, error)
}

func (s *favoriteRepoStub) Exists(ctx context.Context, userID, adID uint) (bool, error) {
	return s.existsFn(ctx, userID, adID)
}
func (s *favoriteRepoStub) Add(ctx context.Context, userID, adID uint) error {
	return s.addFn(ctx, userID, adID)
}
func (s *favoriteRepoStub) Remove(ctx context.Context, userID, adID uint) error {
	return s.removeFn(ctx, userID, adID)
}
func (s *favoriteRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.FavoriteAd, error) {
	return s.listByUserFn(ctx, userID)
}

// memoryFavorites keeps favorites in a set so toggles can be observed.
func memoryFavorites() *favoriteRepoStub {
	set := map[[2]uint]bool{}
	return &favoriteRepoStub{
		existsFn: func(_ context.Context, u, a uint) (bool, error) { return set[[2]uint{u, a}], nil },
		addFn: func(_ context.Context, u, a uint) error {
			set[[2]uint{u, a}] = true
			return nil
		},
		removeFn: func(_ context.Context, u, a uint) error {
			delete(set, [2]uint{u, a})
			return nil
		},
		listByUserFn: func(_ context.Context, _ uint) ([]models.FavoriteAd, error) {
			return []models.FavoriteAd{}, nil
		},
	}
}

type tokenStub struct {
	issued []auth.Identity
	err    error
}

func (s *tokenStub) Issue(id auth.Identity) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.issued = append(s.issued, id)
	return "signed-token", nil
}

func assertAppError(t *testing.T, err error, code, message string) {
	t.Helper()
	require.Error(t, err)
	appErr := models.AsAppError(err)
	assert.Equal(t, code, appErr.Code)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

func some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

func null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}
