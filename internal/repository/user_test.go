package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"classifieds/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	name := "Ana"
	user := &models.User{Name: &name, Email: "ana@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	byEmail, err := repo.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.Password)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID.Name)
	assert.Equal(t, "Ana", *byID.Name)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Email: "dup@example.com", Password: "a"}))
	err := repo.Create(ctx, &models.User{Email: "dup@example.com", Password: "b"})
	assert.True(t, models.HasCode(err, models.CodeConflict), "got %v", err)

	// Lookups are case-sensitive, so a differently cased address is a new account.
	require.NoError(t, repo.Create(ctx, &models.User{Email: "DUP@example.com", Password: "c"}))
	_, err = repo.GetByEmail(ctx, "Dup@Example.com")
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestUserRepository_GetByEmail_Mock(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name         string
		mockBehavior func()
		expectedCode string
	}{
		{
			name: "Success",
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "email", "password_hash"}).
					AddRow(1, "ana@example.com", "hash")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
					WithArgs("ana@example.com", 1).
					WillReturnRows(rows)
			},
		},
		{
			name: "Not Found",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
					WithArgs("ana@example.com", 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			expectedCode: models.CodeNotFound,
		},
		{
			name: "Driver Error",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
					WithArgs("ana@example.com", 1).
					WillReturnError(errors.New("connection reset"))
			},
			expectedCode: models.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByEmail(ctx, "ana@example.com")
			if tt.expectedCode != "" {
				assert.True(t, models.HasCode(err, tt.expectedCode), "got %v", err)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint(1), user.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := newDB(t)
	users := NewUserRepository(db)
	ads := NewAdRepository(db)
	favs := NewFavoriteRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, "owner@example.com")
	fan := createUser(t, db, "fan@example.com")
	ownAd := createAd(t, db, owner.ID, "owner ad", "")
	fanAd := createAd(t, db, fan.ID, "fan ad", "")
	require.NoError(t, favs.Add(ctx, owner.ID, fanAd.ID))
	require.NoError(t, favs.Add(ctx, fan.ID, ownAd.ID))

	require.NoError(t, users.Delete(ctx, owner.ID))

	_, err := users.GetByID(ctx, owner.ID)
	assert.True(t, models.HasCode(err, models.CodeNotFound))

	exists, err := ads.Exists(ctx, ownAd.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	var ownerFavs int64
	require.NoError(t, db.Model(&models.Favorite{}).Where("user_id = ?", owner.ID).Count(&ownerFavs).Error)
	assert.Zero(t, ownerFavs)

	fanList, err := favs.ListByUser(ctx, fan.ID)
	require.NoError(t, err)
	assert.Empty(t, fanList)

	stillThere, err := ads.Exists(ctx, fanAd.ID)
	require.NoError(t, err)
	assert.True(t, stillThere)

	err = users.Delete(ctx, owner.ID)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}
