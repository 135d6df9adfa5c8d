package repository

import (
	"context"
	"testing"
	"time"

	"classifieds/internal/models"
	"classifieds/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Password: "hash"}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func createAd(t *testing.T, db *gorm.DB, ownerID uint, title, status string) *models.Ad {
	t.Helper()
	ad := &models.Ad{
		UserID:      ownerID,
		Title:       title,
		Description: "desc",
		Seller:      "seller",
		Location:    "Sao Paulo",
		Category:    "Apartamento",
		Status:      status,
	}
	require.NoError(t, NewAdRepository(db).Create(context.Background(), ad))
	// Keep created_at strictly increasing between rows.
	time.Sleep(2 * time.Millisecond)
	return ad
}

func newDB(t *testing.T) *gorm.DB {
	return testutil.NewTestDB(t)
}
