package repository

import (
	"context"

	"classifieds/internal/models"

	"gorm.io/gorm"
)

// FavoriteRepository defines persistence operations for user favorites.
type FavoriteRepository interface {
	Exists(ctx context.Context, userID, adID uint) (bool, error)
	Add(ctx context.Context, userID, adID uint) error
	Remove(ctx context.Context, userID, adID uint) error
	ListByUser(ctx context.Context, userID uint) ([]models.FavoriteAd, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository returns a new FavoriteRepository implementation.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, adID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND ad_id = ?", userID, adID).
		Count(&n).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return n > 0, nil
}

func (r *favoriteRepository) Add(ctx context.Context, userID, adID uint) error {
	fav := models.Favorite{UserID: userID, AdID: adID}
	if err := r.db.WithContext(ctx).Omit("User", "Ad").Create(&fav).Error; err != nil {
		if isDuplicateKey(err) {
			return models.NewConflictError("Ad already in favorites")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, adID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND ad_id = ?", userID, adID).
		Delete(&models.Favorite{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListByUser returns the reduced listing projection for every ad the user
// favorited, most recently favorited first.
func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint) ([]models.FavoriteAd, error) {
	ads := []models.FavoriteAd{}
	err := r.db.WithContext(ctx).
		Table("ads").
		Select("ads.id, ads.user_id, ads.title, ads.description, ads.seller, ads.location, " +
			"ads.price, ads.category, ads.images, ads.created_at, ads.updated_at").
		Joins("JOIN favorites ON favorites.ad_id = ads.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Order("ads.id DESC").
		Find(&ads).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ads, nil
}
