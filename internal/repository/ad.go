package repository

import (
	"context"

	"classifieds/internal/models"

	"gorm.io/gorm"
)

// AdRepository defines persistence operations for listings.
type AdRepository interface {
	ListPublished(ctx context.Context) ([]models.Ad, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Ad, error)
	GetByID(ctx context.Context, id uint) (*models.Ad, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, ad *models.Ad) error
	Update(ctx context.Context, ad *models.Ad) error
	Delete(ctx context.Context, id uint) error
}

type adRepository struct {
	db *gorm.DB
}

// NewAdRepository returns a new AdRepository implementation.
func NewAdRepository(db *gorm.DB) AdRepository {
	return &adRepository{db: db}
}

// newestFirst orders by creation time; the id breaks ties between rows
// created within the same clock tick.
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("ads.created_at DESC").Order("ads.id DESC")
}

func (r *adRepository) ListPublished(ctx context.Context) ([]models.Ad, error) {
	ads := []models.Ad{}
	err := r.db.WithContext(ctx).
		Where("status = ?", models.AdStatusPublished).
		Scopes(newestFirst).
		Find(&ads).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ads, nil
}

func (r *adRepository) ListByUser(ctx context.Context, userID uint) ([]models.Ad, error) {
	ads := []models.Ad{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Scopes(newestFirst).
		Find(&ads).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ads, nil
}

func (r *adRepository) GetByID(ctx context.Context, id uint) (*models.Ad, error) {
	var ad models.Ad
	if err := r.db.WithContext(ctx).First(&ad, id).Error; err != nil {
		return nil, notFoundOr(err, "Ad not found")
	}
	return &ad, nil
}

func (r *adRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Ad{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return n > 0, nil
}

func (r *adRepository) Create(ctx context.Context, ad *models.Ad) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(ad).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Update writes every mutable column of ad, zero values included. UpdatedAt is
// refreshed by GORM. A row deleted since it was loaded is reported as not
// found and never re-inserted.
func (r *adRepository) Update(ctx context.Context, ad *models.Ad) error {
	result := r.db.WithContext(ctx).
		Model(ad).
		Select("*").
		Omit("User", "ID", "UserID", "CreatedAt").
		Updates(ad)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Ad not found")
	}
	return nil
}

// Delete removes the listing; favorites referencing it go with it through
// the foreign key cascade.
func (r *adRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Ad{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Ad not found")
	}
	return nil
}
