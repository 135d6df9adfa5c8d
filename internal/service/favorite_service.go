package service

import (
	"context"
	"strconv"

	"classifieds/internal/models"
	"classifieds/internal/observability"
	"classifieds/internal/repository"
)

// FavoriteService toggles and lists a user's favorite listings.
type FavoriteService struct {
	favorites repository.FavoriteRepository
	ads       repository.AdRepository
}

// ToggleResult reports the favorite state after a toggle.
type ToggleResult struct {
	Favorite bool `json:"favorite"`
}

// NewFavoriteService returns a FavoriteService.
func NewFavoriteService(favorites repository.FavoriteRepository, ads repository.AdRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, ads: ads}
}

// ListByUser returns the user's favorited listings, most recently favorited first.
func (s *FavoriteService) ListByUser(ctx context.Context, userID uint) ([]models.FavoriteAd, error) {
	return s.favorites.ListByUser(ctx, userID)
}

// Toggle flips the favorite state of adID for userID.
func (s *FavoriteService) Toggle(ctx context.Context, userID, adID uint) (res *ToggleResult, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "FavoriteService", "Toggle")
	defer func() { observability.EndSpan(span, err) }()

	if adID == 0 {
		return nil, models.NewValidationError(msgInvalidID)
	}

	found, err := s.ads.Exists(ctx, adID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NewNotFoundError(msgAdNotFound)
	}

	favorited, err := s.favorites.Exists(ctx, userID, adID)
	if err != nil {
		return nil, err
	}

	if favorited {
		if err := s.favorites.Remove(ctx, userID, adID); err != nil {
			return nil, err
		}
	} else if err := s.favorites.Add(ctx, userID, adID); err != nil && !models.HasCode(err, models.CodeConflict) {
		// A conflict means a concurrent request already favorited it.
		return nil, err
	}

	observability.FavoriteToggles.WithLabelValues(strconv.FormatBool(!favorited)).Inc()
	return &ToggleResult{Favorite: !favorited}, nil
}

// IsFavorite reports whether userID has favorited adID. Unknown listings are
// simply not favorited.
func (s *FavoriteService) IsFavorite(ctx context.Context, userID, adID uint) (*ToggleResult, error) {
	if adID == 0 {
		return nil, models.NewValidationError(msgInvalidID)
	}
	favorited, err := s.favorites.Exists(ctx, userID, adID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Favorite: favorited}, nil
}
