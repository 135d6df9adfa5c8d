package server

import (
	"github.com/gofiber/fiber/v2"
)

// ListFavorites handles GET /api/favorites
// @Summary List favorites
// @Description Favorited ads, most recently favorited first
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.FavoriteAd
// @Failure 401 {object} models.ErrorResponse
// @Router /favorites [get]
func (s *Server) ListFavorites(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	ads, err := s.favoriteService.ListByUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ads)
}

// ToggleFavorite handles POST /api/favorites/:adId/toggle
// @Summary Toggle a favorite
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param adId path int true "Ad ID"
// @Success 200 {object} service.ToggleResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /favorites/{adId}/toggle [post]
func (s *Server) ToggleFavorite(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	adID, err := parseID(c, "adId")
	if err != nil {
		return respondError(c, err)
	}

	res, err := s.favoriteService.Toggle(c.UserContext(), userID, adID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// CheckFavorite handles GET /api/favorites/check/:adId
// @Summary Check a favorite
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param adId path int true "Ad ID"
// @Success 200 {object} service.ToggleResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /favorites/check/{adId} [get]
func (s *Server) CheckFavorite(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	adID, err := parseID(c, "adId")
	if err != nil {
		return respondError(c, err)
	}

	res, err := s.favoriteService.IsFavorite(c.UserContext(), userID, adID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
