package server

import (
	"classifieds/internal/models"
	"classifieds/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListAds handles GET /api/ads
// @Summary List published ads
// @Tags ads
// @Produce json
// @Success 200 {array} models.Ad
// @Router /ads [get]
func (s *Server) ListAds(c *fiber.Ctx) error {
	ads, err := s.adService.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ads)
}

// GetAd handles GET /api/ads/:id
// @Summary Get an ad
// @Description Returns the ad whatever its status
// @Tags ads
// @Produce json
// @Param id path int true "Ad ID"
// @Success 200 {object} models.Ad
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /ads/{id} [get]
func (s *Server) GetAd(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	ad, err := s.adService.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ad)
}

// CreateAd handles POST /api/ads
// @Summary Create an ad
// @Tags ads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.AdInput true "Ad"
// @Success 201 {object} models.Ad
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /ads [post]
func (s *Server) CreateAd(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	var req service.AdInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	ad, err := s.adService.Create(c.UserContext(), userID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ad)
}

// UpdateAd handles PUT /api/ads/:id
// @Summary Update an ad
// @Description Fields present in the body replace stored values; absent fields are kept
// @Tags ads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ad ID"
// @Param request body service.AdInput true "Fields to replace"
// @Success 200 {object} models.Ad
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /ads/{id} [put]
func (s *Server) UpdateAd(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req service.AdInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	ad, err := s.adService.Update(c.UserContext(), userID, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ad)
}

// DeleteAd handles DELETE /api/ads/:id
// @Summary Delete an ad
// @Tags ads
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ad ID"
// @Success 200 {object} service.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /ads/{id} [delete]
func (s *Server) DeleteAd(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	resp, err := s.adService.Remove(c.UserContext(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListMyAds handles GET /api/users/me/ads
// @Summary List my ads
// @Description Every ad owned by the caller, drafts included
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Ad
// @Failure 401 {object} models.ErrorResponse
// @Router /users/me/ads [get]
func (s *Server) ListMyAds(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	ads, err := s.adService.ListByUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ads)
}

// ListCategories handles GET /api/categories
// @Summary Suggested categories
// @Tags ads
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (s *Server) ListCategories(c *fiber.Ctx) error {
	return c.JSON(models.Categories)
}
