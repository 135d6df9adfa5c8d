package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetMe handles GET /api/users/me
// @Summary Current profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.AuthUser
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/me [get]
func (s *Server) GetMe(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	user, err := s.authService.Me(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// DeleteMe handles DELETE /api/users/me
// @Summary Delete account
// @Description Removes the account with its ads and favorites
// @Tags users
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/me [delete]
func (s *Server) DeleteMe(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.authService.DeleteAccount(c.UserContext(), userID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
