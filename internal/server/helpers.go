package server

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"classifieds/internal/middleware"
	"classifieds/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler turns any error that escapes a handler into the standard JSON
// error body. Fiber errors (unknown route, wrong method, oversized body) keep
// their status.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(models.ErrorResponse{
			Error: fe.Message,
			Code:  codeForStatus(fe.Code),
		})
	}
	return respondError(c, err)
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity, fiber.StatusRequestEntityTooLarge:
		return models.CodeValidation
	case fiber.StatusUnauthorized:
		return models.CodeUnauthorized
	case fiber.StatusForbidden:
		return models.CodeForbidden
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		return models.CodeNotFound
	case fiber.StatusConflict:
		return models.CodeConflict
	default:
		return models.CodeInternal
	}
}

// respondError writes err as JSON. Internal errors are logged with their cause;
// the client only sees the generic message.
func respondError(c *fiber.Ctx, err error) error {
	appErr := models.AsAppError(err)
	if appErr.Code == models.CodeInternal {
		middleware.Logger.ErrorContext(c.UserContext(), "internal error",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}
	return models.RespondWithError(c, appErr)
}

// parseID extracts a route parameter as a positive id.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := strings.TrimSpace(c.Params(param))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid ID")
	}
	return uint(id), nil
}

// parseBody decodes a JSON request body into v. Requests without a JSON body
// leave v untouched so field validation reports what is missing.
func parseBody(c *fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	ctype := strings.ToLower(c.Get(fiber.HeaderContentType))
	if !strings.HasPrefix(ctype, fiber.MIMEApplicationJSON) {
		return nil
	}
	if err := c.BodyParser(v); err != nil {
		return models.NewValidationError("Invalid request body")
	}
	return nil
}

// currentUser returns the user id verified by the auth gate.
func currentUser(c *fiber.Ctx) (uint, error) {
	identity, ok := middleware.IdentityFrom(c.UserContext())
	if !ok {
		return 0, models.NewUnauthorizedError("Missing token")
	}
	return identity.UserID, nil
}
