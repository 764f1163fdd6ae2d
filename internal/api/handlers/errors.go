package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"qrqaema/domain"
)

// errStatus maps service errors onto HTTP status codes so handlers stay
// uniform.
func errStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrRestaurantNotFound),
		errors.Is(err, domain.ErrMenuNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrMenuItemNotFound),
		errors.Is(err, domain.ErrTableNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrHelpRequestNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrStaffNotFound),
		errors.Is(err, domain.ErrNoDefaultMenu),
		errors.Is(err, domain.ErrCrossTenantReference):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrSuperuserOnly):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrDuplicateLanguage),
		errors.Is(err, domain.ErrActiveOrderExists),
		errors.Is(err, domain.ErrStaffAlreadyAdded),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrEmailTaken):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrAccountNotActive),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrInvalidResetToken):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusBadRequest
	}
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("user_id").(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrParseUUID
	}
	return id, nil
}

// optionalUserID returns nil when the request carries no identity.
func optionalUserID(c *fiber.Ctx) *uuid.UUID {
	raw, _ := c.Locals("user_id").(string)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, domain.ErrParseUUID
	}
	return id, nil
}
