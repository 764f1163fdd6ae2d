package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"qrqaema/domain"
	"qrqaema/internal/api/presenters"
	"qrqaema/pkg/help"
)

type (
	HelpHandler interface {
		CreateRequest(c *fiber.Ctx) error
		GetRequests(c *fiber.Ctx) error
		GetMyRequests(c *fiber.Ctx) error
		GetRequest(c *fiber.Ctx) error
		UpdateRequest(c *fiber.Ctx) error
		DeleteRequest(c *fiber.Ctx) error
	}

	helpHandler struct {
		helpService help.HelpService
		validator   *validator.Validate
	}
)

func NewHelpHandler(helpService help.HelpService, validator *validator.Validate) HelpHandler {
	return &helpHandler{
		helpService: helpService,
		validator:   validator,
	}
}

// CreateRequest accepts unauthenticated customers; identity is attached
// when present.
func (h *helpHandler) CreateRequest(c *fiber.Ctx) error {
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateHelpRequest, err)
	}

	req := new(domain.CreateHelpRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateHelpRequest, err)
	}

	res, err := h.helpService.CreateRequest(c.Context(), restaurantID, optionalUserID(c), *req)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedCreateHelpRequest, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateHelpRequest)
}

func (h *helpHandler) GetRequests(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetHelpRequests, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetHelpRequests, err)
	}

	res, err := h.helpService.GetRequests(c.Context(), userID, restaurantID, c.Query("status"))
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetHelpRequests, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHelpRequests)
}

// GetMyRequests lists help requests across every restaurant the caller
// owns or staffs.
func (h *helpHandler) GetMyRequests(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetMyHelpRequests, err)
	}

	res, err := h.helpService.ListMine(c.Context(), userID, c.Query("status"))
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetMyHelpRequests, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMyHelpRequests)
}

func (h *helpHandler) GetRequest(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetHelpRequest, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetHelpRequest, err)
	}
	requestID, err := paramUUID(c, "request_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetHelpRequest, err)
	}

	res, err := h.helpService.GetRequest(c.Context(), userID, restaurantID, requestID)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetHelpRequest, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHelpRequest)
}

func (h *helpHandler) UpdateRequest(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedUpdateHelpRequest, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateHelpRequest, err)
	}
	requestID, err := paramUUID(c, "request_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateHelpRequest, err)
	}

	req := new(domain.UpdateHelpRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateHelpRequest, err)
	}

	res, err := h.helpService.UpdateRequest(c.Context(), userID, restaurantID, requestID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedUpdateHelpRequest, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateHelpRequest)
}

func (h *helpHandler) DeleteRequest(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedDeleteHelpRequest, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteHelpRequest, err)
	}
	requestID, err := paramUUID(c, "request_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteHelpRequest, err)
	}

	if err := h.helpService.DeleteRequest(c.Context(), userID, restaurantID, requestID); err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedDeleteHelpRequest, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteHelpRequest)
}
