package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"qrqaema/domain"
	"qrqaema/internal/api/presenters"
	"qrqaema/pkg/restaurant"
)

type (
	RestaurantHandler interface {
		GetMine(c *fiber.Ctx) error
		Get(c *fiber.Ctx) error
		GetPublic(c *fiber.Ctx) error
		Update(c *fiber.Ctx) error
		Delete(c *fiber.Ctx) error
		UploadImage(c *fiber.Ctx) error
		GetStaff(c *fiber.Ctx) error
		AddStaff(c *fiber.Ctx) error
		RemoveStaff(c *fiber.Ctx) error
	}

	restaurantHandler struct {
		restaurantService restaurant.RestaurantService
		validator         *validator.Validate
	}
)

func NewRestaurantHandler(restaurantService restaurant.RestaurantService, validator *validator.Validate) RestaurantHandler {
	return &restaurantHandler{
		restaurantService: restaurantService,
		validator:         validator,
	}
}

func (h *restaurantHandler) GetMine(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetRestaurants, err)
	}

	res, err := h.restaurantService.GetMine(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetRestaurants, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRestaurants)
}

func (h *restaurantHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetRestaurant, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRestaurant, err)
	}

	res, err := h.restaurantService.Get(c.Context(), userID, restaurantID)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetRestaurant, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRestaurant)
}

func (h *restaurantHandler) GetPublic(c *fiber.Ctx) error {
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRestaurant, err)
	}

	res, err := h.restaurantService.GetPublic(c.Context(), restaurantID)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetRestaurant, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRestaurant)
}

func (h *restaurantHandler) Update(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedUpdateRestaurant, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRestaurant, err)
	}

	req := new(domain.UpdateRestaurantRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRestaurant, err)
	}

	res, err := h.restaurantService.Update(c.Context(), userID, restaurantID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedUpdateRestaurant, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRestaurant)
}

func (h *restaurantHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedDeleteRestaurant, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteRestaurant, err)
	}

	if err := h.restaurantService.Delete(c.Context(), userID, restaurantID); err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedDeleteRestaurant, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRestaurant)
}

func (h *restaurantHandler) UploadImage(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedUploadImage, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}
	req := domain.UploadRestaurantImageRequest{
		Kind:  c.FormValue("kind"),
		Image: image,
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	url, err := h.restaurantService.UploadImage(c.Context(), userID, restaurantID, req)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedUploadImage, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"url": url}, fiber.StatusOK, domain.MessageSuccessUploadImage)
}

func (h *restaurantHandler) GetStaff(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetStaff, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetStaff, err)
	}

	res, err := h.restaurantService.GetStaff(c.Context(), userID, restaurantID)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetStaff, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStaff)
}

func (h *restaurantHandler) AddStaff(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedAddStaff, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddStaff, err)
	}

	req := new(domain.AddStaffRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddStaff, err)
	}

	res, err := h.restaurantService.AddStaff(c.Context(), userID, restaurantID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedAddStaff, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddStaff)
}

func (h *restaurantHandler) RemoveStaff(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedRemoveStaff, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRemoveStaff, err)
	}
	staffID, err := paramUUID(c, "staff_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRemoveStaff, err)
	}

	if err := h.restaurantService.RemoveStaff(c.Context(), userID, restaurantID, staffID); err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedRemoveStaff, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveStaff)
}
