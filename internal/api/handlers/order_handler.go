package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"qrqaema/domain"
	"qrqaema/internal/api/presenters"
	"qrqaema/pkg/order"
)

type (
	OrderHandler interface {
		PlaceOrder(c *fiber.Ctx) error
		GetOrders(c *fiber.Ctx) error
		GetOrder(c *fiber.Ctx) error
		GetOrderStatus(c *fiber.Ctx) error
		GetTableOrders(c *fiber.Ctx) error
		UpdateOrder(c *fiber.Ctx) error
		DeleteOrder(c *fiber.Ctx) error
	}

	orderHandler struct {
		orderService order.OrderService
		validator    *validator.Validate
	}
)

func NewOrderHandler(orderService order.OrderService, validator *validator.Validate) OrderHandler {
	return &orderHandler{
		orderService: orderService,
		validator:    validator,
	}
}

// PlaceOrder is reachable without authentication; customers order from
// the table page.
func (h *orderHandler) PlaceOrder(c *fiber.Ctx) error {
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPlaceOrder, err)
	}

	req := new(domain.PlaceOrderRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPlaceOrder, err)
	}

	res, err := h.orderService.PlaceOrder(c.Context(), restaurantID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedPlaceOrder, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessPlaceOrder)
}

func (h *orderHandler) GetOrders(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetOrders, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrders, err)
	}

	res, err := h.orderService.GetOrders(c.Context(), userID, restaurantID, c.Query("status"))
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetOrders, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) GetOrder(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetOrder, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrder, err)
	}
	orderID, err := paramUUID(c, "order_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrder, err)
	}

	res, err := h.orderService.GetOrder(c.Context(), userID, restaurantID, orderID)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetOrder, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrder)
}

// GetOrderStatus is public so the table page can poll it.
func (h *orderHandler) GetOrderStatus(c *fiber.Ctx) error {
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrderStatus, err)
	}
	orderID, err := paramUUID(c, "order_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrderStatus, err)
	}

	res, err := h.orderService.GetOrderStatus(c.Context(), restaurantID, orderID)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetOrderStatus, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrderStatus)
}

// GetTableOrders lists the orders on record for a table, addressed by
// its number so the table page needs nothing beyond the QR payload.
func (h *orderHandler) GetTableOrders(c *fiber.Ctx) error {
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTableOrders, err)
	}
	tableNumber, err := c.ParamsInt("number")
	if err != nil || tableNumber < 1 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTableOrders, domain.ErrMissingTableRef)
	}

	res, err := h.orderService.GetTableOrders(c.Context(), restaurantID, tableNumber)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetTableOrders, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTableOrders)
}

func (h *orderHandler) UpdateOrder(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedUpdateOrder, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateOrder, err)
	}
	orderID, err := paramUUID(c, "order_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateOrder, err)
	}

	req := new(domain.UpdateOrderRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateOrder, err)
	}

	if err := h.orderService.UpdateOrder(c.Context(), userID, restaurantID, orderID, *req); err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedUpdateOrder, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateOrder)
}

func (h *orderHandler) DeleteOrder(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedDeleteOrder, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteOrder, err)
	}
	orderID, err := paramUUID(c, "order_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteOrder, err)
	}

	if err := h.orderService.DeleteOrder(c.Context(), userID, restaurantID, orderID); err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedDeleteOrder, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteOrder)
}
