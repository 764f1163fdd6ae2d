package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessPlaceOrder     = "order placed successfully"
	MessageSuccessGetOrders      = "orders retrieved successfully"
	MessageSuccessGetOrder       = "order retrieved successfully"
	MessageSuccessGetOrderStatus = "order status retrieved successfully"
	MessageSuccessGetTableOrders = "table orders retrieved successfully"
	MessageSuccessUpdateOrder    = "order updated successfully"
	MessageSuccessDeleteOrder    = "order deleted successfully"

	MessageFailedPlaceOrder     = "failed to place order"
	MessageFailedGetOrders      = "failed to retrieve orders"
	MessageFailedGetOrder       = "failed to retrieve order"
	MessageFailedGetOrderStatus = "failed to retrieve order status"
	MessageFailedGetTableOrders = "failed to retrieve table orders"
	MessageFailedUpdateOrder    = "failed to update order"
	MessageFailedDeleteOrder    = "failed to delete order"

	ErrOrderNotFound      = errors.New("order not found")
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrActiveOrderExists  = errors.New("table already has an active order")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrInvalidMenu        = errors.New("menu does not belong to this restaurant")
	ErrItemNotAvailable   = errors.New("menu item is not available")
	ErrChoiceNotOnItem    = errors.New("selected choice does not belong to the menu item")
	ErrMissingTableRef    = errors.New("either table id or table number is required")
)

// OrderItemTotal prices a line live from the current menu item price
// and its selected modifiers; totals are never stored.
func OrderItemTotal(price float64, modifiers []float64, quantity int) float64 {
	unit := price
	for _, modifier := range modifiers {
		unit += modifier
	}
	return RoundPrice(unit * float64(quantity))
}

type (
	PlaceOrderItemRequest struct {
		MenuItemID     uint   `json:"menu_item" validate:"required"`
		Quantity       int    `json:"quantity" validate:"required,min=1"`
		SpecialRequest string `json:"special_request" validate:"omitempty,max=300"`
		ChoiceIDs      []uint `json:"choices" validate:"omitempty"`
	}

	// PlaceOrderRequest identifies the table either by id (the QR code
	// path) or by its number within the restaurant.
	PlaceOrderRequest struct {
		TableID        string                  `json:"table" validate:"omitempty,uuid"`
		TableNumber    int                     `json:"table_number" validate:"omitempty,min=1"`
		MenuID         string                  `json:"menu" validate:"omitempty,uuid"`
		AdditionalInfo string                  `json:"additional_info" validate:"omitempty,max=500"`
		Items          []PlaceOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	}

	UpdateOrderRequest struct {
		Status string `json:"status" validate:"required,oneof=Pending 'In Progress' Completed"`
	}

	OrderItemResponse struct {
		ID             uint                   `json:"id"`
		MenuItemID     uint                   `json:"menu_item"`
		Name           string                 `json:"name"`
		Quantity       int                    `json:"quantity"`
		SpecialRequest string                 `json:"special_request,omitempty"`
		Choices        []OptionChoiceResponse `json:"choices,omitempty"`
		TotalPrice     float64                `json:"total_price"`
	}

	OrderResponse struct {
		ID             string              `json:"id"`
		TableID        string              `json:"table"`
		TableNumber    int                 `json:"table_number"`
		Status         string              `json:"status"`
		AdditionalInfo string              `json:"additional_info,omitempty"`
		CreatedAt      time.Time           `json:"created_at"`
		Items          []OrderItemResponse `json:"items"`
		TotalPrice     float64             `json:"total_price"`
	}

	OrderStatusResponse struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
)
