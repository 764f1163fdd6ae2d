package domain

import (
	"errors"
)

var (
	MessageSuccessGetPlatformStats = "platform statistics retrieved successfully"

	MessageFailedGetPlatformStats = "failed to retrieve platform statistics"

	ErrSuperuserOnly = errors.New("superuser access required")
)

type (
	RestaurantUsage struct {
		RestaurantID string `json:"restaurant_id"`
		Name         string `json:"name"`
		MenuViews    int64  `json:"menu_views"`
		Orders       int64  `json:"orders"`
	}

	PlatformStatsResponse struct {
		TotalUsers       int64             `json:"total_users"`
		ActiveUsers      int64             `json:"active_users"`
		TotalRestaurants int64             `json:"total_restaurants"`
		TotalOrders      int64             `json:"total_orders"`
		TotalMenuViews   int64             `json:"total_menu_views"`
		TopRestaurants   []RestaurantUsage `json:"top_restaurants"`
	}
)
