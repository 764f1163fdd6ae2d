package handlers

import (
	"github.com/gofiber/fiber/v2"

	"qrqaema/domain"
	"qrqaema/internal/api/presenters"
	"qrqaema/pkg/analytics"
)

type (
	AnalyticsHandler interface {
		PlatformStats(c *fiber.Ctx) error
	}

	analyticsHandler struct {
		analyticsService analytics.AnalyticsService
	}
)

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &analyticsHandler{analyticsService: analyticsService}
}

func (h *analyticsHandler) PlatformStats(c *fiber.Ctx) error {
	res, err := h.analyticsService.PlatformStats(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetPlatformStats, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPlatformStats)
}
