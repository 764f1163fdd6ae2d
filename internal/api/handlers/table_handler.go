package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"qrqaema/domain"
	"qrqaema/internal/api/presenters"
	"qrqaema/pkg/table"
)

type (
	TableHandler interface {
		AddTable(c *fiber.Ctx) error
		GetTables(c *fiber.Ctx) error
		GetTable(c *fiber.Ctx) error
		UpdateTable(c *fiber.Ctx) error
		DeleteTable(c *fiber.Ctx) error
		GetQrCode(c *fiber.Ctx) error
	}

	tableHandler struct {
		tableService table.TableService
		validator    *validator.Validate
	}
)

func NewTableHandler(tableService table.TableService, validator *validator.Validate) TableHandler {
	return &tableHandler{
		tableService: tableService,
		validator:    validator,
	}
}

func (h *tableHandler) AddTable(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedAddTable, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddTable, err)
	}

	req := new(domain.AddTableRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
		if err := h.validator.Struct(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddTable, err)
		}
	}

	res, err := h.tableService.AddTable(c.Context(), userID, restaurantID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedAddTable, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddTable)
}

func (h *tableHandler) GetTables(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetTables, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTables, err)
	}

	res, err := h.tableService.GetTables(c.Context(), userID, restaurantID)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetTables, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTables)
}

func (h *tableHandler) GetTable(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetTable, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTable, err)
	}
	tableID, err := paramUUID(c, "table_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTable, err)
	}

	res, err := h.tableService.GetTable(c.Context(), userID, restaurantID, tableID)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetTable, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTable)
}

func (h *tableHandler) UpdateTable(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedUpdateTable, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateTable, err)
	}
	tableID, err := paramUUID(c, "table_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateTable, err)
	}

	req := new(domain.UpdateTableRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateTable, err)
	}

	res, err := h.tableService.UpdateTable(c.Context(), userID, restaurantID, tableID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedUpdateTable, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateTable)
}

func (h *tableHandler) DeleteTable(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedDeleteTable, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteTable, err)
	}
	tableID, err := paramUUID(c, "table_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteTable, err)
	}

	if err := h.tableService.DeleteTable(c.Context(), userID, restaurantID, tableID); err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedDeleteTable, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteTable)
}

// GetQrCode streams the table's QR code as a PNG.
func (h *tableHandler) GetQrCode(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetTableQrCode, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTableQrCode, err)
	}
	tableID, err := paramUUID(c, "table_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTableQrCode, err)
	}

	png, err := h.tableService.GetQrCode(c.Context(), userID, restaurantID, tableID)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetTableQrCode, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
