package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"qrqaema/domain"
	"qrqaema/internal/api/presenters"
	"qrqaema/pkg/catalog"
)

type (
	CatalogHandler interface {
		CreateMenu(c *fiber.Ctx) error
		GetMenus(c *fiber.Ctx) error
		GetMenu(c *fiber.Ctx) error
		UpdateMenu(c *fiber.Ctx) error
		DeleteMenu(c *fiber.Ctx) error
		SetDefaultMenu(c *fiber.Ctx) error
		CreateCategory(c *fiber.Ctx) error
		UpdateCategory(c *fiber.Ctx) error
		DeleteCategory(c *fiber.Ctx) error
		UploadCategoryImage(c *fiber.Ctx) error
		CreateMenuItem(c *fiber.Ctx) error
		UpdateMenuItem(c *fiber.Ctx) error
		DeleteMenuItem(c *fiber.Ctx) error
		UploadMenuItemImage(c *fiber.Ctx) error
		GetCustomerMenu(c *fiber.Ctx) error
	}

	catalogHandler struct {
		catalogService catalog.CatalogService
		validator      *validator.Validate
	}
)

func NewCatalogHandler(catalogService catalog.CatalogService, validator *validator.Validate) CatalogHandler {
	return &catalogHandler{
		catalogService: catalogService,
		validator:      validator,
	}
}

func (h *catalogHandler) CreateMenu(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedCreateMenu, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateMenu, err)
	}

	req := new(domain.CreateMenuRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateMenu, err)
	}

	res, err := h.catalogService.CreateMenu(c.Context(), userID, restaurantID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedCreateMenu, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateMenu)
}

func (h *catalogHandler) GetMenus(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetMenus, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMenus, err)
	}

	res, err := h.catalogService.GetMenus(c.Context(), userID, restaurantID)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetMenus, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenus)
}

func (h *catalogHandler) GetMenu(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetMenu, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMenu, err)
	}
	menuID, err := paramUUID(c, "menu_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMenu, err)
	}

	menu, categories, err := h.catalogService.GetMenu(c.Context(), userID, restaurantID, menuID)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetMenu, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{
		"menu":       menu,
		"categories": categories,
	}, fiber.StatusOK, domain.MessageSuccessGetMenu)
}

func (h *catalogHandler) UpdateMenu(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedUpdateMenu, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMenu, err)
	}
	menuID, err := paramUUID(c, "menu_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMenu, err)
	}

	req := new(domain.UpdateMenuRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMenu, err)
	}

	res, err := h.catalogService.UpdateMenu(c.Context(), userID, restaurantID, menuID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedUpdateMenu, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateMenu)
}

func (h *catalogHandler) DeleteMenu(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedDeleteMenu, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteMenu, err)
	}
	menuID, err := paramUUID(c, "menu_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteMenu, err)
	}

	if err := h.catalogService.DeleteMenu(c.Context(), userID, restaurantID, menuID); err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedDeleteMenu, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteMenu)
}

func (h *catalogHandler) SetDefaultMenu(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedSetDefaultMenu, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetDefaultMenu, err)
	}
	menuID, err := paramUUID(c, "menu_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetDefaultMenu, err)
	}

	if err := h.catalogService.SetDefaultMenu(c.Context(), userID, restaurantID, menuID); err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedSetDefaultMenu, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSetDefaultMenu)
}

func (h *catalogHandler) CreateCategory(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedCreateCategory, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateCategory, err)
	}

	req := new(domain.CreateCategoryRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateCategory, err)
	}

	res, err := h.catalogService.CreateCategory(c.Context(), userID, restaurantID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedCreateCategory, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateCategory)
}

func (h *catalogHandler) UpdateCategory(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedUpdateCategory, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateCategory, err)
	}
	categoryID, err := c.ParamsInt("category_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateCategory, err)
	}

	req := new(domain.UpdateCategoryRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateCategory, err)
	}

	res, err := h.catalogService.UpdateCategory(c.Context(), userID, restaurantID, uint(categoryID), *req)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedUpdateCategory, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateCategory)
}

func (h *catalogHandler) DeleteCategory(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedDeleteCategory, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteCategory, err)
	}
	categoryID, err := c.ParamsInt("category_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteCategory, err)
	}

	if err := h.catalogService.DeleteCategory(c.Context(), userID, restaurantID, uint(categoryID)); err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedDeleteCategory, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteCategory)
}

func (h *catalogHandler) UploadCategoryImage(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedUploadImage, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}
	categoryID, err := c.ParamsInt("category_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}
	req := domain.UploadMenuImageRequest{Image: image}

	url, err := h.catalogService.UploadCategoryImage(c.Context(), userID, restaurantID, uint(categoryID), req)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedUploadImage, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"url": url}, fiber.StatusOK, domain.MessageSuccessUploadImage)
}

func (h *catalogHandler) CreateMenuItem(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedCreateMenuItem, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateMenuItem, err)
	}

	req := new(domain.CreateMenuItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateMenuItem, err)
	}

	res, err := h.catalogService.CreateMenuItem(c.Context(), userID, restaurantID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedCreateMenuItem, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateMenuItem)
}

func (h *catalogHandler) UpdateMenuItem(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedUpdateMenuItem, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMenuItem, err)
	}
	itemID, err := c.ParamsInt("item_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMenuItem, err)
	}

	req := new(domain.UpdateMenuItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMenuItem, err)
	}

	res, err := h.catalogService.UpdateMenuItem(c.Context(), userID, restaurantID, uint(itemID), *req)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedUpdateMenuItem, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateMenuItem)
}

func (h *catalogHandler) DeleteMenuItem(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedDeleteMenuItem, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteMenuItem, err)
	}
	itemID, err := c.ParamsInt("item_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteMenuItem, err)
	}

	if err := h.catalogService.DeleteMenuItem(c.Context(), userID, restaurantID, uint(itemID)); err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedDeleteMenuItem, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteMenuItem)
}

func (h *catalogHandler) UploadMenuItemImage(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedUploadImage, err)
	}
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}
	itemID, err := c.ParamsInt("item_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}
	req := domain.UploadMenuImageRequest{Image: image}

	url, err := h.catalogService.UploadMenuItemImage(c.Context(), userID, restaurantID, uint(itemID), req)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedUploadImage, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"url": url}, fiber.StatusOK, domain.MessageSuccessUploadImage)
}

// GetCustomerMenu is the public endpoint behind the QR code.
func (h *catalogHandler) GetCustomerMenu(c *fiber.Ctx) error {
	restaurantID, err := paramUUID(c, "restaurant_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMenu, err)
	}

	res, err := h.catalogService.GetCustomerMenu(c.Context(), restaurantID, c.Query("lang"))
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetMenu, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenu)
}
