package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessCreateMenu     = "menu created successfully"
	MessageSuccessGetMenus       = "menus retrieved successfully"
	MessageSuccessGetMenu        = "menu retrieved successfully"
	MessageSuccessUpdateMenu     = "menu updated successfully"
	MessageSuccessDeleteMenu     = "menu deleted successfully"
	MessageSuccessSetDefaultMenu = "default menu set successfully"

	MessageSuccessCreateCategory = "category created successfully"
	MessageSuccessGetCategories  = "categories retrieved successfully"
	MessageSuccessUpdateCategory = "category updated successfully"
	MessageSuccessDeleteCategory = "category deleted successfully"

	MessageSuccessCreateMenuItem = "menu item created successfully"
	MessageSuccessGetMenuItems   = "menu items retrieved successfully"
	MessageSuccessUpdateMenuItem = "menu item updated successfully"
	MessageSuccessDeleteMenuItem = "menu item deleted successfully"

	MessageFailedCreateMenu     = "failed to create menu"
	MessageFailedGetMenus       = "failed to retrieve menus"
	MessageFailedGetMenu        = "failed to retrieve menu"
	MessageFailedUpdateMenu     = "failed to update menu"
	MessageFailedDeleteMenu     = "failed to delete menu"
	MessageFailedSetDefaultMenu = "failed to set default menu"

	MessageFailedCreateCategory = "failed to create category"
	MessageFailedGetCategories  = "failed to retrieve categories"
	MessageFailedUpdateCategory = "failed to update category"
	MessageFailedDeleteCategory = "failed to delete category"

	MessageFailedCreateMenuItem = "failed to create menu item"
	MessageFailedGetMenuItems   = "failed to retrieve menu items"
	MessageFailedUpdateMenuItem = "failed to update menu item"
	MessageFailedDeleteMenuItem = "failed to delete menu item"

	ErrMenuNotFound         = errors.New("menu not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrMenuItemNotFound     = errors.New("menu item not found")
	ErrDuplicateLanguage    = errors.New("a menu with this language already exists")
	ErrNoDefaultMenu        = errors.New("restaurant has no default menu")
	ErrCrossTenantReference = errors.New("referenced resource belongs to another restaurant")
)

type (
	CreateMenuRequest struct {
		Name      string `json:"name" validate:"required,min=1,max=100"`
		Language  string `json:"language" validate:"required,oneof=en ar tr nl"`
		IsDefault bool   `json:"is_default"`
	}

	UpdateMenuRequest struct {
		Name     string `json:"name" validate:"omitempty,min=1,max=100"`
		Language string `json:"language" validate:"omitempty,oneof=en ar tr nl"`
	}

	MenuResponse struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Language  string `json:"language"`
		IsDefault bool   `json:"is_default"`
	}

	CreateCategoryRequest struct {
		MenuID      string `json:"menu" validate:"required,uuid"`
		Name        string `json:"name" validate:"required,min=1,max=100"`
		Description string `json:"description" validate:"omitempty,max=500"`
		SortOrder   int    `json:"order" validate:"omitempty,min=0"`
	}

	UpdateCategoryRequest struct {
		Name        string `json:"name" validate:"omitempty,min=1,max=100"`
		Description string `json:"description" validate:"omitempty,max=500"`
		SortOrder   *int   `json:"order" validate:"omitempty,min=0"`
	}

	CategoryResponse struct {
		ID          uint               `json:"id"`
		MenuID      string             `json:"menu"`
		Name        string             `json:"name"`
		Description string             `json:"description,omitempty"`
		ImageURL    string             `json:"image_url,omitempty"`
		SortOrder   int                `json:"order"`
		Items       []MenuItemResponse `json:"items,omitempty"`
	}

	OptionChoiceRequest struct {
		Name          string  `json:"name" validate:"required,min=1,max=100"`
		PriceModifier float64 `json:"price_modifier"`
	}

	OptionRequest struct {
		Name    string                `json:"name" validate:"required,min=1,max=100"`
		Choices []OptionChoiceRequest `json:"choices" validate:"omitempty,dive"`
	}

	CreateMenuItemRequest struct {
		CategoryID  uint            `json:"category" validate:"required"`
		Name        string          `json:"name" validate:"required,min=1,max=100"`
		Description string          `json:"description" validate:"omitempty,max=500"`
		Price       float64         `json:"price" validate:"required,min=0"`
		IsAvailable *bool           `json:"is_available"`
		SortOrder   int             `json:"order" validate:"omitempty,min=0"`
		Options     []OptionRequest `json:"options" validate:"omitempty,dive"`
	}

	UpdateMenuItemRequest struct {
		CategoryID  *uint           `json:"category"`
		Name        string          `json:"name" validate:"omitempty,min=1,max=100"`
		Description string          `json:"description" validate:"omitempty,max=500"`
		Price       *float64        `json:"price" validate:"omitempty,min=0"`
		IsAvailable *bool           `json:"is_available"`
		SortOrder   *int            `json:"order" validate:"omitempty,min=0"`
		Options     []OptionRequest `json:"options" validate:"omitempty,dive"`
	}

	UploadMenuImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	OptionChoiceResponse struct {
		ID            uint    `json:"id"`
		Name          string  `json:"name"`
		PriceModifier float64 `json:"price_modifier"`
	}

	OptionResponse struct {
		ID      uint                   `json:"id"`
		Name    string                 `json:"name"`
		Choices []OptionChoiceResponse `json:"choices"`
	}

	MenuItemResponse struct {
		ID          uint             `json:"id"`
		CategoryID  *uint            `json:"category,omitempty"`
		Name        string           `json:"name"`
		Description string           `json:"description,omitempty"`
		Price       float64          `json:"price"`
		ImageURL    string           `json:"image_url,omitempty"`
		IsAvailable bool             `json:"is_available"`
		SortOrder   int              `json:"order"`
		Options     []OptionResponse `json:"options,omitempty"`
	}

	// CustomerMenuResponse is the full menu tree served to customers.
	CustomerMenuResponse struct {
		Restaurant PublicRestaurantResponse `json:"restaurant"`
		Menu       MenuResponse             `json:"menu"`
		Categories []CategoryResponse       `json:"categories"`
	}
)
