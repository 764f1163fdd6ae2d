package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"qrqaema/domain"
	"qrqaema/entities"
)

type (
	CatalogRepository interface {
		CreateMenu(ctx context.Context, menu *entities.Menu) error
		GetMenus(ctx context.Context, restaurantID uuid.UUID) ([]*entities.Menu, error)
		GetMenu(ctx context.Context, menuID uuid.UUID) (*entities.Menu, error)
		GetMenuTree(ctx context.Context, menuID uuid.UUID, availableOnly bool) (*entities.Menu, error)
		GetMenuByLanguage(ctx context.Context, restaurantID uuid.UUID, language string) (*entities.Menu, error)
		GetDefaultMenu(ctx context.Context, restaurantID uuid.UUID) (*entities.Menu, error)
		UpdateMenu(ctx context.Context, menu *entities.Menu) error
		DeleteMenu(ctx context.Context, menuID uuid.UUID) error
		SetDefaultMenu(ctx context.Context, restaurantID, menuID uuid.UUID) error

		CreateCategory(ctx context.Context, category *entities.Category) error
		GetCategory(ctx context.Context, categoryID uint) (*entities.Category, error)
		GetCategories(ctx context.Context, menuID uuid.UUID) ([]*entities.Category, error)
		UpdateCategory(ctx context.Context, category *entities.Category) error
		DeleteCategory(ctx context.Context, categoryID uint) error

		CreateMenuItem(ctx context.Context, item *entities.MenuItem) error
		GetMenuItem(ctx context.Context, itemID uint) (*entities.MenuItem, error)
		UpdateMenuItem(ctx context.Context, item *entities.MenuItem, replaceOptions bool, options []*entities.MenuItemOption) error
		DeleteMenuItem(ctx context.Context, itemID uint) error

		RecordMenuAccess(ctx context.Context, record *entities.MenuAccess) error
	}

	catalogRepository struct {
		db *gorm.DB
	}
)

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// CreateMenu persists the menu; a menu created as default unsets every
// sibling default in the same transaction, so exactly one menu is ever
// the default.
func (r *catalogRepository) CreateMenu(ctx context.Context, menu *entities.Menu) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if menu.IsDefault {
			if err := tx.Model(&entities.Menu{}).
				Where("restaurant_id = ?", menu.RestaurantID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(menu).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateLanguage
		}
		return err
	}
	return nil
}

func (r *catalogRepository) GetMenus(ctx context.Context, restaurantID uuid.UUID) ([]*entities.Menu, error) {
	var menus []*entities.Menu
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at").
		Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *catalogRepository) GetMenu(ctx context.Context, menuID uuid.UUID) (*entities.Menu, error) {
	var menu entities.Menu
	if err := r.db.WithContext(ctx).First(&menu, "id = ?", menuID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuNotFound
		}
		return nil, err
	}
	return &menu, nil
}

// GetMenuTree loads the menu with its categories, items, and option
// groups in (sort_order, name) display order. The customer view asks
// for available items only; management sees everything.
func (r *catalogRepository) GetMenuTree(ctx context.Context, menuID uuid.UUID, availableOnly bool) (*entities.Menu, error) {
	var menu entities.Menu
	err := r.db.WithContext(ctx).
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order, name")
		}).
		Preload("Categories.Items", func(db *gorm.DB) *gorm.DB {
			if availableOnly {
				db = db.Where("is_available = ?", true)
			}
			return db.Order("sort_order, name")
		}).
		Preload("Categories.Items.Options.Choices").
		First(&menu, "id = ?", menuID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuNotFound
		}
		return nil, err
	}
	return &menu, nil
}

func (r *catalogRepository) GetMenuByLanguage(ctx context.Context, restaurantID uuid.UUID, language string) (*entities.Menu, error) {
	var menu entities.Menu
	err := r.db.WithContext(ctx).
		First(&menu, "restaurant_id = ? AND language = ?", restaurantID, language).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuNotFound
		}
		return nil, err
	}
	return &menu, nil
}

func (r *catalogRepository) GetDefaultMenu(ctx context.Context, restaurantID uuid.UUID) (*entities.Menu, error) {
	var menu entities.Menu
	err := r.db.WithContext(ctx).
		First(&menu, "restaurant_id = ? AND is_default = ?", restaurantID, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoDefaultMenu
		}
		return nil, err
	}
	return &menu, nil
}

func (r *catalogRepository) UpdateMenu(ctx context.Context, menu *entities.Menu) error {
	if err := r.db.WithContext(ctx).Save(menu).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateLanguage
		}
		return err
	}
	return nil
}

func (r *catalogRepository) DeleteMenu(ctx context.Context, menuID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", menuID).Delete(&entities.MenuItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("menu_id = ?", menuID).Delete(&entities.Category{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Menu{}, "id = ?", menuID).Error
	})
}

// SetDefaultMenu clears every default flag for the restaurant and sets
// the requested menu in one transaction, so exactly one menu is ever
// the default.
func (r *catalogRepository) SetDefaultMenu(ctx context.Context, restaurantID, menuID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Menu{}).
			Where("restaurant_id = ?", restaurantID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		result := tx.Model(&entities.Menu{}).
			Where("id = ? AND restaurant_id = ?", menuID, restaurantID).
			Update("is_default", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrMenuNotFound
		}
		return nil
	})
}

func (r *catalogRepository) CreateCategory(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *catalogRepository) GetCategory(ctx context.Context, categoryID uint) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *catalogRepository) GetCategories(ctx context.Context, menuID uuid.UUID) ([]*entities.Category, error) {
	var categories []*entities.Category
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order, id")
		}).
		Preload("Items.Options.Choices").
		Where("menu_id = ?", menuID).
		Order("sort_order, id").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *catalogRepository) UpdateCategory(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *catalogRepository) DeleteCategory(ctx context.Context, categoryID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", categoryID).Delete(&entities.MenuItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Category{}, "id = ?", categoryID).Error
	})
}

func (r *catalogRepository) CreateMenuItem(ctx context.Context, item *entities.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *catalogRepository) GetMenuItem(ctx context.Context, itemID uint) (*entities.MenuItem, error) {
	var item entities.MenuItem
	err := r.db.WithContext(ctx).
		Preload("Options.Choices").
		First(&item, "id = ?", itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// UpdateMenuItem saves the item and, when requested, replaces its
// option groups wholesale. Existing groups and choices are removed and
// the new set is written in the same transaction.
func (r *catalogRepository) UpdateMenuItem(ctx context.Context, item *entities.MenuItem, replaceOptions bool, options []*entities.MenuItemOption) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Options").Save(item).Error; err != nil {
			return err
		}
		if !replaceOptions {
			return nil
		}

		var optionIDs []uint
		if err := tx.Model(&entities.MenuItemOption{}).
			Where("menu_item_id = ?", item.ID).
			Pluck("id", &optionIDs).Error; err != nil {
			return err
		}
		if len(optionIDs) > 0 {
			if err := tx.Where("option_id IN ?", optionIDs).
				Delete(&entities.MenuItemOptionChoice{}).Error; err != nil {
				return err
			}
			if err := tx.Where("menu_item_id = ?", item.ID).
				Delete(&entities.MenuItemOption{}).Error; err != nil {
				return err
			}
		}

		for _, option := range options {
			option.ID = 0
			option.MenuItemID = item.ID
			for _, choice := range option.Choices {
				choice.ID = 0
			}
			if err := tx.Create(option).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *catalogRepository) DeleteMenuItem(ctx context.Context, itemID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var optionIDs []uint
		if err := tx.Model(&entities.MenuItemOption{}).
			Where("menu_item_id = ?", itemID).
			Pluck("id", &optionIDs).Error; err != nil {
			return err
		}
		if len(optionIDs) > 0 {
			if err := tx.Where("option_id IN ?", optionIDs).
				Delete(&entities.MenuItemOptionChoice{}).Error; err != nil {
				return err
			}
			if err := tx.Where("menu_item_id = ?", itemID).
				Delete(&entities.MenuItemOption{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&entities.MenuItem{}, "id = ?", itemID).Error
	})
}

func (r *catalogRepository) RecordMenuAccess(ctx context.Context, record *entities.MenuAccess) error {
	return r.db.WithContext(ctx).Create(record).Error
}
