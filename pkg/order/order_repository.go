package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"qrqaema/domain"
	"qrqaema/entities"
)

type (
	OrderRepository interface {
		Create(ctx context.Context, order *entities.Order) error
		GetByID(ctx context.Context, orderID uuid.UUID) (*entities.Order, error)
		GetByRestaurant(ctx context.Context, restaurantID uuid.UUID, status string) ([]*entities.Order, error)
		UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error
		Delete(ctx context.Context, orderID uuid.UUID) error
		PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

		GetTable(ctx context.Context, tableID uuid.UUID) (*entities.Table, error)
		GetTableByNumber(ctx context.Context, restaurantID uuid.UUID, number int) (*entities.Table, error)
		GetByTable(ctx context.Context, restaurantID, tableID uuid.UUID) ([]*entities.Order, error)
		GetMenu(ctx context.Context, menuID uuid.UUID) (*entities.Menu, error)
		GetMenuItem(ctx context.Context, itemID uint) (*entities.MenuItem, error)
	}

	orderRepository struct {
		db *gorm.DB
	}
)

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create relies on the partial unique index over active orders per
// table: a second Pending or In Progress order for the same table is
// rejected by the database regardless of request interleaving.
func (r *orderRepository) Create(ctx context.Context, order *entities.Order) error {
	err := r.db.WithContext(ctx).Create(order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrActiveOrderExists
		}
		return err
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, orderID uuid.UUID) (*entities.Order, error) {
	var order entities.Order
	err := r.db.WithContext(ctx).
		Preload("Items.MenuItem").
		Preload("Items.SelectedChoices").
		Preload("Table").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByRestaurant(ctx context.Context, restaurantID uuid.UUID, status string) ([]*entities.Order, error) {
	query := r.db.WithContext(ctx).
		Preload("Items.MenuItem").
		Preload("Items.SelectedChoices").
		Preload("Table").
		Where("restaurant_id = ?", restaurantID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []*entities.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus hits the same active-order index as Create: reopening an
// order on a table that already has a live one is a conflict, not a
// storage failure.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrActiveOrderExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var itemIDs []uint
		if err := tx.Model(&entities.OrderItem{}).
			Where("order_id = ?", orderID).
			Pluck("id", &itemIDs).Error; err != nil {
			return err
		}
		if len(itemIDs) > 0 {
			if err := tx.Exec("DELETE FROM order_item_choices WHERE order_item_id IN ?", itemIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("order_id = ?", orderID).
				Delete(&entities.OrderItem{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&entities.Order{}, "id = ?", orderID).Error
	})
}

// PurgeOlderThan drops orders past the retention window together with
// their items and choice links.
func (r *orderRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var purged int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var orderIDs []uuid.UUID
		if err := tx.Model(&entities.Order{}).
			Where("created_at < ?", cutoff).
			Pluck("id", &orderIDs).Error; err != nil {
			return err
		}
		if len(orderIDs) == 0 {
			return nil
		}

		var itemIDs []uint
		if err := tx.Model(&entities.OrderItem{}).
			Where("order_id IN ?", orderIDs).
			Pluck("id", &itemIDs).Error; err != nil {
			return err
		}
		if len(itemIDs) > 0 {
			if err := tx.Exec("DELETE FROM order_item_choices WHERE order_item_id IN ?", itemIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("order_id IN ?", orderIDs).
				Delete(&entities.OrderItem{}).Error; err != nil {
				return err
			}
		}

		result := tx.Where("id IN ?", orderIDs).Delete(&entities.Order{})
		if result.Error != nil {
			return result.Error
		}
		purged = result.RowsAffected
		return nil
	})
	return purged, err
}

func (r *orderRepository) GetTable(ctx context.Context, tableID uuid.UUID) (*entities.Table, error) {
	var table entities.Table
	if err := r.db.WithContext(ctx).First(&table, "id = ?", tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTableNotFound
		}
		return nil, err
	}
	return &table, nil
}

func (r *orderRepository) GetTableByNumber(ctx context.Context, restaurantID uuid.UUID, number int) (*entities.Table, error) {
	var table entities.Table
	err := r.db.WithContext(ctx).
		First(&table, "restaurant_id = ? AND number = ?", restaurantID, number).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTableNotFound
		}
		return nil, err
	}
	return &table, nil
}

func (r *orderRepository) GetByTable(ctx context.Context, restaurantID, tableID uuid.UUID) ([]*entities.Order, error) {
	var orders []*entities.Order
	err := r.db.WithContext(ctx).
		Preload("Items.MenuItem").
		Preload("Items.SelectedChoices").
		Preload("Table").
		Where("restaurant_id = ? AND table_id = ?", restaurantID, tableID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetMenu(ctx context.Context, menuID uuid.UUID) (*entities.Menu, error) {
	var menu entities.Menu
	if err := r.db.WithContext(ctx).First(&menu, "id = ?", menuID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuNotFound
		}
		return nil, err
	}
	return &menu, nil
}

func (r *orderRepository) GetMenuItem(ctx context.Context, itemID uint) (*entities.MenuItem, error) {
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
