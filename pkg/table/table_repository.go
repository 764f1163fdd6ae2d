package table

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"qrqaema/domain"
	"qrqaema/entities"
)

const createRetries = 3

type (
	TableRepository interface {
		Create(ctx context.Context, table *entities.Table) error
		GetByID(ctx context.Context, tableID uuid.UUID) (*entities.Table, error)
		GetByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*entities.Table, error)
		Update(ctx context.Context, table *entities.Table) error
		Delete(ctx context.Context, tableID uuid.UUID) error
	}

	tableRepository struct {
		db *gorm.DB
	}
)

func NewTableRepository(db *gorm.DB) TableRepository {
	return &tableRepository{db: db}
}

// Create assigns the next table number for the restaurant. Concurrent
// inserts can race on the same number; the unique index on
// (restaurant_id, number) rejects the loser and we retry with a fresh
// number.
func (r *tableRepository) Create(ctx context.Context, table *entities.Table) error {
	var err error
	for attempt := 0; attempt < createRetries; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var max int
			row := tx.Model(&entities.Table{}).
				Where("restaurant_id = ?", table.RestaurantID).
				Select("COALESCE(MAX(number), 0)").
				Row()
			if err := row.Scan(&max); err != nil {
				return err
			}
			table.Number = max + 1
			return tx.Create(table).Error
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		table.ID = uuid.Nil
	}
	return err
}

func (r *tableRepository) GetByID(ctx context.Context, tableID uuid.UUID) (*entities.Table, error) {
	var table entities.Table
	if err := r.db.WithContext(ctx).First(&table, "id = ?", tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTableNotFound
		}
		return nil, err
	}
	return &table, nil
}

func (r *tableRepository) GetByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*entities.Table, error) {
	var tables []*entities.Table
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("number").
		Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *tableRepository) Update(ctx context.Context, table *entities.Table) error {
	return r.db.WithContext(ctx).Save(table).Error
}

func (r *tableRepository) Delete(ctx context.Context, tableID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Table{}, "id = ?", tableID).Error
}
