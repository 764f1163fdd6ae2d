package analytics

import (
	"context"

	"gorm.io/gorm"

	"qrqaema/domain"
	"qrqaema/entities"
)

type (
	AnalyticsRepository interface {
		CountUsers(ctx context.Context) (total int64, active int64, err error)
		CountRestaurants(ctx context.Context) (int64, error)
		CountOrders(ctx context.Context) (int64, error)
		CountMenuViews(ctx context.Context) (int64, error)
		TopRestaurantsByViews(ctx context.Context, limit int) ([]domain.RestaurantUsage, error)
	}

	analyticsRepository struct {
		db *gorm.DB
	}
)

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CountUsers(ctx context.Context) (int64, int64, error) {
	var total, active int64
	if err := r.db.WithContext(ctx).Model(&entities.User{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&entities.User{}).
		Where("is_active = ?", true).Count(&active).Error; err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

func (r *analyticsRepository) CountRestaurants(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Restaurant{}).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Order{}).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountMenuViews(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.MenuAccess{}).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) TopRestaurantsByViews(ctx context.Context, limit int) ([]domain.RestaurantUsage, error) {
	var usage []domain.RestaurantUsage
	err := r.db.WithContext(ctx).
		Table("restaurants").
		Select(`restaurants.id AS restaurant_id,
			restaurants.name AS name,
			COUNT(DISTINCT menu_accesses.id) AS menu_views,
			COUNT(DISTINCT orders.id) AS orders`).
		Joins("LEFT JOIN menu_accesses ON menu_accesses.restaurant_id = restaurants.id").
		Joins("LEFT JOIN orders ON orders.restaurant_id = restaurants.id").
		Group("restaurants.id, restaurants.name").
		Order("menu_views DESC").
		Limit(limit).
		Scan(&usage).Error
	if err != nil {
		return nil, err
	}
	return usage, nil
}
