package access

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"qrqaema/domain"
	"qrqaema/entities"
)

type (
	AccessRepository interface {
		GetRestaurant(ctx context.Context, restaurantID uuid.UUID) (*entities.Restaurant, error)
		IsStaff(ctx context.Context, restaurantID, userID uuid.UUID) (bool, error)
		RestaurantsForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Restaurant, error)
		GetUser(ctx context.Context, userID uuid.UUID) (*entities.User, error)
	}

	accessRepository struct {
		db *gorm.DB
	}
)

func NewAccessRepository(db *gorm.DB) AccessRepository {
	return &accessRepository{db: db}
}

func (r *accessRepository) GetRestaurant(ctx context.Context, restaurantID uuid.UUID) (*entities.Restaurant, error) {
	var restaurant entities.Restaurant
	if err := r.db.WithContext(ctx).
		First(&restaurant, "id = ?", restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

func (r *accessRepository) IsStaff(ctx context.Context, restaurantID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("restaurant_staff").
		Where("restaurant_id = ? AND user_id = ?", restaurantID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *accessRepository) RestaurantsForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Restaurant, error) {
	var owned []*entities.Restaurant
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", userID).
		Find(&owned).Error; err != nil {
		return nil, err
	}

	var staffed []*entities.Restaurant
	if err := r.db.WithContext(ctx).
		Joins("JOIN restaurant_staff rs ON rs.restaurant_id = restaurants.id").
		Where("rs.user_id = ?", userID).
		Find(&staffed).Error; err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(owned))
	result := make([]*entities.Restaurant, 0, len(owned)+len(staffed))
	for _, rest := range owned {
		seen[rest.ID] = true
		result = append(result, rest)
	}
	for _, rest := range staffed {
		if !seen[rest.ID] {
			result = append(result, rest)
		}
	}
	return result, nil
}

func (r *accessRepository) GetUser(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
