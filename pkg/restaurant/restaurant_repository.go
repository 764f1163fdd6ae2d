package restaurant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"qrqaema/domain"
	"qrqaema/entities"
)

type (
	RestaurantRepository interface {
		GetByID(ctx context.Context, id uuid.UUID) (*entities.Restaurant, error)
		Update(ctx context.Context, restaurant *entities.Restaurant) error
		Delete(ctx context.Context, id uuid.UUID) error
		GetStaff(ctx context.Context, restaurantID uuid.UUID) ([]*entities.User, error)
		AddStaff(ctx context.Context, restaurantID, userID uuid.UUID) error
		RemoveStaff(ctx context.Context, restaurantID, userID uuid.UUID) (bool, error)
		GetUserByUsername(ctx context.Context, username string) (*entities.User, error)
	}

	restaurantRepository struct {
		db *gorm.DB
	}
)

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Restaurant, error) {
	var restaurant entities.Restaurant
	if err := r.db.WithContext(ctx).First(&restaurant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) Update(ctx context.Context, restaurant *entities.Restaurant) error {
	return r.db.WithContext(ctx).Save(restaurant).Error
}

// Delete cascades through menus, tables, orders, and help requests, and
// detaches staff memberships.
func (r *restaurantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		restaurant := &entities.Restaurant{ID: id}
		return tx.Select("Menus", "Tables", "Orders", "HelpRequests", "Staff").
			Delete(restaurant).Error
	})
}

func (r *restaurantRepository) GetStaff(ctx context.Context, restaurantID uuid.UUID) ([]*entities.User, error) {
	var staff []*entities.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN restaurant_staff rs ON rs.user_id = users.id").
		Where("rs.restaurant_id = ?", restaurantID).
		Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *restaurantRepository) AddStaff(ctx context.Context, restaurantID, userID uuid.UUID) error {
	restaurant := &entities.Restaurant{ID: restaurantID}
	err := r.db.WithContext(ctx).
		Model(restaurant).
		Association("Staff").
		Append(&entities.User{ID: userID})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrStaffAlreadyAdded
		}
		return err
	}
	return nil
}

// RemoveStaff detaches the membership only; the user account is left
// untouched.
func (r *restaurantRepository) RemoveStaff(ctx context.Context, restaurantID, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Exec("DELETE FROM restaurant_staff WHERE restaurant_id = ? AND user_id = ?", restaurantID, userID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *restaurantRepository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
