package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"qrqaema/domain"
	"qrqaema/entities"
)

type (
	UserRepository interface {
		CreateWithRestaurant(ctx context.Context, user *entities.User, restaurant *entities.Restaurant, defaultMenu *entities.Menu) error
		GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
		GetByUsername(ctx context.Context, username string) (*entities.User, error)
		GetByEmail(ctx context.Context, email string) (*entities.User, error)
		Activate(ctx context.Context, id uuid.UUID) error
		UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error
		Delete(ctx context.Context, id uuid.UUID) error
		OwnedRestaurants(ctx context.Context, userID uuid.UUID) ([]*entities.Restaurant, error)
		StaffedRestaurants(ctx context.Context, userID uuid.UUID) ([]*entities.Restaurant, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateWithRestaurant registers a new account atomically: the inactive
// user, their restaurant, and the restaurant's default menu are all
// written in one transaction.
func (r *userRepository) CreateWithRestaurant(ctx context.Context, user *entities.User, restaurant *entities.Restaurant, defaultMenu *entities.Menu) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		restaurant.OwnerID = &user.ID
		if err := tx.Create(restaurant).Error; err != nil {
			return err
		}
		defaultMenu.RestaurantID = restaurant.ID
		defaultMenu.IsDefault = true
		return tx.Create(defaultMenu).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Activate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", id).
		Update("is_active", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", id).
		Update("password", hashed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete removes the account together with every restaurant it owns.
// Staff memberships in other restaurants are detached, not cascaded.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owned []*entities.Restaurant
		if err := tx.Where("owner_id = ?", id).Find(&owned).Error; err != nil {
			return err
		}
		for _, restaurant := range owned {
			if err := tx.Select("Menus", "Tables", "Orders", "HelpRequests", "Staff").
				Delete(restaurant).Error; err != nil {
				return err
			}
		}
		if err := tx.Exec("DELETE FROM restaurant_staff WHERE user_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.User{}, "id = ?", id).Error
	})
}

func (r *userRepository) OwnedRestaurants(ctx context.Context, userID uuid.UUID) ([]*entities.Restaurant, error) {
	var restaurants []*entities.Restaurant
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", userID).
		Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *userRepository) StaffedRestaurants(ctx context.Context, userID uuid.UUID) ([]*entities.Restaurant, error) {
	var restaurants []*entities.Restaurant
	if err := r.db.WithContext(ctx).
		Joins("JOIN restaurant_staff rs ON rs.restaurant_id = restaurants.id").
		Where("rs.user_id = ?", userID).
		Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}
