package help

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"qrqaema/domain"
	"qrqaema/entities"
)

type (
	HelpRepository interface {
		Create(ctx context.Context, request *entities.HelpRequest) error
		GetByID(ctx context.Context, requestID uuid.UUID) (*entities.HelpRequest, error)
		GetByRestaurant(ctx context.Context, restaurantID uuid.UUID, status string) ([]*entities.HelpRequest, error)
		GetByRestaurants(ctx context.Context, restaurantIDs []uuid.UUID, status string) ([]*entities.HelpRequest, error)
		Update(ctx context.Context, request *entities.HelpRequest) error
		Delete(ctx context.Context, requestID uuid.UUID) error
		GetTable(ctx context.Context, tableID uuid.UUID) (*entities.Table, error)
	}

	helpRepository struct {
		db *gorm.DB
	}
)

func NewHelpRepository(db *gorm.DB) HelpRepository {
	return &helpRepository{db: db}
}

func (r *helpRepository) Create(ctx context.Context, request *entities.HelpRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *helpRepository) GetByID(ctx context.Context, requestID uuid.UUID) (*entities.HelpRequest, error) {
	var request entities.HelpRequest
	err := r.db.WithContext(ctx).
		Preload("Table").
		First(&request, "id = ?", requestID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrHelpRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *helpRepository) GetByRestaurant(ctx context.Context, restaurantID uuid.UUID, status string) ([]*entities.HelpRequest, error) {
	query := r.db.WithContext(ctx).
		Preload("Table").
		Where("restaurant_id = ?", restaurantID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []*entities.HelpRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *helpRepository) GetByRestaurants(ctx context.Context, restaurantIDs []uuid.UUID, status string) ([]*entities.HelpRequest, error) {
	if len(restaurantIDs) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).
		Preload("Table").
		Where("restaurant_id IN ?", restaurantIDs)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []*entities.HelpRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *helpRepository) Update(ctx context.Context, request *entities.HelpRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *helpRepository) Delete(ctx context.Context, requestID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.HelpRequest{}, "id = ?", requestID).Error
}

func (r *helpRepository) GetTable(ctx context.Context, tableID uuid.UUID) (*entities.Table, error) {
	var table entities.Table
	if err := r.db.WithContext(ctx).First(&table, "id = ?", tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTableNotFound
		}
		return nil, err
	}
	return &table, nil
}
