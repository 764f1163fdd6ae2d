package analytics

import (
	"context"

	"qrqaema/domain"
)

const topRestaurantsLimit = 10

type (
	AnalyticsService interface {
		PlatformStats(ctx context.Context) (domain.PlatformStatsResponse, error)
	}

	analyticsService struct {
		analyticsRepository AnalyticsRepository
	}
)

func NewAnalyticsService(analyticsRepository AnalyticsRepository) AnalyticsService {
	return &analyticsService{analyticsRepository: analyticsRepository}
}

func (s *analyticsService) PlatformStats(ctx context.Context) (domain.PlatformStatsResponse, error) {
	totalUsers, activeUsers, err := s.analyticsRepository.CountUsers(ctx)
	if err != nil {
		return domain.PlatformStatsResponse{}, err
	}
	restaurants, err := s.analyticsRepository.CountRestaurants(ctx)
	if err != nil {
		return domain.PlatformStatsResponse{}, err
	}
	orders, err := s.analyticsRepository.CountOrders(ctx)
	if err != nil {
		return domain.PlatformStatsResponse{}, err
	}
	views, err := s.analyticsRepository.CountMenuViews(ctx)
	if err != nil {
		return domain.PlatformStatsResponse{}, err
	}
	top, err := s.analyticsRepository.TopRestaurantsByViews(ctx, topRestaurantsLimit)
	if err != nil {
		return domain.PlatformStatsResponse{}, err
	}

	return domain.PlatformStatsResponse{
		TotalUsers:       totalUsers,
		ActiveUsers:      activeUsers,
		TotalRestaurants: restaurants,
		TotalOrders:      orders,
		TotalMenuViews:   views,
		TopRestaurants:   top,
	}, nil
}
