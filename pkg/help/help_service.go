package help

import (
	"context"

	"github.com/google/uuid"

	"qrqaema/domain"
	"qrqaema/entities"
	"qrqaema/pkg/access"
)

type (
	HelpService interface {
		CreateRequest(ctx context.Context, restaurantID uuid.UUID, userID *uuid.UUID, req domain.CreateHelpRequest) (domain.HelpRequestResponse, error)
		GetRequests(ctx context.Context, userID, restaurantID uuid.UUID, status string) ([]domain.HelpRequestResponse, error)
		ListMine(ctx context.Context, userID uuid.UUID, status string) ([]domain.HelpRequestResponse, error)
		GetRequest(ctx context.Context, userID, restaurantID, requestID uuid.UUID) (domain.HelpRequestResponse, error)
		UpdateRequest(ctx context.Context, userID, restaurantID, requestID uuid.UUID, req domain.UpdateHelpRequest) (domain.HelpRequestResponse, error)
		DeleteRequest(ctx context.Context, userID, restaurantID, requestID uuid.UUID) error
	}

	helpService struct {
		helpRepository   HelpRepository
		accessRepository access.AccessRepository
		policy           access.Policy
	}
)

func NewHelpService(helpRepository HelpRepository, accessRepository access.AccessRepository, policy access.Policy) HelpService {
	return &helpService{
		helpRepository:   helpRepository,
		accessRepository: accessRepository,
		policy:           policy,
	}
}

// CreateRequest is customer-facing; userID is only set when the caller
// happened to be authenticated.
func (s *helpService) CreateRequest(ctx context.Context, restaurantID uuid.UUID, userID *uuid.UUID, req domain.CreateHelpRequest) (domain.HelpRequestResponse, error) {
	tableID, err := uuid.Parse(req.TableID)
	if err != nil {
		return domain.HelpRequestResponse{}, domain.ErrParseUUID
	}

	table, err := s.helpRepository.GetTable(ctx, tableID)
	if err != nil {
		return domain.HelpRequestResponse{}, err
	}
	if table.RestaurantID != restaurantID {
		return domain.HelpRequestResponse{}, domain.ErrCrossTenantReference
	}

	request := &entities.HelpRequest{
		RestaurantID: restaurantID,
		TableID:      tableID,
		UserID:       userID,
		Description:  req.Description,
		Status:       entities.HelpStatusPending,
	}
	if err := s.helpRepository.Create(ctx, request); err != nil {
		return domain.HelpRequestResponse{}, err
	}
	request.Table = table
	return toHelpResponse(request), nil
}

func (s *helpService) GetRequests(ctx context.Context, userID, restaurantID uuid.UUID, status string) ([]domain.HelpRequestResponse, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return nil, err
	}

	requests, err := s.helpRepository.GetByRestaurant(ctx, restaurantID, status)
	if err != nil {
		return nil, err
	}
	res := make([]domain.HelpRequestResponse, 0, len(requests))
	for _, request := range requests {
		res = append(res, toHelpResponse(request))
	}
	return res, nil
}

// ListMine aggregates open requests across every restaurant the caller
// owns or works at, for the cross-venue dashboard.
func (s *helpService) ListMine(ctx context.Context, userID uuid.UUID, status string) ([]domain.HelpRequestResponse, error) {
	restaurants, err := s.accessRepository.RestaurantsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	restaurantIDs := make([]uuid.UUID, 0, len(restaurants))
	for _, restaurant := range restaurants {
		restaurantIDs = append(restaurantIDs, restaurant.ID)
	}

	requests, err := s.helpRepository.GetByRestaurants(ctx, restaurantIDs, status)
	if err != nil {
		return nil, err
	}
	res := make([]domain.HelpRequestResponse, 0, len(requests))
	for _, request := range requests {
		res = append(res, toHelpResponse(request))
	}
	return res, nil
}

func (s *helpService) GetRequest(ctx context.Context, userID, restaurantID, requestID uuid.UUID) (domain.HelpRequestResponse, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return domain.HelpRequestResponse{}, err
	}

	request, err := s.requestInRestaurant(ctx, restaurantID, requestID)
	if err != nil {
		return domain.HelpRequestResponse{}, err
	}
	return toHelpResponse(request), nil
}

func (s *helpService) UpdateRequest(ctx context.Context, userID, restaurantID, requestID uuid.UUID, req domain.UpdateHelpRequest) (domain.HelpRequestResponse, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return domain.HelpRequestResponse{}, err
	}

	request, err := s.requestInRestaurant(ctx, restaurantID, requestID)
	if err != nil {
		return domain.HelpRequestResponse{}, err
	}

	if req.Status != "" {
		request.Status = req.Status
	}
	if req.Response != "" {
		request.Response = req.Response
	}
	if err := s.helpRepository.Update(ctx, request); err != nil {
		return domain.HelpRequestResponse{}, err
	}
	return toHelpResponse(request), nil
}

func (s *helpService) DeleteRequest(ctx context.Context, userID, restaurantID, requestID uuid.UUID) error {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return err
	}

	if _, err := s.requestInRestaurant(ctx, restaurantID, requestID); err != nil {
		return err
	}
	return s.helpRepository.Delete(ctx, requestID)
}

func (s *helpService) requestInRestaurant(ctx context.Context, restaurantID, requestID uuid.UUID) (*entities.HelpRequest, error) {
	request, err := s.helpRepository.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.RestaurantID != restaurantID {
		return nil, domain.ErrCrossTenantReference
	}
	return request, nil
}

func toHelpResponse(request *entities.HelpRequest) domain.HelpRequestResponse {
	res := domain.HelpRequestResponse{
		ID:           request.ID.String(),
		RestaurantID: request.RestaurantID.String(),
		TableID:      request.TableID.String(),
		Description:  request.Description,
		Status:       request.Status,
		Response:     request.Response,
		CreatedAt:    request.CreatedAt,
	}
	if request.Table != nil {
		res.TableNumber = request.Table.Number
	}
	return res
}
