package restaurant

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"qrqaema/domain"
	"qrqaema/entities"
	"qrqaema/internal/utils/images"
	"qrqaema/internal/utils/storage"
	"qrqaema/pkg/access"
)

type (
	RestaurantService interface {
		GetMine(ctx context.Context, userID uuid.UUID) ([]domain.RestaurantResponse, error)
		Get(ctx context.Context, userID, restaurantID uuid.UUID) (domain.RestaurantResponse, error)
		GetPublic(ctx context.Context, restaurantID uuid.UUID) (domain.PublicRestaurantResponse, error)
		Update(ctx context.Context, userID, restaurantID uuid.UUID, req domain.UpdateRestaurantRequest) (domain.RestaurantResponse, error)
		Delete(ctx context.Context, userID, restaurantID uuid.UUID) error
		UploadImage(ctx context.Context, userID, restaurantID uuid.UUID, req domain.UploadRestaurantImageRequest) (string, error)
		GetStaff(ctx context.Context, userID, restaurantID uuid.UUID) ([]domain.StaffResponse, error)
		AddStaff(ctx context.Context, userID, restaurantID uuid.UUID, req domain.AddStaffRequest) (domain.StaffResponse, error)
		RemoveStaff(ctx context.Context, userID, restaurantID, staffID uuid.UUID) error
	}

	restaurantService struct {
		restaurantRepository RestaurantRepository
		accessRepository     access.AccessRepository
		policy               access.Policy
		s3                   storage.AwsS3
	}
)

func NewRestaurantService(restaurantRepository RestaurantRepository, accessRepository access.AccessRepository, policy access.Policy, s3 storage.AwsS3) RestaurantService {
	return &restaurantService{
		restaurantRepository: restaurantRepository,
		accessRepository:     accessRepository,
		policy:               policy,
		s3:                   s3,
	}
}

func (s *restaurantService) GetMine(ctx context.Context, userID uuid.UUID) ([]domain.RestaurantResponse, error) {
	restaurants, err := s.accessRepository.RestaurantsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]domain.RestaurantResponse, 0, len(restaurants))
	for _, restaurant := range restaurants {
		role := domain.RoleStaff
		if restaurant.OwnerID != nil && *restaurant.OwnerID == userID {
			role = domain.RoleOwner
		}
		item := toRestaurantResponse(restaurant)
		item.Role = role
		res = append(res, item)
	}
	return res, nil
}

func (s *restaurantService) Get(ctx context.Context, userID, restaurantID uuid.UUID) (domain.RestaurantResponse, error) {
	role, err := s.policy.Role(ctx, userID, restaurantID)
	if err != nil {
		return domain.RestaurantResponse{}, err
	}
	if role == "" {
		return domain.RestaurantResponse{}, domain.ErrForbidden
	}

	restaurant, err := s.restaurantRepository.GetByID(ctx, restaurantID)
	if err != nil {
		return domain.RestaurantResponse{}, err
	}
	res := toRestaurantResponse(restaurant)
	res.Role = role
	return res, nil
}

func (s *restaurantService) GetPublic(ctx context.Context, restaurantID uuid.UUID) (domain.PublicRestaurantResponse, error) {
	restaurant, err := s.restaurantRepository.GetByID(ctx, restaurantID)
	if err != nil {
		return domain.PublicRestaurantResponse{}, err
	}
	return domain.PublicRestaurantResponse{
		ID:                 restaurant.ID.String(),
		Name:               restaurant.Name,
		Currency:           restaurant.Currency,
		DefaultLanguage:    restaurant.DefaultLanguage,
		LogoURL:            restaurant.LogoURL,
		BackgroundImageURL: restaurant.BackgroundImageURL,
	}, nil
}

// Update is owner-only; staff can read the profile but not change it.
func (s *restaurantService) Update(ctx context.Context, userID, restaurantID uuid.UUID, req domain.UpdateRestaurantRequest) (domain.RestaurantResponse, error) {
	if err := s.policy.RequireOwner(ctx, userID, restaurantID); err != nil {
		return domain.RestaurantResponse{}, err
	}

	restaurant, err := s.restaurantRepository.GetByID(ctx, restaurantID)
	if err != nil {
		return domain.RestaurantResponse{}, err
	}

	if req.Name != "" {
		restaurant.Name = req.Name
	}
	if req.Address != "" {
		restaurant.Address = req.Address
	}
	if req.PhoneNumber != "" {
		restaurant.PhoneNumber = req.PhoneNumber
	}
	if req.Country != "" {
		restaurant.Country = req.Country
	}
	if req.City != "" {
		restaurant.City = req.City
	}
	if req.PostalCode != "" {
		restaurant.PostalCode = req.PostalCode
	}
	if req.Currency != "" {
		restaurant.Currency = req.Currency
	}
	if req.DefaultLanguage != "" {
		restaurant.DefaultLanguage = req.DefaultLanguage
	}
	restaurant.ProfileCompleted = restaurant.Name != "" &&
		restaurant.Address != "" &&
		restaurant.PhoneNumber != "" &&
		restaurant.Country != "" &&
		restaurant.City != ""

	if err := s.restaurantRepository.Update(ctx, restaurant); err != nil {
		return domain.RestaurantResponse{}, err
	}
	return toRestaurantResponse(restaurant), nil
}

// Delete is owner-only and removes the restaurant's stored assets after
// the database cascade commits.
func (s *restaurantService) Delete(ctx context.Context, userID, restaurantID uuid.UUID) error {
	if err := s.policy.RequireOwner(ctx, userID, restaurantID); err != nil {
		return err
	}
	if err := s.restaurantRepository.Delete(ctx, restaurantID); err != nil {
		return err
	}

	prefix := fmt.Sprintf("restaurants/%s/", restaurantID.String())
	if err := s.s3.DeleteFolder(prefix); err != nil {
		log.Printf("asset cleanup for restaurant %s failed: %v", restaurantID, err)
	}
	return nil
}

func (s *restaurantService) UploadImage(ctx context.Context, userID, restaurantID uuid.UUID, req domain.UploadRestaurantImageRequest) (string, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return "", err
	}

	restaurant, err := s.restaurantRepository.GetByID(ctx, restaurantID)
	if err != nil {
		return "", err
	}

	compressed, err := images.Compress(req.Image)
	if err != nil {
		return "", err
	}

	objectKey := fmt.Sprintf("restaurants/%s/%s.jpg", restaurantID.String(), req.Kind)
	if _, err := s.s3.UploadBytes(objectKey, compressed, "image/jpeg"); err != nil {
		return "", err
	}
	url := s.s3.GetPublicLinkKey(objectKey)

	switch req.Kind {
	case "logo":
		restaurant.LogoURL = url
	case "background":
		restaurant.BackgroundImageURL = url
	}
	if err := s.restaurantRepository.Update(ctx, restaurant); err != nil {
		return "", err
	}
	return url, nil
}

func (s *restaurantService) GetStaff(ctx context.Context, userID, restaurantID uuid.UUID) ([]domain.StaffResponse, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return nil, err
	}

	staff, err := s.restaurantRepository.GetStaff(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	res := make([]domain.StaffResponse, 0, len(staff))
	for _, member := range staff {
		res = append(res, domain.StaffResponse{
			ID:       member.ID.String(),
			Username: member.Username,
			Email:    member.Email,
		})
	}
	return res, nil
}

func (s *restaurantService) AddStaff(ctx context.Context, userID, restaurantID uuid.UUID, req domain.AddStaffRequest) (domain.StaffResponse, error) {
	if err := s.policy.RequireOwner(ctx, userID, restaurantID); err != nil {
		return domain.StaffResponse{}, err
	}

	member, err := s.restaurantRepository.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return domain.StaffResponse{}, err
	}

	restaurant, err := s.restaurantRepository.GetByID(ctx, restaurantID)
	if err != nil {
		return domain.StaffResponse{}, err
	}
	if restaurant.OwnerID != nil && *restaurant.OwnerID == member.ID {
		return domain.StaffResponse{}, domain.ErrOwnerAsStaff
	}

	existing, err := s.restaurantRepository.GetStaff(ctx, restaurantID)
	if err != nil {
		return domain.StaffResponse{}, err
	}
	for _, current := range existing {
		if current.ID == member.ID {
			return domain.StaffResponse{}, domain.ErrStaffAlreadyAdded
		}
	}

	if err := s.restaurantRepository.AddStaff(ctx, restaurantID, member.ID); err != nil {
		return domain.StaffResponse{}, err
	}
	return domain.StaffResponse{
		ID:       member.ID.String(),
		Username: member.Username,
		Email:    member.Email,
	}, nil
}

// RemoveStaff detaches the membership; the staff member keeps their
// account and any other memberships.
func (s *restaurantService) RemoveStaff(ctx context.Context, userID, restaurantID, staffID uuid.UUID) error {
	if err := s.policy.RequireOwner(ctx, userID, restaurantID); err != nil {
		return err
	}

	removed, err := s.restaurantRepository.RemoveStaff(ctx, restaurantID, staffID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrStaffNotFound
	}
	return nil
}

func toRestaurantResponse(restaurant *entities.Restaurant) domain.RestaurantResponse {
	return domain.RestaurantResponse{
		ID:                 restaurant.ID.String(),
		Name:               restaurant.Name,
		Address:            restaurant.Address,
		PhoneNumber:        restaurant.PhoneNumber,
		Country:            restaurant.Country,
		City:               restaurant.City,
		PostalCode:         restaurant.PostalCode,
		Currency:           restaurant.Currency,
		DefaultLanguage:    restaurant.DefaultLanguage,
		LogoURL:            restaurant.LogoURL,
		BackgroundImageURL: restaurant.BackgroundImageURL,
		ProfileCompleted:   restaurant.ProfileCompleted,
	}
}
