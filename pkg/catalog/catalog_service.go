package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"qrqaema/domain"
	"qrqaema/entities"
	"qrqaema/internal/utils/images"
	"qrqaema/internal/utils/storage"
	"qrqaema/pkg/access"
	"qrqaema/pkg/restaurant"
)

type (
	CatalogService interface {
		CreateMenu(ctx context.Context, userID, restaurantID uuid.UUID, req domain.CreateMenuRequest) (domain.MenuResponse, error)
		GetMenus(ctx context.Context, userID, restaurantID uuid.UUID) ([]domain.MenuResponse, error)
		GetMenu(ctx context.Context, userID, restaurantID, menuID uuid.UUID) (domain.MenuResponse, []domain.CategoryResponse, error)
		UpdateMenu(ctx context.Context, userID, restaurantID, menuID uuid.UUID, req domain.UpdateMenuRequest) (domain.MenuResponse, error)
		DeleteMenu(ctx context.Context, userID, restaurantID, menuID uuid.UUID) error
		SetDefaultMenu(ctx context.Context, userID, restaurantID, menuID uuid.UUID) error

		CreateCategory(ctx context.Context, userID, restaurantID uuid.UUID, req domain.CreateCategoryRequest) (domain.CategoryResponse, error)
		UpdateCategory(ctx context.Context, userID, restaurantID uuid.UUID, categoryID uint, req domain.UpdateCategoryRequest) (domain.CategoryResponse, error)
		DeleteCategory(ctx context.Context, userID, restaurantID uuid.UUID, categoryID uint) error
		UploadCategoryImage(ctx context.Context, userID, restaurantID uuid.UUID, categoryID uint, req domain.UploadMenuImageRequest) (string, error)

		CreateMenuItem(ctx context.Context, userID, restaurantID uuid.UUID, req domain.CreateMenuItemRequest) (domain.MenuItemResponse, error)
		UpdateMenuItem(ctx context.Context, userID, restaurantID uuid.UUID, itemID uint, req domain.UpdateMenuItemRequest) (domain.MenuItemResponse, error)
		DeleteMenuItem(ctx context.Context, userID, restaurantID uuid.UUID, itemID uint) error
		UploadMenuItemImage(ctx context.Context, userID, restaurantID uuid.UUID, itemID uint, req domain.UploadMenuImageRequest) (string, error)

		GetCustomerMenu(ctx context.Context, restaurantID uuid.UUID, language string) (domain.CustomerMenuResponse, error)
	}

	catalogService struct {
		catalogRepository CatalogRepository
		restaurantService restaurant.RestaurantService
		policy            access.Policy
		s3                storage.AwsS3
	}
)

func NewCatalogService(catalogRepository CatalogRepository, restaurantService restaurant.RestaurantService, policy access.Policy, s3 storage.AwsS3) CatalogService {
	return &catalogService{
		catalogRepository: catalogRepository,
		restaurantService: restaurantService,
		policy:            policy,
		s3:                s3,
	}
}

func (s *catalogService) CreateMenu(ctx context.Context, userID, restaurantID uuid.UUID, req domain.CreateMenuRequest) (domain.MenuResponse, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return domain.MenuResponse{}, err
	}

	menu := &entities.Menu{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Language:     req.Language,
		IsDefault:    req.IsDefault,
	}
	if err := s.catalogRepository.CreateMenu(ctx, menu); err != nil {
		return domain.MenuResponse{}, err
	}
	return toMenuResponse(menu), nil
}

func (s *catalogService) GetMenus(ctx context.Context, userID, restaurantID uuid.UUID) ([]domain.MenuResponse, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return nil, err
	}

	menus, err := s.catalogRepository.GetMenus(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	res := make([]domain.MenuResponse, 0, len(menus))
	for _, menu := range menus {
		res = append(res, toMenuResponse(menu))
	}
	return res, nil
}

func (s *catalogService) GetMenu(ctx context.Context, userID, restaurantID, menuID uuid.UUID) (domain.MenuResponse, []domain.CategoryResponse, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return domain.MenuResponse{}, nil, err
	}

	menu, err := s.menuInRestaurant(ctx, restaurantID, menuID)
	if err != nil {
		return domain.MenuResponse{}, nil, err
	}

	tree, err := s.catalogRepository.GetMenuTree(ctx, menu.ID, false)
	if err != nil {
		return domain.MenuResponse{}, nil, err
	}
	return toMenuResponse(tree), toCategoryResponses(tree.Categories), nil
}

func (s *catalogService) UpdateMenu(ctx context.Context, userID, restaurantID, menuID uuid.UUID, req domain.UpdateMenuRequest) (domain.MenuResponse, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return domain.MenuResponse{}, err
	}

	menu, err := s.menuInRestaurant(ctx, restaurantID, menuID)
	if err != nil {
		return domain.MenuResponse{}, err
	}

	if req.Name != "" {
		menu.Name = req.Name
	}
	if req.Language != "" && req.Language != menu.Language {
		if _, err := s.catalogRepository.GetMenuByLanguage(ctx, restaurantID, req.Language); err == nil {
			return domain.MenuResponse{}, domain.ErrDuplicateLanguage
		}
		menu.Language = req.Language
	}

	if err := s.catalogRepository.UpdateMenu(ctx, menu); err != nil {
		return domain.MenuResponse{}, err
	}
	return toMenuResponse(menu), nil
}

func (s *catalogService) DeleteMenu(ctx context.Context, userID, restaurantID, menuID uuid.UUID) error {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return err
	}

	if _, err := s.menuInRestaurant(ctx, restaurantID, menuID); err != nil {
		return err
	}
	return s.catalogRepository.DeleteMenu(ctx, menuID)
}

func (s *catalogService) SetDefaultMenu(ctx context.Context, userID, restaurantID, menuID uuid.UUID) error {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return err
	}
	return s.catalogRepository.SetDefaultMenu(ctx, restaurantID, menuID)
}

func (s *catalogService) CreateCategory(ctx context.Context, userID, restaurantID uuid.UUID, req domain.CreateCategoryRequest) (domain.CategoryResponse, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return domain.CategoryResponse{}, err
	}

	menuID, err := uuid.Parse(req.MenuID)
	if err != nil {
		return domain.CategoryResponse{}, domain.ErrParseUUID
	}
	if _, err := s.menuInRestaurant(ctx, restaurantID, menuID); err != nil {
		return domain.CategoryResponse{}, err
	}

	category := &entities.Category{
		MenuID:       menuID,
		RestaurantID: restaurantID,
		Name:         req.Name,
		Description:  req.Description,
		SortOrder:    req.SortOrder,
	}
	if err := s.catalogRepository.CreateCategory(ctx, category); err != nil {
		return domain.CategoryResponse{}, err
	}
	return toCategoryResponse(category), nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, userID, restaurantID uuid.UUID, categoryID uint, req domain.UpdateCategoryRequest) (domain.CategoryResponse, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return domain.CategoryResponse{}, err
	}

	category, err := s.categoryInRestaurant(ctx, restaurantID, categoryID)
	if err != nil {
		return domain.CategoryResponse{}, err
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Description != "" {
		category.Description = req.Description
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	if err := s.catalogRepository.UpdateCategory(ctx, category); err != nil {
		return domain.CategoryResponse{}, err
	}
	return toCategoryResponse(category), nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, userID, restaurantID uuid.UUID, categoryID uint) error {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return err
	}

	category, err := s.categoryInRestaurant(ctx, restaurantID, categoryID)
	if err != nil {
		return err
	}
	if err := s.catalogRepository.DeleteCategory(ctx, categoryID); err != nil {
		return err
	}
	s.deleteImage(category.ImageURL)
	return nil
}

func (s *catalogService) UploadCategoryImage(ctx context.Context, userID, restaurantID uuid.UUID, categoryID uint, req domain.UploadMenuImageRequest) (string, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return "", err
	}

	category, err := s.categoryInRestaurant(ctx, restaurantID, categoryID)
	if err != nil {
		return "", err
	}

	compressed, err := images.Compress(req.Image)
	if err != nil {
		return "", err
	}

	objectKey := fmt.Sprintf("restaurants/%s/categories/%d.jpg", restaurantID.String(), categoryID)
	if _, err := s.s3.UploadBytes(objectKey, compressed, "image/jpeg"); err != nil {
		return "", err
	}

	category.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.catalogRepository.UpdateCategory(ctx, category); err != nil {
		return "", err
	}
	return category.ImageURL, nil
}

func (s *catalogService) CreateMenuItem(ctx context.Context, userID, restaurantID uuid.UUID, req domain.CreateMenuItemRequest) (domain.MenuItemResponse, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return domain.MenuItemResponse{}, err
	}

	category, err := s.categoryInRestaurant(ctx, restaurantID, req.CategoryID)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	item := &entities.MenuItem{
		MenuID:       &category.MenuID,
		CategoryID:   &category.ID,
		RestaurantID: restaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        domain.RoundPrice(req.Price),
		IsAvailable:  available,
		SortOrder:    req.SortOrder,
		Options:      buildOptions(req.Options),
	}
	if err := s.catalogRepository.CreateMenuItem(ctx, item); err != nil {
		return domain.MenuItemResponse{}, err
	}
	return toMenuItemResponse(item), nil
}

func (s *catalogService) UpdateMenuItem(ctx context.Context, userID, restaurantID uuid.UUID, itemID uint, req domain.UpdateMenuItemRequest) (domain.MenuItemResponse, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return domain.MenuItemResponse{}, err
	}

	item, err := s.itemInRestaurant(ctx, restaurantID, itemID)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}

	if req.CategoryID != nil {
		category, err := s.categoryInRestaurant(ctx, restaurantID, *req.CategoryID)
		if err != nil {
			return domain.MenuItemResponse{}, err
		}
		item.CategoryID = &category.ID
		item.MenuID = &category.MenuID
	}
	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Price != nil {
		item.Price = domain.RoundPrice(*req.Price)
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}

	replaceOptions := req.Options != nil
	if err := s.catalogRepository.UpdateMenuItem(ctx, item, replaceOptions, buildOptions(req.Options)); err != nil {
		return domain.MenuItemResponse{}, err
	}

	updated, err := s.catalogRepository.GetMenuItem(ctx, itemID)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}
	return toMenuItemResponse(updated), nil
}

func (s *catalogService) DeleteMenuItem(ctx context.Context, userID, restaurantID uuid.UUID, itemID uint) error {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return err
	}

	item, err := s.itemInRestaurant(ctx, restaurantID, itemID)
	if err != nil {
		return err
	}
	if err := s.catalogRepository.DeleteMenuItem(ctx, itemID); err != nil {
		return err
	}
	s.deleteImage(item.ImageURL)
	return nil
}

func (s *catalogService) UploadMenuItemImage(ctx context.Context, userID, restaurantID uuid.UUID, itemID uint, req domain.UploadMenuImageRequest) (string, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return "", err
	}

	item, err := s.itemInRestaurant(ctx, restaurantID, itemID)
	if err != nil {
		return "", err
	}

	compressed, err := images.Compress(req.Image)
	if err != nil {
		return "", err
	}

	objectKey := fmt.Sprintf("restaurants/%s/items/%d.jpg", restaurantID.String(), itemID)
	if _, err := s.s3.UploadBytes(objectKey, compressed, "image/jpeg"); err != nil {
		return "", err
	}

	item.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.catalogRepository.UpdateMenuItem(ctx, item, false, nil); err != nil {
		return "", err
	}
	return item.ImageURL, nil
}

// GetCustomerMenu serves the public menu tree. The requested language
// wins when such a menu exists; otherwise the restaurant's default menu
// is served. Each view is recorded asynchronously.
func (s *catalogService) GetCustomerMenu(ctx context.Context, restaurantID uuid.UUID, language string) (domain.CustomerMenuResponse, error) {
	public, err := s.restaurantService.GetPublic(ctx, restaurantID)
	if err != nil {
		return domain.CustomerMenuResponse{}, err
	}

	var menu *entities.Menu
	if language != "" {
		menu, err = s.catalogRepository.GetMenuByLanguage(ctx, restaurantID, language)
		if err != nil && !errors.Is(err, domain.ErrMenuNotFound) {
			return domain.CustomerMenuResponse{}, err
		}
	}
	if menu == nil {
		menu, err = s.catalogRepository.GetDefaultMenu(ctx, restaurantID)
		if err != nil {
			return domain.CustomerMenuResponse{}, err
		}
	}

	tree, err := s.catalogRepository.GetMenuTree(ctx, menu.ID, true)
	if err != nil {
		return domain.CustomerMenuResponse{}, err
	}

	menuID := menu.ID
	go func() {
		record := &entities.MenuAccess{RestaurantID: restaurantID, MenuID: &menuID}
		if err := s.catalogRepository.RecordMenuAccess(context.Background(), record); err != nil {
			log.Printf("menu access record failed: %v", err)
		}
	}()

	return domain.CustomerMenuResponse{
		Restaurant: public,
		Menu:       toMenuResponse(tree),
		Categories: toCategoryResponses(tree.Categories),
	}, nil
}

func (s *catalogService) menuInRestaurant(ctx context.Context, restaurantID, menuID uuid.UUID) (*entities.Menu, error) {
	menu, err := s.catalogRepository.GetMenu(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if menu.RestaurantID != restaurantID {
		return nil, domain.ErrCrossTenantReference
	}
	return menu, nil
}

func (s *catalogService) categoryInRestaurant(ctx context.Context, restaurantID uuid.UUID, categoryID uint) (*entities.Category, error) {
	category, err := s.catalogRepository.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.RestaurantID != restaurantID {
		return nil, domain.ErrCrossTenantReference
	}
	return category, nil
}

func (s *catalogService) itemInRestaurant(ctx context.Context, restaurantID uuid.UUID, itemID uint) (*entities.MenuItem, error) {
	item, err := s.catalogRepository.GetMenuItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.RestaurantID != restaurantID {
		return nil, domain.ErrCrossTenantReference
	}
	return item, nil
}

func (s *catalogService) deleteImage(imageURL string) {
	if imageURL == "" {
		return
	}
	objectKey := s.s3.GetObjectKeyFromLink(imageURL)
	if objectKey == "" {
		return
	}
	if err := s.s3.DeleteFile(objectKey); err != nil {
		log.Printf("image cleanup failed for %s: %v", objectKey, err)
	}
}

func buildOptions(reqs []domain.OptionRequest) []*entities.MenuItemOption {
	if len(reqs) == 0 {
		return nil
	}
	options := make([]*entities.MenuItemOption, 0, len(reqs))
	for _, optionReq := range reqs {
		option := &entities.MenuItemOption{Name: optionReq.Name}
		for _, choiceReq := range optionReq.Choices {
			option.Choices = append(option.Choices, &entities.MenuItemOptionChoice{
				Name:          choiceReq.Name,
				PriceModifier: domain.RoundPrice(choiceReq.PriceModifier),
			})
		}
		options = append(options, option)
	}
	return options
}

func toMenuResponse(menu *entities.Menu) domain.MenuResponse {
	return domain.MenuResponse{
		ID:        menu.ID.String(),
		Name:      menu.Name,
		Language:  menu.Language,
		IsDefault: menu.IsDefault,
	}
}

func toCategoryResponses(categories []*entities.Category) []domain.CategoryResponse {
	res := make([]domain.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		res = append(res, toCategoryResponse(category))
	}
	return res
}

func toCategoryResponse(category *entities.Category) domain.CategoryResponse {
	res := domain.CategoryResponse{
		ID:          category.ID,
		MenuID:      category.MenuID.String(),
		Name:        category.Name,
		Description: category.Description,
		ImageURL:    category.ImageURL,
		SortOrder:   category.SortOrder,
	}
	for _, item := range category.Items {
		res.Items = append(res.Items, toMenuItemResponse(item))
	}
	return res
}

func toMenuItemResponse(item *entities.MenuItem) domain.MenuItemResponse {
	res := domain.MenuItemResponse{
		ID:          item.ID,
		CategoryID:  item.CategoryID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		ImageURL:    item.ImageURL,
		IsAvailable: item.IsAvailable,
		SortOrder:   item.SortOrder,
	}
	for _, option := range item.Options {
		optionRes := domain.OptionResponse{ID: option.ID, Name: option.Name}
		for _, choice := range option.Choices {
			optionRes.Choices = append(optionRes.Choices, domain.OptionChoiceResponse{
				ID:            choice.ID,
				Name:          choice.Name,
				PriceModifier: choice.PriceModifier,
			})
		}
		res.Options = append(res.Options, optionRes)
	}
	return res
}
