package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"qrqaema/domain"
	"qrqaema/entities"
	"qrqaema/pkg/access"
)

// Orders older than this are purged by the retention job.
const RetentionWindow = 72 * time.Hour

type (
	OrderService interface {
		PlaceOrder(ctx context.Context, restaurantID uuid.UUID, req domain.PlaceOrderRequest) (domain.OrderResponse, error)
		GetOrders(ctx context.Context, userID, restaurantID uuid.UUID, status string) ([]domain.OrderResponse, error)
		GetOrder(ctx context.Context, userID, restaurantID, orderID uuid.UUID) (domain.OrderResponse, error)
		GetOrderStatus(ctx context.Context, restaurantID, orderID uuid.UUID) (domain.OrderStatusResponse, error)
		GetTableOrders(ctx context.Context, restaurantID uuid.UUID, tableNumber int) ([]domain.OrderResponse, error)
		UpdateOrder(ctx context.Context, userID, restaurantID, orderID uuid.UUID, req domain.UpdateOrderRequest) error
		DeleteOrder(ctx context.Context, userID, restaurantID, orderID uuid.UUID) error
		PurgeOldOrders(ctx context.Context) (int64, error)
	}

	orderService struct {
		orderRepository OrderRepository
		policy          access.Policy
	}
)

func NewOrderService(orderRepository OrderRepository, policy access.Policy) OrderService {
	return &orderService{
		orderRepository: orderRepository,
		policy:          policy,
	}
}

// PlaceOrder is the unauthenticated customer entrypoint. Every
// referenced table, item, and choice must belong to the restaurant in
// the URL; the active-order constraint rejects a second live order for
// the table.
func (s *orderService) PlaceOrder(ctx context.Context, restaurantID uuid.UUID, req domain.PlaceOrderRequest) (domain.OrderResponse, error) {
	if len(req.Items) == 0 {
		return domain.OrderResponse{}, domain.ErrEmptyOrder
	}

	table, err := s.resolveTable(ctx, restaurantID, req)
	if err != nil {
		return domain.OrderResponse{}, err
	}

	order := &entities.Order{
		RestaurantID:   restaurantID,
		TableID:        table.ID,
		AdditionalInfo: req.AdditionalInfo,
		Status:         entities.OrderStatusPending,
	}
	if req.MenuID != "" {
		menuID, err := uuid.Parse(req.MenuID)
		if err != nil {
			return domain.OrderResponse{}, domain.ErrParseUUID
		}
		menu, err := s.orderRepository.GetMenu(ctx, menuID)
		if err != nil {
			return domain.OrderResponse{}, err
		}
		if menu.RestaurantID != restaurantID {
			return domain.OrderResponse{}, domain.ErrInvalidMenu
		}
		order.MenuID = &menuID
	}

	for _, itemReq := range req.Items {
		menuItem, err := s.orderRepository.GetMenuItem(ctx, itemReq.MenuItemID)
		if err != nil {
			return domain.OrderResponse{}, err
		}
		if menuItem.RestaurantID != restaurantID {
			return domain.OrderResponse{}, domain.ErrCrossTenantReference
		}
		if !menuItem.IsAvailable {
			return domain.OrderResponse{}, domain.ErrItemNotAvailable
		}

		choices, err := resolveChoices(menuItem, itemReq.ChoiceIDs)
		if err != nil {
			return domain.OrderResponse{}, err
		}

		order.Items = append(order.Items, &entities.OrderItem{
			MenuItemID:      menuItem.ID,
			Quantity:        itemReq.Quantity,
			SpecialRequest:  itemReq.SpecialRequest,
			SelectedChoices: choices,
		})
	}

	if err := s.orderRepository.Create(ctx, order); err != nil {
		return domain.OrderResponse{}, err
	}

	created, err := s.orderRepository.GetByID(ctx, order.ID)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	return toOrderResponse(created), nil
}

// resolveTable accepts the table id from the QR code path or, failing
// that, the table's number within the restaurant.
func (s *orderService) resolveTable(ctx context.Context, restaurantID uuid.UUID, req domain.PlaceOrderRequest) (*entities.Table, error) {
	if req.TableID != "" {
		tableID, err := uuid.Parse(req.TableID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		table, err := s.orderRepository.GetTable(ctx, tableID)
		if err != nil {
			return nil, err
		}
		if table.RestaurantID != restaurantID {
			return nil, domain.ErrCrossTenantReference
		}
		return table, nil
	}
	if req.TableNumber > 0 {
		return s.orderRepository.GetTableByNumber(ctx, restaurantID, req.TableNumber)
	}
	return nil, domain.ErrMissingTableRef
}

// resolveChoices checks each selected choice against the item's own
// option groups; anything outside them is rejected.
func resolveChoices(menuItem *entities.MenuItem, choiceIDs []uint) ([]*entities.MenuItemOptionChoice, error) {
	if len(choiceIDs) == 0 {
		return nil, nil
	}

	byID := make(map[uint]*entities.MenuItemOptionChoice)
	for _, option := range menuItem.Options {
		for _, choice := range option.Choices {
			byID[choice.ID] = choice
		}
	}

	choices := make([]*entities.MenuItemOptionChoice, 0, len(choiceIDs))
	for _, id := range choiceIDs {
		choice, ok := byID[id]
		if !ok {
			return nil, domain.ErrChoiceNotOnItem
		}
		choices = append(choices, choice)
	}
	return choices, nil
}

func (s *orderService) GetOrders(ctx context.Context, userID, restaurantID uuid.UUID, status string) ([]domain.OrderResponse, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return nil, err
	}

	orders, err := s.orderRepository.GetByRestaurant(ctx, restaurantID, status)
	if err != nil {
		return nil, err
	}
	res := make([]domain.OrderResponse, 0, len(orders))
	for _, order := range orders {
		res = append(res, toOrderResponse(order))
	}
	return res, nil
}

func (s *orderService) GetOrder(ctx context.Context, userID, restaurantID, orderID uuid.UUID) (domain.OrderResponse, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return domain.OrderResponse{}, err
	}

	order, err := s.orderInRestaurant(ctx, restaurantID, orderID)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	return toOrderResponse(order), nil
}

// GetOrderStatus is public so customers can poll their order from the
// table page without authenticating.
func (s *orderService) GetOrderStatus(ctx context.Context, restaurantID, orderID uuid.UUID) (domain.OrderStatusResponse, error) {
	order, err := s.orderInRestaurant(ctx, restaurantID, orderID)
	if err != nil {
		return domain.OrderStatusResponse{}, err
	}
	return domain.OrderStatusResponse{
		ID:     order.ID.String(),
		Status: order.Status,
	}, nil
}

// GetTableOrders is the public table-page view: every order still on
// record for the table, newest first, with item detail.
func (s *orderService) GetTableOrders(ctx context.Context, restaurantID uuid.UUID, tableNumber int) ([]domain.OrderResponse, error) {
	table, err := s.orderRepository.GetTableByNumber(ctx, restaurantID, tableNumber)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepository.GetByTable(ctx, restaurantID, table.ID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domain.ErrOrderNotFound
	}

	res := make([]domain.OrderResponse, 0, len(orders))
	for _, order := range orders {
		res = append(res, toOrderResponse(order))
	}
	return res, nil
}

func (s *orderService) UpdateOrder(ctx context.Context, userID, restaurantID, orderID uuid.UUID, req domain.UpdateOrderRequest) error {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return err
	}

	if _, err := s.orderInRestaurant(ctx, restaurantID, orderID); err != nil {
		return err
	}
	return s.orderRepository.UpdateStatus(ctx, orderID, req.Status)
}

func (s *orderService) DeleteOrder(ctx context.Context, userID, restaurantID, orderID uuid.UUID) error {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return err
	}

	if _, err := s.orderInRestaurant(ctx, restaurantID, orderID); err != nil {
		return err
	}
	return s.orderRepository.Delete(ctx, orderID)
}

func (s *orderService) PurgeOldOrders(ctx context.Context) (int64, error) {
	return s.orderRepository.PurgeOlderThan(ctx, time.Now().Add(-RetentionWindow))
}

func (s *orderService) orderInRestaurant(ctx context.Context, restaurantID, orderID uuid.UUID) (*entities.Order, error) {
	order, err := s.orderRepository.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.RestaurantID != restaurantID {
		return nil, domain.ErrCrossTenantReference
	}
	return order, nil
}

func toOrderResponse(order *entities.Order) domain.OrderResponse {
	res := domain.OrderResponse{
		ID:             order.ID.String(),
		TableID:        order.TableID.String(),
		Status:         order.Status,
		AdditionalInfo: order.AdditionalInfo,
		CreatedAt:      order.CreatedAt,
	}
	if order.Table != nil {
		res.TableNumber = order.Table.Number
	}

	for _, item := range order.Items {
		itemRes := domain.OrderItemResponse{
			ID:             item.ID,
			MenuItemID:     item.MenuItemID,
			Quantity:       item.Quantity,
			SpecialRequest: item.SpecialRequest,
		}

		var price float64
		if item.MenuItem != nil {
			itemRes.Name = item.MenuItem.Name
			price = item.MenuItem.Price
		}

		modifiers := make([]float64, 0, len(item.SelectedChoices))
		for _, choice := range item.SelectedChoices {
			modifiers = append(modifiers, choice.PriceModifier)
			itemRes.Choices = append(itemRes.Choices, domain.OptionChoiceResponse{
				ID:            choice.ID,
				Name:          choice.Name,
				PriceModifier: choice.PriceModifier,
			})
		}

		itemRes.TotalPrice = domain.OrderItemTotal(price, modifiers, item.Quantity)
		res.TotalPrice = domain.RoundPrice(res.TotalPrice + itemRes.TotalPrice)
		res.Items = append(res.Items, itemRes)
	}
	return res
}
