package order

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"qrqaema/domain"
	"qrqaema/entities"
	"qrqaema/pkg/access"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	err = db.AutoMigrate(
		&entities.User{},
		&entities.Restaurant{},
		&entities.Menu{},
		&entities.Category{},
		&entities.MenuItem{},
		&entities.MenuItemOption{},
		&entities.MenuItemOptionChoice{},
		&entities.Table{},
		&entities.Order{},
		&entities.OrderItem{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_active_table
		ON orders (restaurant_id, table_id)
		WHERE status IN ('Pending', 'In Progress')`).Error
	if err != nil {
		t.Fatalf("Failed to create active order index: %v", err)
	}
	return db
}

type orderFixture struct {
	owner  *entities.User
	rest   *entities.Restaurant
	table  *entities.Table
	item   *entities.MenuItem
	choice *entities.MenuItemOptionChoice
}

func seedOrderFixture(t *testing.T, db *gorm.DB) orderFixture {
	owner := &entities.User{Username: "owner", Email: "owner@example.com", IsActive: true}
	require.NoError(t, db.Create(owner).Error)
	rest := &entities.Restaurant{Name: "Test Kitchen", OwnerID: &owner.ID}
	require.NoError(t, db.Create(rest).Error)
	table := &entities.Table{RestaurantID: rest.ID, Number: 1, Status: entities.TableStatusAvailable}
	require.NoError(t, db.Create(table).Error)

	menu := &entities.Menu{RestaurantID: rest.ID, Name: "English", Language: "en", IsDefault: true}
	require.NoError(t, db.Create(menu).Error)
	category := &entities.Category{MenuID: menu.ID, RestaurantID: rest.ID, Name: "Mains"}
	require.NoError(t, db.Create(category).Error)

	item := &entities.MenuItem{
		MenuID:       &menu.ID,
		CategoryID:   &category.ID,
		RestaurantID: rest.ID,
		Name:         "Kofta",
		Price:        10.50,
		IsAvailable:  true,
		Options: []*entities.MenuItemOption{
			{Name: "Extras", Choices: []*entities.MenuItemOptionChoice{
				{Name: "Cheese", PriceModifier: 1.25},
			}},
		},
	}
	require.NoError(t, db.Create(item).Error)

	return orderFixture{
		owner:  owner,
		rest:   rest,
		table:  table,
		item:   item,
		choice: item.Options[0].Choices[0],
	}
}

func newOrderService(db *gorm.DB) OrderService {
	return NewOrderService(NewOrderRepository(db), access.NewPolicy(access.NewAccessRepository(db)))
}

func TestPlaceOrderComputesLiveTotals(t *testing.T) {
	db := setupOrderTestDB(t)
	f := seedOrderFixture(t, db)
	service := newOrderService(db)
	ctx := context.Background()

	res, err := service.PlaceOrder(ctx, f.rest.ID, domain.PlaceOrderRequest{
		TableID: f.table.ID.String(),
		Items: []domain.PlaceOrderItemRequest{
			{MenuItemID: f.item.ID, Quantity: 2, ChoiceIDs: []uint{f.choice.ID}},
		},
	})
	require.NoError(t, err)

	require.Len(t, res.Items, 1)
	// (10.50 + 1.25) * 2
	assert.Equal(t, 23.5, res.Items[0].TotalPrice)
	assert.Equal(t, 23.5, res.TotalPrice)
	assert.Equal(t, entities.OrderStatusPending, res.Status)
	assert.Equal(t, f.table.Number, res.TableNumber)
}

func TestPlaceOrderRejectsSecondActiveOrder(t *testing.T) {
	db := setupOrderTestDB(t)
	f := seedOrderFixture(t, db)
	service := newOrderService(db)
	ctx := context.Background()

	req := domain.PlaceOrderRequest{
		TableID: f.table.ID.String(),
		Items:   []domain.PlaceOrderItemRequest{{MenuItemID: f.item.ID, Quantity: 1}},
	}

	first, err := service.PlaceOrder(ctx, f.rest.ID, req)
	require.NoError(t, err)

	_, err = service.PlaceOrder(ctx, f.rest.ID, req)
	assert.ErrorIs(t, err, domain.ErrActiveOrderExists)

	// Completing the live order frees the table for a new one.
	require.NoError(t, db.Model(&entities.Order{}).
		Where("id = ?", first.ID).
		Update("status", entities.OrderStatusCompleted).Error)

	_, err = service.PlaceOrder(ctx, f.rest.ID, req)
	assert.NoError(t, err)
}

func TestPlaceOrderConcurrentOnOneTable(t *testing.T) {
	db := setupOrderTestDB(t)
	f := seedOrderFixture(t, db)
	service := newOrderService(db)

	// One in-memory database per pool connection otherwise; a single
	// connection keeps every worker on the same schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	const attempts = 6
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.PlaceOrder(context.Background(), f.rest.ID, domain.PlaceOrderRequest{
				TableID: f.table.ID.String(),
				Items:   []domain.PlaceOrderItemRequest{{MenuItemID: f.item.ID, Quantity: 1}},
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var placed, conflicts int
	for err := range results {
		switch {
		case err == nil:
			placed++
		case errors.Is(err, domain.ErrActiveOrderExists):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, placed)
	assert.Equal(t, attempts-1, conflicts)

	var active int64
	require.NoError(t, db.Model(&entities.Order{}).
		Where("table_id = ? AND status IN ?", f.table.ID,
			[]string{entities.OrderStatusPending, entities.OrderStatusInProgress}).
		Count(&active).Error)
	assert.Equal(t, int64(1), active)
}

func TestPlaceOrderEmptyOrder(t *testing.T) {
	db := setupOrderTestDB(t)
	f := seedOrderFixture(t, db)
	service := newOrderService(db)

	_, err := service.PlaceOrder(context.Background(), f.rest.ID, domain.PlaceOrderRequest{
		TableID: f.table.ID.String(),
	})
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)
}

func TestPlaceOrderUnavailableItem(t *testing.T) {
	db := setupOrderTestDB(t)
	f := seedOrderFixture(t, db)
	service := newOrderService(db)

	require.NoError(t, db.Model(&entities.MenuItem{}).
		Where("id = ?", f.item.ID).
		Update("is_available", false).Error)

	_, err := service.PlaceOrder(context.Background(), f.rest.ID, domain.PlaceOrderRequest{
		TableID: f.table.ID.String(),
		Items:   []domain.PlaceOrderItemRequest{{MenuItemID: f.item.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrItemNotAvailable)
}

func TestPlaceOrderForeignChoiceRejected(t *testing.T) {
	db := setupOrderTestDB(t)
	f := seedOrderFixture(t, db)
	service := newOrderService(db)

	other := &entities.MenuItem{
		RestaurantID: f.rest.ID,
		Name:         "Salad",
		Price:        5,
		IsAvailable:  true,
		Options: []*entities.MenuItemOption{
			{Name: "Dressing", Choices: []*entities.MenuItemOptionChoice{{Name: "Ranch"}}},
		},
	}
	require.NoError(t, db.Create(other).Error)

	_, err := service.PlaceOrder(context.Background(), f.rest.ID, domain.PlaceOrderRequest{
		TableID: f.table.ID.String(),
		Items: []domain.PlaceOrderItemRequest{
			{MenuItemID: f.item.ID, Quantity: 1, ChoiceIDs: []uint{other.Options[0].Choices[0].ID}},
		},
	})
	assert.ErrorIs(t, err, domain.ErrChoiceNotOnItem)
}

func TestPlaceOrderByTableNumber(t *testing.T) {
	db := setupOrderTestDB(t)
	f := seedOrderFixture(t, db)
	service := newOrderService(db)

	res, err := service.PlaceOrder(context.Background(), f.rest.ID, domain.PlaceOrderRequest{
		TableNumber: f.table.Number,
		Items:       []domain.PlaceOrderItemRequest{{MenuItemID: f.item.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, f.table.ID.String(), res.TableID)
}

func TestPlaceOrderWithoutTableReference(t *testing.T) {
	db := setupOrderTestDB(t)
	f := seedOrderFixture(t, db)
	service := newOrderService(db)

	_, err := service.PlaceOrder(context.Background(), f.rest.ID, domain.PlaceOrderRequest{
		Items: []domain.PlaceOrderItemRequest{{MenuItemID: f.item.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrMissingTableRef)
}

func TestPlaceOrderCrossTenantMenuRejected(t *testing.T) {
	db := setupOrderTestDB(t)
	f := seedOrderFixture(t, db)
	service := newOrderService(db)

	otherOwner := &entities.User{Username: "other", Email: "other@example.com", IsActive: true}
	require.NoError(t, db.Create(otherOwner).Error)
	otherRest := &entities.Restaurant{Name: "Other Place", OwnerID: &otherOwner.ID}
	require.NoError(t, db.Create(otherRest).Error)
	otherMenu := &entities.Menu{RestaurantID: otherRest.ID, Name: "Other", Language: "en"}
	require.NoError(t, db.Create(otherMenu).Error)

	_, err := service.PlaceOrder(context.Background(), f.rest.ID, domain.PlaceOrderRequest{
		TableID: f.table.ID.String(),
		MenuID:  otherMenu.ID.String(),
		Items:   []domain.PlaceOrderItemRequest{{MenuItemID: f.item.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMenu)
}

func TestPlaceOrderCrossTenantTable(t *testing.T) {
	db := setupOrderTestDB(t)
	f := seedOrderFixture(t, db)
	service := newOrderService(db)

	otherOwner := &entities.User{Username: "other", Email: "other@example.com", IsActive: true}
	require.NoError(t, db.Create(otherOwner).Error)
	otherRest := &entities.Restaurant{Name: "Other Place", OwnerID: &otherOwner.ID}
	require.NoError(t, db.Create(otherRest).Error)
	otherTable := &entities.Table{RestaurantID: otherRest.ID, Number: 1}
	require.NoError(t, db.Create(otherTable).Error)

	_, err := service.PlaceOrder(context.Background(), f.rest.ID, domain.PlaceOrderRequest{
		TableID: otherTable.ID.String(),
		Items:   []domain.PlaceOrderItemRequest{{MenuItemID: f.item.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrCrossTenantReference)
}

func TestGetOrderStatusIsPublic(t *testing.T) {
	db := setupOrderTestDB(t)
	f := seedOrderFixture(t, db)
	service := newOrderService(db)
	ctx := context.Background()

	placed, err := service.PlaceOrder(ctx, f.rest.ID, domain.PlaceOrderRequest{
		TableID: f.table.ID.String(),
		Items:   []domain.PlaceOrderItemRequest{{MenuItemID: f.item.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	status, err := service.GetOrderStatus(ctx, f.rest.ID, mustParseOrderID(t, placed.ID))
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusPending, status.Status)
}

func TestGetTableOrdersNewestFirst(t *testing.T) {
	db := setupOrderTestDB(t)
	f := seedOrderFixture(t, db)
	service := newOrderService(db)
	ctx := context.Background()

	older, err := service.PlaceOrder(ctx, f.rest.ID, domain.PlaceOrderRequest{
		TableNumber: f.table.Number,
		Items:       []domain.PlaceOrderItemRequest{{MenuItemID: f.item.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&entities.Order{}).
		Where("id = ?", older.ID).
		Updates(map[string]interface{}{
			"status":     entities.OrderStatusCompleted,
			"created_at": time.Now().Add(-time.Hour),
		}).Error)

	newer, err := service.PlaceOrder(ctx, f.rest.ID, domain.PlaceOrderRequest{
		TableNumber: f.table.Number,
		Items:       []domain.PlaceOrderItemRequest{{MenuItemID: f.item.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	orders, err := service.GetTableOrders(ctx, f.rest.ID, f.table.Number)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, older.ID, orders[1].ID)
}

func TestGetTableOrdersEmptyTable(t *testing.T) {
	db := setupOrderTestDB(t)
	f := seedOrderFixture(t, db)
	service := newOrderService(db)

	_, err := service.GetTableOrders(context.Background(), f.rest.ID, f.table.Number)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestUpdateOrderStatus(t *testing.T) {
	db := setupOrderTestDB(t)
	f := seedOrderFixture(t, db)
	service := newOrderService(db)
	ctx := context.Background()

	placed, err := service.PlaceOrder(ctx, f.rest.ID, domain.PlaceOrderRequest{
		TableID: f.table.ID.String(),
		Items:   []domain.PlaceOrderItemRequest{{MenuItemID: f.item.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	orderID := mustParseOrderID(t, placed.ID)

	err = service.UpdateOrder(ctx, f.owner.ID, f.rest.ID, orderID, domain.UpdateOrderRequest{
		Status: entities.OrderStatusInProgress,
	})
	require.NoError(t, err)

	got, err := service.GetOrder(ctx, f.owner.ID, f.rest.ID, orderID)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusInProgress, got.Status)
}

func TestUpdateOrderStatusRespectsActiveOrderLimit(t *testing.T) {
	db := setupOrderTestDB(t)
	f := seedOrderFixture(t, db)
	service := newOrderService(db)
	ctx := context.Background()

	req := domain.PlaceOrderRequest{
		TableID: f.table.ID.String(),
		Items:   []domain.PlaceOrderItemRequest{{MenuItemID: f.item.ID, Quantity: 1}},
	}

	first, err := service.PlaceOrder(ctx, f.rest.ID, req)
	require.NoError(t, err)
	require.NoError(t, service.UpdateOrder(ctx, f.owner.ID, f.rest.ID, mustParseOrderID(t, first.ID), domain.UpdateOrderRequest{
		Status: entities.OrderStatusCompleted,
	}))

	_, err = service.PlaceOrder(ctx, f.rest.ID, req)
	require.NoError(t, err)

	// Reopening the completed order would put two live orders on the table.
	err = service.UpdateOrder(ctx, f.owner.ID, f.rest.ID, mustParseOrderID(t, first.ID), domain.UpdateOrderRequest{
		Status: entities.OrderStatusPending,
	})
	assert.ErrorIs(t, err, domain.ErrActiveOrderExists)
}

func TestGetOrdersForbiddenForOutsider(t *testing.T) {
	db := setupOrderTestDB(t)
	f := seedOrderFixture(t, db)
	service := newOrderService(db)

	outsider := &entities.User{Username: "outsider", Email: "outsider@example.com", IsActive: true}
	require.NoError(t, db.Create(outsider).Error)

	_, err := service.GetOrders(context.Background(), outsider.ID, f.rest.ID, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	db := setupOrderTestDB(t)
	f := seedOrderFixture(t, db)
	service := newOrderService(db)
	ctx := context.Background()

	placed, err := service.PlaceOrder(ctx, f.rest.ID, domain.PlaceOrderRequest{
		TableID: f.table.ID.String(),
		Items: []domain.PlaceOrderItemRequest{
			{MenuItemID: f.item.ID, Quantity: 1, ChoiceIDs: []uint{f.choice.ID}},
		},
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteOrder(ctx, f.owner.ID, f.rest.ID, mustParseOrderID(t, placed.ID)))

	var items int64
	require.NoError(t, db.Model(&entities.OrderItem{}).Count(&items).Error)
	assert.Zero(t, items)
}

func TestPurgeOldOrders(t *testing.T) {
	db := setupOrderTestDB(t)
	f := seedOrderFixture(t, db)
	service := newOrderService(db)
	ctx := context.Background()

	recent, err := service.PlaceOrder(ctx, f.rest.ID, domain.PlaceOrderRequest{
		TableID: f.table.ID.String(),
		Items:   []domain.PlaceOrderItemRequest{{MenuItemID: f.item.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&entities.Order{}).
		Where("id = ?", recent.ID).
		Update("status", entities.OrderStatusCompleted).Error)

	stale, err := service.PlaceOrder(ctx, f.rest.ID, domain.PlaceOrderRequest{
		TableID: f.table.ID.String(),
		Items:   []domain.PlaceOrderItemRequest{{MenuItemID: f.item.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&entities.Order{}).
		Where("id = ?", stale.ID).
		Updates(map[string]interface{}{
			"status":     entities.OrderStatusCompleted,
			"created_at": time.Now().Add(-RetentionWindow - time.Hour),
		}).Error)

	purged, err := service.PurgeOldOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	var remaining int64
	require.NoError(t, db.Model(&entities.Order{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)
}

func mustParseOrderID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}
