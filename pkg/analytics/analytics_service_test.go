package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"qrqaema/entities"
)

func setupAnalyticsTest(t *testing.T) (*gorm.DB, AnalyticsService) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	err = db.AutoMigrate(
		&entities.User{},
		&entities.Restaurant{},
		&entities.Menu{},
		&entities.MenuAccess{},
		&entities.Table{},
		&entities.Order{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db, NewAnalyticsService(NewAnalyticsRepository(db))
}

func TestPlatformStats(t *testing.T) {
	db, service := setupAnalyticsTest(t)
	ctx := context.Background()

	active := &entities.User{Username: "active", Email: "active@example.com", IsActive: true}
	require.NoError(t, db.Create(active).Error)
	inactive := &entities.User{Username: "inactive", Email: "inactive@example.com"}
	require.NoError(t, db.Create(inactive).Error)

	busy := &entities.Restaurant{Name: "Busy Place", OwnerID: &active.ID}
	require.NoError(t, db.Create(busy).Error)
	quiet := &entities.Restaurant{Name: "Quiet Place", OwnerID: &active.ID}
	require.NoError(t, db.Create(quiet).Error)

	busyTable := &entities.Table{RestaurantID: busy.ID, Number: 1}
	require.NoError(t, db.Create(busyTable).Error)
	require.NoError(t, db.Create(&entities.Order{
		RestaurantID: busy.ID,
		TableID:      busyTable.ID,
		Status:       entities.OrderStatusCompleted,
	}).Error)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&entities.MenuAccess{RestaurantID: busy.ID}).Error)
	}
	require.NoError(t, db.Create(&entities.MenuAccess{RestaurantID: quiet.ID}).Error)

	stats, err := service.PlatformStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.ActiveUsers)
	assert.Equal(t, int64(2), stats.TotalRestaurants)
	assert.Equal(t, int64(1), stats.TotalOrders)
	assert.Equal(t, int64(4), stats.TotalMenuViews)

	require.Len(t, stats.TopRestaurants, 2)
	assert.Equal(t, "Busy Place", stats.TopRestaurants[0].Name)
	assert.Equal(t, int64(3), stats.TopRestaurants[0].MenuViews)
	assert.Equal(t, int64(1), stats.TopRestaurants[0].Orders)
	assert.Equal(t, "Quiet Place", stats.TopRestaurants[1].Name)
}

func TestPlatformStatsEmptyDatabase(t *testing.T) {
	_, service := setupAnalyticsTest(t)

	stats, err := service.PlatformStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalUsers)
	assert.Empty(t, stats.TopRestaurants)
}
