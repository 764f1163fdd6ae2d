package entities

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// The schema must migrate on sqlite, which has no uuid-ossp extension:
// the hooks, not a column default, are responsible for primary keys.
func TestMigrateAndCreateOnSqlite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&User{},
		&Restaurant{},
		&Menu{},
		&Category{},
		&MenuItem{},
		&MenuItemOption{},
		&MenuItemOptionChoice{},
		&Table{},
		&Order{},
		&OrderItem{},
		&HelpRequest{},
		&MenuAccess{},
	))

	owner := &User{Username: "owner", Email: "owner@example.com"}
	require.NoError(t, db.Create(owner).Error)
	assert.NotEqual(t, uuid.Nil, owner.ID)

	rest := &Restaurant{Name: "Test Kitchen", OwnerID: &owner.ID}
	require.NoError(t, db.Create(rest).Error)
	assert.NotEqual(t, uuid.Nil, rest.ID)

	menu := &Menu{RestaurantID: rest.ID, Name: "English", Language: "en"}
	require.NoError(t, db.Create(menu).Error)
	assert.NotEqual(t, uuid.Nil, menu.ID)

	table := &Table{RestaurantID: rest.ID, Number: 1}
	require.NoError(t, db.Create(table).Error)
	assert.NotEqual(t, uuid.Nil, table.ID)

	order := &Order{RestaurantID: rest.ID, TableID: table.ID, Status: OrderStatusPending}
	require.NoError(t, db.Create(order).Error)
	assert.NotEqual(t, uuid.Nil, order.ID)

	help := &HelpRequest{RestaurantID: rest.ID, TableID: table.ID, Status: HelpStatusPending}
	require.NoError(t, db.Create(help).Error)
	assert.NotEqual(t, uuid.Nil, help.ID)
}
