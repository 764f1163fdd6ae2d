package help

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"qrqaema/domain"
	"qrqaema/entities"
	"qrqaema/pkg/access"
)

func setupHelpTest(t *testing.T) (*gorm.DB, HelpService, *entities.User, *entities.Restaurant, *entities.Table) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	err = db.AutoMigrate(
		&entities.User{},
		&entities.Restaurant{},
		&entities.Table{},
		&entities.HelpRequest{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	owner := &entities.User{Username: "owner", Email: "owner@example.com", IsActive: true}
	require.NoError(t, db.Create(owner).Error)
	rest := &entities.Restaurant{Name: "Test Kitchen", OwnerID: &owner.ID}
	require.NoError(t, db.Create(rest).Error)
	table := &entities.Table{RestaurantID: rest.ID, Number: 1}
	require.NoError(t, db.Create(table).Error)

	accessRepository := access.NewAccessRepository(db)
	service := NewHelpService(NewHelpRepository(db), accessRepository, access.NewPolicy(accessRepository))
	return db, service, owner, rest, table
}

func TestCreateRequestIsPublic(t *testing.T) {
	_, service, _, rest, table := setupHelpTest(t)
	ctx := context.Background()

	res, err := service.CreateRequest(ctx, rest.ID, nil, domain.CreateHelpRequest{
		TableID:     table.ID.String(),
		Description: "need more napkins",
	})
	require.NoError(t, err)

	assert.Equal(t, entities.HelpStatusPending, res.Status)
	assert.Equal(t, table.Number, res.TableNumber)
	assert.Equal(t, "need more napkins", res.Description)
}

func TestCreateRequestCrossTenantTable(t *testing.T) {
	db, service, _, rest, _ := setupHelpTest(t)
	ctx := context.Background()

	otherOwner := &entities.User{Username: "other", Email: "other@example.com", IsActive: true}
	require.NoError(t, db.Create(otherOwner).Error)
	otherRest := &entities.Restaurant{Name: "Other Place", OwnerID: &otherOwner.ID}
	require.NoError(t, db.Create(otherRest).Error)
	otherTable := &entities.Table{RestaurantID: otherRest.ID, Number: 1}
	require.NoError(t, db.Create(otherTable).Error)

	_, err := service.CreateRequest(ctx, rest.ID, nil, domain.CreateHelpRequest{
		TableID: otherTable.ID.String(),
	})
	assert.ErrorIs(t, err, domain.ErrCrossTenantReference)
}

func TestUpdateRequestStatusAndResponse(t *testing.T) {
	_, service, owner, rest, table := setupHelpTest(t)
	ctx := context.Background()

	created, err := service.CreateRequest(ctx, rest.ID, nil, domain.CreateHelpRequest{
		TableID: table.ID.String(),
	})
	require.NoError(t, err)
	requestID := mustHelpID(t, created.ID)

	updated, err := service.UpdateRequest(ctx, owner.ID, rest.ID, requestID, domain.UpdateHelpRequest{
		Status:   entities.HelpStatusAccepted,
		Response: "on our way",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.HelpStatusAccepted, updated.Status)
	assert.Equal(t, "on our way", updated.Response)
}

func TestGetRequestsFiltersByStatus(t *testing.T) {
	_, service, owner, rest, table := setupHelpTest(t)
	ctx := context.Background()

	first, err := service.CreateRequest(ctx, rest.ID, nil, domain.CreateHelpRequest{TableID: table.ID.String()})
	require.NoError(t, err)
	_, err = service.CreateRequest(ctx, rest.ID, nil, domain.CreateHelpRequest{TableID: table.ID.String()})
	require.NoError(t, err)

	_, err = service.UpdateRequest(ctx, owner.ID, rest.ID, mustHelpID(t, first.ID), domain.UpdateHelpRequest{
		Status: entities.HelpStatusResolved,
	})
	require.NoError(t, err)

	pending, err := service.GetRequests(ctx, owner.ID, rest.ID, entities.HelpStatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := service.GetRequests(ctx, owner.ID, rest.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetRequestsForbiddenForOutsider(t *testing.T) {
	db, service, _, rest, _ := setupHelpTest(t)
	ctx := context.Background()

	outsider := &entities.User{Username: "outsider", Email: "outsider@example.com", IsActive: true}
	require.NoError(t, db.Create(outsider).Error)

	_, err := service.GetRequests(ctx, outsider.ID, rest.ID, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListMineSpansOwnedAndStaffedRestaurants(t *testing.T) {
	db, service, owner, rest, table := setupHelpTest(t)
	ctx := context.Background()

	otherOwner := &entities.User{Username: "other", Email: "other@example.com", IsActive: true}
	require.NoError(t, db.Create(otherOwner).Error)
	staffedRest := &entities.Restaurant{Name: "Staffed Place", OwnerID: &otherOwner.ID}
	require.NoError(t, db.Create(staffedRest).Error)
	staffedTable := &entities.Table{RestaurantID: staffedRest.ID, Number: 1}
	require.NoError(t, db.Create(staffedTable).Error)
	require.NoError(t, db.Exec(
		"INSERT INTO restaurant_staff (restaurant_id, user_id) VALUES (?, ?)",
		staffedRest.ID, owner.ID,
	).Error)

	unrelatedRest := &entities.Restaurant{Name: "Unrelated Place", OwnerID: &otherOwner.ID}
	require.NoError(t, db.Create(unrelatedRest).Error)
	unrelatedTable := &entities.Table{RestaurantID: unrelatedRest.ID, Number: 1}
	require.NoError(t, db.Create(unrelatedTable).Error)

	_, err := service.CreateRequest(ctx, rest.ID, nil, domain.CreateHelpRequest{TableID: table.ID.String()})
	require.NoError(t, err)
	_, err = service.CreateRequest(ctx, staffedRest.ID, nil, domain.CreateHelpRequest{TableID: staffedTable.ID.String()})
	require.NoError(t, err)
	_, err = service.CreateRequest(ctx, unrelatedRest.ID, nil, domain.CreateHelpRequest{TableID: unrelatedTable.ID.String()})
	require.NoError(t, err)

	mine, err := service.ListMine(ctx, owner.ID, "")
	require.NoError(t, err)
	require.Len(t, mine, 2)

	restaurants := map[string]bool{}
	for _, req := range mine {
		restaurants[req.RestaurantID] = true
	}
	assert.True(t, restaurants[rest.ID.String()])
	assert.True(t, restaurants[staffedRest.ID.String()])
	assert.False(t, restaurants[unrelatedRest.ID.String()])
}

func TestListMineEmptyForUnaffiliatedUser(t *testing.T) {
	db, service, _, rest, table := setupHelpTest(t)
	ctx := context.Background()

	_, err := service.CreateRequest(ctx, rest.ID, nil, domain.CreateHelpRequest{TableID: table.ID.String()})
	require.NoError(t, err)

	outsider := &entities.User{Username: "outsider", Email: "outsider@example.com", IsActive: true}
	require.NoError(t, db.Create(outsider).Error)

	mine, err := service.ListMine(ctx, outsider.ID, "")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestDeleteRequest(t *testing.T) {
	db, service, owner, rest, table := setupHelpTest(t)
	ctx := context.Background()

	created, err := service.CreateRequest(ctx, rest.ID, nil, domain.CreateHelpRequest{TableID: table.ID.String()})
	require.NoError(t, err)

	require.NoError(t, service.DeleteRequest(ctx, owner.ID, rest.ID, mustHelpID(t, created.ID)))

	var count int64
	require.NoError(t, db.Model(&entities.HelpRequest{}).Count(&count).Error)
	assert.Zero(t, count)
}

func mustHelpID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}
