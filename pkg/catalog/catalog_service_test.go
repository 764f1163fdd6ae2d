package catalog

import (
	"context"
	"mime/multipart"
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
	"qrqaema/pkg/restaurant"
)

type fakeS3 struct {
	deleted []string
}

func (f *fakeS3) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error) {
	return folder + "/" + fileName, nil
}

func (f *fakeS3) UploadBytes(objectKey string, data []byte, contentType string) (string, error) {
	return objectKey, nil
}

func (f *fakeS3) UpdateFile(objectKey string, file *multipart.FileHeader, allowedTypes ...string) (string, error) {
	return objectKey, nil
}

func (f *fakeS3) DeleteFile(objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeS3) DeleteFolder(prefix string) error {
	f.deleted = append(f.deleted, prefix)
	return nil
}

func (f *fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://cdn.test/" + objectKey
}

func (f *fakeS3) GetObjectKeyFromLink(link string) string {
	if len(link) <= len("https://cdn.test/") {
		return ""
	}
	return link[len("https://cdn.test/"):]
}

func setupCatalogTest(t *testing.T) (*gorm.DB, CatalogService, *entities.User, *entities.Restaurant) {
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
		&entities.MenuAccess{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	owner := &entities.User{Username: "owner", Email: "owner@example.com", IsActive: true}
	require.NoError(t, db.Create(owner).Error)
	rest := &entities.Restaurant{Name: "Test Kitchen", OwnerID: &owner.ID, Currency: "EUR", DefaultLanguage: "en"}
	require.NoError(t, db.Create(rest).Error)

	s3 := &fakeS3{}
	policy := access.NewPolicy(access.NewAccessRepository(db))
	restaurantService := restaurant.NewRestaurantService(
		restaurant.NewRestaurantRepository(db),
		access.NewAccessRepository(db),
		policy,
		s3,
	)
	service := NewCatalogService(NewCatalogRepository(db), restaurantService, policy, s3)
	return db, service, owner, rest
}

func TestCreateMenuDuplicateLanguage(t *testing.T) {
	_, service, owner, rest := setupCatalogTest(t)
	ctx := context.Background()

	_, err := service.CreateMenu(ctx, owner.ID, rest.ID, domain.CreateMenuRequest{Name: "English", Language: "en"})
	require.NoError(t, err)

	_, err = service.CreateMenu(ctx, owner.ID, rest.ID, domain.CreateMenuRequest{Name: "Another", Language: "en"})
	assert.ErrorIs(t, err, domain.ErrDuplicateLanguage)

	_, err = service.CreateMenu(ctx, owner.ID, rest.ID, domain.CreateMenuRequest{Name: "Arabic", Language: "ar"})
	assert.NoError(t, err)
}

func TestCreateMenuForbiddenForOutsider(t *testing.T) {
	db, service, _, rest := setupCatalogTest(t)
	ctx := context.Background()

	outsider := &entities.User{Username: "outsider", Email: "outsider@example.com", IsActive: true}
	require.NoError(t, db.Create(outsider).Error)

	_, err := service.CreateMenu(ctx, outsider.ID, rest.ID, domain.CreateMenuRequest{Name: "Menu", Language: "en"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateMenuAsDefaultUnsetsSiblings(t *testing.T) {
	db, service, owner, rest := setupCatalogTest(t)
	ctx := context.Background()

	first, err := service.CreateMenu(ctx, owner.ID, rest.ID, domain.CreateMenuRequest{
		Name: "English", Language: "en", IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	second, err := service.CreateMenu(ctx, owner.ID, rest.ID, domain.CreateMenuRequest{
		Name: "Arabic", Language: "ar", IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	var defaults int64
	require.NoError(t, db.Model(&entities.Menu{}).
		Where("restaurant_id = ? AND is_default = ?", rest.ID, true).
		Count(&defaults).Error)
	assert.Equal(t, int64(1), defaults)

	var secondMenu entities.Menu
	require.NoError(t, db.First(&secondMenu, "id = ?", second.ID).Error)
	assert.True(t, secondMenu.IsDefault)
	var firstMenu entities.Menu
	require.NoError(t, db.First(&firstMenu, "id = ?", first.ID).Error)
	assert.False(t, firstMenu.IsDefault)
}

func TestSetDefaultMenuSwitchesAtomically(t *testing.T) {
	db, service, owner, rest := setupCatalogTest(t)
	ctx := context.Background()

	first, err := service.CreateMenu(ctx, owner.ID, rest.ID, domain.CreateMenuRequest{Name: "English", Language: "en"})
	require.NoError(t, err)
	second, err := service.CreateMenu(ctx, owner.ID, rest.ID, domain.CreateMenuRequest{Name: "Turkish", Language: "tr"})
	require.NoError(t, err)

	require.NoError(t, service.SetDefaultMenu(ctx, owner.ID, rest.ID, mustUUID(t, first.ID)))
	require.NoError(t, service.SetDefaultMenu(ctx, owner.ID, rest.ID, mustUUID(t, second.ID)))

	var defaults int64
	require.NoError(t, db.Model(&entities.Menu{}).
		Where("restaurant_id = ? AND is_default = ?", rest.ID, true).
		Count(&defaults).Error)
	assert.Equal(t, int64(1), defaults)

	var menu entities.Menu
	require.NoError(t, db.First(&menu, "id = ?", second.ID).Error)
	assert.True(t, menu.IsDefault)
}

func TestCategoryCrossTenantRejected(t *testing.T) {
	db, service, owner, rest := setupCatalogTest(t)
	ctx := context.Background()

	otherOwner := &entities.User{Username: "other", Email: "other@example.com", IsActive: true}
	require.NoError(t, db.Create(otherOwner).Error)
	otherRest := &entities.Restaurant{Name: "Other Place", OwnerID: &otherOwner.ID}
	require.NoError(t, db.Create(otherRest).Error)
	otherMenu := &entities.Menu{RestaurantID: otherRest.ID, Name: "Their Menu", Language: "en"}
	require.NoError(t, db.Create(otherMenu).Error)

	_, err := service.CreateCategory(ctx, owner.ID, rest.ID, domain.CreateCategoryRequest{
		MenuID: otherMenu.ID.String(),
		Name:   "Starters",
	})
	assert.ErrorIs(t, err, domain.ErrCrossTenantReference)
}

func TestCreateMenuItemWithOptions(t *testing.T) {
	_, service, owner, rest := setupCatalogTest(t)
	ctx := context.Background()

	menu, err := service.CreateMenu(ctx, owner.ID, rest.ID, domain.CreateMenuRequest{Name: "English", Language: "en"})
	require.NoError(t, err)
	category, err := service.CreateCategory(ctx, owner.ID, rest.ID, domain.CreateCategoryRequest{
		MenuID: menu.ID,
		Name:   "Mains",
	})
	require.NoError(t, err)

	item, err := service.CreateMenuItem(ctx, owner.ID, rest.ID, domain.CreateMenuItemRequest{
		CategoryID: category.ID,
		Name:       "Kofta",
		Price:      10.999,
		Options: []domain.OptionRequest{
			{
				Name: "Spiciness",
				Choices: []domain.OptionChoiceRequest{
					{Name: "Mild"},
					{Name: "Hot", PriceModifier: 0.5},
				},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 11.0, item.Price)
	require.Len(t, item.Options, 1)
	assert.Len(t, item.Options[0].Choices, 2)
	assert.True(t, item.IsAvailable)
}

func TestUpdateMenuItemReplacesOptions(t *testing.T) {
	db, service, owner, rest := setupCatalogTest(t)
	ctx := context.Background()

	menu, err := service.CreateMenu(ctx, owner.ID, rest.ID, domain.CreateMenuRequest{Name: "English", Language: "en"})
	require.NoError(t, err)
	category, err := service.CreateCategory(ctx, owner.ID, rest.ID, domain.CreateCategoryRequest{
		MenuID: menu.ID,
		Name:   "Mains",
	})
	require.NoError(t, err)
	item, err := service.CreateMenuItem(ctx, owner.ID, rest.ID, domain.CreateMenuItemRequest{
		CategoryID: category.ID,
		Name:       "Kofta",
		Price:      10,
		Options: []domain.OptionRequest{
			{Name: "Spiciness", Choices: []domain.OptionChoiceRequest{{Name: "Mild"}, {Name: "Hot"}}},
		},
	})
	require.NoError(t, err)

	updated, err := service.UpdateMenuItem(ctx, owner.ID, rest.ID, item.ID, domain.UpdateMenuItemRequest{
		Options: []domain.OptionRequest{
			{Name: "Size", Choices: []domain.OptionChoiceRequest{{Name: "Large", PriceModifier: 2}}},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Options, 1)
	assert.Equal(t, "Size", updated.Options[0].Name)

	var optionCount int64
	require.NoError(t, db.Model(&entities.MenuItemOption{}).
		Where("menu_item_id = ?", item.ID).
		Count(&optionCount).Error)
	assert.Equal(t, int64(1), optionCount)
}

func TestGetCustomerMenuFallsBackToDefault(t *testing.T) {
	db, service, owner, rest := setupCatalogTest(t)
	ctx := context.Background()

	english, err := service.CreateMenu(ctx, owner.ID, rest.ID, domain.CreateMenuRequest{Name: "English", Language: "en"})
	require.NoError(t, err)
	require.NoError(t, service.SetDefaultMenu(ctx, owner.ID, rest.ID, mustUUID(t, english.ID)))
	_, err = service.CreateMenu(ctx, owner.ID, rest.ID, domain.CreateMenuRequest{Name: "Turkish", Language: "tr"})
	require.NoError(t, err)

	// Requested language exists.
	res, err := service.GetCustomerMenu(ctx, rest.ID, "tr")
	require.NoError(t, err)
	assert.Equal(t, "tr", res.Menu.Language)

	// Unavailable language falls back to the default menu.
	res, err = service.GetCustomerMenu(ctx, rest.ID, "nl")
	require.NoError(t, err)
	assert.Equal(t, "en", res.Menu.Language)

	assert.Eventually(t, func() bool {
		var views int64
		if err := db.Model(&entities.MenuAccess{}).
			Where("restaurant_id = ?", rest.ID).
			Count(&views).Error; err != nil {
			return false
		}
		return views >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestGetCustomerMenuHidesUnavailableItems(t *testing.T) {
	_, service, owner, rest := setupCatalogTest(t)
	ctx := context.Background()

	menu, err := service.CreateMenu(ctx, owner.ID, rest.ID, domain.CreateMenuRequest{Name: "English", Language: "en"})
	require.NoError(t, err)
	require.NoError(t, service.SetDefaultMenu(ctx, owner.ID, rest.ID, mustUUID(t, menu.ID)))
	category, err := service.CreateCategory(ctx, owner.ID, rest.ID, domain.CreateCategoryRequest{
		MenuID: menu.ID,
		Name:   "Mains",
	})
	require.NoError(t, err)

	_, err = service.CreateMenuItem(ctx, owner.ID, rest.ID, domain.CreateMenuItemRequest{
		CategoryID: category.ID,
		Name:       "Kofta",
		Price:      10,
	})
	require.NoError(t, err)
	soldOut, err := service.CreateMenuItem(ctx, owner.ID, rest.ID, domain.CreateMenuItemRequest{
		CategoryID: category.ID,
		Name:       "Soup",
		Price:      5,
	})
	require.NoError(t, err)
	_, err = service.UpdateMenuItem(ctx, owner.ID, rest.ID, soldOut.ID, domain.UpdateMenuItemRequest{
		IsAvailable: boolPtr(false),
	})
	require.NoError(t, err)

	res, err := service.GetCustomerMenu(ctx, rest.ID, "en")
	require.NoError(t, err)
	require.Len(t, res.Categories, 1)
	require.Len(t, res.Categories[0].Items, 1)
	assert.Equal(t, "Kofta", res.Categories[0].Items[0].Name)

	// Management view still lists the sold out item.
	_, categories, err := service.GetMenu(ctx, owner.ID, rest.ID, mustUUID(t, menu.ID))
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Len(t, categories[0].Items, 2)
}

func TestGetCustomerMenuNoDefault(t *testing.T) {
	_, service, _, rest := setupCatalogTest(t)
	ctx := context.Background()

	_, err := service.GetCustomerMenu(ctx, rest.ID, "")
	assert.ErrorIs(t, err, domain.ErrNoDefaultMenu)
}

func TestDeleteMenuItemCleansImage(t *testing.T) {
	db, service, owner, rest := setupCatalogTest(t)
	ctx := context.Background()

	menu, err := service.CreateMenu(ctx, owner.ID, rest.ID, domain.CreateMenuRequest{Name: "English", Language: "en"})
	require.NoError(t, err)
	category, err := service.CreateCategory(ctx, owner.ID, rest.ID, domain.CreateCategoryRequest{
		MenuID: menu.ID,
		Name:   "Mains",
	})
	require.NoError(t, err)
	item, err := service.CreateMenuItem(ctx, owner.ID, rest.ID, domain.CreateMenuItemRequest{
		CategoryID: category.ID,
		Name:       "Kofta",
		Price:      10,
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&entities.MenuItem{}).
		Where("id = ?", item.ID).
		Update("image_url", "https://cdn.test/restaurants/x/items/1.jpg").Error)

	require.NoError(t, service.DeleteMenuItem(ctx, owner.ID, rest.ID, item.ID))

	var count int64
	require.NoError(t, db.Model(&entities.MenuItem{}).Where("id = ?", item.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func boolPtr(b bool) *bool {
	return &b
}

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}
